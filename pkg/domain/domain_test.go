package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	require.False(t, a.IsZero())
	assert.NotEqual(t, a, b)
	assert.Len(t, a.String(), 36)
}

func TestMillisRoundTrip(t *testing.T) {
	ts := FromMillis(1_672_531_200_123)
	assert.Equal(t, time.UTC, ts.Location())
	assert.Equal(t, int64(1_672_531_200_123), Millis(ts))
}

func TestBaseEventOccurredAt(t *testing.T) {
	at := time.Date(2023, 1, 1, 8, 0, 0, 0, time.FixedZone("CST", 8*3600))
	e := NewBaseEvent(at)
	assert.True(t, e.OccurredAt().Equal(at))
	assert.Equal(t, time.UTC, e.OccurredAt().Location())
}

func TestPermission(t *testing.T) {
	for _, tc := range []struct {
		name string
		have Permission
		want Permission
		ok   bool
	}{
		{"single bit", PermKick, PermKick, true},
		{"missing bit", PermKick, PermBan, false},
		{"all of several", PermKick | PermBan | PermSpeak, PermKick | PermBan, true},
		{"partial", PermKick, PermKick | PermBan, false},
		{"operator implies all", PermOperator, PermRoleManage | PermEmojiManage, true},
		{"empty want", 0, 0, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.ok, tc.have.Has(tc.want))
		})
	}
}

func TestPermissionString(t *testing.T) {
	assert.Equal(t, "none", Permission(0).String())
	assert.Equal(t, "kick|ban", (PermKick | PermBan).String())
	assert.Equal(t, "play_music", PermPlayMusic.String())
	assert.Len(t, permissionNames, 28)
}
