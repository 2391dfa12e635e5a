// Package domain provides the shared kernel of the SDK: the event capability
// every occurrence implements, identifiers, timestamps and permission bits.
// Entity contexts (guild, channel, role, user, message) build on these types.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// Identity
// ---------------------------------------------------------------------------

// EntityID is a typed identifier. The platform uses string IDs for users,
// channels, guilds and messages.
type EntityID string

// NewID generates a random UUID-based identifier.
func NewID() EntityID {
	return EntityID(uuid.NewString())
}

// String implements fmt.Stringer.
func (id EntityID) String() string { return string(id) }

// IsZero returns true if the ID is empty.
func (id EntityID) IsZero() bool { return id == "" }

// ---------------------------------------------------------------------------
// Timestamps
// ---------------------------------------------------------------------------

// The platform reports instants as milliseconds since the Unix epoch.

// FromMillis converts a platform millisecond timestamp to UTC time.
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// Millis converts t to a platform millisecond timestamp.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}
