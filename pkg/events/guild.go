package events

import (
	"time"

	"github.com/kookbot/kook-go/pkg/domain"
	"github.com/kookbot/kook-go/pkg/domain/guild"
)

// GuildUpdated is emitted when guild settings change. Guild holds the new
// state.
type GuildUpdated struct {
	domain.BaseEvent
	Guild guild.Snapshot `json:"guild"`
}

func NewGuildUpdated(at time.Time, g guild.Snapshot) GuildUpdated {
	return GuildUpdated{BaseEvent: domain.NewBaseEvent(at), Guild: g}
}

func (GuildUpdated) EventType() domain.EventType { return TypeGuildUpdated }
func (e GuildUpdated) GuildID() string           { return e.Guild.GuildID }

var _ GuildEvent = GuildUpdated{}
