package events

import (
	"time"

	"github.com/kookbot/kook-go/pkg/domain"
	"github.com/kookbot/kook-go/pkg/domain/message"
	"github.com/kookbot/kook-go/pkg/domain/user"
)

// UserOnline is emitted when a user the bot shares a guild with comes online.
type UserOnline struct {
	domain.BaseEvent
	User user.Snapshot `json:"user"`
}

func NewUserOnline(at time.Time, u user.Snapshot) UserOnline {
	return UserOnline{BaseEvent: domain.NewBaseEvent(at), User: u}
}

func (UserOnline) EventType() domain.EventType { return TypeUserOnline }
func (e UserOnline) UserID() string            { return e.User.UserID }

// UserOffline is emitted when a user goes offline.
type UserOffline struct {
	domain.BaseEvent
	User user.Snapshot `json:"user"`
}

func NewUserOffline(at time.Time, u user.Snapshot) UserOffline {
	return UserOffline{BaseEvent: domain.NewBaseEvent(at), User: u}
}

func (UserOffline) EventType() domain.EventType { return TypeUserOffline }
func (e UserOffline) UserID() string            { return e.User.UserID }

// UserJoinedGuild is emitted when a user joins a guild the bot is in.
type UserJoinedGuild struct {
	domain.BaseEvent
	User  user.Snapshot `json:"user"`
	Guild string        `json:"guild_id"`
}

func NewUserJoinedGuild(at time.Time, u user.Snapshot, guildID string) UserJoinedGuild {
	return UserJoinedGuild{BaseEvent: domain.NewBaseEvent(at), User: u, Guild: guildID}
}

func (UserJoinedGuild) EventType() domain.EventType { return TypeUserJoinedGuild }
func (e UserJoinedGuild) UserID() string            { return e.User.UserID }
func (e UserJoinedGuild) GuildID() string           { return e.Guild }

// UserLeftGuild is emitted when a user leaves or is removed from a guild.
type UserLeftGuild struct {
	domain.BaseEvent
	User  user.Snapshot `json:"user"`
	Guild string        `json:"guild_id"`
}

func NewUserLeftGuild(at time.Time, u user.Snapshot, guildID string) UserLeftGuild {
	return UserLeftGuild{BaseEvent: domain.NewBaseEvent(at), User: u, Guild: guildID}
}

func (UserLeftGuild) EventType() domain.EventType { return TypeUserLeftGuild }
func (e UserLeftGuild) UserID() string            { return e.User.UserID }
func (e UserLeftGuild) GuildID() string           { return e.Guild }

// UserPrivateMessage is emitted when a user sends the bot a direct message.
type UserPrivateMessage struct {
	domain.BaseEvent
	User    user.Snapshot    `json:"user"`
	Message message.Snapshot `json:"message"`
}

func NewUserPrivateMessage(at time.Time, u user.Snapshot, msg message.Snapshot) UserPrivateMessage {
	return UserPrivateMessage{BaseEvent: domain.NewBaseEvent(at), User: u, Message: msg}
}

func (UserPrivateMessage) EventType() domain.EventType { return TypeUserPrivateMessage }
func (e UserPrivateMessage) UserID() string            { return e.User.UserID }

var (
	_ UserEvent  = UserOnline{}
	_ UserEvent  = UserOffline{}
	_ UserEvent  = UserJoinedGuild{}
	_ UserEvent  = UserLeftGuild{}
	_ UserEvent  = UserPrivateMessage{}
	_ GuildEvent = UserJoinedGuild{}
	_ GuildEvent = UserLeftGuild{}
)
