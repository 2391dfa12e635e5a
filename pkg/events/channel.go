package events

import (
	"time"

	"github.com/kookbot/kook-go/pkg/domain"
	"github.com/kookbot/kook-go/pkg/domain/channel"
	"github.com/kookbot/kook-go/pkg/domain/message"
)

// ChannelCreated is emitted when a channel is added to a guild.
type ChannelCreated struct {
	domain.BaseEvent
	Channel channel.Snapshot `json:"channel"`
}

// NewChannelCreated creates a ChannelCreated occurrence.
func NewChannelCreated(at time.Time, ch channel.Snapshot) ChannelCreated {
	return ChannelCreated{BaseEvent: domain.NewBaseEvent(at), Channel: ch}
}

func (ChannelCreated) EventType() domain.EventType { return TypeChannelCreated }
func (e ChannelCreated) ChannelID() string         { return e.Channel.ChannelID }
func (e ChannelCreated) GuildID() string           { return e.Channel.Guild }

// ChannelUpdated is emitted when a channel's settings change. Channel holds
// the new state.
type ChannelUpdated struct {
	domain.BaseEvent
	Channel channel.Snapshot `json:"channel"`
}

// NewChannelUpdated creates a ChannelUpdated occurrence.
func NewChannelUpdated(at time.Time, ch channel.Snapshot) ChannelUpdated {
	return ChannelUpdated{BaseEvent: domain.NewBaseEvent(at), Channel: ch}
}

func (ChannelUpdated) EventType() domain.EventType { return TypeChannelUpdated }
func (e ChannelUpdated) ChannelID() string         { return e.Channel.ChannelID }
func (e ChannelUpdated) GuildID() string           { return e.Channel.Guild }

// ChannelDeleted is emitted when a channel is removed. Channel holds the last
// known state.
type ChannelDeleted struct {
	domain.BaseEvent
	Channel channel.Snapshot `json:"channel"`
}

// NewChannelDeleted creates a ChannelDeleted occurrence.
func NewChannelDeleted(at time.Time, ch channel.Snapshot) ChannelDeleted {
	return ChannelDeleted{BaseEvent: domain.NewBaseEvent(at), Channel: ch}
}

func (ChannelDeleted) EventType() domain.EventType { return TypeChannelDeleted }
func (e ChannelDeleted) ChannelID() string         { return e.Channel.ChannelID }
func (e ChannelDeleted) GuildID() string           { return e.Channel.Guild }

// ChannelMessageReceived is emitted for every message posted in a channel
// the bot can read.
type ChannelMessageReceived struct {
	domain.BaseEvent
	Channel channel.Snapshot `json:"channel"`
	Message message.Snapshot `json:"message"`
}

// NewChannelMessageReceived creates a ChannelMessageReceived occurrence.
func NewChannelMessageReceived(at time.Time, ch channel.Snapshot, msg message.Snapshot) ChannelMessageReceived {
	return ChannelMessageReceived{BaseEvent: domain.NewBaseEvent(at), Channel: ch, Message: msg}
}

func (ChannelMessageReceived) EventType() domain.EventType { return TypeChannelMessageReceived }
func (e ChannelMessageReceived) ChannelID() string         { return e.Channel.ChannelID }
func (e ChannelMessageReceived) GuildID() string           { return e.Channel.Guild }

// ChannelMessageUpdated is emitted when a channel message is edited.
type ChannelMessageUpdated struct {
	domain.BaseEvent
	Channel   channel.Snapshot `json:"channel"`
	MessageID string           `json:"msg_id"`
	Content   string           `json:"content"`
}

// NewChannelMessageUpdated creates a ChannelMessageUpdated occurrence.
func NewChannelMessageUpdated(at time.Time, ch channel.Snapshot, msgID, content string) ChannelMessageUpdated {
	return ChannelMessageUpdated{BaseEvent: domain.NewBaseEvent(at), Channel: ch, MessageID: msgID, Content: content}
}

func (ChannelMessageUpdated) EventType() domain.EventType { return TypeChannelMessageUpdated }
func (e ChannelMessageUpdated) ChannelID() string         { return e.Channel.ChannelID }
func (e ChannelMessageUpdated) GuildID() string           { return e.Channel.Guild }

// ChannelMessageDeleted is emitted when a channel message is removed.
type ChannelMessageDeleted struct {
	domain.BaseEvent
	Channel   channel.Snapshot `json:"channel"`
	MessageID string           `json:"msg_id"`
}

// NewChannelMessageDeleted creates a ChannelMessageDeleted occurrence.
func NewChannelMessageDeleted(at time.Time, ch channel.Snapshot, msgID string) ChannelMessageDeleted {
	return ChannelMessageDeleted{BaseEvent: domain.NewBaseEvent(at), Channel: ch, MessageID: msgID}
}

func (ChannelMessageDeleted) EventType() domain.EventType { return TypeChannelMessageDeleted }
func (e ChannelMessageDeleted) ChannelID() string         { return e.Channel.ChannelID }
func (e ChannelMessageDeleted) GuildID() string           { return e.Channel.Guild }

var (
	_ ChannelEvent = ChannelCreated{}
	_ ChannelEvent = ChannelUpdated{}
	_ ChannelEvent = ChannelDeleted{}
	_ ChannelEvent = ChannelMessageReceived{}
	_ ChannelEvent = ChannelMessageUpdated{}
	_ ChannelEvent = ChannelMessageDeleted{}
	_ GuildEvent   = ChannelCreated{}
)
