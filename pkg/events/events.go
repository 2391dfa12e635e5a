// Package events defines the typed occurrence catalog of the platform.
// Every occurrence a producer hands to the dispatcher MUST be one of these
// variants. Group interfaces only classify variants; handlers always listen
// to a concrete variant.
package events

import (
	"fmt"

	"github.com/kookbot/kook-go/pkg/domain"
	"github.com/kookbot/kook-go/pkg/infrastructure/eventbus"
)

// --- Variant Keys ---

const (
	// Channel events
	TypeChannelCreated         domain.EventType = "channel.created"
	TypeChannelUpdated         domain.EventType = "channel.updated"
	TypeChannelDeleted         domain.EventType = "channel.deleted"
	TypeChannelMessageReceived domain.EventType = "channel.message.received"
	TypeChannelMessageUpdated  domain.EventType = "channel.message.updated"
	TypeChannelMessageDeleted  domain.EventType = "channel.message.deleted"

	// User events
	TypeUserOnline         domain.EventType = "user.online"
	TypeUserOffline        domain.EventType = "user.offline"
	TypeUserJoinedGuild    domain.EventType = "user.guild.joined"
	TypeUserLeftGuild      domain.EventType = "user.guild.left"
	TypeUserPrivateMessage domain.EventType = "user.private_message"

	// Role events
	TypeRoleCreated domain.EventType = "role.created"
	TypeRoleUpdated domain.EventType = "role.updated"
	TypeRoleDeleted domain.EventType = "role.deleted"

	// Guild events
	TypeGuildUpdated domain.EventType = "guild.updated"
)

// --- Groups ---

// ChannelEvent is implemented by every occurrence about a channel.
type ChannelEvent interface {
	domain.Event
	ChannelID() string
}

// UserEvent is implemented by every occurrence about a user.
type UserEvent interface {
	domain.Event
	UserID() string
}

// RoleEvent is implemented by every occurrence about a guild role.
type RoleEvent interface {
	domain.Event
	RoleID() int
}

// GuildEvent is implemented by every occurrence about a guild.
type GuildEvent interface {
	domain.Event
	GuildID() string
}

// --- Catalog ---

type variant struct {
	key     domain.EventType
	install func(m *eventbus.Manager) error
	listen  func(m *eventbus.Manager, name string, fn func(domain.Event) error, opts ...eventbus.ListenOption) error
}

func entry[E domain.Event](key domain.EventType) variant {
	return variant{
		key: key,
		install: func(m *eventbus.Manager) error {
			_, err := eventbus.Install[E](m)
			return err
		},
		listen: func(m *eventbus.Manager, name string, fn func(domain.Event) error, opts ...eventbus.ListenOption) error {
			return eventbus.Register(m, eventbus.ListenFunc(name, func(e E) error { return fn(e) }, opts...))
		},
	}
}

var catalog = []variant{
	entry[ChannelCreated](TypeChannelCreated),
	entry[ChannelUpdated](TypeChannelUpdated),
	entry[ChannelDeleted](TypeChannelDeleted),
	entry[ChannelMessageReceived](TypeChannelMessageReceived),
	entry[ChannelMessageUpdated](TypeChannelMessageUpdated),
	entry[ChannelMessageDeleted](TypeChannelMessageDeleted),
	entry[UserOnline](TypeUserOnline),
	entry[UserOffline](TypeUserOffline),
	entry[UserJoinedGuild](TypeUserJoinedGuild),
	entry[UserLeftGuild](TypeUserLeftGuild),
	entry[UserPrivateMessage](TypeUserPrivateMessage),
	entry[RoleCreated](TypeRoleCreated),
	entry[RoleUpdated](TypeRoleUpdated),
	entry[RoleDeleted](TypeRoleDeleted),
	entry[GuildUpdated](TypeGuildUpdated),
}

// Install creates the handler registry of every catalog variant on m. It is
// safe to call more than once.
func Install(m *eventbus.Manager) error {
	for _, v := range catalog {
		if err := v.install(m); err != nil {
			return fmt.Errorf("events: install %s: %w", v.key, err)
		}
	}
	return nil
}

// ListenAll registers fn under name on every catalog variant, one descriptor
// per variant. Registration stops at the first failure; descriptors already
// stored on earlier variants stay registered.
func ListenAll(m *eventbus.Manager, name string, fn func(domain.Event) error, opts ...eventbus.ListenOption) error {
	for _, v := range catalog {
		if err := v.listen(m, name, fn, opts...); err != nil {
			return err
		}
	}
	return nil
}

// Types returns the keys of every catalog variant in declaration order.
func Types() []domain.EventType {
	out := make([]domain.EventType, len(catalog))
	for i, v := range catalog {
		out[i] = v.key
	}
	return out
}
