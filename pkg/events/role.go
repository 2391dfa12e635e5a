package events

import (
	"time"

	"github.com/kookbot/kook-go/pkg/domain"
	"github.com/kookbot/kook-go/pkg/domain/role"
)

// RoleCreated is emitted when a role is added to a guild.
type RoleCreated struct {
	domain.BaseEvent
	Role role.Snapshot `json:"role"`
}

func NewRoleCreated(at time.Time, r role.Snapshot) RoleCreated {
	return RoleCreated{BaseEvent: domain.NewBaseEvent(at), Role: r}
}

func (RoleCreated) EventType() domain.EventType { return TypeRoleCreated }
func (e RoleCreated) RoleID() int               { return e.Role.RoleID }
func (e RoleCreated) GuildID() string           { return e.Role.Guild }

// RoleUpdated is emitted when a role's name, color or permissions change.
type RoleUpdated struct {
	domain.BaseEvent
	Role role.Snapshot `json:"role"`
}

func NewRoleUpdated(at time.Time, r role.Snapshot) RoleUpdated {
	return RoleUpdated{BaseEvent: domain.NewBaseEvent(at), Role: r}
}

func (RoleUpdated) EventType() domain.EventType { return TypeRoleUpdated }
func (e RoleUpdated) RoleID() int               { return e.Role.RoleID }
func (e RoleUpdated) GuildID() string           { return e.Role.Guild }

// RoleDeleted is emitted when a role is removed.
type RoleDeleted struct {
	domain.BaseEvent
	Role role.Snapshot `json:"role"`
}

func NewRoleDeleted(at time.Time, r role.Snapshot) RoleDeleted {
	return RoleDeleted{BaseEvent: domain.NewBaseEvent(at), Role: r}
}

func (RoleDeleted) EventType() domain.EventType { return TypeRoleDeleted }
func (e RoleDeleted) RoleID() int               { return e.Role.RoleID }
func (e RoleDeleted) GuildID() string           { return e.Role.Guild }

var (
	_ RoleEvent  = RoleCreated{}
	_ RoleEvent  = RoleUpdated{}
	_ RoleEvent  = RoleDeleted{}
	_ GuildEvent = RoleDeleted{}
)
