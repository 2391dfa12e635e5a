// Package role defines guild roles.
package role

import "github.com/kookbot/kook-go/pkg/domain"

// Role is a named permission set inside one guild.
type Role interface {
	ID() int
	GuildID() string
	Name() string
	// Color is a 0xRRGGBB value.
	Color() int
	// Position orders roles; lower values rank higher.
	Position() int
	Permissions() domain.Permission
	// Hoisted reports whether members are listed separately.
	Hoisted() bool
	Mentionable() bool
}

// Snapshot is an immutable Role.
type Snapshot struct {
	RoleID     int               `json:"role_id"`
	Guild      string            `json:"guild_id"`
	RoleName   string            `json:"name"`
	RGB        int               `json:"color"`
	Pos        int               `json:"position"`
	Perms      domain.Permission `json:"permissions"`
	Hoist      bool              `json:"hoist"`
	CanMention bool              `json:"mentionable"`
}

func (s Snapshot) ID() int                        { return s.RoleID }
func (s Snapshot) GuildID() string                { return s.Guild }
func (s Snapshot) Name() string                   { return s.RoleName }
func (s Snapshot) Color() int                     { return s.RGB }
func (s Snapshot) Position() int                  { return s.Pos }
func (s Snapshot) Permissions() domain.Permission { return s.Perms }
func (s Snapshot) Hoisted() bool                  { return s.Hoist }
func (s Snapshot) Mentionable() bool              { return s.CanMention }

var _ Role = Snapshot{}
