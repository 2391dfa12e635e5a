// Package user defines the User entity of the platform.
package user

import "fmt"

// User is a platform account as seen by the bot.
type User interface {
	// ID returns the platform user ID.
	ID() string
	// Name returns the display name.
	Name() string
	// IdentifyNumber returns the four digit discriminator shown after the name.
	IdentifyNumber() int
	// FullName returns "name#0042".
	FullName() string
	IsBot() bool
	IsOnline() bool
	// AvatarURL returns the avatar; vip selects the animated VIP avatar when set.
	AvatarURL(vip bool) string
}

// Snapshot is an immutable User captured at the moment an occurrence was
// observed.
type Snapshot struct {
	UserID    string `json:"id"`
	UserName  string `json:"username"`
	Identify  int    `json:"identify_num"`
	Bot       bool   `json:"bot"`
	Online    bool   `json:"online"`
	Avatar    string `json:"avatar,omitempty"`
	VIPAvatar string `json:"vip_avatar,omitempty"`
}

func (s Snapshot) ID() string          { return s.UserID }
func (s Snapshot) Name() string        { return s.UserName }
func (s Snapshot) IdentifyNumber() int { return s.Identify }
func (s Snapshot) IsBot() bool         { return s.Bot }
func (s Snapshot) IsOnline() bool      { return s.Online }

func (s Snapshot) FullName() string {
	return fmt.Sprintf("%s#%04d", s.UserName, s.Identify)
}

func (s Snapshot) AvatarURL(vip bool) string {
	if vip && s.VIPAvatar != "" {
		return s.VIPAvatar
	}
	return s.Avatar
}

var _ User = Snapshot{}
