// Package guild defines the Guild context: the read surface of a guild, the
// remote operations a bot may perform on it and the permission each one
// requires.
package guild

import (
	"context"

	"github.com/kookbot/kook-go/pkg/domain"
	"github.com/kookbot/kook-go/pkg/domain/channel"
	"github.com/kookbot/kook-go/pkg/domain/role"
	"github.com/kookbot/kook-go/pkg/domain/user"
)

// ---------------------------------------------------------------------------
// NotifyType
// ---------------------------------------------------------------------------

// NotifyType is the guild notification setting.
type NotifyType int

const (
	// NotifyDefault follows the guild settings.
	NotifyDefault NotifyType = 0
	// NotifyAll always notifies.
	NotifyAll NotifyType = 1
	// NotifyMentionOnly notifies on mentions only.
	NotifyMentionOnly NotifyType = 2
	// NotifyNone never notifies.
	NotifyNone NotifyType = 3
)

// Value returns the platform wire value.
func (n NotifyType) Value() int { return int(n) }

// String implements fmt.Stringer.
func (n NotifyType) String() string {
	switch n {
	case NotifyDefault:
		return "default"
	case NotifyAll:
		return "all"
	case NotifyMentionOnly:
		return "mention_only"
	case NotifyNone:
		return "no_notify"
	default:
		return "unknown"
	}
}

// ---------------------------------------------------------------------------
// Guild
// ---------------------------------------------------------------------------

// Guild is the read surface of a guild.
type Guild interface {
	ID() string
	Name() string
	MasterID() string
	AvatarURL() string
	// VoiceRegion is the voice server region of the guild.
	VoiceRegion() string
	IsPublic() bool
	NotifyType() NotifyType
	UserCount() int
	OnlineUserCount() int
}

// Emoji is a custom guild emoji.
type Emoji struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Operations are the remote actions a bot can take on a guild. They are
// implemented by a platform client; each names its required permission in
// RequiredPermission.
type Operations interface {
	SetName(ctx context.Context, name string) error
	// Leave leaves the guild. This cannot be undone.
	Leave(ctx context.Context) error
	// Ban bans u; delMessageDays selects how many days of u's messages are removed.
	Ban(ctx context.Context, u user.User, reason string, delMessageDays int) error
	Unban(ctx context.Context, u user.User) error
	// Kick removes u from the guild. This cannot be undone.
	Kick(ctx context.Context, u user.User) error
	CreateTextChannel(ctx context.Context, name string, parent channel.Category) (channel.TextChannel, error)
	CreateVoiceChannel(ctx context.Context, spec VoiceChannelSpec) (channel.VoiceChannel, error)
	CreateCategory(ctx context.Context, name string) (channel.Category, error)
	CreateRole(ctx context.Context, name string) (role.Role, error)
	UploadEmoji(ctx context.Context, spec EmojiSpec) (Emoji, error)
	BannedUsers(ctx context.Context) ([]user.User, error)
	Users(ctx context.Context) ([]user.User, error)
	Channels(ctx context.Context) ([]channel.Channel, error)
	Emojis(ctx context.Context) ([]Emoji, error)
}

// Operation names one method of Operations.
type Operation string

const (
	OpSetName            Operation = "SetName"
	OpBan                Operation = "Ban"
	OpUnban              Operation = "Unban"
	OpKick               Operation = "Kick"
	OpCreateTextChannel  Operation = "CreateTextChannel"
	OpCreateVoiceChannel Operation = "CreateVoiceChannel"
	OpCreateCategory     Operation = "CreateCategory"
	OpCreateRole         Operation = "CreateRole"
	OpUploadEmoji        Operation = "UploadEmoji"
)

var requiredPermissions = map[Operation]domain.Permission{
	OpSetName:            domain.PermOperator,
	OpBan:                domain.PermBan,
	OpUnban:              domain.PermBan,
	OpKick:               domain.PermKick,
	OpCreateTextChannel:  domain.PermChannelManage,
	OpCreateVoiceChannel: domain.PermChannelManage,
	OpCreateCategory:     domain.PermChannelManage,
	OpCreateRole:         domain.PermRoleManage,
	OpUploadEmoji:        domain.PermEmojiManage,
}

// RequiredPermission returns the permission op needs; false means any member
// may perform it.
func RequiredPermission(op Operation) (domain.Permission, bool) {
	p, ok := requiredPermissions[op]
	return p, ok
}

// Allowed reports whether a member holding perms may perform op.
func Allowed(op Operation, perms domain.Permission) bool {
	need, ok := RequiredPermission(op)
	return !ok || perms.Has(need)
}

// ---------------------------------------------------------------------------
// Operation inputs
// ---------------------------------------------------------------------------

// VoiceChannelSpec describes a voice channel to create.
type VoiceChannelSpec struct {
	Name    string
	Parent  channel.Category
	Size    int
	Quality int
}

// Validate enforces the platform limits.
func (s VoiceChannelSpec) Validate() error {
	if s.Name == "" {
		return ErrEmptyName
	}
	if s.Size < 1 || s.Size > 99 {
		return ErrVoiceSize
	}
	if s.Quality < 1 || s.Quality > 3 {
		return ErrVoiceQuality
	}
	return nil
}

// MaxEmojiBytes is the upload limit for custom emojis.
const MaxEmojiBytes = 256 << 10

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// EmojiSpec is an emoji upload. An empty Name lets the platform pick one.
type EmojiSpec struct {
	Name string
	PNG  []byte
}

// Validate checks the image is a PNG within MaxEmojiBytes.
func (s EmojiSpec) Validate() error {
	if len(s.PNG) > MaxEmojiBytes {
		return ErrEmojiTooLarge
	}
	if len(s.PNG) < len(pngMagic) || string(s.PNG[:len(pngMagic)]) != string(pngMagic) {
		return ErrEmojiNotPNG
	}
	return nil
}

// ---------------------------------------------------------------------------
// Snapshot
// ---------------------------------------------------------------------------

// Snapshot is an immutable Guild.
type Snapshot struct {
	GuildID     string     `json:"id"`
	GuildName   string     `json:"name"`
	Master      string     `json:"master_id"`
	Icon        string     `json:"icon,omitempty"`
	Region      string     `json:"region,omitempty"`
	Public      bool       `json:"enable_open"`
	Notify      NotifyType `json:"notify_type"`
	Users       int        `json:"user_count"`
	OnlineUsers int        `json:"online_count"`
}

func (s Snapshot) ID() string             { return s.GuildID }
func (s Snapshot) Name() string           { return s.GuildName }
func (s Snapshot) MasterID() string       { return s.Master }
func (s Snapshot) AvatarURL() string      { return s.Icon }
func (s Snapshot) VoiceRegion() string    { return s.Region }
func (s Snapshot) IsPublic() bool         { return s.Public }
func (s Snapshot) NotifyType() NotifyType { return s.Notify }
func (s Snapshot) UserCount() int         { return s.Users }
func (s Snapshot) OnlineUserCount() int   { return s.OnlineUsers }

var _ Guild = Snapshot{}

// ---------------------------------------------------------------------------
// Domain errors
// ---------------------------------------------------------------------------

// GuildError is a typed error for the guild domain.
type GuildError string

func (e GuildError) Error() string { return string(e) }

const (
	ErrEmptyName     GuildError = "name cannot be empty"
	ErrVoiceSize     GuildError = "voice channel size must be between 1 and 99"
	ErrVoiceQuality  GuildError = "voice quality must be 1, 2 or 3"
	ErrEmojiTooLarge GuildError = "emoji exceeds 256 KiB"
	ErrEmojiNotPNG   GuildError = "emoji must be a PNG image"
)
