// Package channel defines the Channel context: categories, text channels and
// voice channels inside a guild.
package channel

// ---------------------------------------------------------------------------
// Kind
// ---------------------------------------------------------------------------

// Kind is the platform channel type.
type Kind int

const (
	KindCategory Kind = 0
	KindText     Kind = 1
	KindVoice    Kind = 2
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindCategory:
		return "category"
	case KindText:
		return "text"
	case KindVoice:
		return "voice"
	default:
		return "unknown"
	}
}

// ---------------------------------------------------------------------------
// Entities
// ---------------------------------------------------------------------------

// Channel is any channel of a guild.
type Channel interface {
	ID() string
	Name() string
	GuildID() string
	// ParentID is the enclosing category, empty at top level.
	ParentID() string
	Kind() Kind
}

// Category groups channels.
type Category interface {
	Channel
	// ChannelIDs returns the channels in this group.
	ChannelIDs() []string
}

// TextChannel carries text messages.
type TextChannel interface {
	Channel
	Topic() string
	// SlowMode is the minimum delay between two messages of one user, in seconds.
	SlowMode() int
}

// VoiceChannel carries voice.
type VoiceChannel interface {
	Channel
	// MaxSize is the member limit, 1 to 99.
	MaxSize() int
	// Quality is 1 (smooth), 2 (normal) or 3 (high).
	Quality() int
}

// ---------------------------------------------------------------------------
// Snapshot: immutable value captured with an occurrence
// ---------------------------------------------------------------------------

// Snapshot implements Category, TextChannel and VoiceChannel; which accessors
// are meaningful depends on ChannelKind.
type Snapshot struct {
	ChannelID   string   `json:"id"`
	ChannelName string   `json:"name"`
	Guild       string   `json:"guild_id"`
	Parent      string   `json:"parent_id,omitempty"`
	ChannelKind Kind     `json:"type"`
	Children    []string `json:"children,omitempty"`
	TopicText   string   `json:"topic,omitempty"`
	SlowModeSec int      `json:"slow_mode,omitempty"`
	Limit       int      `json:"limit_amount,omitempty"`
	VoiceLevel  int      `json:"voice_quality,omitempty"`
}

func (s Snapshot) ID() string       { return s.ChannelID }
func (s Snapshot) Name() string     { return s.ChannelName }
func (s Snapshot) GuildID() string  { return s.Guild }
func (s Snapshot) ParentID() string { return s.Parent }
func (s Snapshot) Kind() Kind       { return s.ChannelKind }
func (s Snapshot) Topic() string    { return s.TopicText }
func (s Snapshot) SlowMode() int    { return s.SlowModeSec }
func (s Snapshot) MaxSize() int     { return s.Limit }
func (s Snapshot) Quality() int     { return s.VoiceLevel }

// ChannelIDs returns a copy of the child channel IDs.
func (s Snapshot) ChannelIDs() []string {
	out := make([]string, len(s.Children))
	copy(out, s.Children)
	return out
}

var (
	_ Category     = Snapshot{}
	_ TextChannel  = Snapshot{}
	_ VoiceChannel = Snapshot{}
)

// Validate checks the invariants of a snapshot built by a producer.
func (s Snapshot) Validate() error {
	if s.ChannelID == "" {
		return ErrEmptyID
	}
	switch s.ChannelKind {
	case KindCategory, KindText, KindVoice:
	default:
		return ErrInvalidKind
	}
	if s.ChannelKind == KindCategory && s.Parent != "" {
		return ErrNestedCategory
	}
	return nil
}

// ---------------------------------------------------------------------------
// Domain errors
// ---------------------------------------------------------------------------

// ChannelError is a typed error for the channel domain.
type ChannelError string

func (e ChannelError) Error() string { return string(e) }

const (
	ErrEmptyID        ChannelError = "channel id cannot be empty"
	ErrInvalidKind    ChannelError = "invalid channel kind"
	ErrNestedCategory ChannelError = "a category cannot have a parent"
)
