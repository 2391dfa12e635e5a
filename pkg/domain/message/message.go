// Package message defines channel and private messages.
package message

import (
	"time"

	"github.com/kookbot/kook-go/pkg/domain/user"
)

// Message is a message sent by a user.
type Message interface {
	ID() string
	Sender() user.User
	// Content is the raw text or, for card messages, the card JSON.
	Content() string
	SentAt() time.Time
}

// PrivateMessage is a direct message between the bot and one user.
type PrivateMessage interface {
	Message
	// ChatCode identifies the private conversation.
	ChatCode() string
}

// Snapshot is an immutable Message and PrivateMessage.
type Snapshot struct {
	MsgID  string        `json:"msg_id"`
	Author user.Snapshot `json:"author"`
	Text   string        `json:"content"`
	Sent   time.Time     `json:"msg_timestamp"`
	Code   string        `json:"code,omitempty"`
}

func (s Snapshot) ID() string        { return s.MsgID }
func (s Snapshot) Sender() user.User { return s.Author }
func (s Snapshot) Content() string   { return s.Text }
func (s Snapshot) SentAt() time.Time { return s.Sent }
func (s Snapshot) ChatCode() string  { return s.Code }

var _ PrivateMessage = Snapshot{}
