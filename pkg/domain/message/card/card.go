// Package card provides the building blocks of card messages: modules,
// cards, and YAML-defined card templates.
package card

import (
	"encoding/json"
	"time"

	"github.com/kookbot/kook-go/pkg/domain"
)

// ---------------------------------------------------------------------------
// Modules
// ---------------------------------------------------------------------------

// Module is one block of a card.
type Module interface {
	// ModuleType is the wire "type" of the module.
	ModuleType() string
	Validate() error
}

// HeaderModule is a title line.
type HeaderModule struct {
	Text string
}

func (HeaderModule) ModuleType() string { return "header" }

func (m HeaderModule) Validate() error {
	if m.Text == "" {
		return ErrEmptyText
	}
	if len([]rune(m.Text)) > 100 {
		return ErrHeaderTooLong
	}
	return nil
}

func (m HeaderModule) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"type": m.ModuleType(),
		"text": map[string]string{"type": "plain-text", "content": m.Text},
	})
}

// SectionModule is a paragraph of KMarkdown.
type SectionModule struct {
	Text string
}

func (SectionModule) ModuleType() string { return "section" }

func (m SectionModule) Validate() error {
	if m.Text == "" {
		return ErrEmptyText
	}
	return nil
}

func (m SectionModule) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"type": m.ModuleType(),
		"text": map[string]string{"type": "kmarkdown", "content": m.Text},
	})
}

// DividerModule is a horizontal rule.
type DividerModule struct{}

func (DividerModule) ModuleType() string { return "divider" }
func (DividerModule) Validate() error    { return nil }

func (m DividerModule) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"type": m.ModuleType()})
}

// CountdownMode selects how a countdown is displayed.
type CountdownMode string

const (
	CountdownDay    CountdownMode = "day"
	CountdownHour   CountdownMode = "hour"
	CountdownSecond CountdownMode = "second"
)

// Value returns the wire value.
func (m CountdownMode) Value() string { return string(m) }

// Valid reports whether m is a known mode.
func (m CountdownMode) Valid() bool {
	switch m {
	case CountdownDay, CountdownHour, CountdownSecond:
		return true
	}
	return false
}

// CountdownModule counts down to EndTime.
type CountdownModule struct {
	Mode      CountdownMode
	StartTime time.Time
	EndTime   time.Time
}

func (CountdownModule) ModuleType() string { return "countdown" }

// Validate requires a known mode and an end after the start. The second
// mode renders progress and therefore needs a start time.
func (m CountdownModule) Validate() error {
	if !m.Mode.Valid() {
		return ErrCountdownMode
	}
	if m.EndTime.IsZero() {
		return ErrCountdownEnd
	}
	if m.Mode == CountdownSecond && m.StartTime.IsZero() {
		return ErrCountdownStart
	}
	if !m.StartTime.IsZero() && !m.EndTime.After(m.StartTime) {
		return ErrCountdownRange
	}
	return nil
}

func (m CountdownModule) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"type":    m.ModuleType(),
		"mode":    m.Mode.Value(),
		"endTime": domain.Millis(m.EndTime),
	}
	if !m.StartTime.IsZero() {
		out["startTime"] = domain.Millis(m.StartTime)
	}
	return json.Marshal(out)
}

// ---------------------------------------------------------------------------
// Card
// ---------------------------------------------------------------------------

// Theme colors the card border.
type Theme string

const (
	ThemePrimary   Theme = "primary"
	ThemeSuccess   Theme = "success"
	ThemeDanger    Theme = "danger"
	ThemeWarning   Theme = "warning"
	ThemeInfo      Theme = "info"
	ThemeSecondary Theme = "secondary"
	ThemeNone      Theme = "none"
)

// Size is the card width.
type Size string

const (
	SizeSmall Size = "sm"
	SizeLarge Size = "lg"
)

// MaxModules is the module limit of one card.
const MaxModules = 50

// Card is an ordered list of modules.
type Card struct {
	Theme   Theme
	Size    Size
	Modules []Module
}

// Validate checks the card and every module.
func (c Card) Validate() error {
	if len(c.Modules) == 0 {
		return ErrNoModules
	}
	if len(c.Modules) > MaxModules {
		return ErrTooManyModules
	}
	for _, m := range c.Modules {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c Card) MarshalJSON() ([]byte, error) {
	theme, size := c.Theme, c.Size
	if theme == "" {
		theme = ThemePrimary
	}
	if size == "" {
		size = SizeLarge
	}
	modules := c.Modules
	if modules == nil {
		modules = []Module{}
	}
	return json.Marshal(map[string]any{
		"type":    "card",
		"theme":   theme,
		"size":    size,
		"modules": modules,
	})
}

// Encode validates cards and returns the message content for a card message.
func Encode(cards ...Card) (string, error) {
	if len(cards) == 0 {
		return "", ErrNoCards
	}
	for _, c := range cards {
		if err := c.Validate(); err != nil {
			return "", err
		}
	}
	data, err := json.Marshal(cards)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ---------------------------------------------------------------------------
// Domain errors
// ---------------------------------------------------------------------------

// CardError is a typed error for card building.
type CardError string

func (e CardError) Error() string { return string(e) }

const (
	ErrEmptyText      CardError = "module text cannot be empty"
	ErrHeaderTooLong  CardError = "header text exceeds 100 characters"
	ErrCountdownMode  CardError = "unknown countdown mode"
	ErrCountdownEnd   CardError = "countdown needs an end time"
	ErrCountdownStart CardError = "second countdown needs a start time"
	ErrCountdownRange CardError = "countdown end must be after start"
	ErrNoModules      CardError = "card has no modules"
	ErrTooManyModules CardError = "card exceeds 50 modules"
	ErrNoCards        CardError = "no cards to encode"
	ErrUnknownModule  CardError = "unknown module type"
)
