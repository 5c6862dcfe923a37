package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mode describes how a ticker entry came into existence.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeHybrid Mode = "hybrid"
	ModeManual Mode = "manual"
)

// Style is the editorial tone of a generated entry.
type Style string

const (
	StyleNeutral    Style = "neutral"
	StyleEnthusiast Style = "euphorisch"
	StyleCritical   Style = "kritisch"
)

// Status is the publish state of an entry. An earlier schema iteration also
// carried "rejected"; it is no longer supported.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Supported language codes for generated text. The prompt builder itself only
// distinguishes German from everything else, but the boundary validates
// against this closed set.
var SupportedLanguages = map[string]bool{
	"de": true,
	"en": true,
	"es": true,
	"ja": true,
}

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeAuto, ModeHybrid, ModeManual:
		return Mode(s), nil
	}
	return "", fmt.Errorf("invalid mode %q", s)
}

// ParseStyle validates a style string.
func ParseStyle(s string) (Style, error) {
	switch Style(s) {
	case StyleNeutral, StyleEnthusiast, StyleCritical:
		return Style(s), nil
	}
	return "", fmt.Errorf("invalid style %q", s)
}

// ParseLanguage validates a language code.
func ParseLanguage(s string) (string, error) {
	if !SupportedLanguages[s] {
		return "", fmt.Errorf("invalid language %q", s)
	}
	return s, nil
}

// TickerEntry is a short commentary line tied to a match and optionally to the
// source event that produced it. At most one entry may exist per source event;
// the store enforces this with a unique index and the generation service
// treats a repeat request as an idempotent hit.
type TickerEntry struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	MatchID          primitive.ObjectID  `bson:"match_id" json:"match_id"`
	EventID          *primitive.ObjectID `bson:"event_id,omitempty" json:"event_id,omitempty"`
	SyntheticEventID *primitive.ObjectID `bson:"synthetic_event_id,omitempty" json:"synthetic_event_id,omitempty"`

	Minute int    `bson:"minute" json:"minute"`
	Text   string `bson:"text" json:"text"`
	Icon   string `bson:"icon,omitempty" json:"icon,omitempty"`

	Status   Status `bson:"status" json:"status"`
	Mode     Mode   `bson:"mode" json:"mode"`
	Style    Style  `bson:"style,omitempty" json:"style,omitempty"`
	Language string `bson:"language" json:"language"`

	LLMModel   string `bson:"llm_model,omitempty" json:"llm_model,omitempty"`
	PromptUsed string `bson:"prompt_used,omitempty" json:"prompt_used,omitempty"`

	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	PublishedAt *time.Time `bson:"published_at,omitempty" json:"published_at,omitempty"`
}

// NewDraftEntry creates an entry in draft state with no publish timestamp.
// This is the generic create path; auto and hybrid entries start here unless
// the caller explicitly chose the self-publishing path.
func NewDraftEntry(matchID primitive.ObjectID, minute int, text string, mode Mode, style Style, language string) *TickerEntry {
	return &TickerEntry{
		MatchID:   matchID,
		Minute:    minute,
		Text:      text,
		Status:    StatusDraft,
		Mode:      mode,
		Style:     style,
		Language:  language,
		CreatedAt: time.Now().UTC(),
	}
}

// NewPublishedEntry creates an entry that is published at creation time. The
// event-driven generation paths and manual authoring use this path.
func NewPublishedEntry(matchID primitive.ObjectID, minute int, text string, mode Mode, style Style, language string) *TickerEntry {
	now := time.Now().UTC()
	return &TickerEntry{
		MatchID:     matchID,
		Minute:      minute,
		Text:        text,
		Status:      StatusPublished,
		Mode:        mode,
		Style:       style,
		Language:    language,
		CreatedAt:   now,
		PublishedAt: &now,
	}
}

// Publish transitions a draft entry to published. Publishing an already
// published entry is a no-op: the original timestamp is kept.
func (e *TickerEntry) Publish(now time.Time) {
	if e.Status == StatusPublished && e.PublishedAt != nil {
		return
	}
	e.Status = StatusPublished
	e.PublishedAt = &now
}

// Published reports whether the entry is visible in the public ticker.
func (e *TickerEntry) Published() bool {
	return e.Status == StatusPublished
}
