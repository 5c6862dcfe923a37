package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Taxonomy is the event-type tag that controls which context-formatting and
// prompt rules apply. The set below is closed for dispatch purposes; unknown
// tags fall through to the generic handling everywhere they are consumed.
type Taxonomy string

const (
	TaxonomyGoal         Taxonomy = "Goal"
	TaxonomyCard         Taxonomy = "Card"
	TaxonomySubstitution Taxonomy = "subst"

	TaxonomyPreMatchInjuries   Taxonomy = "pre_match_injuries"
	TaxonomyPreMatchPrediction Taxonomy = "pre_match_prediction"
	TaxonomyPreMatchH2H        Taxonomy = "pre_match_h2h"
	TaxonomyPreMatchTeamStats  Taxonomy = "pre_match_team_stats"
	TaxonomyPreMatchStandings  Taxonomy = "pre_match_standings"

	TaxonomyLiveStatsUpdate Taxonomy = "live_stats_update"
)

const preMatchPrefix = "pre_match"

// IsPreMatch reports whether the taxonomy describes a pre-kickoff brief.
// Pre-match events carry no minute.
func (t Taxonomy) IsPreMatch() bool {
	return strings.HasPrefix(string(t), preMatchPrefix)
}

// IsGoal covers both spellings the import pipeline delivers.
func (t Taxonomy) IsGoal() bool {
	return t == TaxonomyGoal || t == "goal"
}

// PreMatchTaxonomies lists the synthetic taxonomies shown in the pre-match feed.
func PreMatchTaxonomies() []Taxonomy {
	return []Taxonomy{
		TaxonomyPreMatchPrediction,
		TaxonomyPreMatchInjuries,
		TaxonomyPreMatchH2H,
		TaxonomyPreMatchTeamStats,
		TaxonomyPreMatchStandings,
	}
}

// Event is a discrete occurrence during a match (goal, card, substitution).
// Events are written by the import pipeline and never mutated here.
type Event struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	MatchID primitive.ObjectID  `bson:"match_id" json:"match_id"`
	TeamID  *primitive.ObjectID `bson:"team_id,omitempty" json:"team_id,omitempty"`

	Minute    int  `bson:"minute" json:"minute"`
	ExtraTime *int `bson:"extra_time,omitempty" json:"extra_time,omitempty"`

	PlayerName string `bson:"player_name,omitempty" json:"player_name,omitempty"`
	// AssistName is the assist provider, or for substitutions the incoming player.
	AssistName string `bson:"assist_name,omitempty" json:"assist_name,omitempty"`

	Type     Taxonomy `bson:"type" json:"type"`
	Detail   string   `bson:"detail,omitempty" json:"detail,omitempty"`
	Comments string   `bson:"comments,omitempty" json:"comments,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// SyntheticEvent is a generated occurrence (pre-match brief, live-stat
// snapshot) with a free-form context payload whose shape depends on the
// taxonomy.
type SyntheticEvent struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	MatchID primitive.ObjectID  `bson:"match_id" json:"match_id"`
	TeamID  *primitive.ObjectID `bson:"team_id,omitempty" json:"team_id,omitempty"`

	EventType   Taxonomy               `bson:"event_type" json:"event_type"`
	Severity    string                 `bson:"severity,omitempty" json:"severity,omitempty"`
	ContextData map[string]interface{} `bson:"context_data,omitempty" json:"context_data,omitempty"`

	// Minute is nil for pre-match taxonomies.
	Minute *int `bson:"minute,omitempty" json:"minute,omitempty"`

	AutoGenerated bool   `bson:"auto_generated" json:"auto_generated"`
	TickerText    string `bson:"ticker_text,omitempty" json:"ticker_text,omitempty"`
	TickerStyle   string `bson:"ticker_style,omitempty" json:"ticker_style,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
