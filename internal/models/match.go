package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MatchStatus represents the coarse state of a match.
type MatchStatus string

const (
	MatchScheduled MatchStatus = "scheduled"
	MatchLive      MatchStatus = "live"
	MatchFinished  MatchStatus = "finished"
)

// Team represents a football team.
type Team struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	ExternalID int    `bson:"external_id,omitempty" json:"external_id,omitempty"`
	Name       string `bson:"name" json:"name"`
	ShortName  string `bson:"short_name,omitempty" json:"short_name,omitempty"`
	Country    string `bson:"country,omitempty" json:"country,omitempty"`
	LogoURL    string `bson:"logo_url,omitempty" json:"logo_url,omitempty"`
	Partner    bool   `bson:"partner,omitempty" json:"partner,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Match represents a single fixture.
type Match struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	ExternalID int    `bson:"external_id,omitempty" json:"external_id,omitempty"`
	Round      string `bson:"round,omitempty" json:"round,omitempty"`

	HomeTeamID primitive.ObjectID `bson:"home_team_id" json:"home_team_id"`
	AwayTeamID primitive.ObjectID `bson:"away_team_id" json:"away_team_id"`

	MatchDate time.Time   `bson:"match_date" json:"match_date"`
	Status    MatchStatus `bson:"status" json:"status"`
	ScoreHome int         `bson:"score_home" json:"score_home"`
	ScoreAway int         `bson:"score_away" json:"score_away"`
	Minute    int         `bson:"minute,omitempty" json:"minute,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// MatchContext is the read-only projection of a match consumed for prompt
// construction. It is assembled from the match and its two teams, never
// persisted on its own.
type MatchContext struct {
	HomeTeam  string      `json:"home_team"`
	AwayTeam  string      `json:"away_team"`
	ScoreHome int         `json:"score_home"`
	ScoreAway int         `json:"score_away"`
	Status    MatchStatus `json:"status"`
	Minute    int         `json:"minute"`
}
