// Package model contains domain models passed between layers.
package model

import "time"

// PlayerResult is one player's line in a submitted match: identity plus the
// raw combat stats their performance score derives from. When PerfScore is
// set it is used directly and the stat fields are ignored.
type PlayerResult struct {
	PlayerID  string
	Kills     int
	Deaths    int
	Damage    float64
	Objective float64
	PerfScore *float64
}

// Outcome identifies which side won a match.
type Outcome string

// Match outcomes.
const (
	OutcomeTeamA Outcome = "team_a"
	OutcomeTeamB Outcome = "team_b"
	OutcomeDraw  Outcome = "draw"
)

// Match is a submitted team-vs-team result awaiting rating processing.
type Match struct {
	MatchID string    // unique id for idempotency
	TeamA   []PlayerResult
	TeamB   []PlayerResult
	Outcome Outcome
	TS      time.Time
}

// RatingEntry is the read model for a player's current rating.
type RatingEntry struct {
	Rank            int
	PlayerID        string
	Rating          float64
	RD              float64
	Volatility      float64
	EffectiveRating float64
	Matches         int
}
