package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okian/scrim/internal/domain/model"
	"github.com/okian/scrim/pkg/metrics"
)

// MatchesHandler handles match submissions.
type MatchesHandler struct {
	deps Dependencies
}

// NewMatchesHandler creates a new matches handler.
func NewMatchesHandler(deps Dependencies) *MatchesHandler {
	return &MatchesHandler{deps: deps}
}

// playerResultRequest mirrors one player line in POST /matches.
type playerResultRequest struct {
	PlayerID  string   `json:"player_id"`
	Kills     int      `json:"kills"`
	Deaths    int      `json:"deaths"`
	Damage    float64  `json:"damage"`
	Objective float64  `json:"objective"`
	PerfScore *float64 `json:"perf_score,omitempty"`
}

// matchRequest mirrors the request schema for POST /matches.
type matchRequest struct {
	MatchID string                `json:"match_id"`
	TeamA   []playerResultRequest `json:"team_a"`
	TeamB   []playerResultRequest `json:"team_b"`
	Outcome string                `json:"outcome"`
	TS      string                `json:"ts"`
}

func (m matchRequest) validate() error {
	switch {
	case len(m.TeamA) == 0:
		return errors.New("team_a must not be empty")
	case len(m.TeamB) == 0:
		return errors.New("team_b must not be empty")
	}
	switch model.Outcome(m.Outcome) {
	case model.OutcomeTeamA, model.OutcomeTeamB, model.OutcomeDraw:
	default:
		return fmt.Errorf("invalid outcome %q; must be team_a, team_b or draw", m.Outcome)
	}
	seen := make(map[string]bool, len(m.TeamA)+len(m.TeamB))
	for _, p := range append(append([]playerResultRequest{}, m.TeamA...), m.TeamB...) {
		if strings.TrimSpace(p.PlayerID) == "" {
			return errors.New("missing player_id")
		}
		if seen[p.PlayerID] {
			return fmt.Errorf("duplicate player_id %q", p.PlayerID)
		}
		seen[p.PlayerID] = true
	}
	if m.TS != "" {
		if _, err := time.Parse(time.RFC3339, m.TS); err != nil {
			return errors.New("invalid ts; must be RFC3339")
		}
	}
	return nil
}

func (m matchRequest) toModel() model.Match {
	id := m.MatchID
	if id == "" {
		id = uuid.NewString()
	}
	ts := time.Now().UTC()
	if m.TS != "" {
		ts, _ = time.Parse(time.RFC3339, m.TS)
	}
	return model.Match{
		MatchID: id,
		TeamA:   toResults(m.TeamA),
		TeamB:   toResults(m.TeamB),
		Outcome: model.Outcome(m.Outcome),
		TS:      ts,
	}
}

func toResults(team []playerResultRequest) []model.PlayerResult {
	out := make([]model.PlayerResult, len(team))
	for i, p := range team {
		out[i] = model.PlayerResult{
			PlayerID:  p.PlayerID,
			Kills:     p.Kills,
			Deaths:    p.Deaths,
			Damage:    p.Damage,
			Objective: p.Objective,
			PerfScore: p.PerfScore,
		}
	}
	return out
}

// HandlePostMatch handles POST /matches requests.
func (h *MatchesHandler) HandlePostMatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.RecordMatchRejected()
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := req.validate(); err != nil {
		metrics.RecordMatchRejected()
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	m := req.toModel()

	// Idempotency: mark seen first, roll back if enqueue fails.
	if h.deps.SeenAndRecord(r.Context(), m.MatchID) {
		metrics.RecordMatchDuplicate()
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", MatchID: m.MatchID, Duplicate: true})
		return
	}
	if ok := h.deps.Enqueue(r.Context(), m); !ok {
		h.deps.Unrecord(r.Context(), m.MatchID)
		metrics.RecordMatchRejected()
		writeError(w, http.StatusTooManyRequests, "backpressure", ErrBackpressure)
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", MatchID: m.MatchID})
}
