package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/okian/scrim/internal/domain/balance"
)

// BalanceHandler handles team balancing requests.
type BalanceHandler struct {
	deps Dependencies
}

// NewBalanceHandler creates a new balance handler.
func NewBalanceHandler(deps Dependencies) *BalanceHandler {
	return &BalanceHandler{deps: deps}
}

// balanceRequest mirrors the request schema for POST /balance.
type balanceRequest struct {
	PlayerIDs []string `json:"player_ids"`

	Lambda                    *float64 `json:"lambda,omitempty"`
	SeparateTopPlayers        *bool    `json:"separate_top_players,omitempty"`
	PutTopPlayerInSmallerTeam *bool    `json:"put_top_player_in_smaller_team,omitempty"`
	MaxCombinations           *int     `json:"max_combinations,omitempty"`
}

func (b balanceRequest) validate() error {
	seen := make(map[string]bool, len(b.PlayerIDs))
	for _, id := range b.PlayerIDs {
		if strings.TrimSpace(id) == "" {
			return errors.New("missing player id")
		}
		if seen[id] {
			return fmt.Errorf("duplicate player id %q", id)
		}
		seen[id] = true
	}
	if b.Lambda != nil && *b.Lambda < 0 {
		return errors.New("lambda must not be negative")
	}
	if b.MaxCombinations != nil && *b.MaxCombinations <= 0 {
		return errors.New("max_combinations must be positive")
	}
	return nil
}

// balanceResponse mirrors the response schema for POST /balance.
type balanceResponse struct {
	Team0 []string `json:"team0"`
	Team1 []string `json:"team1"`

	Objective       float64 `json:"objective"`
	StrengthDiff    float64 `json:"strength_diff"`
	UncertaintyDiff float64 `json:"uncertainty_diff"`

	Team0Strength    float64 `json:"team0_strength"`
	Team1Strength    float64 `json:"team1_strength"`
	Team0Uncertainty float64 `json:"team0_uncertainty"`
	Team1Uncertainty float64 `json:"team1_uncertainty"`

	CombinationsTried int  `json:"combinations_tried"`
	BudgetExhausted   bool `json:"budget_exhausted"`
}

func toBalanceResponse(a balance.Assignment) balanceResponse {
	return balanceResponse{
		Team0:             a.Team0,
		Team1:             a.Team1,
		Objective:         a.Objective,
		StrengthDiff:      a.StrengthDiff,
		UncertaintyDiff:   a.UncertaintyDiff,
		Team0Strength:     a.Team0Strength,
		Team1Strength:     a.Team1Strength,
		Team0Uncertainty:  a.Team0Uncertainty,
		Team1Uncertainty:  a.Team1Uncertainty,
		CombinationsTried: a.CombinationsTried,
		BudgetExhausted:   a.BudgetExhausted,
	}
}

// HandlePostBalance handles POST /balance requests. Balancing is synchronous;
// with fewer than two players the result is the empty assignment.
func (h *BalanceHandler) HandlePostBalance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req balanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	assignment := h.deps.Balance(r.Context(), req.PlayerIDs, BalanceOverrides{
		Lambda:                    req.Lambda,
		SeparateTopPlayers:        req.SeparateTopPlayers,
		PutTopPlayerInSmallerTeam: req.PutTopPlayerInSmallerTeam,
		MaxCombinations:           req.MaxCombinations,
	})
	writeJSON(w, http.StatusOK, toBalanceResponse(assignment))
}
