package api

import (
	"net/http"
	"strconv"

	"github.com/okian/scrim/internal/domain/model"
)

// Default leaderboard paging constants.
const defaultLeaderboardLimit = 10

// LeaderboardHandler handles leaderboard reads.
type LeaderboardHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(deps Dependencies, maxLimit int) *LeaderboardHandler {
	if maxLimit <= 0 {
		maxLimit = 100
	}
	return &LeaderboardHandler{deps: deps, maxLimit: maxLimit}
}

type ratingEntryResponse struct {
	Rank            int     `json:"rank"`
	PlayerID        string  `json:"player_id"`
	Rating          float64 `json:"rating"`
	RD              float64 `json:"rd"`
	Volatility      float64 `json:"volatility"`
	EffectiveRating float64 `json:"effective_rating"`
	Matches         int     `json:"matches"`
}

func toEntryResponse(e model.RatingEntry) ratingEntryResponse {
	return ratingEntryResponse{
		Rank:            e.Rank,
		PlayerID:        e.PlayerID,
		Rating:          e.Rating,
		RD:              e.RD,
		Volatility:      e.Volatility,
		EffectiveRating: e.EffectiveRating,
		Matches:         e.Matches,
	}
}

// HandleGetLeaderboard handles GET /leaderboard?limit=N requests.
func (h *LeaderboardHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	limit := defaultLeaderboardLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
		limit = n
	}
	if limit > h.maxLimit {
		limit = h.maxLimit
	}

	entries, err := h.deps.TopN(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", err)
		return
	}

	out := make([]ratingEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = toEntryResponse(e)
	}
	writeJSON(w, http.StatusOK, out)
}
