package glicko

// MatchPlayer pairs a player's pre-match rating with their raw performance
// score for the match.
type MatchPlayer struct {
	Rating    Rating
	PerfScore float64
}

// Match is one team-vs-team contest. Both teams must be non-empty and the
// outcome scores must be complementary (1/0, 0/1) or a draw (0.5/0.5).
type Match struct {
	TeamA  []MatchPlayer
	TeamB  []MatchPlayer
	ScoreA float64
	ScoreB float64
}

// Outcome score constants.
const (
	WinScore  = 1.0
	LossScore = 0.0
	DrawScore = 0.5
)

// MatchOutcome holds the post-match ratings for every player, ordered as the
// input teams. The input Match is never mutated; all players are updated
// against pre-match aggregates.
type MatchOutcome struct {
	TeamA []Rating
	TeamB []Rating
}

// ProcessMatch runs one full team-vs-team rating update: both teams are
// aggregated into virtual opponents, performance z-scores are computed
// team-relative, and every player receives a single-opponent Glicko-2 update
// with performance scaling. The recent performance index of each rating is
// advanced with the match's clipped z-score.
func ProcessMatch(match Match, p Params) MatchOutcome {
	ratingsA, scoresA := splitTeam(match.TeamA)
	ratingsB, scoresB := splitTeam(match.TeamB)

	statsA := AggregateTeam(ratingsA)
	statsB := AggregateTeam(ratingsB)

	samplesA := NormalizeTeamPerformance(scoresA, p)
	samplesB := NormalizeTeamPerformance(scoresB, p)

	out := MatchOutcome{
		TeamA: make([]Rating, len(ratingsA)),
		TeamB: make([]Rating, len(ratingsB)),
	}

	for i, r := range ratingsA {
		updated := updatePlayer(r, statsB, match.ScoreA, samplesA[i].ZScore, p)
		out.TeamA[i] = updated.UpdateRecentPerformance(samplesA[i].ZScore, p)
	}
	for i, r := range ratingsB {
		updated := updatePlayer(r, statsA, match.ScoreB, samplesB[i].ZScore, p)
		out.TeamB[i] = updated.UpdateRecentPerformance(samplesB[i].ZScore, p)
	}

	return out
}

func splitTeam(team []MatchPlayer) ([]Rating, []float64) {
	ratings := make([]Rating, len(team))
	scores := make([]float64, len(team))
	for i, mp := range team {
		ratings[i] = mp.Rating
		scores[i] = mp.PerfScore
	}
	return ratings, scores
}
