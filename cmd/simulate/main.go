// Command simulate seeds a synthetic lobby, balances it into two teams, and
// plays a series of matches through the rating engine, printing the rating
// evolution. Useful for eyeballing parameter changes offline.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"

	"github.com/google/uuid"

	"github.com/okian/scrim/internal/domain/balance"
	"github.com/okian/scrim/internal/domain/glicko"
)

func main() {
	var (
		lobbySize = flag.Int("players", 8, "lobby size")
		rounds    = flag.Int("rounds", 10, "matches to simulate")
		seed      = flag.Int64("seed", 42, "rng seed")
	)
	flag.Parse()

	if *lobbySize < 2 {
		fmt.Fprintln(os.Stderr, "need at least 2 players")
		os.Exit(1)
	}

	params := glicko.DefaultParams()
	weights := glicko.DefaultPerfWeights()
	rng := rand.New(rand.NewSource(*seed))

	// Seed a lobby with spread-out ratings and a hidden "true skill" that
	// drives simulated outcomes.
	type simPlayer struct {
		id     string
		rating glicko.Rating
		skill  float64
	}
	players := make([]simPlayer, *lobbySize)
	for i := range players {
		skill := 1200.0 + rng.Float64()*600.0
		players[i] = simPlayer{
			id:     uuid.NewString()[:8],
			rating: glicko.NewDefaultRating(params),
			skill:  skill,
		}
	}

	cfg := balance.NewConfig()

	for round := 1; round <= *rounds; round++ {
		pool := make([]balance.Player, len(players))
		for i, p := range players {
			pool[i] = balance.Player{ID: p.id, Rating: p.rating}
		}
		assignment := balance.Balance(pool, cfg, params)

		byID := make(map[string]*simPlayer, len(players))
		for i := range players {
			byID[players[i].id] = &players[i]
		}

		build := func(ids []string) ([]glicko.MatchPlayer, float64) {
			team := make([]glicko.MatchPlayer, len(ids))
			total := 0.0
			for i, id := range ids {
				p := byID[id]
				kills := int(p.skill/100.0) + rng.Intn(10)
				deaths := rng.Intn(15)
				damage := p.skill + rng.Float64()*1000.0
				team[i] = glicko.MatchPlayer{
					Rating:    p.rating,
					PerfScore: weights.PerfScore(kills, deaths, damage, 0),
				}
				total += p.skill
			}
			return team, total
		}

		teamA, skillA := build(assignment.Team0)
		teamB, skillB := build(assignment.Team1)

		match := glicko.Match{TeamA: teamA, TeamB: teamB}
		// Higher total hidden skill wins, with a little noise.
		if skillA+rng.Float64()*400.0 > skillB+rng.Float64()*400.0 {
			match.ScoreA, match.ScoreB = glicko.WinScore, glicko.LossScore
		} else {
			match.ScoreA, match.ScoreB = glicko.LossScore, glicko.WinScore
		}

		outcome := glicko.ProcessMatch(match, params)
		for i, id := range assignment.Team0 {
			byID[id].rating = outcome.TeamA[i]
		}
		for i, id := range assignment.Team1 {
			byID[id].rating = outcome.TeamB[i]
		}

		fmt.Printf("round %2d  objective=%.2f combinations=%d winner=%s\n",
			round, assignment.Objective, assignment.CombinationsTried,
			map[bool]string{true: "team0", false: "team1"}[match.ScoreA == glicko.WinScore])
	}

	sort.Slice(players, func(i, j int) bool {
		return players[i].rating.Rating(params) > players[j].rating.Rating(params)
	})
	fmt.Println("\nfinal standings:")
	for i, p := range players {
		fmt.Printf("%2d. %s  rating=%7.2f rd=%6.2f vol=%.4f (true skill %.0f)\n",
			i+1, p.id, p.rating.Rating(params), p.rating.RD(params),
			p.rating.Volatility(), p.skill)
	}
}
