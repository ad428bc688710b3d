package balance_test

import (
	"fmt"
	"testing"

	balance "github.com/okian/scrim/internal/domain/balance"
	glicko "github.com/okian/scrim/internal/domain/glicko"
	. "github.com/smartystreets/goconvey/convey"
)

// poolOf builds a pool with ratings descending from top in fixed steps so the
// id order matches the strength order ("p0" is the strongest).
func poolOf(n int, top, step, rd float64, p glicko.Params) []balance.Player {
	pool := make([]balance.Player, n)
	for i := range pool {
		pool[i] = balance.Player{
			ID:     fmt.Sprintf("p%d", i),
			Rating: glicko.NewRating(top-float64(i)*step, rd, 0.06, p),
		}
	}
	return pool
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func TestBalancePartition(t *testing.T) {
	Convey("Given pools of assorted sizes", t, func() {
		p := glicko.DefaultParams()
		cfg := balance.NewConfig()

		for _, n := range []int{2, 3, 4, 7, 8, 10} {
			n := n
			Convey(fmt.Sprintf("When balancing %d players", n), func() {
				pool := poolOf(n, 1800, 37, 120, p)
				a := balance.Balance(pool, cfg, p)

				Convey("Then the two teams exactly cover the pool", func() {
					So(len(a.Team0)+len(a.Team1), ShouldEqual, n)
					seen := map[string]bool{}
					for _, id := range append(append([]string{}, a.Team0...), a.Team1...) {
						So(seen[id], ShouldBeFalse)
						seen[id] = true
					}
					for _, pl := range pool {
						So(seen[pl.ID], ShouldBeTrue)
					}
				})

				Convey("And team 0 is never the larger side", func() {
					So(len(a.Team0), ShouldEqual, n/2)
					So(len(a.Team1), ShouldEqual, n-n/2)
				})
			})
		}
	})
}

func TestBalanceTooFewPlayers(t *testing.T) {
	Convey("Given fewer than two players", t, func() {
		p := glicko.DefaultParams()
		cfg := balance.NewConfig()

		Convey("When balancing an empty pool", func() {
			a := balance.Balance(nil, cfg, p)

			Convey("Then the assignment is empty", func() {
				So(a.Team0, ShouldBeEmpty)
				So(a.Team1, ShouldBeEmpty)
				So(a.CombinationsTried, ShouldEqual, 0)
			})
		})

		Convey("When balancing a single player", func() {
			a := balance.Balance(poolOf(1, 1500, 0, 100, p), cfg, p)

			Convey("Then the assignment is empty", func() {
				So(a.Team0, ShouldBeEmpty)
				So(a.Team1, ShouldBeEmpty)
			})
		})
	})
}

func TestBalanceTopPairSeparation(t *testing.T) {
	Convey("Given eight players with distinct ratings", t, func() {
		p := glicko.DefaultParams()
		pool := poolOf(8, 1900, 55, 110, p)

		Convey("When top-pair separation is on", func() {
			a := balance.Balance(pool, balance.NewConfig(), p)

			Convey("Then the two strongest land on different teams", func() {
				sameTeam := (contains(a.Team0, "p0") && contains(a.Team0, "p1")) ||
					(contains(a.Team1, "p0") && contains(a.Team1, "p1"))
				So(sameTeam, ShouldBeFalse)
			})
		})

		Convey("When the constraint is disabled and pairing them is clearly best", func() {
			// Two stars far above six equals: the fairest split pairs a star
			// with two weak players against the rest only if allowed.
			cfg := balance.NewConfig(balance.WithSeparateTopPlayers(false))
			a := balance.Balance(pool, cfg, p)

			Convey("Then a full partition is still produced", func() {
				So(len(a.Team0)+len(a.Team1), ShouldEqual, 8)
			})
		})
	})
}

func TestBalanceTopPlayerSeeding(t *testing.T) {
	Convey("Given an odd pool of seven players", t, func() {
		p := glicko.DefaultParams()
		pool := poolOf(7, 1850, 60, 130, p)

		Convey("When seeding the top player into the smaller team", func() {
			a := balance.Balance(pool, balance.NewConfig(), p)

			Convey("Then the strongest player is on the three-player side", func() {
				So(a.Team0, ShouldHaveLength, 3)
				So(contains(a.Team0, "p0"), ShouldBeTrue)
			})
		})

		Convey("When seeding is disabled", func() {
			cfg := balance.NewConfig(balance.WithTopPlayerInSmallerTeam(false))
			a := balance.Balance(pool, cfg, p)

			Convey("Then the split is still a valid 3/4 partition", func() {
				So(a.Team0, ShouldHaveLength, 3)
				So(a.Team1, ShouldHaveLength, 4)
			})
		})
	})
}

func TestBalanceObjective(t *testing.T) {
	Convey("Given four players where a fair split is obvious", t, func() {
		p := glicko.DefaultParams()
		pool := []balance.Player{
			{ID: "a", Rating: glicko.NewRating(1700, 100, 0.06, p)},
			{ID: "b", Rating: glicko.NewRating(1600, 100, 0.06, p)},
			{ID: "c", Rating: glicko.NewRating(1500, 100, 0.06, p)},
			{ID: "d", Rating: glicko.NewRating(1400, 100, 0.06, p)},
		}

		Convey("When balancing without constraints", func() {
			cfg := balance.NewConfig(balance.WithSeparateTopPlayers(false))
			a := balance.Balance(pool, cfg, p)

			Convey("Then the best and worst players share a team", func() {
				sameTeam := (contains(a.Team0, "a") && contains(a.Team0, "d")) ||
					(contains(a.Team1, "a") && contains(a.Team1, "d"))
				So(sameTeam, ShouldBeTrue)
			})

			Convey("And the strength averages match exactly", func() {
				So(a.StrengthDiff, ShouldAlmostEqual, 0, 1e-9)
				So(a.Objective, ShouldAlmostEqual, 0, 1e-9)
			})

			Convey("And the search stayed within budget", func() {
				So(a.BudgetExhausted, ShouldBeFalse)
				So(a.CombinationsTried, ShouldBeGreaterThan, 0)
			})
		})
	})
}

func TestBalanceUncertaintyTerm(t *testing.T) {
	Convey("Given equal ratings but lopsided deviations", t, func() {
		p := glicko.DefaultParams()
		pool := []balance.Player{
			{ID: "a", Rating: glicko.NewRating(1500, 300, 0.06, p)},
			{ID: "b", Rating: glicko.NewRating(1500, 300, 0.06, p)},
			{ID: "c", Rating: glicko.NewRating(1500, 60, 0.06, p)},
			{ID: "d", Rating: glicko.NewRating(1500, 60, 0.06, p)},
		}

		Convey("When the uncertainty term drives the objective", func() {
			cfg := balance.NewConfig(balance.WithSeparateTopPlayers(false))
			a := balance.Balance(pool, cfg, p)

			Convey("Then each team gets one uncertain and one settled player", func() {
				So(contains(a.Team0, "a") && contains(a.Team0, "b"), ShouldBeFalse)
				So(contains(a.Team0, "c") && contains(a.Team0, "d"), ShouldBeFalse)
			})

			Convey("And the per-team uncertainty aggregates match", func() {
				So(a.Team0Uncertainty, ShouldAlmostEqual, a.Team1Uncertainty, 1e-9)
			})
		})
	})
}

func TestBalanceBudget(t *testing.T) {
	Convey("Given a pool far larger than the search budget", t, func() {
		p := glicko.DefaultParams()
		pool := poolOf(12, 1900, 23, 100, p)

		Convey("When the budget only covers a handful of partitions", func() {
			cfg := balance.NewConfig(balance.WithMaxCombinations(5))
			a := balance.Balance(pool, cfg, p)

			Convey("Then the result is flagged best-effort", func() {
				So(a.BudgetExhausted, ShouldBeTrue)
				So(a.CombinationsTried, ShouldEqual, 5)
			})

			Convey("And a complete partition is still returned", func() {
				So(len(a.Team0)+len(a.Team1), ShouldEqual, 12)
			})
		})
	})
}
