package glicko_test

import (
	"math"
	"testing"

	glicko "github.com/okian/scrim/internal/domain/glicko"
	. "github.com/smartystreets/goconvey/convey"
)

// uniformTeam builds n players at rating/rd/vol with an identical perf score.
func uniformTeam(n int, rating, rd, vol, perf float64, p glicko.Params) []glicko.MatchPlayer {
	team := make([]glicko.MatchPlayer, n)
	for i := range team {
		team[i] = glicko.MatchPlayer{
			Rating:    glicko.NewRating(rating, rd, vol, p),
			PerfScore: perf,
		}
	}
	return team
}

func TestProcessMatchSymmetric4v4(t *testing.T) {
	Convey("Given a 4v4 match between identical teams", t, func() {
		p := glicko.DefaultParams()
		match := glicko.Match{
			TeamA:  uniformTeam(4, 1500, 200, 0.06, 30, p),
			TeamB:  uniformTeam(4, 1500, 200, 0.06, 30, p),
			ScoreA: glicko.WinScore,
			ScoreB: glicko.LossScore,
		}

		Convey("When team A wins", func() {
			out := glicko.ProcessMatch(match, p)

			Convey("Then every winner gains the same positive delta", func() {
				first := out.TeamA[0].Rating(p) - 1500
				So(first, ShouldBeGreaterThan, 0)
				for _, r := range out.TeamA {
					So(r.Rating(p)-1500, ShouldAlmostEqual, first, 1e-9)
				}
			})

			Convey("And every loser takes an equal and opposite delta", func() {
				gain := out.TeamA[0].Rating(p) - 1500
				for _, r := range out.TeamB {
					So(r.Rating(p)-1500, ShouldAlmostEqual, -gain, 1e-9)
				}
			})

			Convey("And every player's deviation shrinks below 200", func() {
				for _, r := range append(out.TeamA, out.TeamB...) {
					So(r.RD(p), ShouldBeLessThan, 200)
					So(r.RD(p), ShouldBeGreaterThan, 0)
				}
			})

			Convey("And the inputs are untouched", func() {
				So(match.TeamA[0].Rating.Rating(p), ShouldAlmostEqual, 1500, 1e-9)
			})
		})
	})
}

func TestProcessMatchDraw(t *testing.T) {
	Convey("Given a draw between identical teams", t, func() {
		p := glicko.DefaultParams()
		match := glicko.Match{
			TeamA:  uniformTeam(3, 1500, 200, 0.06, 30, p),
			TeamB:  uniformTeam(3, 1500, 200, 0.06, 30, p),
			ScoreA: glicko.DrawScore,
			ScoreB: glicko.DrawScore,
		}

		Convey("When the match is processed", func() {
			out := glicko.ProcessMatch(match, p)

			Convey("Then rating changes are near zero for every player", func() {
				for _, r := range append(out.TeamA, out.TeamB...) {
					So(r.Rating(p), ShouldAlmostEqual, 1500, 1e-6)
				}
			})
		})
	})
}

func TestProcessMatchWinAlwaysGains(t *testing.T) {
	Convey("Given equal-strength teams with a performance spread", t, func() {
		p := glicko.DefaultParams()

		Convey("When team A wins with spread-out performances", func() {
			match := glicko.Match{
				TeamA:  uniformTeam(4, 1500, 200, 0.06, 0, p),
				TeamB:  uniformTeam(4, 1500, 200, 0.06, 30, p),
				ScoreA: glicko.WinScore,
				ScoreB: glicko.LossScore,
			}
			for i := range match.TeamA {
				match.TeamA[i].PerfScore = float64(10 * (i + 1))
			}

			out := glicko.ProcessMatch(match, p)

			Convey("Then every winner still gains rating", func() {
				for _, r := range out.TeamA {
					So(r.Rating(p), ShouldBeGreaterThan, 1500)
				}
			})

			Convey("And the top performer gains the most", func() {
				So(out.TeamA[3].Rating(p), ShouldBeGreaterThan, out.TeamA[0].Rating(p))
			})

			Convey("And every loser drops rating", func() {
				for _, r := range out.TeamB {
					So(r.Rating(p), ShouldBeLessThan, 1500)
				}
			})
		})
	})
}

func TestProcessMatchUnevenTeams(t *testing.T) {
	Convey("Given a 3v4 match", t, func() {
		p := glicko.DefaultParams()
		match := glicko.Match{
			TeamA:  uniformTeam(3, 1550, 180, 0.06, 25, p),
			TeamB:  uniformTeam(4, 1450, 220, 0.06, 25, p),
			ScoreA: glicko.LossScore,
			ScoreB: glicko.WinScore,
		}

		Convey("When the underdogs win", func() {
			out := glicko.ProcessMatch(match, p)

			Convey("Then winners gain more than a toss-up would grant", func() {
				for _, r := range out.TeamB {
					So(r.Rating(p), ShouldBeGreaterThan, 1450)
				}
				for _, r := range out.TeamA {
					So(r.Rating(p), ShouldBeLessThan, 1550)
				}
			})

			Convey("And team sizes are preserved in the outcome", func() {
				So(out.TeamA, ShouldHaveLength, 3)
				So(out.TeamB, ShouldHaveLength, 4)
			})
		})
	})
}

func TestProcessMatchAdvancesPerfIndex(t *testing.T) {
	Convey("Given a match with a clear top performer", t, func() {
		p := glicko.DefaultParams()
		match := glicko.Match{
			TeamA:  uniformTeam(4, 1500, 200, 0.06, 10, p),
			TeamB:  uniformTeam(4, 1500, 200, 0.06, 20, p),
			ScoreA: glicko.WinScore,
			ScoreB: glicko.LossScore,
		}
		match.TeamA[0].PerfScore = 50

		Convey("When the match is processed", func() {
			out := glicko.ProcessMatch(match, p)

			Convey("Then the top performer's index is positive and teammates' negative", func() {
				So(out.TeamA[0].PerfIndexEMA(), ShouldBeGreaterThan, 0)
				So(out.TeamA[1].PerfIndexEMA(), ShouldBeLessThan, 0)
			})

			Convey("And every player counts one more match", func() {
				for _, r := range append(out.TeamA, out.TeamB...) {
					So(r.PerfGames(), ShouldEqual, 1)
				}
			})
		})
	})
}

func TestVolatilityStaysSane(t *testing.T) {
	Convey("Given a long streak of upsets", t, func() {
		p := glicko.DefaultParams()
		underdog := glicko.NewRating(1200, 100, 0.06, p)
		favorite := glicko.NewRating(1800, 100, 0.06, p)

		Convey("When the underdog keeps winning", func() {
			for i := 0; i < 20; i++ {
				match := glicko.Match{
					TeamA:  []glicko.MatchPlayer{{Rating: underdog, PerfScore: 10}},
					TeamB:  []glicko.MatchPlayer{{Rating: favorite, PerfScore: 10}},
					ScoreA: glicko.WinScore,
					ScoreB: glicko.LossScore,
				}
				out := glicko.ProcessMatch(match, p)
				underdog = out.TeamA[0]
				favorite = out.TeamB[0]
			}

			Convey("Then the solver converged at every step", func() {
				So(math.IsNaN(underdog.Volatility()), ShouldBeFalse)
				So(underdog.Volatility(), ShouldBeGreaterThan, 0)
				So(underdog.Volatility(), ShouldBeLessThan, 0.5)
			})

			Convey("And the underdog overtakes on rating", func() {
				So(underdog.Rating(p), ShouldBeGreaterThan, 1200)
				So(favorite.Rating(p), ShouldBeLessThan, 1800)
			})
		})
	})
}
