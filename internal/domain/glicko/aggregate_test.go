package glicko_test

import (
	"math"
	"testing"

	glicko "github.com/okian/scrim/internal/domain/glicko"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAggregateTeam(t *testing.T) {
	Convey("Given default parameters", t, func() {
		p := glicko.DefaultParams()

		Convey("When aggregating an empty team", func() {
			stats := glicko.AggregateTeam(nil)

			Convey("Then the zero value is returned by convention", func() {
				So(stats.Mu, ShouldEqual, 0)
				So(stats.Phi, ShouldEqual, 0)
				So(stats.Size, ShouldEqual, 0)
			})
		})

		Convey("When aggregating a single-player team", func() {
			r := glicko.NewRating(1600, 150, 0.06, p)
			stats := glicko.AggregateTeam([]glicko.Rating{r})

			Convey("Then the mean equals the player's mu", func() {
				So(stats.Mu, ShouldAlmostEqual, r.Mu(), 1e-12)
			})

			Convey("And phi equals the player's phi (n=1 denominator)", func() {
				So(stats.Phi, ShouldAlmostEqual, r.Phi(), 1e-12)
			})
		})

		Convey("When aggregating a team of four equals", func() {
			r := glicko.NewRating(1500, 200, 0.06, p)
			team := []glicko.Rating{r, r, r, r}
			stats := glicko.AggregateTeam(team)

			Convey("Then the mean is unchanged", func() {
				So(stats.Mu, ShouldAlmostEqual, r.Mu(), 1e-12)
				So(stats.Size, ShouldEqual, 4)
			})

			Convey("And the composite deviation shrinks with team size", func() {
				// sqrt(4*phi^2/16) = phi/2 under the n^2 denominator.
				So(stats.Phi, ShouldAlmostEqual, r.Phi()/2.0, 1e-12)
			})
		})

		Convey("When aggregating a mixed team", func() {
			a := glicko.NewRating(1400, 100, 0.06, p)
			b := glicko.NewRating(1800, 300, 0.06, p)
			stats := glicko.AggregateTeam([]glicko.Rating{a, b})

			Convey("Then mu is the arithmetic mean", func() {
				So(stats.Mu, ShouldAlmostEqual, (a.Mu()+b.Mu())/2.0, 1e-12)
			})

			Convey("And phi follows sqrt(sum(phi^2)/n^2)", func() {
				want := math.Sqrt((a.Phi()*a.Phi() + b.Phi()*b.Phi()) / 4.0)
				So(stats.Phi, ShouldAlmostEqual, want, 1e-12)
			})

			Convey("And a larger team reads as a more certain opponent than RMS", func() {
				rms := math.Sqrt((a.Phi()*a.Phi() + b.Phi()*b.Phi()) / 2.0)
				So(stats.Phi, ShouldBeLessThan, rms)
			})
		})
	})
}
