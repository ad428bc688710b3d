package glicko

import "math"

// updatePlayer runs the single-opponent Glicko-2 step with performance
// scaling: the player is rated against the opposing team's virtual opponent,
// the volatility is converged via the Illinois method, and the resulting
// rating change is scaled by the player's performance relative to teammates.
// The input rating is untouched.
func updatePlayer(player Rating, opp TeamStats, score, zScore float64, p Params) Rating {
	mu := player.mu
	phi := player.phi
	sigma := player.sigma

	g := 1.0 / math.Sqrt(1.0+3.0*opp.Phi*opp.Phi/(math.Pi*math.Pi))
	expected := player.ExpectedScore(opp.Mu, g)

	// v is the total information of the update. expected is a logistic
	// output strictly inside (0,1) for finite inputs, so the denominator
	// stays positive.
	v := 1.0 / (g * g * expected * (1.0 - expected))
	delta := v * g * (score - expected)

	sigmaPrime := solveVolatility(sigma, phi, delta, v, p)

	phiStar := math.Sqrt(phi*phi + sigmaPrime*sigmaPrime)
	phiPrime := 1.0 / math.Sqrt(1.0/(phiStar*phiStar)+1.0/v)

	// Unscaled Glicko-2 mean update, then the sign-aware performance
	// multiplier applied to the change.
	muStar := mu + phiPrime*phiPrime*g*(score-expected)
	deltaMu := muStar - mu
	muPrime := mu + ScalingFactor(zScore, deltaMu, p)*deltaMu

	if p.ClampRatingChange {
		muPrime = clampChange(mu, muPrime, p.MaxRatingChange)
	}

	out := player
	out.mu = muPrime
	out.phi = phiPrime
	out.sigma = sigmaPrime
	return out
}

// solveVolatility converges the new volatility via the Illinois variant of
// regula falsi, per step 5 of the Glicko-2 paper. The bracket [A, B] is
// chosen in closed form when delta^2 > phi^2 + v and otherwise found by
// stepping down in units of tau; the iteration tightens the bracket
// monotonically, halving f(A) when the sign fails to flip, until the bracket
// width drops below the convergence tolerance.
func solveVolatility(sigma, phi, delta, v float64, p Params) float64 {
	deltaSq := delta * delta
	phiSq := phi * phi
	tauSq := p.Tau * p.Tau
	a := math.Log(sigma * sigma)

	f := func(x float64) float64 {
		eX := math.Exp(x)
		num := eX * (deltaSq - phiSq - v - eX)
		den := 2.0 * (phiSq + v + eX) * (phiSq + v + eX)
		return num/den - (x-a)/tauSq
	}

	xA := a
	var xB float64
	if deltaSq > phiSq+v {
		xB = math.Log(deltaSq - phiSq - v)
	} else {
		xB = a - p.Tau
		for f(xB) < 0.0 {
			xB -= p.Tau
		}
	}

	fA := f(xA)
	fB := f(xB)

	for math.Abs(xB-xA) > p.Convergence {
		xC := xA + (xA-xB)*fA/(fB-fA)
		fC := f(xC)

		if fC*fB < 0.0 {
			xA = xB
			fA = fB
		} else {
			fA /= 2.0
		}

		xB = xC
		fB = fC
	}

	return math.Exp(xA / 2.0)
}

// clampChange bounds |muPrime - mu| to maxChange, preserving sign.
func clampChange(mu, muPrime, maxChange float64) float64 {
	deltaMu := muPrime - mu
	if math.Abs(deltaMu) <= maxChange {
		return muPrime
	}
	if deltaMu > 0 {
		return mu + maxChange
	}
	return mu - maxChange
}
