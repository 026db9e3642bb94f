package fair

import "math"

type Side string

const (
	Heads Side = "heads"
	Tails Side = "tails"
)

// BustParams configures the crash-multiplier distribution: a Pareto tail
// multiplier = Start * (1-u)^(-Exponent) clamped to [Start, Max]. The mapping
// is monotonic non-decreasing in u, so it stays invertible for audit tooling.
type BustParams struct {
	Start    float64
	Exponent float64
	Max      float64
}

var DefaultBustParams = BustParams{
	Start:    2.0,
	Exponent: 0.5,
	Max:      1000.0,
}

// maxUniform keeps (1-u) away from zero before the pow transform.
const maxUniform = 1 - 1e-12

func CoinSide(u float64) Side {
	if u < 0.5 {
		return Heads
	}

	return Tails
}

func (p BustParams) Multiplier(u float64) float64 {
	if u < 0 {
		u = 0
	}
	if u > maxUniform {
		u = maxUniform
	}

	m := p.Start * math.Pow(1-u, -p.Exponent)

	if m < p.Start {
		m = p.Start
	}
	if m > p.Max {
		m = p.Max
	}

	return m
}

// WinChance links the player-chosen payout multiplier to the probability of
// winning so that expected return per unit wagered equals rtp.
func WinChance(rtp float64, payoutMultiplier float64) float64 {
	if payoutMultiplier <= 0 {
		return 0
	}

	chance := rtp / payoutMultiplier
	if chance > 1 {
		chance = 1
	}

	return chance
}
