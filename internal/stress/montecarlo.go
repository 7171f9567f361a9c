// Package stress performs destructive testing of a team configuration:
// Monte Carlo noise tolerance and a small set of worst-case scenarios.
package stress

import (
	"math/rand"
	"sort"

	"github.com/love-os/teamgrav/internal/gravity"
	"github.com/love-os/teamgrav/internal/team"
)

// MonteCarloResult summarizes margin behavior under random perturbation.
type MonteCarloResult struct {
	Iterations          int
	MeanMargin          float64
	MinMargin           float64
	Percentile5         float64
	UnstableProbability float64
}

// MonteCarlo perturbs L, V, R and S with Gaussian noise and re-scores.
// L/V/R are clamped at zero and S to [0,1], so every perturbed snapshot
// stays valid. The rand source is seeded by the caller, which makes a
// stress run reproducible.
func MonteCarlo(snap *team.Snapshot, p gravity.Params, iterations int, noiseScale float64, seed int64) (*MonteCarloResult, error) {
	if iterations <= 0 {
		iterations = 1
	}
	rng := rand.New(rand.NewSource(seed))

	margins := make([]float64, 0, iterations)
	unstable := 0
	sum := 0.0
	min := 0.0

	for it := 0; it < iterations; it++ {
		members := snap.Members()
		for i := range members {
			members[i].L = clampLow(members[i].L+rng.NormFloat64()*noiseScale*2, 0)
			members[i].V = clampLow(members[i].V+rng.NormFloat64()*noiseScale*2, 0)
			members[i].R = clampLow(members[i].R+rng.NormFloat64()*noiseScale*0.5, 0)
		}
		pairs := snap.Pairs()
		for i := range pairs {
			pairs[i].S = clamp(pairs[i].S+rng.NormFloat64()*noiseScale*0.5, 0, 1)
		}

		noisy, err := team.New(snap.Name(), members, pairs)
		if err != nil {
			return nil, err
		}
		m, err := gravity.Analyze(noisy, p)
		if err != nil {
			return nil, err
		}

		margins = append(margins, m.M)
		sum += m.M
		if it == 0 || m.M < min {
			min = m.M
		}
		if !m.Stable {
			unstable++
		}
	}

	sort.Float64s(margins)
	return &MonteCarloResult{
		Iterations:          iterations,
		MeanMargin:          sum / float64(len(margins)),
		MinMargin:           min,
		Percentile5:         margins[len(margins)/20],
		UnstableProbability: float64(unstable) / float64(len(margins)),
	}, nil
}

func clampLow(v, lo float64) float64 {
	if v < lo {
		return lo
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
