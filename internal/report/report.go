// Package report turns scored metrics into the three-layer output:
// an executive summary, the sensitivity rankings, and the pruned
// JSON-serializable gravity graph.
package report

import (
	"fmt"

	"github.com/love-os/teamgrav/internal/gravity"
)

// Summary is Layer 1: the one-screen verdict.
type Summary struct {
	Team           string
	TGI            float64
	K, D, M        float64
	Stable         bool
	TopRisk        gravity.Risk
	Recommendation string
}

// Report bundles all three layers for one analysis pass.
type Report struct {
	Summary       Summary
	Sensitivities *gravity.Sensitivities // Layer 2
	Graph         *Graph                 // Layer 3
}

// Build assembles the full report. Pruning fails on non-positive K,
// which makes the whole report fail: a collapsing team has no meaningful
// top-edge subset to show.
func Build(teamName string, m *gravity.Metrics, coverage float64) (*Report, error) {
	sens := gravity.Sensitivity(m)

	graph, err := Prune(m, coverage)
	if err != nil {
		return nil, err
	}

	return &Report{
		Summary: Summary{
			Team:           teamName,
			TGI:            m.TGI(),
			K:              m.K,
			D:              m.D,
			M:              m.M,
			Stable:         m.Stable,
			TopRisk:        sens.Top,
			Recommendation: recommend(sens.Top),
		},
		Sensitivities: sens,
		Graph:         graph,
	}, nil
}

// recommend derives one action from the dominating sensitivity category.
// Reducing R beats raising L: gravity grows with L squared but collapses
// with 1/(R+eps), so friction removed is worth more than skill added.
func recommend(top gravity.Risk) string {
	switch top.Test {
	case gravity.TestResistance:
		return fmt.Sprintf("reduce %s's resistance: each unit of R removed is worth %.2f margin", top.ID, -top.Impact)
	case gravity.TestExit:
		return fmt.Sprintf("retention risk: losing %s would cost %.2f margin; lower their friction before adding load", top.ID, -top.Impact)
	case gravity.TestEdge:
		return fmt.Sprintf("protect the %s-%s link: it alone carries %.2f of the margin", top.I, top.J, -top.Impact)
	default:
		return "no negative contributor found; focus on raising resonance across existing pairs"
	}
}
