package stress

import (
	"fmt"

	"github.com/love-os/teamgrav/internal/gravity"
	"github.com/love-os/teamgrav/internal/team"
)

// Spike and break magnitudes from the original failure-mode analysis:
// the strongest edge loses 40% of its resonance, the top node gains 0.6 R.
const (
	edgeBreakFactor = 0.6
	resistanceSpike = 0.6
)

// Scenario is one simulated failure mode.
type Scenario struct {
	Name        string
	Description string
	MarginDrop  float64
	NewMargin   float64
}

// WorstCase runs the three critical failure modes against a snapshot:
// strongest-edge break, resistance spike on the highest-gravity member,
// and key-person exit. Teams with no members or no pairs skip the
// scenarios that need them.
func WorstCase(snap *team.Snapshot, p gravity.Params) ([]Scenario, error) {
	base, err := gravity.Analyze(snap, p)
	if err != nil {
		return nil, err
	}

	var out []Scenario

	if e, ok := strongestEdge(base); ok {
		pairs := snap.Pairs()
		for i := range pairs {
			if samePair(pairs[i], e) {
				pairs[i].S *= edgeBreakFactor
			}
		}
		broken, err := team.New(snap.Name(), snap.Members(), pairs)
		if err != nil {
			return nil, err
		}
		m, err := gravity.Analyze(broken, p)
		if err != nil {
			return nil, err
		}
		out = append(out, Scenario{
			Name:        "edge_break",
			Description: fmt.Sprintf("strongest edge (%s-%s) resonance -40%%", e.I, e.J),
			MarginDrop:  base.M - m.M,
			NewMargin:   m.M,
		})
	}

	if id, ok := topGravityMember(base); ok {
		members := snap.Members()
		for i := range members {
			if members[i].ID == id {
				members[i].R += resistanceSpike
			}
		}
		spiked, err := team.New(snap.Name(), members, snap.Pairs())
		if err != nil {
			return nil, err
		}
		m, err := gravity.Analyze(spiked, p)
		if err != nil {
			return nil, err
		}
		out = append(out, Scenario{
			Name:        "r_spike",
			Description: fmt.Sprintf("top member (%s) resistance +%.1f", id, resistanceSpike),
			MarginDrop:  base.M - m.M,
			NewMargin:   m.M,
		})

		reduced, err := snap.WithoutMember(id)
		if err != nil {
			return nil, err
		}
		m, err = gravity.Analyze(reduced, p)
		if err != nil {
			return nil, err
		}
		out = append(out, Scenario{
			Name:        "node_exit",
			Description: fmt.Sprintf("top member (%s) removed", id),
			MarginDrop:  base.M - m.M,
			NewMargin:   m.M,
		})
	}

	return out, nil
}

func strongestEdge(m *gravity.Metrics) (gravity.Edge, bool) {
	var best gravity.Edge
	found := false
	for _, e := range m.Edges {
		if !found || e.K > best.K {
			best = e
			found = true
		}
	}
	return best, found
}

func topGravityMember(m *gravity.Metrics) (string, bool) {
	id := ""
	best := 0.0
	for i, mem := range m.Members {
		if id == "" || m.G[i] > best {
			id = mem.ID
			best = m.G[i]
		}
	}
	return id, id != ""
}

func samePair(p team.Pair, e gravity.Edge) bool {
	return (p.I == e.I && p.J == e.J) || (p.I == e.J && p.J == e.I)
}
