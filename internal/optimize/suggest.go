// Package optimize searches for the highest-ROI interventions that
// improve the stability margin: lowering a member's resistance or
// boosting a pair's resonance.
package optimize

import (
	"sort"

	"github.com/love-os/teamgrav/internal/gravity"
)

type MoveKind string

const (
	ReduceResistance MoveKind = "reduce_r"
	BoostResonance   MoveKind = "boost_s"
)

// Move is one candidate intervention of size Step applied to a member
// (ReduceResistance) or a pair (BoostResonance).
type Move struct {
	Kind   MoveKind
	Target string // member id, or first pair endpoint
	Other  string // second pair endpoint for BoostResonance
	Gain   float64
	Cost   float64
	ROI    float64
}

// Costs maps per-unit intervention costs. Missing entries default to 1.
type Costs struct {
	R map[string]float64    // member id -> cost per unit of R reduced
	S map[[2]string]float64 // ordered pair -> cost per unit of S gained
}

// UnitCosts treats every intervention as equally expensive.
func UnitCosts() Costs {
	return Costs{R: map[string]float64{}, S: map[[2]string]float64{}}
}

func (c Costs) rCost(id string) float64 {
	if v, ok := c.R[id]; ok {
		return v
	}
	return 1
}

func (c Costs) sCost(i, j string) float64 {
	if j < i {
		i, j = j, i
	}
	if v, ok := c.S[[2]string{i, j}]; ok {
		return v
	}
	return 1
}

// Suggest ranks all candidate moves by ROI and greedily fills the budget.
//
// Gains come from the marginal analysis: reducing R by step is worth
// -dM/dR * step; raising S by step is worth (kappa*Gi*Gj + 1) * step
// (the binding term plus one unit of misalignment removed). Pairs already
// at full resonance have nothing left to boost and are skipped.
func Suggest(m *gravity.Metrics, costs Costs, budget, step float64) []Move {
	if step <= 0 || budget <= 0 {
		return nil
	}

	sens := gravity.Sensitivity(m)
	moves := make([]Move, 0, len(m.Members)+len(m.Edges))

	for _, r := range sens.R {
		gain := -r.DMDR * step
		cost := costs.rCost(r.ID) * step
		if gain <= 0 || cost <= 0 {
			continue
		}
		moves = append(moves, Move{
			Kind: ReduceResistance, Target: r.ID,
			Gain: gain, Cost: cost, ROI: gain / cost,
		})
	}

	gByID := make(map[string]float64, len(m.Members))
	for i, mem := range m.Members {
		gByID[mem.ID] = m.G[i]
	}
	for _, e := range m.Edges {
		if e.S >= 1 {
			continue
		}
		gain := (m.Params.Kappa*gByID[e.I]*gByID[e.J] + 1) * step
		cost := costs.sCost(e.I, e.J) * step
		if cost <= 0 {
			continue
		}
		moves = append(moves, Move{
			Kind: BoostResonance, Target: e.I, Other: e.J,
			Gain: gain, Cost: cost, ROI: gain / cost,
		})
	}

	sort.SliceStable(moves, func(a, b int) bool {
		if moves[a].ROI != moves[b].ROI {
			return moves[a].ROI > moves[b].ROI
		}
		if moves[a].Target != moves[b].Target {
			return moves[a].Target < moves[b].Target
		}
		return moves[a].Other < moves[b].Other
	})

	var picked []Move
	spent := 0.0
	for _, mv := range moves {
		if spent+mv.Cost > budget {
			continue
		}
		picked = append(picked, mv)
		spent += mv.Cost
	}
	return picked
}
