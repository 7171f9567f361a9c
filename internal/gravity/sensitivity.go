package gravity

import "sort"

// Sensitivity test names, used to label the dominating risk category.
const (
	TestResistance = "resistance"
	TestExit       = "exit"
	TestEdge       = "edge"
	TestNone       = "none"
)

// RSensitivity is the closed-form marginal dM/dR for one member:
// raising friction by one unit moves the margin by roughly this much.
type RSensitivity struct {
	ID   string
	DMDR float64
}

// ExitSensitivity is M(without member) - M: the margin change if the
// member leaves and takes all incident edges with them.
type ExitSensitivity struct {
	ID    string
	Delta float64
}

// EdgeSensitivity is the margin change when one pair's binding
// contribution is zeroed.
type EdgeSensitivity struct {
	I, J  string
	Delta float64
}

// Risk identifies the single worst contributor to the margin across
// the three tests. For member risks ID is set; for edge risks I and J.
type Risk struct {
	Test   string
	ID     string
	I, J   string
	Impact float64
}

// Sensitivities is the Layer-2 analysis bundle.
type Sensitivities struct {
	R    []RSensitivity    // ranked by |dM/dR|, largest first
	Exit []ExitSensitivity // ranked by delta, most negative first
	Edge []EdgeSensitivity // ranked by delta, most negative first
	Top  Risk
}

// Sensitivity derives the three marginal analyses from scored metrics.
//
// The R test uses the closed form dG/dR = -L^2 V/(R+eps)^2 propagated
// through each member's incident edges; the exit and edge tests are exact
// recomputations expressed incrementally (K and D are plain sums, so
// removing a member or zeroing an edge subtracts its terms).
func Sensitivity(m *Metrics) *Sensitivities {
	s := &Sensitivities{
		R:    make([]RSensitivity, 0, len(m.Members)),
		Exit: make([]ExitSensitivity, 0, len(m.Members)),
		Edge: make([]EdgeSensitivity, 0, len(m.Edges)),
	}

	gByID := make(map[string]float64, len(m.Members))
	for i, mem := range m.Members {
		gByID[mem.ID] = m.G[i]
	}

	// Per-member incident sums over the edge set.
	interaction := make(map[string]float64, len(m.Members)) // sum kappa*S*G_other
	bindK := make(map[string]float64, len(m.Members))       // sum incident k
	misalign := make(map[string]float64, len(m.Members))    // sum incident (1-S)
	for _, e := range m.Edges {
		interaction[e.I] += m.Params.Kappa * e.S * gByID[e.J]
		interaction[e.J] += m.Params.Kappa * e.S * gByID[e.I]
		bindK[e.I] += e.K
		bindK[e.J] += e.K
		misalign[e.I] += 1 - e.S
		misalign[e.J] += 1 - e.S
	}

	for _, mem := range m.Members {
		denom := mem.R + m.Params.Epsilon
		dGdR := -(mem.L * mem.L * mem.V) / (denom * denom)
		s.R = append(s.R, RSensitivity{
			ID:   mem.ID,
			DMDR: interaction[mem.ID]*dGdR - 1,
		})
		s.Exit = append(s.Exit, ExitSensitivity{
			ID:    mem.ID,
			Delta: -bindK[mem.ID] + mem.R + misalign[mem.ID],
		})
	}
	for _, e := range m.Edges {
		s.Edge = append(s.Edge, EdgeSensitivity{I: e.I, J: e.J, Delta: -e.K})
	}

	sort.SliceStable(s.R, func(a, b int) bool {
		av, bv := abs(s.R[a].DMDR), abs(s.R[b].DMDR)
		if av != bv {
			return av > bv
		}
		return s.R[a].ID < s.R[b].ID
	})
	sort.SliceStable(s.Exit, func(a, b int) bool {
		if s.Exit[a].Delta != s.Exit[b].Delta {
			return s.Exit[a].Delta < s.Exit[b].Delta
		}
		return s.Exit[a].ID < s.Exit[b].ID
	})
	sort.SliceStable(s.Edge, func(a, b int) bool {
		if s.Edge[a].Delta != s.Edge[b].Delta {
			return s.Edge[a].Delta < s.Edge[b].Delta
		}
		return edgeLess(s.Edge[a], s.Edge[b])
	})

	s.Top = topRisk(s)
	return s
}

// topRisk picks the largest negative contribution across the three tests.
// Ties resolve member risks before edge risks, then by id / edge tuple,
// so the result is deterministic for identical inputs.
func topRisk(s *Sensitivities) Risk {
	top := Risk{Test: TestNone}
	consider := func(c Risk) {
		if c.Impact >= 0 {
			return
		}
		if top.Test == TestNone || c.Impact < top.Impact {
			top = c
			return
		}
		if c.Impact == top.Impact && riskLess(c, top) {
			top = c
		}
	}

	for _, r := range s.R {
		consider(Risk{Test: TestResistance, ID: r.ID, Impact: r.DMDR})
	}
	for _, e := range s.Exit {
		consider(Risk{Test: TestExit, ID: e.ID, Impact: e.Delta})
	}
	for _, e := range s.Edge {
		consider(Risk{Test: TestEdge, I: e.I, J: e.J, Impact: e.Delta})
	}
	return top
}

func riskLess(a, b Risk) bool {
	aMember := a.ID != ""
	bMember := b.ID != ""
	if aMember != bMember {
		return aMember
	}
	if aMember {
		return a.ID < b.ID
	}
	ai, aj := ordered(a.I, a.J)
	bi, bj := ordered(b.I, b.J)
	if ai != bi {
		return ai < bi
	}
	return aj < bj
}

func edgeLess(a, b EdgeSensitivity) bool {
	ai, aj := ordered(a.I, a.J)
	bi, bj := ordered(b.I, b.J)
	if ai != bi {
		return ai < bi
	}
	return aj < bj
}

func ordered(i, j string) (string, string) {
	if j < i {
		return j, i
	}
	return i, j
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
