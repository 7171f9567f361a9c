package gravity

import (
	"math"
	"testing"

	"github.com/love-os/teamgrav/internal/team"
)

func threeMemberTeam(t *testing.T) *team.Snapshot {
	return mustSnapshot(t,
		[]team.Member{
			{ID: "a", L: 2, V: 1, R: 0.1},
			{ID: "b", L: 1, V: 1, R: 0.5},
			{ID: "c", L: 1.5, V: 2, R: 0.3},
		},
		[]team.Pair{
			{I: "a", J: "b", S: 0.8},
			{I: "b", J: "c", S: 0.4},
			{I: "a", J: "c", S: 0.9},
		},
	)
}

func TestRSensitivityClosedFormMatchesFiniteDifference(t *testing.T) {
	snap := threeMemberTeam(t)
	p := Params{Kappa: 0.5, Epsilon: 0.01}

	base, err := Analyze(snap, p)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	sens := Sensitivity(base)

	const h = 1e-7
	for _, rs := range sens.R {
		members := snap.Members()
		for i := range members {
			if members[i].ID == rs.ID {
				members[i].R += h
			}
		}
		bumped, err := team.New(snap.Name(), members, snap.Pairs())
		if err != nil {
			t.Fatalf("bumped snapshot failed: %v", err)
		}
		m2, err := Analyze(bumped, p)
		if err != nil {
			t.Fatalf("analyze failed: %v", err)
		}

		numeric := (m2.M - base.M) / h
		if math.Abs(numeric-rs.DMDR) > 1e-3*math.Abs(numeric) {
			t.Errorf("%s: closed form %.6f vs finite difference %.6f", rs.ID, rs.DMDR, numeric)
		}
	}
}

func TestRSensitivityRankedByMagnitude(t *testing.T) {
	snap := threeMemberTeam(t)
	m, err := Analyze(snap, DefaultParams())
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	sens := Sensitivity(m)
	for i := 1; i < len(sens.R); i++ {
		if math.Abs(sens.R[i].DMDR) > math.Abs(sens.R[i-1].DMDR) {
			t.Errorf("R ranking not descending by magnitude at %d", i)
		}
	}
}

func TestExitSensitivityMatchesRecompute(t *testing.T) {
	snap := threeMemberTeam(t)
	p := Params{Kappa: 0.02, Epsilon: 0.1}

	base, err := Analyze(snap, p)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	sens := Sensitivity(base)

	for _, ex := range sens.Exit {
		reduced, err := snap.WithoutMember(ex.ID)
		if err != nil {
			t.Fatalf("remove %s failed: %v", ex.ID, err)
		}
		m2, err := Analyze(reduced, p)
		if err != nil {
			t.Fatalf("analyze failed: %v", err)
		}

		want := m2.M - base.M
		if math.Abs(ex.Delta-want) > 1e-9 {
			t.Errorf("%s: incremental exit delta %.9f vs recomputed %.9f", ex.ID, ex.Delta, want)
		}
	}
}

func TestEdgeSensitivityIsNegatedBinding(t *testing.T) {
	snap := threeMemberTeam(t)
	m, err := Analyze(snap, DefaultParams())
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	kByPair := make(map[[2]string]float64)
	for _, e := range m.Edges {
		i, j := e.I, e.J
		if j < i {
			i, j = j, i
		}
		kByPair[[2]string{i, j}] = e.K
	}

	sens := Sensitivity(m)
	if len(sens.Edge) != len(m.Edges) {
		t.Fatalf("expected %d edge sensitivities, got %d", len(m.Edges), len(sens.Edge))
	}
	for _, es := range sens.Edge {
		i, j := es.I, es.J
		if j < i {
			i, j = j, i
		}
		if math.Abs(es.Delta+kByPair[[2]string{i, j}]) > 1e-12 {
			t.Errorf("edge %s-%s: delta %.6f is not -k", es.I, es.J, es.Delta)
		}
	}
}

func TestTopRiskDeterministicTieBreak(t *testing.T) {
	// Symmetric members: identical sensitivities, so ties must resolve
	// by id ascending.
	snap := mustSnapshot(t,
		[]team.Member{
			{ID: "b", L: 1, V: 1, R: 0.5},
			{ID: "a", L: 1, V: 1, R: 0.5},
		},
		[]team.Pair{{I: "b", J: "a", S: 0.5}},
	)

	m, err := Analyze(snap, DefaultParams())
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	first := Sensitivity(m).Top
	for i := 0; i < 5; i++ {
		again := Sensitivity(m).Top
		if again != first {
			t.Fatalf("top risk not deterministic: %+v vs %+v", first, again)
		}
	}
	if first.Test == TestNone {
		t.Fatal("expected a top risk")
	}
	if first.ID != "" && first.ID != "a" {
		t.Errorf("member tie should resolve to id 'a', got %q", first.ID)
	}
}

func TestTopRiskEmptyTeam(t *testing.T) {
	snap := mustSnapshot(t, nil, nil)
	m, err := Analyze(snap, DefaultParams())
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	sens := Sensitivity(m)
	if sens.Top.Test != TestNone {
		t.Errorf("expected no top risk for empty team, got %+v", sens.Top)
	}
}
