package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/love-os/teamgrav/internal/gravity"
	"github.com/love-os/teamgrav/internal/team"
)

func scoredTeam(t *testing.T) *gravity.Metrics {
	t.Helper()
	snap, err := team.New("core",
		[]team.Member{
			{ID: "a", L: 2, V: 1, R: 0.1},
			{ID: "b", L: 1, V: 1, R: 0.5},
			{ID: "c", L: 1.5, V: 2, R: 0.3},
			{ID: "d", L: 0.5, V: 1, R: 0.2},
		},
		[]team.Pair{
			{I: "a", J: "b", S: 0.8},
			{I: "b", J: "c", S: 0.4},
			{I: "a", J: "c", S: 0.9},
			{I: "c", J: "d", S: 0.6},
			{I: "a", J: "d", S: 0.1},
		},
	)
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	m, err := gravity.Analyze(snap, gravity.Params{Kappa: 0.02, Epsilon: 0.1})
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	return m
}

func TestPruneCoverage(t *testing.T) {
	m := scoredTeam(t)

	g, err := Prune(m, DefaultCoverage)
	if err != nil {
		t.Fatalf("prune failed: %v", err)
	}

	if len(g.Nodes) != len(m.Members) {
		t.Errorf("pruning must keep all nodes: %d vs %d", len(g.Nodes), len(m.Members))
	}
	if len(g.Edges) > len(m.Edges) {
		t.Errorf("pruned set larger than original: %d > %d", len(g.Edges), len(m.Edges))
	}

	cum := 0.0
	for _, e := range g.Edges {
		cum += e.K
	}
	if cum < 0.9*m.K-1e-9 {
		t.Errorf("cumulative k %.6f below 90%% of K=%.6f", cum, m.K)
	}

	// Descending order by k.
	for i := 1; i < len(g.Edges); i++ {
		if g.Edges[i].K > g.Edges[i-1].K {
			t.Errorf("edges not sorted descending at %d", i)
		}
	}

	// Minimality: dropping the last kept edge must fall below coverage.
	if len(g.Edges) > 1 {
		if cum-g.Edges[len(g.Edges)-1].K >= 0.9*m.K {
			t.Error("pruned set is not minimal")
		}
	}
}

func TestPruneDoesNotDisturbTotals(t *testing.T) {
	m := scoredTeam(t)
	before := m.K

	if _, err := Prune(m, DefaultCoverage); err != nil {
		t.Fatalf("prune failed: %v", err)
	}

	// Direct sum over the untouched edge set must still match K.
	sum := 0.0
	for _, e := range m.Edges {
		sum += e.K
	}
	if math.Abs(sum-before) > 1e-12 || m.K != before {
		t.Errorf("pruning mutated the metrics: sum=%.9f K=%.9f", sum, m.K)
	}
}

func TestPruneRejectsNonPositiveK(t *testing.T) {
	snap, err := team.New("flat",
		[]team.Member{{ID: "a", L: 1, V: 1, R: 0.5}, {ID: "b", L: 1, V: 1, R: 0.5}},
		[]team.Pair{{I: "a", J: "b", S: 0}},
	)
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	m, err := gravity.Analyze(snap, gravity.DefaultParams())
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if m.K != 0 {
		t.Fatalf("expected K=0, got %v", m.K)
	}

	if _, err := Prune(m, DefaultCoverage); !errors.Is(err, team.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for K<=0, got %v", err)
	}
}

func TestPruneRejectsBadCoverage(t *testing.T) {
	m := scoredTeam(t)
	for _, c := range []float64{0, -0.5, 1.5} {
		if _, err := Prune(m, c); !errors.Is(err, team.ErrInvalidInput) {
			t.Errorf("coverage %g: expected ErrInvalidInput, got %v", c, err)
		}
	}
}

func TestGraphJSONSchema(t *testing.T) {
	m := scoredTeam(t)
	g, err := Prune(m, DefaultCoverage)
	if err != nil {
		t.Fatalf("prune failed: %v", err)
	}

	var buf bytes.Buffer
	if err := g.WriteJSON(&buf); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var decoded struct {
		Nodes []map[string]any `json:"nodes"`
		Edges []map[string]any `json:"edges"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	for _, key := range []string{"id", "L", "V", "R", "G"} {
		if _, ok := decoded.Nodes[0][key]; !ok {
			t.Errorf("node missing %q field", key)
		}
	}
	for _, key := range []string{"i", "j", "k"} {
		if _, ok := decoded.Edges[0][key]; !ok {
			t.Errorf("edge missing %q field", key)
		}
	}
}
