package viz

import (
	"strings"
	"testing"

	"github.com/love-os/teamgrav/internal/gravity"
	"github.com/love-os/teamgrav/internal/team"
)

func TestRankedBars(t *testing.T) {
	out := RankedBars([]string{"a", "bb"}, []float64{-2, 1}, 10)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "a") || !strings.Contains(lines[1], "bb") {
		t.Error("labels missing from output")
	}
	// Largest magnitude fills the full width.
	if strings.Count(lines[0], "█") != 10 {
		t.Errorf("expected full bar for dominant value, got %q", lines[0])
	}
	if strings.Count(lines[1], "█") != 5 {
		t.Errorf("expected half bar, got %q", lines[1])
	}
}

func TestRankedBarsEmpty(t *testing.T) {
	if out := RankedBars(nil, nil, 10); out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
}

func TestGravityProfile(t *testing.T) {
	snap, err := team.New("core",
		[]team.Member{
			{ID: "a", L: 2, V: 1, R: 0.1},
			{ID: "b", L: 1, V: 1, R: 0.5},
		},
		[]team.Pair{{I: "a", J: "b", S: 0.8}})
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	m, err := gravity.Analyze(snap, gravity.DefaultParams())
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	out := GravityProfile(m)
	if !strings.Contains(out, "a, b") {
		t.Errorf("caption should list member ids, got %q", out)
	}
}
