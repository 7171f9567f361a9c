package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/love-os/teamgrav/internal/gravity"
)

// GravityProfile plots member gravities in snapshot order.
func GravityProfile(m *gravity.Metrics) string {
	if len(m.G) == 0 {
		return "no members"
	}
	data := make([]float64, len(m.G))
	copy(data, m.G)

	ids := make([]string, len(m.Members))
	for i, mem := range m.Members {
		ids[i] = mem.ID
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(70),
		asciigraph.Caption("gravity per member: "+strings.Join(ids, ", ")),
	)
	return graph
}

// RankedBars renders a horizontal bar per labeled value, scaled to the
// largest magnitude in the set.
func RankedBars(labels []string, values []float64, width int) string {
	if len(labels) == 0 || width <= 0 {
		return ""
	}
	max := 0.0
	for _, v := range values {
		if a := absf(v); a > max {
			max = a
		}
	}
	if max == 0 {
		max = 1
	}

	labelWidth := 0
	for _, l := range labels {
		if len(l) > labelWidth {
			labelWidth = len(l)
		}
	}

	var b strings.Builder
	for i, l := range labels {
		n := int(absf(values[i]) / max * float64(width))
		bar := strings.Repeat("█", n)
		fmt.Fprintf(&b, "%-*s  %10.4f  %s\n", labelWidth, l, values[i], bar)
	}
	return b.String()
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
