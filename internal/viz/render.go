package viz

import (
	"fmt"
	"strings"

	"github.com/love-os/teamgrav/internal/gravity"
	"github.com/love-os/teamgrav/internal/report"
)

// RenderSummary formats Layer 1 for the terminal.
func RenderSummary(rep *report.Report) string {
	s := rep.Summary
	var b strings.Builder

	title := "team gravity report"
	if s.Team != "" {
		title = fmt.Sprintf("team gravity report: %s", s.Team)
	}
	b.WriteString(headerStyle.Render(title) + "\n\n")

	verdict := stableStyle.Render("STABLE")
	if !s.Stable {
		verdict = unstableStyle.Render("COLLAPSE")
	}

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("TGI", fmt.Sprintf("%.4f", s.TGI))
	row("binding K", fmt.Sprintf("%.4f", s.K))
	row("dispersion D", fmt.Sprintf("%.4f", s.D))
	row("margin M", fmt.Sprintf("%.4f  %s", s.M, verdict))
	row("top risk", describeRisk(s.TopRisk))
	b.WriteString("\n" + yellow.Render("→ "+s.Recommendation) + "\n")

	return b.String()
}

// RenderSensitivities formats Layer 2 as three ranked bar lists.
func RenderSensitivities(sens *gravity.Sensitivities) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("R-sensitivity (dM/dR)") + "\n")
	labels := make([]string, len(sens.R))
	values := make([]float64, len(sens.R))
	for i, r := range sens.R {
		labels[i], values[i] = r.ID, r.DMDR
	}
	b.WriteString(RankedBars(labels, values, 30) + "\n")

	b.WriteString(headerStyle.Render("exit-sensitivity (margin if removed)") + "\n")
	labels = labels[:0]
	values = values[:0]
	for _, e := range sens.Exit {
		labels = append(labels, e.ID)
		values = append(values, e.Delta)
	}
	b.WriteString(RankedBars(labels, values, 30) + "\n")

	b.WriteString(headerStyle.Render("edge-sensitivity (margin if cut)") + "\n")
	labels = labels[:0]
	values = values[:0]
	for _, e := range sens.Edge {
		labels = append(labels, e.I+"-"+e.J)
		values = append(values, e.Delta)
	}
	b.WriteString(RankedBars(labels, values, 30))

	return b.String()
}

func describeRisk(r gravity.Risk) string {
	switch r.Test {
	case gravity.TestResistance:
		return fmt.Sprintf("%s (resistance, dM/dR=%.2f)", r.ID, r.Impact)
	case gravity.TestExit:
		return fmt.Sprintf("%s (exit, ΔM=%.2f)", r.ID, r.Impact)
	case gravity.TestEdge:
		return fmt.Sprintf("%s-%s (edge, ΔM=%.2f)", r.I, r.J, r.Impact)
	default:
		return "none"
	}
}
