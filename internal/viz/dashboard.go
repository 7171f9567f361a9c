package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/love-os/teamgrav/internal/gravity"
	"github.com/love-os/teamgrav/internal/team"
)

// Adjustment step per keypress, by field.
const (
	stepLV = 0.5
	stepR  = 0.1
	stepS  = 0.05
)

const (
	modeMembers = iota
	modePairs
)

var memberFields = []string{"L", "V", "R"}

// Dashboard is a live what-if view: nudge a member's L/V/R or a pair's S
// and watch the team metrics re-score on every keypress.
type Dashboard struct {
	name    string
	members []team.Member
	pairs   []team.Pair

	initMembers []team.Member
	initPairs   []team.Pair

	params  gravity.Params
	mode    int
	cursor  int
	field   int
	metrics *gravity.Metrics
	err     error
}

func NewDashboard(snap *team.Snapshot, p gravity.Params) Dashboard {
	d := Dashboard{
		name:        snap.Name(),
		members:     snap.Members(),
		pairs:       snap.Pairs(),
		initMembers: snap.Members(),
		initPairs:   snap.Pairs(),
		params:      p,
	}
	d.rescore()
	return d
}

func (d Dashboard) Init() tea.Cmd { return nil }

func (d Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}

	switch key.String() {
	case "q", "ctrl+c":
		return d, tea.Quit
	case "tab":
		d.mode = (d.mode + 1) % 2
		d.cursor = 0
		d.field = 0
	case "up", "k":
		if d.cursor > 0 {
			d.cursor--
		}
	case "down", "j":
		if d.cursor < d.rows()-1 {
			d.cursor++
		}
	case "left", "h":
		if d.mode == modeMembers && d.field > 0 {
			d.field--
		}
	case "right", "l":
		if d.mode == modeMembers && d.field < len(memberFields)-1 {
			d.field++
		}
	case "+", "=":
		d.adjust(1)
	case "-", "_":
		d.adjust(-1)
	case "r":
		d.members = append([]team.Member(nil), d.initMembers...)
		d.pairs = append([]team.Pair(nil), d.initPairs...)
		d.rescore()
	}
	return d, nil
}

func (d *Dashboard) rows() int {
	if d.mode == modeMembers {
		return len(d.members)
	}
	return len(d.pairs)
}

func (d *Dashboard) adjust(dir float64) {
	if d.mode == modePairs {
		if d.cursor >= len(d.pairs) {
			return
		}
		s := d.pairs[d.cursor].S + dir*stepS
		if s < 0 {
			s = 0
		}
		if s > 1 {
			s = 1
		}
		d.pairs[d.cursor].S = s
		d.rescore()
		return
	}

	if d.cursor >= len(d.members) {
		return
	}
	m := &d.members[d.cursor]
	switch memberFields[d.field] {
	case "L":
		m.L = clampZero(m.L + dir*stepLV)
	case "V":
		m.V = clampZero(m.V + dir*stepLV)
	case "R":
		m.R = clampZero(m.R + dir*stepR)
	}
	d.rescore()
}

func (d *Dashboard) rescore() {
	snap, err := team.New(d.name, d.members, d.pairs)
	if err != nil {
		d.err = err
		return
	}
	m, err := gravity.Analyze(snap, d.params)
	if err != nil {
		d.err = err
		return
	}
	d.metrics = m
	d.err = nil
}

func (d Dashboard) View() string {
	var b strings.Builder

	title := "teamgrav dashboard"
	if d.name != "" {
		title += ": " + d.name
	}
	b.WriteString(headerStyle.Render(title) + "\n\n")

	if d.err != nil {
		b.WriteString(red.Render("error: "+d.err.Error()) + "\n")
		return b.String()
	}
	m := d.metrics

	verdict := stableStyle.Render("STABLE")
	if !m.Stable {
		verdict = unstableStyle.Render("COLLAPSE")
	}
	b.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s   %s %s   %s\n\n",
		dim.Render("K"), valueStyle.Render(fmt.Sprintf("%.2f", m.K)),
		dim.Render("D"), valueStyle.Render(fmt.Sprintf("%.2f", m.D)),
		dim.Render("M"), valueStyle.Render(fmt.Sprintf("%.2f", m.M)),
		dim.Render("TGI"), valueStyle.Render(fmt.Sprintf("%.3f", m.TGI())),
		verdict))

	b.WriteString(cyan.Render("members") + "\n")
	for i, mem := range d.members {
		g, _ := m.GravityOf(mem.ID)
		marker := "  "
		if d.mode == modeMembers && i == d.cursor {
			marker = selectedStyle.Render("▸") + " "
		}
		b.WriteString(fmt.Sprintf("%s%-10s %s %s %s  G=%.2f\n",
			marker, mem.ID,
			d.renderField(i, 0, fmt.Sprintf("L=%.2f", mem.L)),
			d.renderField(i, 1, fmt.Sprintf("V=%.2f", mem.V)),
			d.renderField(i, 2, fmt.Sprintf("R=%.2f", mem.R)),
			g))
	}

	b.WriteString("\n" + cyan.Render("pairs") + "\n")
	for i, p := range d.pairs {
		marker := "  "
		if d.mode == modePairs && i == d.cursor {
			marker = selectedStyle.Render("▸") + " "
		}
		b.WriteString(fmt.Sprintf("%s%s-%s S=%.2f\n", marker, p.I, p.J, p.S))
	}

	b.WriteString(helpStyle.Render("tab: members/pairs  ↑↓: select  ←→: field  +/-: adjust  r: reset  q: quit"))
	return b.String()
}

func (d Dashboard) renderField(row, field int, text string) string {
	if d.mode == modeMembers && row == d.cursor && field == d.field {
		return magenta.Render(text)
	}
	return white.Render(text)
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
