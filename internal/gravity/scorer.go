// Package gravity implements the N-body team scoring model: per-member
// gravity, pairwise binding energy, dispersion energy, and the stability
// margin, plus the sensitivity analyses built on top of them.
package gravity

import (
	"fmt"

	"github.com/love-os/teamgrav/internal/team"
)

const (
	// DefaultKappa scales pairwise binding contributions.
	DefaultKappa = 1.0
	// DefaultEpsilon keeps the gravity denominator away from zero.
	DefaultEpsilon = 1e-6
)

// Params are the two model constants. Both must be positive.
type Params struct {
	Kappa   float64 `yaml:"kappa"`
	Epsilon float64 `yaml:"epsilon"`
}

// DefaultParams returns the standard constants (kappa=1, epsilon=1e-6).
func DefaultParams() Params {
	return Params{Kappa: DefaultKappa, Epsilon: DefaultEpsilon}
}

func (p Params) validate() error {
	if p.Kappa <= 0 {
		return fmt.Errorf("%w: kappa must be positive, got %g", team.ErrInvalidInput, p.Kappa)
	}
	if p.Epsilon <= 0 {
		return fmt.Errorf("%w: epsilon must be positive, got %g", team.ErrInvalidInput, p.Epsilon)
	}
	return nil
}

// Edge is one scored resonance pair: k = kappa * Gi * Gj * S.
type Edge struct {
	I, J string
	S    float64
	K    float64
}

// Metrics is the full scoring result for one snapshot.
// Members and G are index-aligned with the snapshot's member order;
// Edges follow the snapshot's pair order.
type Metrics struct {
	Params  Params
	Members []team.Member
	G       []float64
	Edges   []Edge

	K      float64 // binding energy, sum of edge k
	D      float64 // dispersion energy, sum R + sum (1-S)
	M      float64 // stability margin, K - D
	Stable bool    // M > 0
}

// Gravity returns G = L^2 * V / (R + eps) for a single member.
func Gravity(m team.Member, eps float64) float64 {
	return m.L * m.L * m.V / (m.R + eps)
}

// Analyze scores a snapshot. It is a pure function of its inputs:
// the same snapshot and params always produce bit-identical metrics.
func Analyze(snap *team.Snapshot, p Params) (*Metrics, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	members := snap.Members()
	g := make([]float64, len(members))
	for i, m := range members {
		g[i] = Gravity(m, p.Epsilon)
	}

	pairs := snap.Pairs()
	edges := make([]Edge, len(pairs))
	k, d := 0.0, 0.0
	for i, pr := range pairs {
		gi := g[mustIndex(snap, pr.I)]
		gj := g[mustIndex(snap, pr.J)]
		w := p.Kappa * gi * gj * pr.S
		edges[i] = Edge{I: pr.I, J: pr.J, S: pr.S, K: w}
		k += w
		d += 1 - pr.S
	}
	for _, m := range members {
		d += m.R
	}

	margin := k - d
	return &Metrics{
		Params:  p,
		Members: members,
		G:       g,
		Edges:   edges,
		K:       k,
		D:       d,
		M:       margin,
		Stable:  margin > 0,
	}, nil
}

// TGI is the team gravity index K/(K+D), a health score in (0,1) for
// positive energies. It degrades to 0 when K+D is not positive.
func (m *Metrics) TGI() float64 {
	total := m.K + m.D
	if total <= 0 {
		return 0
	}
	return m.K / total
}

// GravityOf returns the computed G for a member id.
func (m *Metrics) GravityOf(id string) (float64, bool) {
	for i, mem := range m.Members {
		if mem.ID == id {
			return m.G[i], true
		}
	}
	return 0, false
}

// mustIndex is safe after snapshot validation: every pair endpoint exists.
func mustIndex(snap *team.Snapshot, id string) int {
	i, ok := snap.Index(id)
	if !ok {
		panic(fmt.Sprintf("gravity: unvalidated member id %q", id))
	}
	return i
}
