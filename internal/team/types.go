// Package team defines the immutable input model for gravity analysis:
// members with their L/V/R parameters and the pairwise resonance set.
package team

// Member is one node of the team graph.
//
//	L — integration/skill ("mass"), enters gravity squared
//	V — capacity/slack, linear factor
//	R — resistance/friction, the gravity denominator and a dispersion term
type Member struct {
	ID string  `yaml:"id" json:"id"`
	L  float64 `yaml:"l" json:"L"`
	V  float64 `yaml:"v" json:"V"`
	R  float64 `yaml:"r" json:"R"`
}

// Pair is an unordered resonance link between two distinct members.
// S is the alignment score in [0,1].
type Pair struct {
	I string  `yaml:"i" json:"i"`
	J string  `yaml:"j" json:"j"`
	S float64 `yaml:"s" json:"s"`
}

// Snapshot is a validated, immutable view of a team at one point in time.
// Construct it with New; a zero Snapshot is empty but usable.
type Snapshot struct {
	name    string
	members []Member
	pairs   []Pair
	index   map[string]int
}

// Name returns the team label carried by the snapshot (may be empty).
func (s *Snapshot) Name() string { return s.name }

// Len returns the number of members.
func (s *Snapshot) Len() int { return len(s.members) }

// Members returns a copy of the member list in construction order.
func (s *Snapshot) Members() []Member {
	out := make([]Member, len(s.members))
	copy(out, s.members)
	return out
}

// Pairs returns a copy of the resonance pairs in construction order.
func (s *Snapshot) Pairs() []Pair {
	out := make([]Pair, len(s.pairs))
	copy(out, s.pairs)
	return out
}

// Index returns the position of a member id, or false if absent.
func (s *Snapshot) Index(id string) (int, bool) {
	i, ok := s.index[id]
	return i, ok
}
