package team

import "fmt"

// New validates members and pairs and builds an immutable Snapshot.
//
// Rejected inputs (all wrapping ErrInvalidInput): empty or duplicate member
// ids, negative L/V/R, S outside [0,1], pairs referencing unknown members,
// self-pairs, and duplicate pairs (the pair set is unordered, so (a,b) and
// (b,a) collide).
func New(name string, members []Member, pairs []Pair) (*Snapshot, error) {
	index := make(map[string]int, len(members))
	for i, m := range members {
		if m.ID == "" {
			return nil, fmt.Errorf("%w: member %d has empty id", ErrInvalidInput, i)
		}
		if _, dup := index[m.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate member id %q", ErrInvalidInput, m.ID)
		}
		if m.L < 0 || m.V < 0 || m.R < 0 {
			return nil, fmt.Errorf("%w: member %q has negative parameter (L=%g V=%g R=%g)",
				ErrInvalidInput, m.ID, m.L, m.V, m.R)
		}
		index[m.ID] = i
	}

	seen := make(map[[2]string]bool, len(pairs))
	for _, p := range pairs {
		if _, ok := index[p.I]; !ok {
			return nil, fmt.Errorf("%w: pair (%s,%s) references unknown member %q",
				ErrInvalidInput, p.I, p.J, p.I)
		}
		if _, ok := index[p.J]; !ok {
			return nil, fmt.Errorf("%w: pair (%s,%s) references unknown member %q",
				ErrInvalidInput, p.I, p.J, p.J)
		}
		if p.I == p.J {
			return nil, fmt.Errorf("%w: self-pair on member %q", ErrInvalidInput, p.I)
		}
		if p.S < 0 || p.S > 1 {
			return nil, fmt.Errorf("%w: pair (%s,%s) resonance %g outside [0,1]",
				ErrInvalidInput, p.I, p.J, p.S)
		}
		key := pairKey(p.I, p.J)
		if seen[key] {
			return nil, fmt.Errorf("%w: duplicate pair (%s,%s)", ErrInvalidInput, p.I, p.J)
		}
		seen[key] = true
	}

	s := &Snapshot{
		name:    name,
		members: make([]Member, len(members)),
		pairs:   make([]Pair, len(pairs)),
		index:   index,
	}
	copy(s.members, members)
	copy(s.pairs, pairs)
	return s, nil
}

// WithoutMember returns a new snapshot with one member and all of its
// incident pairs removed. Removing an unknown id is an error.
func (s *Snapshot) WithoutMember(id string) (*Snapshot, error) {
	if _, ok := s.index[id]; !ok {
		return nil, fmt.Errorf("%w: unknown member %q", ErrInvalidInput, id)
	}
	members := make([]Member, 0, len(s.members)-1)
	for _, m := range s.members {
		if m.ID != id {
			members = append(members, m)
		}
	}
	pairs := make([]Pair, 0, len(s.pairs))
	for _, p := range s.pairs {
		if p.I != id && p.J != id {
			pairs = append(pairs, p)
		}
	}
	return New(s.name, members, pairs)
}

func pairKey(i, j string) [2]string {
	if j < i {
		i, j = j, i
	}
	return [2]string{i, j}
}
