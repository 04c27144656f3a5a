package draw

import "slices"

// Verify checks every structural invariant of a draw and returns a
// validation error describing the first violation:
//   - four groups of nine non-empty, distinct entrants
//   - 36 intra-group and 108 cross-group matches
//   - no entrant plays itself, no pair meets twice
//   - every entrant plays exactly 8 matches
//   - each match's sides belong to the groups it is labelled with
func (r *Result) Verify() error {
	owner := make(map[Entrant]string, EntrantCount)
	for i, g := range r.groups {
		if g.Label != GroupLabels[i] {
			return newInvariantError("group %d labelled %q, want %q", i, g.Label, GroupLabels[i])
		}
		for pos, e := range g.Entrants {
			if e == "" {
				return newInvariantError("group %s position %d is empty", g.Label, pos)
			}
			if prev, dup := owner[e]; dup {
				return newInvariantError("entrant %q drawn into groups %s and %s", e, prev, g.Label)
			}
			owner[e] = g.Label
		}
	}

	if len(r.matches) != MatchCount {
		return newInvariantError("expected %d matches, got %d", MatchCount, len(r.matches))
	}

	pairs := make(map[pairKey]int, MatchCount)
	played := make(map[Entrant]int, EntrantCount)
	kinds := make(map[MatchKind]int, 2)
	for i, m := range r.matches {
		if m.Side1 == m.Side2 {
			return newInvariantError("match %d pairs %q with itself", i, m.Side1)
		}
		if prev, dup := pairs[m.key()]; dup {
			return newInvariantError("match %d repeats match %d (%s)", i, prev, m)
		}
		pairs[m.key()] = i
		if err := r.checkMatchGroups(i, m, owner); err != nil {
			return err
		}
		played[m.Side1]++
		played[m.Side2]++
		kinds[m.Kind]++
	}

	if kinds[Intra] != IntraMatchCount || kinds[Cross] != CrossMatchCount {
		return newInvariantError("expected %d intra and %d cross matches, got %d and %d",
			IntraMatchCount, CrossMatchCount, kinds[Intra], kinds[Cross])
	}
	for e := range owner {
		if played[e] != MatchesPerEntrant {
			return newInvariantError("entrant %q plays %d matches, want %d", e, played[e], MatchesPerEntrant)
		}
	}
	return nil
}

func (r *Result) checkMatchGroups(i int, m Match, owner map[Entrant]string) error {
	g1, ok1 := owner[m.Side1]
	g2, ok2 := owner[m.Side2]
	if !ok1 || !ok2 {
		return newInvariantError("match %d (%s) names an entrant outside the draw", i, m)
	}

	switch m.Kind {
	case Intra:
		if g1 != g2 || m.Groups != g1 {
			return newInvariantError("intra match %d (%s) spans groups %s and %s", i, m, g1, g2)
		}
	case Cross:
		if g1 == g2 || (m.Groups != g1+g2 && m.Groups != g2+g1) {
			return newInvariantError("cross match %d (%s) labelled %q joins groups %s and %s", i, m, m.Groups, g1, g2)
		}
	default:
		return newInvariantError("match %d has unknown kind %q", i, m.Kind)
	}
	return nil
}

// VerifyEntrants checks that the draw covers exactly the given entrants:
// each one drawn once, nothing missing, nothing extra.
func (r *Result) VerifyEntrants(entrants []Entrant) error {
	want := slices.Clone(entrants)
	slices.Sort(want)

	got := make([]Entrant, 0, EntrantCount)
	for _, g := range r.groups {
		got = append(got, g.Entrants[:]...)
	}
	slices.Sort(got)

	if !slices.Equal(want, got) {
		return newInvariantError("drawn entrants do not match the entrant list (%d listed, %d drawn)", len(want), len(got))
	}
	return nil
}
