package draw

// groupPairs lists the cross-group fixtures in output order:
// AB, AC, AD, BC, BD, CD.
var groupPairs = [...][2]int{
	{0, 1},
	{0, 2},
	{0, 3},
	{1, 2},
	{1, 3},
	{2, 3},
}

// partition assigns shuffled[i] to group i/9, position i%9.
func partition(shuffled []Entrant) [GroupCount]Group {
	var groups [GroupCount]Group
	for i, label := range GroupLabels {
		groups[i].Label = label
	}
	for i, e := range shuffled {
		groups[i/GroupSize].Entrants[i%GroupSize] = e
	}
	return groups
}

// intraGroupMatches plays each consecutive triple [x, y, z] as a 3-cycle:
// x-y, z-x, y-z.
func intraGroupMatches(g Group) []Match {
	matches := make([]Match, 0, GroupSize)
	for t := 0; t < GroupSize; t += TripleSize {
		x, y, z := g.Entrants[t], g.Entrants[t+1], g.Entrants[t+2]
		matches = append(matches,
			Match{Side1: x, Side2: y, Kind: Intra, Groups: g.Label},
			Match{Side1: z, Side2: x, Kind: Intra, Groups: g.Label},
			Match{Side1: y, Side2: z, Kind: Intra, Groups: g.Label},
		)
	}
	return matches
}

// crossGroupMatches pairs a[i] with b[i] and b[i+1 mod 9]. The offset is a
// fixed-point-free rotation, so a[i] meets two different members of b and
// each member of b meets two different members of a.
func crossGroupMatches(a, b Group) []Match {
	label := a.Label + b.Label
	matches := make([]Match, 0, 2*GroupSize)
	for i := range GroupSize {
		matches = append(matches,
			Match{Side1: a.Entrants[i], Side2: b.Entrants[i], Kind: Cross, Groups: label},
			Match{Side1: b.Entrants[(i+1)%GroupSize], Side2: a.Entrants[i], Kind: Cross, Groups: label},
		)
	}
	return matches
}

// buildMatches concatenates intra-group matches (A..D) and cross-group
// matches (AB..CD).
func buildMatches(groups [GroupCount]Group) []Match {
	matches := make([]Match, 0, MatchCount)
	for _, g := range groups {
		matches = append(matches, intraGroupMatches(g)...)
	}
	for _, p := range groupPairs {
		matches = append(matches, crossGroupMatches(groups[p[0]], groups[p[1]])...)
	}
	return matches
}
