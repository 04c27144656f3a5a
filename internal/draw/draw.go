// Package draw partitions 36 entrants into four groups of nine and
// builds the full fixture list between them.
//
// Pairing rules:
//   - Each group is split into three consecutive triples; every triple
//     plays a 3-cycle (x-y, z-x, y-z).
//   - Every pair of groups (AB, AC, AD, BC, BD, CD) plays an aligned round
//     a[i]-b[i] and an offset round b[i+1]-a[i].
//
// Every entrant therefore plays 8 matches (2 intra-group, 6 cross-group)
// and no two entrants meet twice: 36 intra + 108 cross = 144 matches.
package draw

import (
	"fmt"
	"slices"

	"github.com/roach88/draw/internal/canonical"
)

// Draw dimensions. The structure is fixed; none of these are configurable.
const (
	GroupCount   = 4
	GroupSize    = 9
	EntrantCount = GroupCount * GroupSize
	TripleSize   = 3

	// IntraMatchCount is the number of within-group matches in a draw.
	IntraMatchCount = GroupCount * (GroupSize / TripleSize) * TripleSize
	// CrossMatchCount is the number of between-group matches in a draw.
	CrossMatchCount = len(groupPairs) * GroupSize * 2
	// MatchCount is the total fixture count.
	MatchCount = IntraMatchCount + CrossMatchCount
	// MatchesPerEntrant is how many opponents each entrant faces.
	MatchesPerEntrant = 2 + (GroupCount-1)*2
)

// GroupLabels names the groups in draw order.
var GroupLabels = [GroupCount]string{"A", "B", "C", "D"}

// Entrant is an opaque participant label, typically a team name.
type Entrant string

// MatchKind distinguishes within-group from between-group matches.
type MatchKind string

const (
	Intra MatchKind = "intra"
	Cross MatchKind = "cross"
)

// Group is one of the four pots of nine entrants.
type Group struct {
	Label    string
	Entrants [GroupSize]Entrant
}

// Contains reports whether e was drawn into g.
func (g Group) Contains(e Entrant) bool {
	return slices.Contains(g.Entrants[:], e)
}

// Match pairs two entrants. Side order is for display only.
type Match struct {
	Side1 Entrant
	Side2 Entrant
	Kind  MatchKind
	// Groups is the group label ("B") for intra matches or the pair of
	// labels ("AC") for cross matches.
	Groups string
}

func (m Match) String() string {
	return fmt.Sprintf("%s - %s", m.Side1, m.Side2)
}

// Involves reports whether e plays in m.
func (m Match) Involves(e Entrant) bool {
	return m.Side1 == e || m.Side2 == e
}

// pairKey identifies the unordered pair {Side1, Side2}.
type pairKey [2]Entrant

func (m Match) key() pairKey {
	if m.Side1 < m.Side2 {
		return pairKey{m.Side1, m.Side2}
	}
	return pairKey{m.Side2, m.Side1}
}

// Result is one complete draw. It is never mutated after Generate returns;
// accessors hand out copies.
type Result struct {
	id      string
	groups  [GroupCount]Group
	matches []Match
}

// ID returns the identifier assigned when the draw was generated.
func (r *Result) ID() string {
	return r.id
}

// Groups returns the four groups in label order.
func (r *Result) Groups() [GroupCount]Group {
	return r.groups
}

// Group returns the group with the given label.
func (r *Result) Group(label string) (Group, bool) {
	for _, g := range r.groups {
		if g.Label == label {
			return g, true
		}
	}
	return Group{}, false
}

// Matches returns the fixture list: intra-group matches in group order,
// then cross-group matches in pair order AB, AC, AD, BC, BD, CD.
func (r *Result) Matches() []Match {
	return slices.Clone(r.matches)
}

// MatchesFor returns the matches e plays, in fixture order.
func (r *Result) MatchesFor(e Entrant) []Match {
	var out []Match
	for _, m := range r.matches {
		if m.Involves(e) {
			out = append(out, m)
		}
	}
	return out
}

// Fingerprint is a content hash of the groups and matches. Two draws with
// the same assignment and fixture order share a fingerprint regardless of
// their IDs.
func (r *Result) Fingerprint() (string, error) {
	groups := make([]any, 0, GroupCount)
	for _, g := range r.groups {
		names := make([]string, 0, GroupSize)
		for _, e := range g.Entrants {
			names = append(names, string(e))
		}
		groups = append(groups, map[string]any{
			"label":    g.Label,
			"entrants": names,
		})
	}

	matches := make([]any, 0, len(r.matches))
	for _, m := range r.matches {
		matches = append(matches, []string{string(m.Side1), string(m.Side2)})
	}

	return canonical.Hash(canonical.DomainResult, map[string]any{
		"groups":  groups,
		"matches": matches,
	})
}
