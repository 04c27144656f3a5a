package draw

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// Text renders the draw in the plain layout: each group as a header and
// one entrant per line, then every match as "Side1 - Side2".
func (r *Result) Text() string {
	var b strings.Builder
	for _, g := range r.groups {
		fmt.Fprintf(&b, "Group %s:\n", g.Label)
		for _, e := range g.Entrants {
			fmt.Fprintln(&b, e)
		}
		fmt.Fprintln(&b)
	}

	fmt.Fprintln(&b, "Matches:")
	for _, m := range r.matches {
		fmt.Fprintln(&b, m)
	}
	return b.String()
}

var markupTemplate = template.Must(template.New("draw").Parse(`<div class="draw">
<div class="groups">
{{- range .Groups}}
<div class="group">
<h4>Group {{.Label}}</h4>
<ul>
{{- range .Entrants}}
<li>{{.}}</li>
{{- end}}
</ul>
</div>
{{- end}}
</div>
<div class="matches-list">
{{- range .Matches}}
<div class="match">{{.Side1}} - {{.Side2}}</div>
{{- end}}
</div>
</div>
`))

// Markup renders the draw as an HTML fragment. Entrant names are escaped.
func (r *Result) Markup() (string, error) {
	var buf bytes.Buffer
	err := markupTemplate.Execute(&buf, struct {
		Groups  [GroupCount]Group
		Matches []Match
	}{r.groups, r.matches})
	if err != nil {
		return "", fmt.Errorf("render markup: %w", err)
	}
	return buf.String(), nil
}

// Snapshot is the serializable form of a Result used for JSON and YAML
// output.
type Snapshot struct {
	ID          string          `json:"id" yaml:"id"`
	Fingerprint string          `json:"fingerprint" yaml:"fingerprint"`
	Groups      []GroupSnapshot `json:"groups" yaml:"groups"`
	Matches     []MatchSnapshot `json:"matches" yaml:"matches"`
}

// GroupSnapshot is a labelled group.
type GroupSnapshot struct {
	Label    string   `json:"label" yaml:"label"`
	Entrants []string `json:"entrants" yaml:"entrants"`
}

// MatchSnapshot is one fixture.
type MatchSnapshot struct {
	Side1  string    `json:"side1" yaml:"side1"`
	Side2  string    `json:"side2" yaml:"side2"`
	Kind   MatchKind `json:"kind" yaml:"kind"`
	Groups string    `json:"groups" yaml:"groups"`
}

// Snapshot converts r to its serializable form.
func (r *Result) Snapshot() (Snapshot, error) {
	fp, err := r.Fingerprint()
	if err != nil {
		return Snapshot{}, err
	}

	s := Snapshot{
		ID:          r.id,
		Fingerprint: fp,
		Groups:      make([]GroupSnapshot, 0, GroupCount),
		Matches:     make([]MatchSnapshot, 0, len(r.matches)),
	}
	for _, g := range r.groups {
		names := make([]string, 0, GroupSize)
		for _, e := range g.Entrants {
			names = append(names, string(e))
		}
		s.Groups = append(s.Groups, GroupSnapshot{Label: g.Label, Entrants: names})
	}
	for _, m := range r.matches {
		s.Matches = append(s.Matches, MatchSnapshot{
			Side1:  string(m.Side1),
			Side2:  string(m.Side2),
			Kind:   m.Kind,
			Groups: m.Groups,
		})
	}
	return s, nil
}
