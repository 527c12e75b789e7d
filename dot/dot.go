// Package dot writes a Graphviz DOT representation of an automaton, porting
// Automata.py::NFATransducer.to_dot without the graphviz Python binding: node
// names are the automaton's own state ids (or, for the inductive separator
// transducer's columns, automaton.Column.Key()), and each edge is labelled
// "x\ny" exactly as the source does.
package dot

import (
	"fmt"
	"io"
	"text/template"

	"github.com/coregx/rtverify/automaton"
)

var tmpl = template.Must(template.New("dot").Parse(`digraph G {
{{- range .Nodes}}
	"{{.}}" [shape=circle];
{{- end}}
{{- range .Edges}}
	"{{.From}}" -> "{{.To}}" [label="{{.X}}\n{{.Y}}"];
{{- end}}
}
`))

type edge struct {
	From, To, X, Y string
}

type graph struct {
	Nodes []string
	Edges []edge
}

// NameFunc maps an automaton.State to the string used as its DOT node name.
// DefaultNames renders automaton states directly (decimal); ColumnNames builds a
// Namer-backed lookup so nodes are labelled by their original Column.Key()
// rather than the synthetic sequential id pairing.Build/ToDFA assigned them.
type NameFunc func(automaton.State) string

// DefaultNames renders a state as its decimal id.
func DefaultNames(q automaton.State) string {
	return fmt.Sprintf("%d", q)
}

// Write renders a to a DOT digraph, using name to label each node.
func Write(w io.Writer, a *automaton.Automaton, name NameFunc) error {
	if name == nil {
		name = DefaultNames
	}
	g := graph{}
	seen := make(map[string]bool)
	for _, q := range a.States() {
		nq := name(q)
		if !seen[nq] {
			seen[nq] = true
			g.Nodes = append(g.Nodes, nq)
		}
		for _, tr := range a.TransitionsOf(q) {
			x := a.Codec.Decode(a.Codec.X(tr.Label))
			y := a.Codec.Decode(a.Codec.Y(tr.Label))
			nt := name(tr.Target)
			if !seen[nt] {
				seen[nt] = true
				g.Nodes = append(g.Nodes, nt)
			}
			g.Edges = append(g.Edges, edge{From: nq, To: nt, X: x, Y: y})
		}
	}
	return tmpl.Execute(w, g)
}

// ColumnNames returns a NameFunc that looks state ids up in namer's reverse
// mapping, rendering each node by the original Column.Key() it was allocated
// for (namer must be the automaton.Namer that allocated the automaton's state
// ids; pairing.Build and Automaton.ToDFA keep their Namers internal).
func ColumnNames(namer *automaton.Namer) NameFunc {
	rev := namer.Reverse()
	return func(q automaton.State) string {
		if key, ok := rev[q]; ok {
			return key
		}
		return DefaultNames(q)
	}
}
