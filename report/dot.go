package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/corvid-labs/stategraph"
)

// DOT writes a Graphviz rendering of the state graph. Composites become
// clusters; internal transitions render as self-loops with a dashed edge.
type DOT[TState, TEvent comparable] struct {
	W io.Writer
}

func (r *DOT[TState, TEvent]) Report(name string, states []*stategraph.State[TState, TEvent], initialStateID TState, hasInitial bool) error {
	var b strings.Builder
	fmt.Fprintf(&b, "digraph %q {\n", name)
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box, fontsize=10, style=rounded];\n")
	b.WriteString("  edge [fontsize=9];\n")

	for _, s := range states {
		if s.SuperState() == nil {
			renderNode(&b, s, 1)
		}
	}

	if hasInitial {
		b.WriteString("  __start [shape=point];\n")
		fmt.Fprintf(&b, "  __start -> %q;\n", fmt.Sprintf("%v", initialStateID))
	}

	for _, s := range states {
		from := fmt.Sprintf("%v", s.ID())
		for _, t := range s.TransitionInfos() {
			label := fmt.Sprintf("%v", t.Event)
			if t.Guarded {
				label += " [guard]"
			}
			if t.HasTarget {
				fmt.Fprintf(&b, "  %q -> %q [label=%q];\n", from, fmt.Sprintf("%v", t.Target), label)
			} else {
				fmt.Fprintf(&b, "  %q -> %q [label=%q, style=dashed];\n", from, from, label)
			}
		}
	}

	b.WriteString("}\n")
	_, err := io.WriteString(r.W, b.String())
	return err
}

func renderNode[TState, TEvent comparable](b *strings.Builder, s *stategraph.State[TState, TEvent], depth int) {
	indent := strings.Repeat("  ", depth)
	id := fmt.Sprintf("%v", s.ID())
	if !s.IsComposite() {
		fmt.Fprintf(b, "%s%q;\n", indent, id)
		return
	}
	fmt.Fprintf(b, "%ssubgraph %q {\n", indent, "cluster_"+id)
	fmt.Fprintf(b, "%s  label=%q;\n", indent, id)
	fmt.Fprintf(b, "%s  %q [shape=plaintext];\n", indent, id)
	for _, child := range s.SubStates() {
		renderNode(b, child, depth+1)
	}
	fmt.Fprintf(b, "%s}\n", indent)
}
