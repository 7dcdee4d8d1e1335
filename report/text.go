// Package report provides ReportGenerator implementations: a plain-text
// dump and a Graphviz DOT export of the state graph.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/corvid-labs/stategraph"
)

// Text writes a human-readable dump of the machine definition.
type Text[TState, TEvent comparable] struct {
	W io.Writer
}

func (r *Text[TState, TEvent]) Report(name string, states []*stategraph.State[TState, TEvent], initialStateID TState, hasInitial bool) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:\n", name)
	if hasInitial {
		fmt.Fprintf(&b, "  initial: %v\n", initialStateID)
	}

	for _, s := range states {
		// Top-level states first; children render indented below their
		// composite.
		if s.SuperState() == nil {
			writeState(&b, s, 1)
		}
	}

	_, err := io.WriteString(r.W, b.String())
	return err
}

func writeState[TState, TEvent comparable](b *strings.Builder, s *stategraph.State[TState, TEvent], depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(b, "%s%v", indent, s.ID())
	if initial, ok := s.InitialSubState(); ok {
		fmt.Fprintf(b, " [initial: %v]", initial)
	}
	b.WriteString("\n")

	for _, t := range s.TransitionInfos() {
		if t.HasTarget {
			fmt.Fprintf(b, "%s  %v -> %v", indent, t.Event, t.Target)
		} else {
			fmt.Fprintf(b, "%s  %v (internal)", indent, t.Event)
		}
		if t.Guarded {
			b.WriteString(" [guarded]")
		}
		b.WriteString("\n")
	}

	for _, child := range s.SubStates() {
		writeState(b, child, depth+1)
	}
}
