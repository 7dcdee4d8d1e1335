// Package persist provides ready-made Saver/Loader implementations for the
// stategraph persistence bridge: YAML and JSON file stores plus an
// in-memory store for tests and embedding.
//
// The engine owns what gets saved (a current-state id and a history map);
// this package owns medium and format only.
package persist

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Snapshot is the serialized document written by the file stores. Version
// is a ULID stamped on every write, so snapshots are ordered and uniquely
// identified.
type Snapshot[TState comparable] struct {
	Machine string            `json:"machine" yaml:"machine"`
	Current *TState           `json:"current,omitempty" yaml:"current,omitempty"`
	History map[TState]TState `json:"history,omitempty" yaml:"history,omitempty"`
	Version string            `json:"version" yaml:"version"`
	SavedAt time.Time         `json:"savedAt" yaml:"savedAt"`
}

func (s *Snapshot[TState]) stamp() {
	s.Version = ulid.Make().String()
	s.SavedAt = time.Now().UTC()
}
