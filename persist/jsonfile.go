package persist

import (
	"context"
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// JSONFile is the JSON twin of YAMLFile, with the same two-call flush
// protocol.
type JSONFile[TState comparable] struct {
	path    string
	machine string
	pending Snapshot[TState]
}

// NewJSONFile creates a JSON file store for the given machine name.
func NewJSONFile[TState comparable](path, machine string) *JSONFile[TState] {
	return &JSONFile[TState]{path: path, machine: machine}
}

func (s *JSONFile[TState]) SaveCurrentState(_ context.Context, id TState, present bool) error {
	s.pending = Snapshot[TState]{Machine: s.machine}
	if present {
		s.pending.Current = &id
	}
	return nil
}

func (s *JSONFile[TState]) SaveHistoryStates(_ context.Context, history map[TState]TState) error {
	if len(history) > 0 {
		s.pending.History = history
	}
	s.pending.stamp()

	data, err := json.MarshalIndent(&s.pending, "", "  ")
	if err != nil {
		return errors.Wrap(err, "json marshal snapshot")
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", s.path)
	}
	return nil
}

func (s *JSONFile[TState]) read() (Snapshot[TState], error) {
	var snap Snapshot[TState]
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return snap, nil
		}
		return snap, errors.Wrapf(err, "read %s", s.path)
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, errors.Wrap(err, "json unmarshal snapshot")
	}
	return snap, nil
}

func (s *JSONFile[TState]) LoadCurrentState(_ context.Context) (TState, bool, error) {
	snap, err := s.read()
	if err != nil || snap.Current == nil {
		var zero TState
		return zero, false, err
	}
	return *snap.Current, true, nil
}

func (s *JSONFile[TState]) LoadHistoryStates(_ context.Context) (map[TState]TState, error) {
	snap, err := s.read()
	if err != nil {
		return nil, err
	}
	if snap.History == nil {
		return map[TState]TState{}, nil
	}
	return snap.History, nil
}
