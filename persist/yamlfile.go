package persist

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// YAMLFile persists snapshots to a single YAML file. The engine calls
// SaveCurrentState then SaveHistoryStates per Save; the store buffers the
// first call and flushes the whole document on the second, so a snapshot on
// disk is always complete.
type YAMLFile[TState comparable] struct {
	path    string
	machine string
	pending Snapshot[TState]
}

// NewYAMLFile creates a YAML file store for the given machine name.
func NewYAMLFile[TState comparable](path, machine string) *YAMLFile[TState] {
	return &YAMLFile[TState]{path: path, machine: machine}
}

func (s *YAMLFile[TState]) SaveCurrentState(_ context.Context, id TState, present bool) error {
	s.pending = Snapshot[TState]{Machine: s.machine}
	if present {
		s.pending.Current = &id
	}
	return nil
}

func (s *YAMLFile[TState]) SaveHistoryStates(_ context.Context, history map[TState]TState) error {
	if len(history) > 0 {
		s.pending.History = history
	}
	s.pending.stamp()

	data, err := yaml.Marshal(&s.pending)
	if err != nil {
		return errors.Wrap(err, "yaml marshal snapshot")
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", s.path)
	}
	return nil
}

func (s *YAMLFile[TState]) read() (Snapshot[TState], error) {
	var snap Snapshot[TState]
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return snap, nil
		}
		return snap, errors.Wrapf(err, "read %s", s.path)
	}
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return snap, errors.Wrap(err, "yaml unmarshal snapshot")
	}
	return snap, nil
}

func (s *YAMLFile[TState]) LoadCurrentState(_ context.Context) (TState, bool, error) {
	snap, err := s.read()
	if err != nil || snap.Current == nil {
		var zero TState
		return zero, false, err
	}
	return *snap.Current, true, nil
}

func (s *YAMLFile[TState]) LoadHistoryStates(_ context.Context) (map[TState]TState, error) {
	snap, err := s.read()
	if err != nil {
		return nil, err
	}
	if snap.History == nil {
		return map[TState]TState{}, nil
	}
	return snap.History, nil
}
