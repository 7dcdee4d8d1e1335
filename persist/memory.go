package persist

import "context"

// Memory is an in-memory Saver/Loader. Useful in tests and wherever the
// caller wants to move snapshots around itself.
type Memory[TState comparable] struct {
	current    TState
	hasCurrent bool
	history    map[TState]TState
}

// NewMemory creates an empty in-memory store.
func NewMemory[TState comparable]() *Memory[TState] {
	return &Memory[TState]{history: make(map[TState]TState)}
}

func (m *Memory[TState]) SaveCurrentState(_ context.Context, id TState, present bool) error {
	m.current = id
	m.hasCurrent = present
	return nil
}

func (m *Memory[TState]) SaveHistoryStates(_ context.Context, history map[TState]TState) error {
	m.history = make(map[TState]TState, len(history))
	for k, v := range history {
		m.history[k] = v
	}
	return nil
}

func (m *Memory[TState]) LoadCurrentState(_ context.Context) (TState, bool, error) {
	return m.current, m.hasCurrent, nil
}

func (m *Memory[TState]) LoadHistoryStates(_ context.Context) (map[TState]TState, error) {
	history := make(map[TState]TState, len(m.history))
	for k, v := range m.history {
		history[k] = v
	}
	return history, nil
}
