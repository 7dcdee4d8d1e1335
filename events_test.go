package stategraph

import (
	"context"
	"errors"
	"testing"
)

// recordingExtension captures hook invocations in order.
type recordingExtension struct {
	ExtensionBase[string, string]
	calls []string
}

func (r *recordingExtension) InitializingStateMachine(_ *StateMachine[string, string], initialState *string) {
	r.calls = append(r.calls, "initializing "+*initialState)
}

func (r *recordingExtension) InitializedStateMachine(_ *StateMachine[string, string], initialState string) {
	r.calls = append(r.calls, "initialized "+initialState)
}

func (r *recordingExtension) EnteringInitialState(_ *StateMachine[string, string], state string) {
	r.calls = append(r.calls, "entering "+state)
}

func (r *recordingExtension) EnteredInitialState(_ *StateMachine[string, string], state string) {
	r.calls = append(r.calls, "entered "+state)
}

func (r *recordingExtension) FiringEvent(_ *StateMachine[string, string], eventID *string, _ *any) {
	r.calls = append(r.calls, "firing "+*eventID)
}

func (r *recordingExtension) FiredEvent(_ *StateMachine[string, string], tc *TransitionContext[string, string]) {
	ev, _ := tc.EventID()
	r.calls = append(r.calls, "fired "+ev)
}

func (r *recordingExtension) SwitchedState(_ *StateMachine[string, string], oldState, newState string) {
	r.calls = append(r.calls, "switched "+oldState+">"+newState)
}

func (r *recordingExtension) TransitionDeclined(_ *StateMachine[string, string], tc *TransitionContext[string, string]) {
	ev, _ := tc.EventID()
	r.calls = append(r.calls, "declined "+ev)
}

func (r *recordingExtension) TransitionCompleted(_ *StateMachine[string, string], _ *TransitionContext[string, string], newState string) {
	r.calls = append(r.calls, "completed "+newState)
}

func (r *recordingExtension) TransitionExceptionThrown(_ *StateMachine[string, string], _ *TransitionContext[string, string], err error) {
	r.calls = append(r.calls, "exception "+err.Error())
}

func (r *recordingExtension) Loaded(_ *StateMachine[string, string], currentState string, hasCurrent bool, _ map[string]string) {
	if hasCurrent {
		r.calls = append(r.calls, "loaded "+currentState)
		return
	}
	r.calls = append(r.calls, "loaded")
}

func TestExtensionHookSequence(t *testing.T) {
	t.Parallel()

	m := newTestMachine(t)
	ctx := context.Background()
	rec := &recordingExtension{}
	m.AddExtension(rec)
	m.In("A").On("go").Goto("B")

	if err := m.Initialize("A"); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if err := m.EnterInitialState(ctx); err != nil {
		t.Fatalf("EnterInitialState failed: %v", err)
	}
	if err := m.Fire(ctx, "go", nil); err != nil {
		t.Fatalf("Fire failed: %v", err)
	}
	if err := m.Fire(ctx, "bogus", nil); err != nil {
		t.Fatalf("Fire failed: %v", err)
	}

	want := []string{
		"initializing A",
		"initialized A",
		"entering A",
		"entered A",
		"firing go",
		"switched A>B",
		"fired go",
		"completed B",
		"firing bogus",
		"declined bogus",
	}
	if len(rec.calls) != len(want) {
		t.Fatalf("Expected calls %v, got %v", want, rec.calls)
	}
	for i := range want {
		if rec.calls[i] != want[i] {
			t.Fatalf("Expected calls %v, got %v", want, rec.calls)
		}
	}
}

func TestInternalTransitionSkipsSwitchedState(t *testing.T) {
	t.Parallel()

	m := newTestMachine(t)
	ctx := context.Background()
	rec := &recordingExtension{}
	m.AddExtension(rec)
	m.In("A").On("tick").Execute(func(context.Context, *TransitionContext[string, string]) error {
		return nil
	})

	if err := m.Initialize("A"); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if err := m.EnterInitialState(ctx); err != nil {
		t.Fatalf("EnterInitialState failed: %v", err)
	}
	rec.calls = nil

	if err := m.Fire(ctx, "tick", nil); err != nil {
		t.Fatalf("Fire failed: %v", err)
	}
	for _, call := range rec.calls {
		if call == "switched A>A" {
			t.Errorf("Expected no SwitchedState for internal transition, got %v", rec.calls)
		}
	}
}

func TestExtensionRewritesInitialState(t *testing.T) {
	t.Parallel()

	m := newTestMachine(t)
	ctx := context.Background()
	m.AddExtension(&initialRewriter{to: "B"})
	m.In("A")
	m.In("B")

	if err := m.Initialize("A"); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if err := m.EnterInitialState(ctx); err != nil {
		t.Fatalf("EnterInitialState failed: %v", err)
	}
	if cur, _ := m.CurrentState(); cur != "B" {
		t.Errorf("Expected rewritten initial state B, got %q", cur)
	}
}

type initialRewriter struct {
	ExtensionBase[string, string]
	to string
}

func (r *initialRewriter) InitializingStateMachine(_ *StateMachine[string, string], initialState *string) {
	*initialState = r.to
}

type fireRewriter struct {
	ExtensionBase[string, string]
	event string
	arg   any
}

func (r *fireRewriter) FiringEvent(_ *StateMachine[string, string], eventID *string, argument *any) {
	*eventID = r.event
	*argument = r.arg
}

func TestExtensionRewritesEventAndArgument(t *testing.T) {
	t.Parallel()

	m := newTestMachine(t)
	ctx := context.Background()
	m.AddExtension(&fireRewriter{event: "real", arg: "payload"})
	var gotArg any
	m.In("A").On("real").Goto("B").
		Execute(func(_ context.Context, tc *TransitionContext[string, string]) error {
			gotArg = tc.Argument()
			return nil
		})

	if err := m.Initialize("A"); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if err := m.EnterInitialState(ctx); err != nil {
		t.Fatalf("EnterInitialState failed: %v", err)
	}
	if err := m.Fire(ctx, "decoy", nil); err != nil {
		t.Fatalf("Fire failed: %v", err)
	}
	if cur, _ := m.CurrentState(); cur != "B" {
		t.Errorf("Expected rewritten event to route to B, got %q", cur)
	}
	if gotArg != "payload" {
		t.Errorf("Expected rewritten argument, got %v", gotArg)
	}
}

func TestExtensionConsumesTransitionError(t *testing.T) {
	t.Parallel()

	m := newTestMachine(t)
	ctx := context.Background()
	rec := &recordingExtension{}
	m.AddExtension(rec)
	boom := errors.New("boom")
	m.In("A").On("go").Goto("B").
		Execute(func(context.Context, *TransitionContext[string, string]) error {
			return boom
		})

	if err := m.Initialize("A"); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if err := m.EnterInitialState(ctx); err != nil {
		t.Fatalf("EnterInitialState failed: %v", err)
	}
	if err := m.Fire(ctx, "go", nil); err != nil {
		t.Fatalf("Expected extension to consume the error, got %v", err)
	}

	found := false
	for _, call := range rec.calls {
		if call == "exception boom" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected TransitionExceptionThrown hook, got %v", rec.calls)
	}
}

func TestNotificationHandlers(t *testing.T) {
	t.Parallel()

	m := newTestMachine(t)
	ctx := context.Background()
	var begin, declined, completed []TransitionEventArgs[string, string]
	m.OnTransitionBegin(func(args TransitionEventArgs[string, string]) {
		begin = append(begin, args)
	})
	m.OnTransitionDeclined(func(args TransitionEventArgs[string, string]) {
		declined = append(declined, args)
	})
	m.OnTransitionCompleted(func(args TransitionEventArgs[string, string]) {
		completed = append(completed, args)
	})

	m.In("A").On("go").Goto("B")
	if err := m.Initialize("A"); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if err := m.EnterInitialState(ctx); err != nil {
		t.Fatalf("EnterInitialState failed: %v", err)
	}
	if err := m.Fire(ctx, "go", "arg"); err != nil {
		t.Fatalf("Fire failed: %v", err)
	}
	if err := m.Fire(ctx, "bogus", nil); err != nil {
		t.Fatalf("Fire failed: %v", err)
	}

	if len(begin) != 2 {
		t.Fatalf("Expected 2 begin notifications, got %d", len(begin))
	}
	if begin[0].StateID != "A" || begin[0].EventID != "go" || begin[0].Argument != "arg" {
		t.Errorf("Unexpected begin args: %+v", begin[0])
	}

	if len(completed) != 1 {
		t.Fatalf("Expected 1 completed notification, got %d", len(completed))
	}
	if !completed[0].HasNewState || completed[0].NewStateID != "B" {
		t.Errorf("Expected completed notification with new state B, got %+v", completed[0])
	}

	if len(declined) != 1 {
		t.Fatalf("Expected 1 declined notification, got %d", len(declined))
	}
	if declined[0].StateID != "B" || declined[0].EventID != "bogus" {
		t.Errorf("Unexpected declined args: %+v", declined[0])
	}
}
