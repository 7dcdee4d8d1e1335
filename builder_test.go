package stategraph

import (
	"context"
	"testing"
)

func TestDefineHierarchyRejectsSelfChild(t *testing.T) {
	t.Parallel()

	m := newTestMachine(t)
	if err := m.DefineHierarchyOn("P", "P"); err == nil {
		t.Error("Expected error for a state nested under itself")
	}
	if err := m.DefineHierarchyOn("Q", "A", "Q"); err == nil {
		t.Error("Expected error for a composite listing itself as a child")
	}
}

func TestDefineHierarchyRejectsForeignChild(t *testing.T) {
	t.Parallel()

	m := newTestMachine(t)
	if err := m.DefineHierarchyOn("P", "A", "A"); err != nil {
		t.Fatalf("DefineHierarchyOn failed: %v", err)
	}
	if err := m.DefineHierarchyOn("Q", "A", "A"); err == nil {
		t.Error("Expected error when a child already belongs to another composite")
	}
}

func TestDefineHierarchyRegistersInitialChildImplicitly(t *testing.T) {
	t.Parallel()

	m := newTestMachine(t)

	// The initial child need not be repeated in the children list.
	if err := m.DefineHierarchyOn("P", "A", "B"); err != nil {
		t.Fatalf("DefineHierarchyOn failed: %v", err)
	}
	p := m.lookup("P")
	if initial, ok := p.InitialSubState(); !ok || initial != "A" {
		t.Errorf("Expected initial sub-state A, got %q (ok=%v)", initial, ok)
	}
	children := p.SubStates()
	if len(children) != 2 {
		t.Fatalf("Expected 2 children, got %d", len(children))
	}
	if children[0].ID() != "A" || children[1].ID() != "B" {
		t.Errorf("Expected children [A B], got [%v %v]", children[0].ID(), children[1].ID())
	}
	if children[0].SuperState() != p {
		t.Error("Expected the implicit initial child to be parented under the composite")
	}
}

func TestDefineHierarchyInitialOnlyChild(t *testing.T) {
	t.Parallel()

	m := newTestMachine(t)
	ctx := context.Background()

	// A composite whose sole child is the initial one.
	if err := m.DefineHierarchyOn("P", "A"); err != nil {
		t.Fatalf("DefineHierarchyOn failed: %v", err)
	}
	if err := m.Initialize("P"); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if err := m.EnterInitialState(ctx); err != nil {
		t.Fatalf("EnterInitialState failed: %v", err)
	}
	if cur, _ := m.CurrentState(); cur != "A" {
		t.Errorf("Expected to land in A, got %q", cur)
	}
}

func TestStatesExistOnFirstReference(t *testing.T) {
	t.Parallel()

	m := newTestMachine(t)
	ctx := context.Background()

	// B is only ever named as a target; it must still be a real state.
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
	if cur, _ := m.CurrentState(); cur != "B" {
		t.Errorf("Expected forward-referenced target B, got %q", cur)
	}
}

func TestTransitionInfosDeclarationOrder(t *testing.T) {
	t.Parallel()

	m := newTestMachine(t)
	cond := func(context.Context, *TransitionContext[string, string]) (bool, error) {
		return true, nil
	}
	m.In("A").
		On("go").If(cond).Goto("B").
		Otherwise().Goto("C").
		On("tick").Execute(func(context.Context, *TransitionContext[string, string]) error {
			return nil
		})

	infos := m.lookup("A").TransitionInfos()
	if len(infos) != 3 {
		t.Fatalf("Expected 3 transitions, got %d", len(infos))
	}
	if infos[0].Event != "go" || !infos[0].Guarded || !infos[0].HasTarget || infos[0].Target != "B" {
		t.Errorf("Expected guarded go->B first, got %+v", infos[0])
	}
	if infos[1].Event != "go" || infos[1].Guarded || infos[1].Target != "C" {
		t.Errorf("Expected unguarded go->C second, got %+v", infos[1])
	}
	if infos[2].Event != "tick" || infos[2].HasTarget {
		t.Errorf("Expected internal tick last, got %+v", infos[2])
	}
	if infos[2].ActionCount != 1 {
		t.Errorf("Expected one action on tick, got %d", infos[2].ActionCount)
	}
}
