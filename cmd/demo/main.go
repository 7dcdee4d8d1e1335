// Command demo wires a phone-call machine end to end: hierarchical states,
// guarded transitions, the logging extension, YAML persistence and a DOT
// report on stdout.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/corvid-labs/stategraph"
	"github.com/corvid-labs/stategraph/extensions"
	"github.com/corvid-labs/stategraph/persist"
	"github.com/corvid-labs/stategraph/report"
)

const (
	offHook   = "OffHook"
	ringing   = "Ringing"
	connected = "Connected"
	talking   = "Talking"
	onHold    = "OnHold"
)

const (
	callDialed    = "CallDialed"
	callConnected = "CallConnected"
	placedOnHold  = "PlacedOnHold"
	takenOffHold  = "TakenOffHold"
	hungUp        = "HungUp"
)

// definePhone builds the phone graph without initializing it, so the same
// definition serves both a fresh machine and one restored from a snapshot.
func definePhone(log logrus.FieldLogger) (*stategraph.StateMachine[string, string], error) {
	m := stategraph.New[string, string]("phone", stategraph.WithLogger[string, string](log))
	m.AddExtension(extensions.NewLogging[string, string](log))

	if err := m.DefineHierarchyOn(connected, talking, onHold); err != nil {
		return nil, err
	}

	m.In(offHook).
		On(callDialed).Goto(ringing)

	m.In(ringing).
		On(callConnected).Goto(connected).
		On(hungUp).Goto(offHook)

	m.In(connected).
		OnEntry(func(ctx context.Context, tc *stategraph.TransitionContext[string, string]) error {
			log.Info("line open")
			return nil
		}).
		OnExit(func(ctx context.Context, tc *stategraph.TransitionContext[string, string]) error {
			log.Info("line closed")
			return nil
		}).
		On(hungUp).Goto(offHook)

	m.In(talking).
		On(placedOnHold).Goto(onHold)

	m.In(onHold).
		On(takenOffHold).Goto(talking)

	return m, nil
}

func run() error {
	log := logrus.New()
	log.SetLevel(logrus.DebugLevel)

	ctx := context.Background()

	m, err := definePhone(log)
	if err != nil {
		return err
	}
	if err := m.Initialize(offHook); err != nil {
		return err
	}
	if err := m.EnterInitialState(ctx); err != nil {
		return err
	}

	for _, ev := range []string{callDialed, callConnected, placedOnHold} {
		if err := m.Fire(ctx, ev, nil); err != nil {
			return err
		}
	}
	cur, _ := m.CurrentState()
	fmt.Printf("call parked in %s\n", cur)

	// Park the call to disk, then resume it on a fresh machine.
	path := filepath.Join(os.TempDir(), "phone-demo.yaml")
	store := persist.NewYAMLFile[string](path, "phone")
	if err := m.Save(ctx, store); err != nil {
		return err
	}

	// The resumed machine is never initialized; Load installs the saved
	// leaf directly.
	resumed, err := definePhone(log)
	if err != nil {
		return err
	}
	if err := resumed.Load(ctx, store); err != nil {
		return err
	}
	cur, _ = resumed.CurrentState()
	fmt.Printf("resumed in %s (snapshot: %s)\n", cur, path)

	if err := resumed.Fire(ctx, takenOffHold, nil); err != nil {
		return err
	}

	return resumed.Report(&report.DOT[string, string]{W: os.Stdout})
}

func main() {
	if err := run(); err != nil {
		logrus.WithError(err).Fatal("demo failed")
	}
}
