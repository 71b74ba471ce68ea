package cyclorama_test

import (
	"testing"
	"time"

	Cd "github.com/maroda/cyclorama/display"
	Cp "github.com/maroda/cyclorama/plugin"
)

func TestInitOutput(t *testing.T) {
	t.Run("Empty output is none", func(t *testing.T) {
		view := makeTestView(t)
		err := Cd.InitOutput(view, "")
		assertError(t, err, nil)
		if view.Output != nil {
			t.Errorf("expected no output, got %s", view.Output.Type())
		}
		if view.Journal != nil {
			t.Error("expected no journal without an output")
		}
	})

	t.Run("Unknown output is an error", func(t *testing.T) {
		view := makeTestView(t)
		assertGotError(t, Cd.InitOutput(view, "carrier-pigeon"))
	})

	t.Run("Badger needs a path", func(t *testing.T) {
		view := makeTestView(t)
		assertGotError(t, Cd.InitOutput(view, "badger:"))
	})

	t.Run("Badger journals issued tweens", func(t *testing.T) {
		view := makeTestView(t)
		err := Cd.InitOutput(view, "badger:"+t.TempDir())
		assertError(t, err, nil)

		bo, ok := view.Output.(*Cp.BadgerOutput)
		if !ok {
			t.Fatalf("expected BadgerOutput, got %T", view.Output)
		}
		defer bo.Close()

		start := time.Now()
		view.Timeline.PointClick(1)
		view.Journal.Stop()
		assertError(t, bo.Flush(), nil)

		cmds, err := bo.QueryRange(start, time.Now().Add(time.Second))
		assertError(t, err, nil)
		if len(cmds) == 0 {
			t.Fatalf("expected journaled commands")
		}

		rotated := false
		for _, c := range cmds {
			if c.Handle == "ring" && c.To == -60 {
				rotated = true
			}
		}
		assertBool(t, rotated, true)
	})
}
