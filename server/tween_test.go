package cyclorama_test

import (
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	Cs "github.com/maroda/cyclorama/server"
	Ct "github.com/maroda/cyclorama/types"
)

const tweenTime = 100 * time.Millisecond

func makeTestEngine(t *testing.T) (*Cs.Engine, *Cs.Element, *[]Ct.TweenCommand) {
	t.Helper()
	e := Cs.NewEngine()
	el := Cs.NewElement("dot")
	e.Register(el)

	var cmds []Ct.TweenCommand
	e.AddSink(func(cmd Ct.TweenCommand) {
		cmds = append(cmds, cmd)
	})
	return e, el, &cmds
}

func linearTo(p Ct.Property, v float64) Cs.TweenSpec {
	return Cs.TweenSpec{
		Values:   map[Ct.Property]float64{p: v},
		Duration: tweenTime,
		Ease:     "none",
	}
}

func TestEaseByName(t *testing.T) {
	for _, name := range []string{"none", "power1.inOut", "power2.out", "power1.out", "sine.in"} {
		fn, err := Cs.EaseByName(name)
		assertError(t, err, nil)
		assertFloat(t, fn(0), 0)
		assertFloat(t, fn(1), 1)
	}

	t.Run("Unknown ease is an error", func(t *testing.T) {
		_, err := Cs.EaseByName("elastic.wobble")
		assertError(t, err, Cs.ErrUnknownEase)
	})
}

func TestEngine_To(t *testing.T) {
	t.Run("Moves linearly to the target", func(t *testing.T) {
		e, el, _ := makeTestEngine(t)
		ok := e.To("dot", linearTo(Ct.PropRadius, 10))
		assertBool(t, ok, true)
		assertBool(t, e.Animating("dot", Ct.PropRadius), true)

		e.Step(tweenTime / 2)
		assertFloat(t, el.Value(Ct.PropRadius), 5)

		e.Step(tweenTime)
		assertFloat(t, el.Value(Ct.PropRadius), 10)
		assertInt(t, e.InFlight(), 0)
	})

	t.Run("Stale handle is dropped", func(t *testing.T) {
		e, _, cmds := makeTestEngine(t)
		ok := e.To("gone", linearTo(Ct.PropRadius, 10))
		assertBool(t, ok, false)
		assertInt(t, len(*cmds), 0)
		assertInt(t, e.InFlight(), 0)
	})

	t.Run("Retarget continues from the current value", func(t *testing.T) {
		e, el, cmds := makeTestEngine(t)
		e.To("dot", linearTo(Ct.PropRadius, 10))
		e.Step(tweenTime / 2)
		e.To("dot", linearTo(Ct.PropRadius, 20))

		assertInt(t, e.InFlight(), 1)
		assertInt(t, len(*cmds), 2)
		last := (*cmds)[1]
		assertBool(t, last.Retarget, true)
		assertFloat(t, last.From, 5)
		assertFloat(t, last.To, 20)
		assertBool(t, (*cmds)[0].Retarget, false)

		// No jump at the moment of retarget
		assertFloat(t, el.Value(Ct.PropRadius), 5)
		e.Step(tweenTime / 2)
		assertFloat(t, el.Value(Ct.PropRadius), 12.5)
	})

	t.Run("Zero duration applies immediately", func(t *testing.T) {
		e, el, cmds := makeTestEngine(t)
		spec := linearTo(Ct.PropRadius, 7)
		spec.Duration = 0
		e.To("dot", spec)

		assertFloat(t, el.Value(Ct.PropRadius), 7)
		assertInt(t, e.InFlight(), 0)
		assertInt(t, len(*cmds), 1)
	})

	t.Run("Snap rounds every step", func(t *testing.T) {
		e, el, _ := makeTestEngine(t)
		spec := linearTo(Ct.PropText, 1945)
		spec.Snap = 1
		e.To("dot", spec)

		for range 9 {
			e.Step(tweenTime / 10)
			v := el.Value(Ct.PropText)
			if v != float64(int(v)) {
				t.Fatalf("got fractional value %f", v)
			}
		}
		e.Step(tweenTime)
		assertFloat(t, el.Value(Ct.PropText), 1945)
	})

	t.Run("Unknown ease falls back to linear", func(t *testing.T) {
		e, el, _ := makeTestEngine(t)
		spec := linearTo(Ct.PropRadius, 10)
		spec.Ease = "bounce.nope"
		ok := e.To("dot", spec)
		assertBool(t, ok, true)

		e.Step(tweenTime / 2)
		assertFloat(t, el.Value(Ct.PropRadius), 5)
	})

	t.Run("Commands are sequenced and stamped", func(t *testing.T) {
		e, _, cmds := makeTestEngine(t)
		stamp := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
		e.SetClock(func() time.Time { return stamp })

		e.To("dot", Cs.TweenSpec{
			Values:   map[Ct.Property]float64{Ct.PropRadius: 1, Ct.PropStrokeOpacity: 0.5},
			Duration: tweenTime,
			Ease:     "power2.out",
		})

		assertInt(t, len(*cmds), 2)
		for i, c := range *cmds {
			if c.Seq != uint64(i+1) {
				t.Errorf("got seq %d, want %d", c.Seq, i+1)
			}
			if !c.Issued.Equal(stamp) {
				t.Errorf("got issued %s, want %s", c.Issued, stamp)
			}
			assertString(t, c.Handle, "dot")
			assertString(t, c.Ease, "power2.out")
		}
	})
}

func TestEngine_Color(t *testing.T) {
	e, el, cmds := makeTestEngine(t)
	black, _ := colorful.Hex("#000000")
	white, _ := colorful.Hex("#ffffff")
	el.SetColor(Ct.PropFill, black)

	e.To("dot", Cs.TweenSpec{
		Colors:   map[Ct.Property]colorful.Color{Ct.PropFill: white},
		Duration: tweenTime,
		Ease:     "none",
	})
	assertString(t, (*cmds)[0].FromColor, "#000000")
	assertString(t, (*cmds)[0].ToColor, "#ffffff")

	e.Step(tweenTime / 2)
	assertString(t, el.Hex(Ct.PropFill), "#808080")

	e.Step(tweenTime / 2)
	assertString(t, el.Hex(Ct.PropFill), "#ffffff")
}

func TestEngine_Kill(t *testing.T) {
	t.Run("Kill leaves values where they are", func(t *testing.T) {
		e, el, _ := makeTestEngine(t)
		e.To("dot", linearTo(Ct.PropRadius, 10))
		e.Step(tweenTime / 2)
		e.Kill("dot")

		assertInt(t, e.InFlight(), 0)
		e.Step(tweenTime)
		assertFloat(t, el.Value(Ct.PropRadius), 5)
	})

	t.Run("KillAll clears every handle", func(t *testing.T) {
		e, _, _ := makeTestEngine(t)
		e.Register(Cs.NewElement("other"))
		e.To("dot", linearTo(Ct.PropRadius, 10))
		e.To("other", linearTo(Ct.PropRadius, 10))
		assertInt(t, e.InFlight(), 2)

		e.KillAll()
		assertInt(t, e.InFlight(), 0)
	})

	t.Run("Unregister makes the handle stale", func(t *testing.T) {
		e, _, _ := makeTestEngine(t)
		e.To("dot", linearTo(Ct.PropRadius, 10))
		e.Unregister("dot")

		assertInt(t, e.InFlight(), 0)
		_, ok := e.Lookup("dot")
		assertBool(t, ok, false)
		assertBool(t, e.To("dot", linearTo(Ct.PropRadius, 1)), false)
	})
}
