package tracking

import (
	"errors"
	"image"
	"testing"

	"github.com/ayusman/steerlink/internal/detector"
)

var frame = image.Rect(0, 0, 640, 480)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		prev, cur int
		want      Direction
	}{
		{name: "moved left beyond threshold", prev: 300, cur: 289, want: Left},
		{name: "moved right beyond threshold", prev: 300, cur: 311, want: Right},
		{name: "exactly threshold left is none", prev: 300, cur: 290, want: None},
		{name: "exactly threshold right is none", prev: 300, cur: 310, want: None},
		{name: "small jitter", prev: 300, cur: 303, want: None},
		{name: "still", prev: 300, cur: 300, want: None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.prev, tt.cur, 10); got != tt.want {
				t.Errorf("Classify(%d, %d, 10) = %q, want %q", tt.prev, tt.cur, got, tt.want)
			}
		})
	}
}

func TestOutOfBounds(t *testing.T) {
	tests := []struct {
		name   string
		circle detector.Circle
		want   bool
	}{
		{name: "centered", circle: detector.Circle{X: 320, Y: 240, Radius: 100}, want: false},
		{name: "touches left edge", circle: detector.Circle{X: 50, Y: 240, Radius: 50}, want: false},
		{name: "past left edge", circle: detector.Circle{X: 49, Y: 240, Radius: 50}, want: true},
		{name: "right edge is exclusive", circle: detector.Circle{X: 590, Y: 240, Radius: 50}, want: true},
		{name: "one pixel inside right edge", circle: detector.Circle{X: 589, Y: 240, Radius: 50}, want: false},
		{name: "past top edge", circle: detector.Circle{X: 320, Y: 10, Radius: 20}, want: true},
		{name: "bottom edge is exclusive", circle: detector.Circle{X: 320, Y: 460, Radius: 20}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OutOfBounds(tt.circle, frame); got != tt.want {
				t.Errorf("OutOfBounds(%+v) = %v, want %v", tt.circle, got, tt.want)
			}
		})
	}
}

func TestTracker_Acquire(t *testing.T) {
	tr := New(DefaultConfig())

	t.Run("no candidates stays unlocked", func(t *testing.T) {
		finder := detector.NewMockCircleFinder()

		res, err := tr.Update(State{}, frame, finder)
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if res.State.Locked {
			t.Error("expected UNLOCKED with no candidates")
		}
		if res.Transition != Unchanged {
			t.Errorf("Transition = %v, want unchanged", res.Transition)
		}

		q := finder.Queries()
		if len(q) != 1 || q[0].Region != frame || q[0].MinRadius != 15 || q[0].MaxRadius != 300 {
			t.Errorf("expected one full-frame search with radii 15..300, got %+v", q)
		}
	})

	t.Run("locks the largest candidate", func(t *testing.T) {
		finder := detector.NewMockCircleFinder()
		finder.Push(
			detector.Circle{X: 100, Y: 100, Radius: 20},
			detector.Circle{X: 300, Y: 200, Radius: 90},
			detector.Circle{X: 500, Y: 300, Radius: 40},
		)

		res, err := tr.Update(State{}, frame, finder)
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if !res.State.Locked {
			t.Fatal("expected LOCKED after candidates were found")
		}
		if res.State.Target != (detector.Circle{X: 300, Y: 200, Radius: 90}) {
			t.Errorf("Target = %+v, want the radius-90 circle", res.State.Target)
		}
		if res.Transition != Acquired {
			t.Errorf("Transition = %v, want acquired", res.Transition)
		}
		if res.HasDirection {
			t.Error("first lock has no previous x, expected no direction")
		}
		if !res.State.HasPrevX || res.State.PrevX != 300 {
			t.Errorf("PrevX = %d (has=%v), want 300", res.State.PrevX, res.State.HasPrevX)
		}
		if len(finder.Queries()) != 1 {
			t.Errorf("acquisition frame should not refine, got %d searches", len(finder.Queries()))
		}
	})

	t.Run("finder error leaves state unchanged", func(t *testing.T) {
		boom := errors.New("boom")
		finder := detector.NewMockCircleFinder()
		finder.PushError(boom)

		res, err := tr.Update(State{}, frame, finder)
		if !errors.Is(err, boom) {
			t.Fatalf("error = %v, want %v", err, boom)
		}
		if res.State.Locked {
			t.Error("expected UNLOCKED after finder error")
		}
	})
}

func TestTracker_Refine(t *testing.T) {
	tr := New(DefaultConfig())
	locked := State{
		Target:   detector.Circle{X: 300, Y: 200, Radius: 50},
		Locked:   true,
		PrevX:    300,
		HasPrevX: true,
	}

	t.Run("searches a square around the target", func(t *testing.T) {
		finder := detector.NewMockCircleFinder()

		if _, err := tr.Update(locked, frame, finder); err != nil {
			t.Fatalf("Update() error = %v", err)
		}

		q := finder.Queries()
		if len(q) != 1 {
			t.Fatalf("expected 1 search, got %d", len(q))
		}
		if q[0].Region != image.Rect(250, 150, 350, 250) {
			t.Errorf("Region = %v, want (250,150)-(350,250)", q[0].Region)
		}
		if q[0].MinRadius != 45 || q[0].MaxRadius != 55 {
			t.Errorf("radii = %d..%d, want 45..55", q[0].MinRadius, q[0].MaxRadius)
		}
	})

	t.Run("translates region-local match back to frame", func(t *testing.T) {
		finder := detector.NewMockCircleFinder()
		finder.Push(detector.Circle{X: 65, Y: 52, Radius: 51})

		res, err := tr.Update(locked, frame, finder)
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		want := detector.Circle{X: 315, Y: 202, Radius: 51}
		if res.State.Target != want {
			t.Errorf("Target = %+v, want %+v", res.State.Target, want)
		}
		if res.Transition != Refined {
			t.Errorf("Transition = %v, want refined", res.Transition)
		}
		if !res.HasDirection || res.Direction != Right {
			t.Errorf("Direction = %q (has=%v), want right", res.Direction, res.HasDirection)
		}
		if res.State.PrevX != 315 {
			t.Errorf("PrevX = %d, want 315", res.State.PrevX)
		}
	})

	t.Run("no match keeps the target", func(t *testing.T) {
		finder := detector.NewMockCircleFinder()

		res, err := tr.Update(locked, frame, finder)
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if !res.State.Locked || res.State.Target != locked.Target {
			t.Errorf("Target = %+v, want unchanged %+v", res.State.Target, locked.Target)
		}
		if res.Transition != Unchanged {
			t.Errorf("Transition = %v, want unchanged", res.Transition)
		}
		if !res.HasDirection || res.Direction != None {
			t.Errorf("Direction = %q (has=%v), want none", res.Direction, res.HasDirection)
		}
	})

	t.Run("region is clipped at the frame edge", func(t *testing.T) {
		noCheck := DefaultConfig()
		noCheck.BoundsCheck = false
		tr := New(noCheck)

		edge := State{Target: detector.Circle{X: 20, Y: 30, Radius: 40}, Locked: true}
		finder := detector.NewMockCircleFinder()
		finder.Push(detector.Circle{X: 25, Y: 35, Radius: 40})

		res, err := tr.Update(edge, frame, finder)
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if q := finder.Queries()[0].Region; q != image.Rect(0, 0, 60, 70) {
			t.Errorf("Region = %v, want (0,0)-(60,70)", q)
		}
		if res.State.Target != (detector.Circle{X: 25, Y: 35, Radius: 40}) {
			t.Errorf("Target = %+v", res.State.Target)
		}
	})

	t.Run("finder error keeps the lock", func(t *testing.T) {
		finder := detector.NewMockCircleFinder()
		finder.PushError(errors.New("boom"))

		res, err := tr.Update(locked, frame, finder)
		if err == nil {
			t.Fatal("expected error")
		}
		if res.State != locked {
			t.Errorf("State = %+v, want %+v", res.State, locked)
		}
	})
}

func TestTracker_BoundsCheck(t *testing.T) {
	drifting := State{
		Target:   detector.Circle{X: 560, Y: 240, Radius: 50},
		Locked:   true,
		PrevX:    540,
		HasPrevX: true,
	}

	t.Run("lock is dropped when the target leaves the frame", func(t *testing.T) {
		tr := New(DefaultConfig())
		finder := detector.NewMockCircleFinder()
		finder.Push(detector.Circle{X: 85, Y: 50, Radius: 50}) // region starts at x=510 -> 595

		res, err := tr.Update(drifting, frame, finder)
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if res.State.Locked {
			t.Error("expected UNLOCKED after target left the frame")
		}
		if res.Transition != Lost {
			t.Errorf("Transition = %v, want lost", res.Transition)
		}
		if res.State.HasPrevX {
			t.Error("previous x should be cleared with the lock")
		}
		if res.HasDirection {
			t.Error("no direction is reported on the frame the lock is lost")
		}
	})

	t.Run("variant without bounds check keeps the lock", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.BoundsCheck = false
		tr := New(cfg)
		finder := detector.NewMockCircleFinder()
		finder.Push(detector.Circle{X: 85, Y: 50, Radius: 50})

		res, err := tr.Update(drifting, frame, finder)
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if !res.State.Locked {
			t.Error("expected LOCKED without bounds check")
		}
		if res.State.Target.X != 595 {
			t.Errorf("Target.X = %d, want 595", res.State.Target.X)
		}
	})

	t.Run("relocks from scratch after loss", func(t *testing.T) {
		tr := New(DefaultConfig())
		finder := detector.NewMockCircleFinder()
		finder.Push(detector.Circle{X: 85, Y: 50, Radius: 50})
		finder.Push(detector.Circle{X: 200, Y: 200, Radius: 60})

		res, _ := tr.Update(drifting, frame, finder)
		res, err := tr.Update(res.State, frame, finder)
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if res.Transition != Acquired {
			t.Errorf("Transition = %v, want acquired", res.Transition)
		}
		if q := finder.Queries()[1]; q.Region != frame {
			t.Errorf("relock searched %v, want full frame", q.Region)
		}
	})
}

func TestTracker_Sequence(t *testing.T) {
	tr := New(DefaultConfig())
	finder := detector.NewMockCircleFinder()

	// Frame 1: nothing. Frame 2: plate appears. Frames 3-5: plate slides left then stops.
	finder.Push()
	finder.Push(detector.Circle{X: 320, Y: 240, Radius: 60}, detector.Circle{X: 100, Y: 100, Radius: 20})
	finder.Push(detector.Circle{X: 40, Y: 60, Radius: 60})  // region (260,180) -> (300,240)
	finder.Push(detector.Circle{X: 35, Y: 60, Radius: 60})  // region (240,180) -> (275,240)
	finder.Push(detector.Circle{X: 62, Y: 60, Radius: 60})  // region (215,180) -> (277,240)

	var s State
	var got []Direction
	for i := 0; i < 5; i++ {
		res, err := tr.Update(s, frame, finder)
		if err != nil {
			t.Fatalf("frame %d: Update() error = %v", i+1, err)
		}
		s = res.State
		if i == 1 && (!s.Locked || s.Target.Radius != 60) {
			t.Fatalf("frame 2: expected lock on radius 60, got %+v", s)
		}
		if res.HasDirection {
			got = append(got, res.Direction)
		}
	}

	want := []Direction{Left, Left, None}
	if len(got) != len(want) {
		t.Fatalf("directions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("direction[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNew_Defaults(t *testing.T) {
	tr := New(Config{})
	cfg := tr.Config()

	if cfg.MinRadius != DefaultMinRadius || cfg.MaxRadius != DefaultMaxRadius {
		t.Errorf("radii = %d..%d, want defaults", cfg.MinRadius, cfg.MaxRadius)
	}
	if cfg.RefineTolerance != DefaultRefineTolerance {
		t.Errorf("RefineTolerance = %f, want %f", cfg.RefineTolerance, DefaultRefineTolerance)
	}
}

func TestTransition_String(t *testing.T) {
	for tr, want := range map[Transition]string{
		Unchanged: "unchanged",
		Acquired:  "acquired",
		Refined:   "refined",
		Lost:      "lost",
	} {
		if got := tr.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", tr, got, want)
		}
	}
}
