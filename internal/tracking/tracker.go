// Package tracking keeps a lock on one circular target across frames and
// turns its horizontal movement into a direction label.
package tracking

import (
	"fmt"
	"image"

	"github.com/ayusman/steerlink/internal/detector"
)

// Direction is the horizontal movement of the tracked target.
type Direction string

const (
	Left  Direction = "left"
	Right Direction = "right"
	None  Direction = "none"
)

// Default tracker settings.
const (
	DefaultMinRadius          = 15
	DefaultMaxRadius          = 300
	DefaultRefineTolerance    = 0.1
	DefaultDirectionThreshold = 10
)

// Config holds the tracker settings.
type Config struct {
	// MinRadius and MaxRadius bound the full-frame acquisition search.
	MinRadius int
	MaxRadius int

	// RefineTolerance is the fraction the radius may change between frames
	// while refining a lock (0.1 searches r*0.9 .. r*1.1).
	RefineTolerance float64

	// BoundsCheck drops the lock once the target square leaves the frame.
	BoundsCheck bool

	// DirectionThreshold is the horizontal displacement in pixels that must
	// be exceeded before a move counts as left or right.
	DirectionThreshold int
}

// DefaultConfig returns the plate tracking defaults.
func DefaultConfig() Config {
	return Config{
		MinRadius:          DefaultMinRadius,
		MaxRadius:          DefaultMaxRadius,
		RefineTolerance:    DefaultRefineTolerance,
		BoundsCheck:        true,
		DirectionThreshold: DefaultDirectionThreshold,
	}
}

// State is everything the tracker remembers between frames.
// The zero value is UNLOCKED with no previous position.
type State struct {
	Target   detector.Circle
	Locked   bool
	PrevX    int
	HasPrevX bool
}

// Transition names what happened to the lock during one update.
type Transition int

const (
	// Unchanged means the lock state did not change.
	Unchanged Transition = iota
	// Acquired means a full-frame search produced a new lock.
	Acquired
	// Refined means a region search moved the locked target.
	Refined
	// Lost means the target left the frame and the lock was dropped.
	Lost
)

func (t Transition) String() string {
	switch t {
	case Acquired:
		return "acquired"
	case Refined:
		return "refined"
	case Lost:
		return "lost"
	default:
		return "unchanged"
	}
}

// Result is the outcome of one Update.
type Result struct {
	State      State
	Transition Transition

	// Direction is set only when HasDirection is true, which requires a lock
	// after the update and a previous x sample.
	Direction    Direction
	HasDirection bool
}

// Tracker runs the lock state machine. It holds configuration only; all
// per-run state travels through State.
type Tracker struct {
	config Config
}

// New creates a Tracker. Zero radius bounds fall back to the defaults.
func New(config Config) *Tracker {
	if config.MinRadius <= 0 {
		config.MinRadius = DefaultMinRadius
	}
	if config.MaxRadius <= 0 {
		config.MaxRadius = DefaultMaxRadius
	}
	if config.RefineTolerance <= 0 {
		config.RefineTolerance = DefaultRefineTolerance
	}
	return &Tracker{config: config}
}

// Config returns the tracker settings.
func (t *Tracker) Config() Config {
	return t.config
}

// Update advances the state machine by one frame.
//
// UNLOCKED: search the whole frame and lock the largest candidate.
// LOCKED: search a square of side 2r around the target (clipped to the frame)
// for radii within RefineTolerance of r and move the target to the largest
// match; keep it unchanged when nothing is found. Then, with BoundsCheck, drop
// the lock if center ± radius is outside the frame.
//
// A finder error leaves the state untouched and is returned to the caller.
func (t *Tracker) Update(s State, frame image.Rectangle, finder detector.CircleFinder) (Result, error) {
	if !s.Locked {
		return t.acquire(s, frame, finder)
	}

	res := Result{State: s, Transition: Unchanged}

	region := s.Target.Bounds().Intersect(frame)
	if !region.Empty() {
		minR := int(float64(s.Target.Radius) * (1 - t.config.RefineTolerance))
		maxR := int(float64(s.Target.Radius) * (1 + t.config.RefineTolerance))

		circles, err := finder.FindCircles(region, minR, maxR)
		if err != nil {
			return Result{State: s}, fmt.Errorf("refine lock: %w", err)
		}

		if best, ok := detector.Largest(circles); ok {
			res.State.Target = detector.Circle{
				X:      region.Min.X + best.X,
				Y:      region.Min.Y + best.Y,
				Radius: best.Radius,
			}
			res.Transition = Refined
		}
	}

	if t.config.BoundsCheck && OutOfBounds(res.State.Target, frame) {
		return Result{State: State{}, Transition: Lost}, nil
	}

	t.track(&res)
	return res, nil
}

func (t *Tracker) acquire(s State, frame image.Rectangle, finder detector.CircleFinder) (Result, error) {
	circles, err := finder.FindCircles(frame, t.config.MinRadius, t.config.MaxRadius)
	if err != nil {
		return Result{State: s}, fmt.Errorf("acquire lock: %w", err)
	}

	best, ok := detector.Largest(circles)
	if !ok {
		return Result{State: s}, nil
	}

	res := Result{
		State: State{
			Target:   best,
			Locked:   true,
			PrevX:    s.PrevX,
			HasPrevX: s.HasPrevX,
		},
		Transition: Acquired,
	}
	t.track(&res)
	return res, nil
}

// track classifies the move against the previous x and records the new one.
func (t *Tracker) track(res *Result) {
	x := res.State.Target.X
	if res.State.HasPrevX {
		res.Direction = Classify(res.State.PrevX, x, t.config.DirectionThreshold)
		res.HasDirection = true
	}
	res.State.PrevX = x
	res.State.HasPrevX = true
}

// OutOfBounds reports whether the circle's square (center ± radius) reaches
// past the frame. The right and bottom edges are exclusive.
func OutOfBounds(c detector.Circle, frame image.Rectangle) bool {
	return c.X-c.Radius < frame.Min.X ||
		c.X+c.Radius >= frame.Max.X ||
		c.Y-c.Radius < frame.Min.Y ||
		c.Y+c.Radius >= frame.Max.Y
}

// Classify compares two x positions. A displacement strictly greater than
// threshold is a move; anything else is None.
func Classify(prevX, x, threshold int) Direction {
	switch {
	case x < prevX-threshold:
		return Left
	case x > prevX+threshold:
		return Right
	default:
		return None
	}
}
