package signal

import (
	"errors"
	"fmt"

	"github.com/ayusman/steerlink/internal/gesture"
)

// Arrow key names understood by Keyboard implementations.
const (
	KeyLeft  = "left"
	KeyRight = "right"
	KeyUp    = "up"
	KeyDown  = "down"
)

// Keyboard issues simulated key events.
type Keyboard interface {
	KeyDown(key string) error
	KeyUp(key string) error
	Tap(key string) error
}

// KeyMode selects how readings turn into key events.
type KeyMode string

const (
	// HoldKeys keeps keys pressed while the reading asks for them.
	HoldKeys KeyMode = "hold"
	// PressKeys taps the keys once each time the reading changes.
	PressKeys KeyMode = "press"
)

// ParseKeyMode validates a key mode name.
func ParseKeyMode(s string) (KeyMode, error) {
	switch KeyMode(s) {
	case HoldKeys, PressKeys:
		return KeyMode(s), nil
	default:
		return "", fmt.Errorf("unknown key mode %q (want hold or press)", s)
	}
}

// KeyMap returns the keys a reading asks for.
type KeyMap func(r gesture.Reading) []string

// ArrowKeys is the default mapping: an open palm accelerates and steers
// toward its side, a closed fist brakes.
func ArrowKeys(r gesture.Reading) []string {
	if r.Pose != gesture.OpenPalm {
		return []string{KeyDown}
	}
	switch r.Side {
	case gesture.SideLeft:
		return []string{KeyUp, KeyLeft}
	case gesture.SideRight:
		return []string{KeyUp, KeyRight}
	default:
		return []string{KeyUp}
	}
}

// KeyDriver turns a stream of readings into key events.
type KeyDriver struct {
	kb   Keyboard
	mode KeyMode
	keys KeyMap

	held []string
	last *gesture.Reading
}

// NewKeyDriver creates a KeyDriver. A nil keys uses ArrowKeys.
func NewKeyDriver(kb Keyboard, mode KeyMode, keys KeyMap) *KeyDriver {
	if keys == nil {
		keys = ArrowKeys
	}
	return &KeyDriver{kb: kb, mode: mode, keys: keys}
}

// Apply handles the reading for the current frame. A nil reading means no
// hand was seen: held keys are released.
func (d *KeyDriver) Apply(r *gesture.Reading) error {
	var want []string
	if r != nil {
		want = d.keys(*r)
	}

	if d.mode == PressKeys {
		return d.press(r, want)
	}
	return d.hold(want)
}

func (d *KeyDriver) hold(want []string) error {
	var errs []error
	for _, k := range d.held {
		if !contains(want, k) {
			if err := d.kb.KeyUp(k); err != nil {
				errs = append(errs, fmt.Errorf("release %s: %w", k, err))
			}
		}
	}
	for _, k := range want {
		if !contains(d.held, k) {
			if err := d.kb.KeyDown(k); err != nil {
				errs = append(errs, fmt.Errorf("press %s: %w", k, err))
			}
		}
	}
	d.held = append(d.held[:0], want...)
	return errors.Join(errs...)
}

func (d *KeyDriver) press(r *gesture.Reading, want []string) error {
	changed := (r == nil) != (d.last == nil) || (r != nil && *r != *d.last)
	if r != nil {
		cp := *r
		d.last = &cp
	} else {
		d.last = nil
	}
	if !changed {
		return nil
	}

	var errs []error
	for _, k := range want {
		if err := d.kb.Tap(k); err != nil {
			errs = append(errs, fmt.Errorf("tap %s: %w", k, err))
		}
	}
	return errors.Join(errs...)
}

// Held returns the keys currently held down.
func (d *KeyDriver) Held() []string {
	return append([]string(nil), d.held...)
}

// Release lets go of every held key.
func (d *KeyDriver) Release() error {
	var errs []error
	for _, k := range d.held {
		if err := d.kb.KeyUp(k); err != nil {
			errs = append(errs, fmt.Errorf("release %s: %w", k, err))
		}
	}
	d.held = d.held[:0]
	d.last = nil
	return errors.Join(errs...)
}

func contains(keys []string, k string) bool {
	for _, v := range keys {
		if v == k {
			return true
		}
	}
	return false
}
