package signal

import (
	"reflect"
	"testing"

	"github.com/ayusman/steerlink/internal/gesture"
)

type fakeKeyboard struct {
	events []string
}

func (k *fakeKeyboard) KeyDown(key string) error {
	k.events = append(k.events, "down:"+key)
	return nil
}

func (k *fakeKeyboard) KeyUp(key string) error {
	k.events = append(k.events, "up:"+key)
	return nil
}

func (k *fakeKeyboard) Tap(key string) error {
	k.events = append(k.events, "tap:"+key)
	return nil
}

func (k *fakeKeyboard) take() []string {
	e := k.events
	k.events = nil
	return e
}

func reading(p gesture.Pose, s gesture.Side) *gesture.Reading {
	return &gesture.Reading{Pose: p, Side: s}
}

func TestArrowKeys(t *testing.T) {
	tests := []struct {
		r    gesture.Reading
		want []string
	}{
		{gesture.Reading{Pose: gesture.OpenPalm, Side: gesture.SideLeft}, []string{KeyUp, KeyLeft}},
		{gesture.Reading{Pose: gesture.OpenPalm, Side: gesture.SideRight}, []string{KeyUp, KeyRight}},
		{gesture.Reading{Pose: gesture.OpenPalm, Side: gesture.SideCenter}, []string{KeyUp}},
		{gesture.Reading{Pose: gesture.ClosedFist, Side: gesture.SideLeft}, []string{KeyDown}},
	}

	for _, tt := range tests {
		t.Run(tt.r.Message(), func(t *testing.T) {
			if got := ArrowKeys(tt.r); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ArrowKeys() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeyDriver_Hold(t *testing.T) {
	kb := &fakeKeyboard{}
	d := NewKeyDriver(kb, HoldKeys, nil)

	steps := []struct {
		name string
		r    *gesture.Reading
		want []string
	}{
		{"palm left presses up and left", reading(gesture.OpenPalm, gesture.SideLeft), []string{"down:up", "down:left"}},
		{"same reading is quiet", reading(gesture.OpenPalm, gesture.SideLeft), nil},
		{"palm right swaps left for right", reading(gesture.OpenPalm, gesture.SideRight), []string{"up:left", "down:right"}},
		{"fist releases drive keys", reading(gesture.ClosedFist, gesture.SideRight), []string{"up:up", "up:right", "down:down"}},
		{"no hand releases everything", nil, []string{"up:down"}},
	}

	for _, s := range steps {
		if err := d.Apply(s.r); err != nil {
			t.Fatalf("%s: Apply() error = %v", s.name, err)
		}
		if got := kb.take(); !reflect.DeepEqual(got, s.want) {
			t.Errorf("%s: events = %v, want %v", s.name, got, s.want)
		}
	}
	if len(d.Held()) != 0 {
		t.Errorf("Held() = %v, want none", d.Held())
	}
}

func TestKeyDriver_Press(t *testing.T) {
	kb := &fakeKeyboard{}
	d := NewKeyDriver(kb, PressKeys, nil)

	steps := []struct {
		name string
		r    *gesture.Reading
		want []string
	}{
		{"first reading taps", reading(gesture.OpenPalm, gesture.SideCenter), []string{"tap:up"}},
		{"repeat is quiet", reading(gesture.OpenPalm, gesture.SideCenter), nil},
		{"change taps new keys", reading(gesture.OpenPalm, gesture.SideLeft), []string{"tap:up", "tap:left"}},
		{"hand lost taps nothing", nil, nil},
		{"hand back taps again", reading(gesture.OpenPalm, gesture.SideLeft), []string{"tap:up", "tap:left"}},
	}

	for _, s := range steps {
		if err := d.Apply(s.r); err != nil {
			t.Fatalf("%s: Apply() error = %v", s.name, err)
		}
		if got := kb.take(); !reflect.DeepEqual(got, s.want) {
			t.Errorf("%s: events = %v, want %v", s.name, got, s.want)
		}
	}
}

func TestKeyDriver_Release(t *testing.T) {
	kb := &fakeKeyboard{}
	d := NewKeyDriver(kb, HoldKeys, nil)

	d.Apply(reading(gesture.OpenPalm, gesture.SideRight))
	kb.take()

	if err := d.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	want := []string{"up:up", "up:right"}
	if got := kb.take(); !reflect.DeepEqual(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
	if err := d.Release(); err != nil || len(kb.take()) != 0 {
		t.Error("second Release() should be a no-op")
	}
}

func TestParseKeyMode(t *testing.T) {
	for _, s := range []string{"hold", "press"} {
		if m, err := ParseKeyMode(s); err != nil || string(m) != s {
			t.Errorf("ParseKeyMode(%q) = %q, %v", s, m, err)
		}
	}
	if _, err := ParseKeyMode("toggle"); err == nil {
		t.Error("ParseKeyMode(toggle) should fail")
	}
}
