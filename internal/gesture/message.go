package gesture

import (
	"fmt"
	"strings"
)

// MessageSeparator joins pose and side in a signal message.
const MessageSeparator = " - "

// ParseMessage decodes a "<Pose> - <Side>" payload.
func ParseMessage(msg string) (Reading, error) {
	pose, side, ok := strings.Cut(strings.TrimSpace(msg), MessageSeparator)
	if !ok {
		return Reading{}, fmt.Errorf("malformed gesture message %q", msg)
	}

	r := Reading{Pose: Pose(pose), Side: Side(side)}
	switch r.Pose {
	case OpenPalm, ClosedFist:
	default:
		return Reading{}, fmt.Errorf("unknown pose %q", pose)
	}
	switch r.Side {
	case SideLeft, SideCenter, SideRight:
	default:
		return Reading{}, fmt.Errorf("unknown side %q", side)
	}
	return r, nil
}

// Receiver-side drive constants.
const (
	DriveSpeed = 10.0
	TurnSpeed  = 50.0
)

// Control is a speed/turn command for the driven vehicle.
type Control struct {
	Speed float64 `json:"speed"`
	Turn  float64 `json:"turn"`
}

// Steering turns gesture messages into vehicle controls: an open palm drives
// forward and steers toward its side, anything else stops.
type Steering struct {
	control Control
}

// Apply updates the control from one received message and returns it.
// Unrecognized messages stop the vehicle.
func (s *Steering) Apply(msg string) Control {
	r, err := ParseMessage(msg)
	if err != nil || r.Pose != OpenPalm {
		s.control = Control{}
		return s.control
	}

	s.control.Speed = DriveSpeed
	switch r.Side {
	case SideRight:
		s.control.Turn = TurnSpeed
	case SideLeft:
		s.control.Turn = -TurnSpeed
	default:
		s.control.Turn = 0
	}
	return s.control
}

// Control returns the last computed control.
func (s *Steering) Control() Control {
	return s.control
}
