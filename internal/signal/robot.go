package signal

import "github.com/go-vgo/robotgo"

// RobotKeyboard sends real key events through robotgo.
type RobotKeyboard struct{}

// NewRobotKeyboard creates a RobotKeyboard.
func NewRobotKeyboard() *RobotKeyboard {
	return &RobotKeyboard{}
}

// KeyDown presses and holds key.
func (RobotKeyboard) KeyDown(key string) error {
	return robotgo.KeyToggle(key, "down")
}

// KeyUp releases key.
func (RobotKeyboard) KeyUp(key string) error {
	return robotgo.KeyToggle(key, "up")
}

// Tap presses and releases key.
func (RobotKeyboard) Tap(key string) error {
	return robotgo.KeyTap(key)
}
