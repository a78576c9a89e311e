// Package display shows annotated frames to the user.
package display

import "gocv.io/x/gocv"

// Window titles.
const (
	PlateTitle = "Tracking"
	HandTitle  = "Hand Gesture Detection"
)

// Display shows one frame per loop iteration.
type Display interface {
	// Show presents frame and reports whether the user asked to quit.
	Show(frame *gocv.Mat) (quit bool)
	Close() error
}

// Window is an OpenCV highgui window. Pressing q quits.
//
// The native window is opened on the first Show, so it lives on the thread
// that draws into it. Callers off the main goroutine should lock their OS
// thread before the first Show.
type Window struct {
	title string
	win   *gocv.Window
}

// NewWindow returns a window with the given title. Nothing is opened until
// the first frame is shown.
func NewWindow(title string) *Window {
	return &Window{title: title}
}

func (w *Window) Show(frame *gocv.Mat) bool {
	if w.win == nil {
		w.win = gocv.NewWindow(w.title)
	}
	w.win.IMShow(*frame)
	return w.win.WaitKey(1)&0xFF == 'q'
}

func (w *Window) Close() error {
	if w.win == nil {
		return nil
	}
	return w.win.Close()
}

// Headless discards frames and never asks to quit.
type Headless struct{}

func (Headless) Show(*gocv.Mat) bool { return false }
func (Headless) Close() error        { return nil }

// New returns a Window when show is set and Headless otherwise.
func New(show bool, title string) Display {
	if show {
		return NewWindow(title)
	}
	return Headless{}
}
