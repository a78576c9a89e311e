// Package tray puts an optional system tray menu next to the hand loop:
// pause or resume signal emission, see the last signal, open the monitor,
// quit.
package tray

import (
	"sync"

	"github.com/getlantern/systray"
)

const (
	enabledTitle  = "● Sending"
	disabledTitle = "○ Paused"
)

// Tray is the system tray menu.
type Tray struct {
	title     string
	onToggle  func(enabled bool)
	onMonitor func()
	onQuit    func()
	enabled   bool
	last      string
	mu        sync.RWMutex

	menuToggle *systray.MenuItem
	menuLast   *systray.MenuItem
}

// New creates a Tray with emission enabled.
func New(title string) *Tray {
	return &Tray{
		title:   title,
		enabled: true,
	}
}

// OnToggle sets the callback run after emission is paused or resumed.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnMonitor sets the callback for the "Open Monitor" item. Without one the
// item is not shown.
func (t *Tray) OnMonitor(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onMonitor = fn
}

// OnQuit sets the callback run when Quit is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the tray. It blocks until Quit and must be called from the
// main goroutine.
func (t *Tray) Run() {
	systray.Run(t.onReady, func() {})
}

// Quit removes the tray, making Run return.
func (t *Tray) Quit() {
	systray.Quit()
}

func (t *Tray) onReady() {
	systray.SetTitle(t.title)
	systray.SetTooltip(t.title + " gesture steering")

	t.mu.Lock()
	t.menuToggle = systray.AddMenuItem(toggleTitle(t.enabled), "Pause or resume sending signals")
	systray.AddSeparator()
	t.menuLast = systray.AddMenuItem(lastTitle(t.last), "Last signal sent")
	t.menuLast.Disable()
	hasMonitor := t.onMonitor != nil
	t.mu.Unlock()

	systray.AddSeparator()
	var monitorCh chan struct{}
	if hasMonitor {
		monitorCh = systray.AddMenuItem("Open Monitor...", "Open the monitor in a browser").ClickedCh
		systray.AddSeparator()
	}
	menuQuit := systray.AddMenuItem("Quit", "Quit "+t.title)

	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.Toggle()
			case <-monitorCh:
				t.handleMonitor()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

// Toggle flips the enabled state and runs the toggle callback.
func (t *Tray) Toggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled
	if t.menuToggle != nil {
		t.menuToggle.SetTitle(toggleTitle(enabled))
	}
	callback := t.onToggle
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(enabled)
	}
}

func (t *Tray) handleMonitor() {
	t.mu.RLock()
	callback := t.onMonitor
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
	systray.Quit()
}

// SetLastSignal records the last emitted payload and shows it in the menu.
func (t *Tray) SetLastSignal(payload string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if payload == t.last {
		return
	}
	t.last = payload
	if t.menuLast != nil {
		t.menuLast.SetTitle(lastTitle(payload))
	}
}

// LastSignal returns the last recorded payload.
func (t *Tray) LastSignal() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.last
}

// IsEnabled reports whether signals should be sent.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}

func toggleTitle(enabled bool) string {
	if enabled {
		return enabledTitle
	}
	return disabledTitle
}

func lastTitle(payload string) string {
	if payload == "" {
		return "Last: none"
	}
	return "Last: " + payload
}
