package ui

import (
	"sync/atomic"

	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// holdButton is a Button that reports whether it is being held down, for use as the
// timer's pushbutton
type holdButton struct {
	widget.Button

	mouse atomic.Bool
	key   atomic.Bool
}

func newHoldButton(label string) *holdButton {
	b := &holdButton{}
	b.Text = label
	b.ExtendBaseWidget(b)
	return b
}

// MouseDown implements desktop.Mouseable
func (b *holdButton) MouseDown(*desktop.MouseEvent) {
	b.mouse.Store(true)
}

// MouseUp implements desktop.Mouseable
func (b *holdButton) MouseUp(*desktop.MouseEvent) {
	b.mouse.Store(false)
}

// SetKey is driven by the window's key handlers so the space bar works like the button
func (b *holdButton) SetKey(down bool) {
	b.key.Store(down)
}

// Pressed is safe to call from any goroutine
func (b *holdButton) Pressed() bool {
	return b.mouse.Load() || b.key.Load()
}
