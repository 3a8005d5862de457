// Package feedback drives the status LED: a solid or flashing color per mode. The flash
// count doubles as the readout an operator counts while programming a parameter.
package feedback

import (
	"image/color"
	"time"

	"github.com/calvinmclean/touchandgo"
)

// Common flash intervals
const (
	Solid     = time.Duration(0)
	Program   = 400 * time.Millisecond
	Warning   = 50 * time.Millisecond
	SetRpm    = 200 * time.Millisecond
	Countdown = 500 * time.Millisecond
	Flying    = 1 * time.Second
	Landing   = 250 * time.Millisecond
)

// State is the signaler's memory between ticks
type State struct {
	// Color is what the LED is currently showing
	Color      color.RGBA
	Visible    bool
	LastFlash  time.Duration
	FlashCount uint
}

// Render updates s for the requested color and flash interval at now, and returns the
// color the LED should show. An interval of 0 is a solid color. Otherwise the LED
// toggles between c and off every interval; each off->on toggle increments FlashCount
// when countFlashes is set
func Render(s *State, c color.RGBA, interval, now time.Duration, countFlashes bool) color.RGBA {
	if interval == Solid {
		s.Color = c
		s.Visible = true
		return s.Color
	}

	if now-s.LastFlash < interval {
		return s.Color
	}

	if s.Visible {
		s.Color = touchandgo.Blank
		s.Visible = false
	} else {
		s.Color = c
		s.Visible = true
		if countFlashes {
			s.FlashCount++
		}
	}
	s.LastFlash = now

	return s.Color
}
