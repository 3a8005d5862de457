// Package gesture turns the single button into touch gestures: runs of short touches
// and long touches.
package gesture

import "time"

const (
	// SettleDelay is the pause taken right after a press edge before input is trusted again
	SettleDelay = 20 * time.Millisecond
	// LongTouchThreshold is how long a press must be held to become a long touch
	LongTouchThreshold = 3 * time.Second
	// CommitDelay is how long after the last release a run of short touches is committed
	CommitDelay = 1 * time.Second
)

// State is the detector's memory between ticks. It is owned by the control loop
type State struct {
	TouchActive     bool
	TouchStartTime  time.Duration
	TouchEndTime    time.Duration
	ShortTouchCount uint
	LongTouchActive bool
	// LongTouchJustEnded is only true on the tick the long touch is released
	LongTouchJustEnded bool
}

// Gesture describes what happened during one tick
type Gesture struct {
	// Pressed and Released are the edges of the raw button level
	Pressed  bool
	Released bool
	// CommittedShortCount is non-zero on the tick a run of short touches completes
	CommittedShortCount uint
	LongTouchStarted    bool
	LongTouchEnded      bool
}

// Boundary is true when anything discrete happened this tick
func (g Gesture) Boundary() bool {
	return g.Pressed || g.Released || g.CommittedShortCount > 0 || g.LongTouchStarted || g.LongTouchEnded
}

// Update advances the detector with the latest button level sampled at now. settle is
// called with SettleDelay on a press edge and may block; a nil settle skips the delay
func Update(s *State, pressed bool, now time.Duration, settle func(time.Duration)) Gesture {
	var g Gesture
	s.LongTouchJustEnded = false

	switch {
	case pressed && !s.TouchActive:
		s.TouchActive = true
		s.TouchStartTime = now
		if settle != nil {
			settle(SettleDelay)
		}
		s.ShortTouchCount++
		g.Pressed = true

	case !pressed && s.TouchActive:
		s.TouchActive = false
		s.TouchEndTime = now
		g.Released = true
		// a long touch cancels the whole run so none of its presses are counted
		if s.LongTouchActive {
			s.ShortTouchCount = 0
			s.LongTouchActive = false
			s.LongTouchJustEnded = true
			g.LongTouchEnded = true
		}
	}

	if !s.TouchActive && s.ShortTouchCount > 0 && now-s.TouchEndTime >= CommitDelay {
		g.CommittedShortCount = s.ShortTouchCount
		s.ShortTouchCount = 0
	}

	if s.TouchActive && !s.LongTouchActive && now-s.TouchStartTime >= LongTouchThreshold {
		s.LongTouchActive = true
		g.LongTouchStarted = true
	}

	return g
}
