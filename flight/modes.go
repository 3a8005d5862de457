package flight

import (
	"math"
	"time"

	"github.com/calvinmclean/touchandgo"
	"github.com/calvinmclean/touchandgo/gesture"
	"github.com/calvinmclean/touchandgo/ramp"
)

const (
	// IdleThrottle is where the motor starts for set-up and take-off, and where landing
	// ramps down to
	IdleThrottle = 0.25
	// LandingCutoff stops the motor at the end of landing
	LandingCutoff = 0.22
	// ThrottleTrim is the adjustment made by one or two touches in SetRpm
	ThrottleTrim = 0.01

	WarmUpWindow  = 2 * time.Second
	TakeOffWindow = 2 * time.Second
	LandingWindow = 4 * time.Second

	// LandingLead is how long before the end of the flight landing begins
	LandingLead = 1 * time.Second

	programmingTouches = 5
	setRpmExitTouches  = 3
)

func (c *Controller) step(g gesture.Gesture) {
	switch c.state.Mode {
	case touchandgo.ModeStandby:
		c.standby(g)
	case touchandgo.ModeProgramDelay:
		c.programDelay(g)
	case touchandgo.ModeProgramFlight:
		c.programFlight(g)
	case touchandgo.ModeProgramRpm:
		c.programRpm(g)
	case touchandgo.ModeSetRpm:
		c.setRpm(g)
	case touchandgo.ModeDelay:
		c.delay(g)
	case touchandgo.ModeTakeOff:
		c.takeOff()
	case touchandgo.ModeFlight:
		c.flight()
	case touchandgo.ModeLanding:
		c.landing()
	case touchandgo.ModeFlightComplete:
		// latched until power is removed
	default:
		c.enter(touchandgo.ModeFlightComplete)
	}
}

func (c *Controller) standby(g gesture.Gesture) {
	s := &c.state
	switch {
	case g.LongTouchStarted:
		s.ModeStart = c.now
		s.AbortArmed = false
		c.enter(touchandgo.ModeDelay)
	case g.CommittedShortCount == programmingTouches:
		c.enter(touchandgo.ModeProgramDelay)
	}
}

// programSelect moves between the programming modes: 1 touch for delay, 2 for flight
// time, 3 for RPM and 4 to go back to Standby
func (c *Controller) programSelect(count uint) {
	switch count {
	case 1:
		c.enter(touchandgo.ModeProgramDelay)
	case 2:
		c.enter(touchandgo.ModeProgramFlight)
	case 3:
		c.enter(touchandgo.ModeProgramRpm)
	case 4:
		c.enter(touchandgo.ModeStandby)
	}
}

func (c *Controller) programDelay(g gesture.Gesture) {
	if g.LongTouchEnded {
		// one flash is one second of delay
		c.state.Params.DelaySeconds = c.takeFlashCount()
		c.commit()
		return
	}
	c.programSelect(g.CommittedShortCount)
}

func (c *Controller) programFlight(g gesture.Gesture) {
	if g.LongTouchEnded {
		// one flash is ten seconds of flight
		c.state.Params.FlightDeciseconds = c.takeFlashCount()
		c.commit()
		return
	}
	c.programSelect(g.CommittedShortCount)
}

func (c *Controller) takeFlashCount() uint8 {
	n := c.state.Feedback.FlashCount
	c.state.Feedback.FlashCount = 0
	if n > math.MaxUint8 {
		return math.MaxUint8
	}
	return uint8(n)
}

func (c *Controller) programRpm(g gesture.Gesture) {
	s := &c.state
	if g.LongTouchStarted {
		s.Ramp = ramp.Start(IdleThrottle, s.Params.CruiseFraction(), WarmUpWindow, c.now)
		s.Throttle = IdleThrottle
		s.RampDone = false
		c.enter(touchandgo.ModeSetRpm)
		return
	}
	c.programSelect(g.CommittedShortCount)
}

func (c *Controller) setRpm(g gesture.Gesture) {
	s := &c.state

	// Three touches stop the motor without waiting for the short count to commit
	if s.Gesture.ShortTouchCount == setRpmExitTouches && !s.Gesture.LongTouchActive {
		s.Params.CruiseThrottlePercent = uint8(math.Round(ramp.Clamp(s.Throttle) * 100))
		c.commit()
		s.Throttle = 0
		s.RampDone = false
		c.enter(touchandgo.ModeProgramRpm)
		return
	}

	if !s.RampDone {
		s.Throttle, s.RampDone = s.Ramp.Step(s.Throttle, c.now)
	}

	switch g.CommittedShortCount {
	case 1:
		s.Throttle = ramp.Clamp(s.Throttle + ThrottleTrim)
	case 2:
		s.Throttle = ramp.Clamp(s.Throttle - ThrottleTrim)
	}
}

func (c *Controller) delay(g gesture.Gesture) {
	s := &c.state
	if g.LongTouchEnded {
		s.AbortArmed = true
	}

	if s.AbortArmed && s.Gesture.TouchActive {
		c.enter(touchandgo.ModeStandby)
		return
	}

	if c.now-s.ModeStart >= s.Params.Delay() {
		s.Ramp = ramp.Start(IdleThrottle, s.Params.CruiseFraction(), TakeOffWindow, c.now)
		s.Throttle = IdleThrottle
		c.enter(touchandgo.ModeTakeOff)
	}
}

func (c *Controller) takeOff() {
	s := &c.state
	if s.Gesture.TouchActive {
		c.enter(touchandgo.ModeFlightComplete)
		return
	}

	var reached bool
	s.Throttle, reached = s.Ramp.Step(s.Throttle, c.now)
	if reached {
		s.ModeStart = c.now
		s.Compensation = c.now
		c.enter(touchandgo.ModeFlight)
	}
}

func (c *Controller) flight() {
	s := &c.state
	if s.Gesture.TouchActive {
		c.enter(touchandgo.ModeFlightComplete)
		return
	}

	s.Throttle, s.Compensation = ramp.Compensate(s.Throttle, c.now, s.Compensation, s.Params.FlightDeciseconds)

	if c.now-s.ModeStart+LandingLead >= s.Params.FlightDuration() {
		s.Ramp = landingRamp(s.Throttle, c.now)
		c.enter(touchandgo.ModeLanding)
	}
}

// landingRamp heads down at a slope that takes throttle to IdleThrottle across
// LandingWindow, stopping at LandingCutoff
func landingRamp(throttle float64, now time.Duration) ramp.Ramp {
	inc := -math.Abs(ramp.Increment(throttle, IdleThrottle, LandingWindow))
	if inc == 0 {
		inc = -math.Abs(ramp.Increment(IdleThrottle, LandingCutoff, LandingWindow))
	}
	return ramp.Ramp{
		Target:     LandingCutoff,
		Increment:  inc,
		LastUpdate: now,
	}
}

func (c *Controller) landing() {
	s := &c.state
	if s.Gesture.TouchActive {
		c.enter(touchandgo.ModeFlightComplete)
		return
	}

	var reached bool
	s.Throttle, reached = s.Ramp.Step(s.Throttle, c.now)
	if reached {
		c.enter(touchandgo.ModeFlightComplete)
	}
}
