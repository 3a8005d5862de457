package flight

import (
	"image/color"
	"time"

	"github.com/calvinmclean/touchandgo"
	"github.com/calvinmclean/touchandgo/feedback"
)

const (
	// DelayWarning is the final part of the delay when the LED warns of the motor start
	DelayWarning = 5 * time.Second
	// FlightWarning is how long before landing the LED warns that the flight is ending
	FlightWarning = 10 * time.Second
	// RpmStartWarning is how long a press is held in ProgramRpm before the LED warns of
	// the motor starting
	RpmStartWarning = 200 * time.Millisecond
)

// Indicator returns the LED color and flash interval for the current mode
func Indicator(s *State, now time.Duration) (color.RGBA, time.Duration) {
	switch s.Mode {
	case touchandgo.ModeStandby:
		return touchandgo.Green, feedback.Solid
	case touchandgo.ModeProgramDelay:
		return touchandgo.Yellow, programInterval(s)
	case touchandgo.ModeProgramFlight:
		return touchandgo.Cyan, programInterval(s)
	case touchandgo.ModeProgramRpm:
		if s.Gesture.TouchActive && now-s.Gesture.TouchStartTime > RpmStartWarning {
			return touchandgo.Magenta, feedback.Warning
		}
		return touchandgo.Magenta, feedback.Solid
	case touchandgo.ModeSetRpm:
		return touchandgo.Magenta, feedback.SetRpm
	case touchandgo.ModeDelay:
		if now-s.ModeStart+DelayWarning > s.Params.Delay() {
			return touchandgo.White, feedback.Warning
		}
		return touchandgo.Blue, feedback.Countdown
	case touchandgo.ModeTakeOff:
		return touchandgo.Red, feedback.Flying
	case touchandgo.ModeFlight:
		if now-s.ModeStart+LandingLead+FlightWarning > s.Params.FlightDuration() {
			return touchandgo.White, feedback.Warning
		}
		return touchandgo.Red, feedback.Flying
	case touchandgo.ModeLanding:
		return touchandgo.Red, feedback.Landing
	default:
		return touchandgo.Blank, feedback.Solid
	}
}

// programInterval flashes while a long touch is held so the operator can count
func programInterval(s *State) time.Duration {
	if s.Gesture.LongTouchActive {
		return feedback.Program
	}
	return feedback.Solid
}
