package ui

import (
	"fmt"
	"image/color"
	"time"

	"github.com/calvinmclean/touchandgo"
)

// title is the operator-facing name of a mode
func title(m touchandgo.Mode) string {
	switch m {
	case touchandgo.ModeStandby:
		return "Standby"
	case touchandgo.ModeProgramDelay:
		return "Program Delay"
	case touchandgo.ModeProgramFlight:
		return "Program Flight Time"
	case touchandgo.ModeProgramRpm:
		return "Program RPM"
	case touchandgo.ModeSetRpm:
		return "Set RPM"
	case touchandgo.ModeDelay:
		return "Delay"
	case touchandgo.ModeTakeOff:
		return "Take-off"
	case touchandgo.ModeFlight:
		return "Flight"
	case touchandgo.ModeLanding:
		return "Landing"
	case touchandgo.ModeFlightComplete:
		return "Flight Complete"
	default:
		return "Unknown"
	}
}

// readout is what the window shows about the timer
type readout struct {
	Mode     touchandgo.Mode
	Throttle float64
	Color    color.RGBA
	Params   touchandgo.FlightParameters
	Elapsed  time.Duration
}

func newReadout() readout {
	return readout{
		Mode:   touchandgo.ModeStandby,
		Color:  touchandgo.Green,
		Params: touchandgo.DefaultParameters(),
	}
}

// apply updates the readout from a board event
func (r *readout) apply(e touchandgo.Event) {
	r.Elapsed = e.Elapsed
	switch e.Kind {
	case touchandgo.EventMode:
		r.Mode = e.Mode
		r.Throttle = e.Throttle
		r.Color = e.Color
	case touchandgo.EventThrottle:
		r.Mode = e.Mode
		r.Throttle = e.Throttle
	case touchandgo.EventParams:
		r.Params = e.Params
	}
}

func (r readout) throttleText() string {
	return fmt.Sprintf("%.1f%%", r.Throttle*100)
}

func (r readout) paramsText() string {
	return fmt.Sprintf("Delay %s   Flight %s   Cruise %d%%", r.Params.Delay(), r.Params.FlightDuration(), r.Params.CruiseThrottlePercent)
}

// hint says what the button does in the current mode
func (r readout) hint() string {
	switch {
	case r.Mode == touchandgo.ModeSetRpm:
		return "1 touch faster, 2 slower, 3 save and stop"
	case r.Mode.Programming():
		return "Hold to set, 1 delay, 2 flight time, 3 RPM, 4 exit"
	case r.Mode.InFlight():
		return "Any touch stops the motor"
	case r.Mode == touchandgo.ModeStandby:
		return "Hold 3s to start, 5 touches to program"
	default:
		return ""
	}
}

// logLine formats an event for the window's log
func logLine(e touchandgo.Event) string {
	ts := fmt.Sprintf("%02d:%06.3f", int(e.Elapsed/time.Minute), (e.Elapsed % time.Minute).Seconds())
	switch e.Kind {
	case touchandgo.EventMode:
		return ts + "  " + title(e.Mode)
	case touchandgo.EventParams:
		return ts + "  parameters: " + readout{Params: e.Params}.paramsText()
	case touchandgo.EventNotice:
		return ts + "  " + e.Note
	default:
		return ts + "  throttle " + readout{Throttle: e.Throttle}.throttleText()
	}
}
