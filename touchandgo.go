package touchandgo

import (
	"errors"
	"fmt"
	"image/color"
	"time"
)

// Mode is the current state of the flight timer. Exactly one Mode is active at a time
type Mode int

const (
	ModeStandby Mode = iota
	ModeProgramDelay
	ModeProgramFlight
	ModeProgramRpm
	ModeSetRpm
	ModeDelay
	ModeTakeOff
	ModeFlight
	ModeLanding
	ModeFlightComplete
)

var ErrUnknownMode = errors.New("unknown mode")

var modeNames = [...]string{
	ModeStandby:        "standby",
	ModeProgramDelay:   "program_delay",
	ModeProgramFlight:  "program_flight",
	ModeProgramRpm:     "program_rpm",
	ModeSetRpm:         "set_rpm",
	ModeDelay:          "delay",
	ModeTakeOff:        "take_off",
	ModeFlight:         "flight",
	ModeLanding:        "landing",
	ModeFlightComplete: "flight_complete",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "unknown"
	}
	return modeNames[m]
}

// ParseMode returns the Mode for a name produced by Mode.String
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return Mode(m), nil
		}
	}
	return ModeStandby, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// InFlight is true for the modes where any touch aborts the flight
func (m Mode) InFlight() bool {
	switch m {
	case ModeDelay, ModeTakeOff, ModeFlight, ModeLanding:
		return true
	default:
		return false
	}
}

// Programming is true for the modes entered through the five-touch gesture
func (m Mode) Programming() bool {
	switch m {
	case ModeProgramDelay, ModeProgramFlight, ModeProgramRpm, ModeSetRpm:
		return true
	default:
		return false
	}
}

// LED palette. These are white-balanced for the on-board NeoPixel except pure R/G/B
var (
	Red     = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Yellow  = color.RGBA{R: 220, G: 255, B: 0, A: 255}
	Orange  = color.RGBA{R: 220, G: 100, B: 0, A: 255}
	Green   = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Cyan    = color.RGBA{R: 0, G: 200, B: 255, A: 255}
	Blue    = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	Magenta = color.RGBA{R: 210, G: 0, B: 255, A: 255}
	White   = color.RGBA{R: 180, G: 220, B: 255, A: 255}
	Blank   = color.RGBA{A: 255}
)

// FlightParameters are the three values that can be programmed in the field with the button
type FlightParameters struct {
	DelaySeconds          uint8
	FlightDeciseconds     uint8 // units of 10s
	CruiseThrottlePercent uint8 // 0-100
}

// DefaultParameters are used when no record has been saved yet
func DefaultParameters() FlightParameters {
	return FlightParameters{
		DelaySeconds:          30,
		FlightDeciseconds:     24,
		CruiseThrottlePercent: 60,
	}
}

// Delay is the time between starting the timer and take-off
func (p FlightParameters) Delay() time.Duration {
	return time.Duration(p.DelaySeconds) * time.Second
}

// FlightDuration is the time from reaching cruise throttle to the end of the flight
func (p FlightParameters) FlightDuration() time.Duration {
	return time.Duration(p.FlightDeciseconds) * 10 * time.Second
}

// CruiseFraction converts CruiseThrottlePercent into a throttle fraction, capped at 1.0
func (p FlightParameters) CruiseFraction() float64 {
	if p.CruiseThrottlePercent > 100 {
		return 1
	}
	return float64(p.CruiseThrottlePercent) / 100
}
