package touchandgo

import (
	"errors"
	"testing"
)

func TestParseMode(t *testing.T) {
	for m := ModeStandby; m <= ModeFlightComplete; m++ {
		t.Run(m.String(), func(t *testing.T) {
			parsed, err := ParseMode(m.String())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if parsed != m {
				t.Errorf("expected %v, got %v", m, parsed)
			}
		})
	}

	_, err := ParseMode("hover")
	if !errors.Is(err, ErrUnknownMode) {
		t.Errorf("expected ErrUnknownMode, got %v", err)
	}
	if Mode(42).String() != "unknown" {
		t.Errorf("unexpected name for out of range mode: %s", Mode(42))
	}
}

func TestModeGroups(t *testing.T) {
	if !ModeLanding.InFlight() || ModeFlightComplete.InFlight() || ModeStandby.InFlight() {
		t.Error("unexpected InFlight result")
	}
	if !ModeSetRpm.Programming() || ModeDelay.Programming() {
		t.Error("unexpected Programming result")
	}
}

func TestFlightParameters(t *testing.T) {
	p := DefaultParameters()
	if p.Delay().Seconds() != 30 {
		t.Errorf("unexpected delay: %v", p.Delay())
	}
	if p.FlightDuration().Seconds() != 240 {
		t.Errorf("unexpected flight duration: %v", p.FlightDuration())
	}
	if p.CruiseFraction() != 0.6 {
		t.Errorf("unexpected cruise fraction: %v", p.CruiseFraction())
	}

	p.CruiseThrottlePercent = 250
	if p.CruiseFraction() != 1 {
		t.Errorf("expected cruise to be capped, got %v", p.CruiseFraction())
	}
}
