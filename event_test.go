package touchandgo

import (
	"errors"
	"image/color"
	"testing"
	"time"
)

func TestEventString(t *testing.T) {
	tests := []struct {
		name     string
		event    Event
		expected string
	}{
		{
			"Mode",
			Event{Elapsed: 12300 * time.Millisecond, Kind: EventMode, Mode: ModeTakeOff, Throttle: 0.25, Color: Red},
			"@12300 mode mode=take_off throttle=0.250 color=ff0000",
		},
		{
			"Throttle",
			Event{Elapsed: time.Second, Kind: EventThrottle, Mode: ModeSetRpm, Throttle: 0.6},
			"@1000 throttle mode=set_rpm throttle=0.600",
		},
		{
			"Params",
			Event{Kind: EventParams, Params: DefaultParameters()},
			"@0 params delay=30 flight=24 cruise=60",
		},
		{
			"Notice",
			Event{Elapsed: 5 * time.Millisecond, Kind: EventNotice, Note: "parameters not saved: read-only"},
			"@5 notice parameters not saved: read-only",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := tt.event.String()
			if line != tt.expected {
				t.Fatalf("expected %q, got %q", tt.expected, line)
			}

			parsed, err := ParseEvent(line + "\r\n")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if parsed != tt.event {
				t.Errorf("expected %+v, got %+v", tt.event, parsed)
			}
		})
	}
}

func TestParseEventMalformed(t *testing.T) {
	tests := []string{
		"",
		"hello from the board",
		"@abc mode",
		"@10 hover",
		"@10 mode mode=hover",
		"@10 mode throttle",
		"@10 params delay=300",
		"@10 mode color=fff",
		"@10 params unknown=1",
	}

	for _, line := range tests {
		t.Run(line, func(t *testing.T) {
			_, err := ParseEvent(line)
			if !errors.Is(err, ErrMalformedEvent) {
				t.Errorf("expected ErrMalformedEvent, got %v", err)
			}
		})
	}
}

func TestHex(t *testing.T) {
	tests := []struct {
		c        color.RGBA
		expected string
	}{
		{Magenta, "d200ff"},
		{Orange, "dc6400"},
		{Blank, "000000"},
	}
	for _, tt := range tests {
		if got := Hex(tt.c); got != tt.expected {
			t.Errorf("expected %s but got %s", tt.expected, got)
		}
	}
}
