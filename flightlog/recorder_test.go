package flightlog

import (
	"context"
	"testing"
	"time"

	"github.com/calvinmclean/touchandgo"
	"github.com/google/uuid"
)

func modeEvent(elapsed time.Duration, mode touchandgo.Mode, throttle float64) touchandgo.Event {
	return touchandgo.Event{Elapsed: elapsed, Kind: touchandgo.EventMode, Mode: mode, Throttle: throttle}
}

func TestRecorder(t *testing.T) {
	p := touchandgo.FlightParameters{DelaySeconds: 10, FlightDeciseconds: 18, CruiseThrottlePercent: 65}
	start := time.Date(2026, 5, 2, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		events    []touchandgo.Event
		outcome   Outcome
		motorTime time.Duration
		max       float64
	}{
		{
			"Landed",
			[]touchandgo.Event{
				modeEvent(3*time.Second, touchandgo.ModeDelay, 0),
				modeEvent(13*time.Second, touchandgo.ModeTakeOff, 0.25),
				modeEvent(15*time.Second, touchandgo.ModeFlight, 0.65),
				{Elapsed: 100 * time.Second, Kind: touchandgo.EventThrottle, Mode: touchandgo.ModeFlight, Throttle: 0.67},
				modeEvent(194*time.Second, touchandgo.ModeLanding, 0.67),
				modeEvent(198*time.Second, touchandgo.ModeFlightComplete, 0),
			},
			OutcomeLanded,
			185 * time.Second,
			0.67,
		},
		{
			"Cut",
			[]touchandgo.Event{
				modeEvent(3*time.Second, touchandgo.ModeDelay, 0),
				modeEvent(13*time.Second, touchandgo.ModeTakeOff, 0.25),
				modeEvent(14*time.Second, touchandgo.ModeFlightComplete, 0),
			},
			OutcomeCut,
			time.Second,
			0.25,
		},
		{
			"Aborted",
			[]touchandgo.Event{
				modeEvent(3*time.Second, touchandgo.ModeDelay, 0),
				modeEvent(5*time.Second, touchandgo.ModeStandby, 0),
			},
			OutcomeAborted,
			0,
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := openStore(t)
			r := NewRecorder(store)
			ctx := context.Background()

			err := r.HandleEvent(ctx, start, touchandgo.Event{Kind: touchandgo.EventParams, Params: p})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, e := range tt.events {
				err := r.HandleEvent(ctx, start.Add(e.Elapsed), e)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}

			flights, err := store.ListFlights(ctx, 0)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(flights) != 1 {
				t.Fatalf("expected 1 flight, got %d", len(flights))
			}

			f := flights[0]
			if f.Outcome != tt.outcome || f.MotorTime != tt.motorTime || f.MaxThrottle != tt.max {
				t.Errorf("unexpected flight: %+v", f)
			}
			if f.Params != p {
				t.Errorf("unexpected params: %+v", f.Params)
			}
			if !f.StartedAt.Equal(start.Add(3 * time.Second)) {
				t.Errorf("unexpected start: %v", f.StartedAt)
			}
			if _, err := uuid.Parse(f.ID); err != nil {
				t.Errorf("expected uuid id, got %q", f.ID)
			}
		})
	}
}

func TestRecorderIgnoresProgramming(t *testing.T) {
	store := openStore(t)
	r := NewRecorder(store)
	ctx := context.Background()

	for _, mode := range []touchandgo.Mode{touchandgo.ModeProgramDelay, touchandgo.ModeProgramRpm, touchandgo.ModeSetRpm, touchandgo.ModeStandby} {
		if err := r.HandleEvent(ctx, time.Now(), modeEvent(0, mode, 0.5)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	flights, err := store.ListFlights(ctx, 0)
	if err != nil || len(flights) != 0 {
		t.Errorf("expected no flights, got %d (%v)", len(flights), err)
	}
}
