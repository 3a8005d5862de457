package flightlog

import (
	"context"
	"math"
	"time"

	"github.com/calvinmclean/touchandgo"
	"github.com/google/uuid"
)

// Recorder builds Flights from the board's events and stores each one when it ends
type Recorder struct {
	store   *Store
	params  touchandgo.FlightParameters
	last    touchandgo.Mode
	current *Flight
	takeOff time.Duration
}

// NewRecorder records into store
func NewRecorder(store *Store) *Recorder {
	return &Recorder{store: store, params: touchandgo.DefaultParameters()}
}

// HandleEvent implements monitor.Sink
func (r *Recorder) HandleEvent(ctx context.Context, received time.Time, e touchandgo.Event) error {
	switch e.Kind {
	case touchandgo.EventParams:
		r.params = e.Params
		return nil
	case touchandgo.EventThrottle:
		if r.current != nil {
			r.current.MaxThrottle = math.Max(r.current.MaxThrottle, e.Throttle)
		}
		return nil
	case touchandgo.EventMode:
	default:
		return nil
	}

	last := r.last
	r.last = e.Mode

	switch e.Mode {
	case touchandgo.ModeDelay:
		r.current = &Flight{
			ID:        uuid.NewString(),
			StartedAt: received,
			Params:    r.params,
		}
		return nil
	case touchandgo.ModeTakeOff:
		r.takeOff = e.Elapsed
	case touchandgo.ModeStandby:
		if last == touchandgo.ModeDelay {
			return r.finish(ctx, received, OutcomeAborted, 0)
		}
	case touchandgo.ModeFlightComplete:
		outcome := OutcomeCut
		if last == touchandgo.ModeLanding {
			outcome = OutcomeLanded
		}
		return r.finish(ctx, received, outcome, e.Elapsed-r.takeOff)
	}

	if r.current != nil {
		r.current.MaxThrottle = math.Max(r.current.MaxThrottle, e.Throttle)
	}
	return nil
}

func (r *Recorder) finish(ctx context.Context, received time.Time, outcome Outcome, motorTime time.Duration) error {
	if r.current == nil {
		return nil
	}
	f := *r.current
	r.current = nil

	f.EndedAt = received
	f.Outcome = outcome
	if outcome != OutcomeAborted {
		f.MotorTime = motorTime
	}
	return r.store.InsertFlight(ctx, f)
}
