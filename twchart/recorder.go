package twchart

import (
	"context"
	"errors"
	"time"

	"github.com/calvinmclean/touchandgo"
)

type sessionClient interface {
	CreateSession(ctx context.Context, name string, date time.Time) (string, error)
	SetStartTime(ctx context.Context, startTime time.Time) error
	AddEvent(ctx context.Context, note string, now time.Time) error
	AddStage(ctx context.Context, name string, now time.Time) error
	Done(ctx context.Context, now time.Time) error
}

var _ sessionClient = &Client{}

var stageNames = map[touchandgo.Mode]string{
	touchandgo.ModeDelay:   "Delay",
	touchandgo.ModeTakeOff: "Take-off",
	touchandgo.ModeFlight:  "Flight",
	touchandgo.ModeLanding: "Landing",
}

// Recorder turns each flight into a TWChart session with one stage per flight mode
type Recorder struct {
	client sessionClient
	name   string
	active bool
}

// NewRecorder names sessions with name followed by the flight's start time
func NewRecorder(client *Client, name string) *Recorder {
	return &Recorder{client: client, name: name}
}

// HandleEvent implements monitor.Sink
func (r *Recorder) HandleEvent(ctx context.Context, received time.Time, e touchandgo.Event) error {
	switch e.Kind {
	case touchandgo.EventNotice:
		if r.active {
			return r.client.AddEvent(ctx, e.Note, received)
		}
		return nil
	case touchandgo.EventMode:
	default:
		return nil
	}

	switch e.Mode {
	case touchandgo.ModeDelay:
		return r.start(ctx, received)
	case touchandgo.ModeTakeOff, touchandgo.ModeFlight, touchandgo.ModeLanding:
		if !r.active {
			return nil
		}
		return r.client.AddStage(ctx, stageNames[e.Mode], received)
	case touchandgo.ModeStandby:
		if !r.active {
			return nil
		}
		return r.finish(ctx, "Start aborted", received)
	case touchandgo.ModeFlightComplete:
		if !r.active {
			return nil
		}
		return r.finish(ctx, "Motor stopped", received)
	}
	return nil
}

func (r *Recorder) start(ctx context.Context, received time.Time) error {
	name := r.name
	if name == "" {
		name = "Flight"
	}
	name += " " + received.Format("2006-01-02 15:04")

	_, err := r.client.CreateSession(ctx, name, received)
	if err != nil {
		return err
	}
	r.active = true

	return errors.Join(
		r.client.SetStartTime(ctx, received),
		r.client.AddStage(ctx, stageNames[touchandgo.ModeDelay], received),
	)
}

func (r *Recorder) finish(ctx context.Context, note string, received time.Time) error {
	r.active = false
	return errors.Join(
		r.client.AddEvent(ctx, note, received),
		r.client.Done(ctx, received),
	)
}
