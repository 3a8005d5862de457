// Package flight is the control loop of the timer. A Controller owns every piece of
// mutable state and advances it one tick at a time: gesture detection, one mode
// transition, the throttle output and the LED.
package flight

import (
	"image/color"
	"log/slog"
	"time"

	"github.com/calvinmclean/touchandgo"
	"github.com/calvinmclean/touchandgo/feedback"
	"github.com/calvinmclean/touchandgo/gesture"
	"github.com/calvinmclean/touchandgo/params"
	"github.com/calvinmclean/touchandgo/ramp"
)

// State is everything the control loop remembers between ticks
type State struct {
	Mode     touchandgo.Mode
	Gesture  gesture.State
	Params   touchandgo.FlightParameters
	Throttle float64
	Ramp     ramp.Ramp
	Feedback feedback.State

	// RampDone is set once the SetRpm soft start has reached cruise throttle
	RampDone bool
	// ModeStart is when Delay or Flight was entered
	ModeStart time.Duration
	// Compensation is the voltage compensation checkpoint during Flight
	Compensation time.Duration
	// AbortArmed is set in Delay once the long touch that started the timer is released
	AbortArmed bool
}

// Output is the result of one tick
type Output struct {
	Mode     touchandgo.Mode
	Throttle float64
	Color    color.RGBA
	Gesture  gesture.Gesture
}

// Controller runs the flight timer
type Controller struct {
	state   State
	store   *params.Store
	settle  func(time.Duration)
	logger  *slog.Logger
	onEvent func(touchandgo.Event)
	verbose bool
	now     time.Duration
}

// Option configures a Controller
type Option func(*Controller)

// WithLogger sets the logger used for storage notices and transitions
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithSettle sets the function used for the debounce pause after a press edge. The
// firmware passes time.Sleep
func WithSettle(settle func(time.Duration)) Option {
	return func(c *Controller) {
		c.settle = settle
	}
}

// WithEventHandler receives an Event for every transition, parameter commit and notice
func WithEventHandler(f func(touchandgo.Event)) Option {
	return func(c *Controller) {
		c.onEvent = f
	}
}

// New creates a Controller in Standby with parameters loaded from store. Storage
// failures are logged and the loaded (or default) parameters are used anyway
func New(store *params.Store, opts ...Option) *Controller {
	c := &Controller{
		store:  store,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}

	p, err := store.Load()
	if err != nil {
		c.notice("using parameters without saving", err)
	}
	c.state.Params = p
	c.state.Mode = touchandgo.ModeStandby
	c.state.Feedback.Visible = true
	c.emit(touchandgo.Event{Kind: touchandgo.EventParams, Params: p})

	return c
}

// Tick processes one button sample taken at now, which must not decrease between calls.
// It returns the throttle fraction and LED color to output
func (c *Controller) Tick(now time.Duration, pressed bool) Output {
	s := &c.state
	c.now = now

	g := gesture.Update(&s.Gesture, pressed, now, c.settle)
	if g.LongTouchStarted {
		s.Feedback.FlashCount = 0
	}

	before := s.Throttle
	c.step(g)

	if s.Mode == touchandgo.ModeFlightComplete {
		s.Throttle = 0
	}
	if c.verbose && s.Throttle != before {
		c.emit(touchandgo.Event{Kind: touchandgo.EventThrottle, Mode: s.Mode, Throttle: s.Throttle})
	}

	ledColor, interval := Indicator(s, now)
	rendered := feedback.Render(&s.Feedback, ledColor, interval, now, s.Gesture.LongTouchActive)

	return Output{
		Mode:     s.Mode,
		Throttle: s.Throttle,
		Color:    rendered,
		Gesture:  g,
	}
}

// State returns a copy of the current state
func (c *Controller) State() State {
	return c.state
}

// Elapsed is the time of the latest Tick
func (c *Controller) Elapsed() time.Duration {
	return c.now
}

// Parameters returns the in-memory parameters, which are authoritative whether or not
// they could be saved
func (c *Controller) Parameters() touchandgo.FlightParameters {
	return c.state.Params
}

// SetVerbose enables throttle events on every throttle change
func (c *Controller) SetVerbose(v bool) {
	c.verbose = v
}

// Verbose reports whether throttle events are enabled
func (c *Controller) Verbose() bool {
	return c.verbose
}

func (c *Controller) enter(mode touchandgo.Mode) {
	from := c.state.Mode
	c.state.Mode = mode
	if mode == touchandgo.ModeFlightComplete {
		c.state.Throttle = 0
	}

	c.logger.Debug("mode changed",
		slog.String("from", from.String()),
		slog.String("to", mode.String()),
		slog.Duration("elapsed", c.now),
	)

	ledColor, _ := Indicator(&c.state, c.now)
	c.emit(touchandgo.Event{
		Kind:     touchandgo.EventMode,
		Mode:     mode,
		Throttle: c.state.Throttle,
		Color:    ledColor,
	})
}

func (c *Controller) commit() {
	p := c.state.Params
	if err := c.store.Commit(p); err != nil {
		c.notice("parameters not saved", err)
	}
	c.logger.Info("parameters committed",
		slog.Int("delay_seconds", int(p.DelaySeconds)),
		slog.Int("flight_deciseconds", int(p.FlightDeciseconds)),
		slog.Int("cruise_throttle_percent", int(p.CruiseThrottlePercent)),
	)
	c.emit(touchandgo.Event{Kind: touchandgo.EventParams, Params: p})
}

func (c *Controller) notice(msg string, err error) {
	c.logger.Warn(msg, slog.String("error", err.Error()))
	c.emit(touchandgo.Event{Kind: touchandgo.EventNotice, Note: msg + ": " + err.Error()})
}

func (c *Controller) emit(e touchandgo.Event) {
	if c.onEvent == nil {
		return
	}
	e.Elapsed = c.now
	c.onEvent(e)
}
