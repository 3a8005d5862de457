// Package monitor reads the board's serial output on the host. Event lines are parsed
// and handed to sinks such as the flight log; everything is echoed for the operator.
package monitor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/calvinmclean/touchandgo"
)

// Sink receives every event read from the board along with the host time it arrived
type Sink interface {
	HandleEvent(ctx context.Context, received time.Time, e touchandgo.Event) error
}

// SinkFunc adapts a function to Sink
type SinkFunc func(ctx context.Context, received time.Time, e touchandgo.Event) error

func (f SinkFunc) HandleEvent(ctx context.Context, received time.Time, e touchandgo.Event) error {
	return f(ctx, received, e)
}

// Config is what the monitor needs to reach the board and its optional collaborators
type Config struct {
	SerialPort  string
	BaudRate    string
	TWChartAddr string
	SessionName string
}

// Monitor connects a board's serial port to sinks
type Monitor struct {
	port   io.ReadWriter
	sinks  []Sink
	logger *slog.Logger
	now    func() time.Time
}

type Option func(*Monitor)

func WithLogger(logger *slog.Logger) Option {
	return func(m *Monitor) {
		m.logger = logger
	}
}

func WithSinks(sinks ...Sink) Option {
	return func(m *Monitor) {
		m.sinks = append(m.sinks, sinks...)
	}
}

// WithClock replaces time.Now for received timestamps
func WithClock(now func() time.Time) Option {
	return func(m *Monitor) {
		m.now = now
	}
}

// New creates a Monitor on an open port
func New(port io.ReadWriter, opts ...Option) *Monitor {
	m := &Monitor{
		port:   port,
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run forwards console commands from in to the board and writes formatted board
// output to out until the port closes or ctx is cancelled. Sink errors are logged and
// do not stop the monitor. If the port is an io.Closer, Run closes it on cancel and waits
// for the reader to stop; otherwise the caller must close it
func (m *Monitor) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	if in != nil {
		go func() {
			_, err := io.Copy(m.port, in)
			if err != nil {
				m.logger.Warn("error forwarding input", slog.String("error", err.Error()))
			}
		}()
	}

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(m.port)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			// closing the port unblocks the scanner so it can exit before Run returns
			if closer, ok := m.port.(io.Closer); ok {
				_ = closer.Close()
				for range lines {
				}
			}
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						return fmt.Errorf("error reading serial: %w", err)
					}
				default:
				}
				return nil
			}
			err := m.handleLine(ctx, line, out)
			if err != nil {
				return err
			}
		}
	}
}

func (m *Monitor) handleLine(ctx context.Context, line string, out io.Writer) error {
	e, err := touchandgo.ParseEvent(line)
	if err != nil {
		if len(line) > 0 && line[0] == touchandgo.EventPrefix {
			m.logger.Warn("unreadable event", slog.String("line", line), slog.String("error", err.Error()))
		}
		_, err = fmt.Fprintln(out, line)
		return err
	}

	received := m.now()
	_, err = fmt.Fprintln(out, Format(e))
	if err != nil {
		return err
	}

	for _, sink := range m.sinks {
		err := sink.HandleEvent(ctx, received, e)
		if err != nil {
			m.logger.Error("error handling event",
				slog.String("kind", string(e.Kind)),
				slog.String("error", err.Error()),
			)
		}
	}
	return nil
}
