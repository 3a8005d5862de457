package touchandgo

import (
	"errors"
	"image/color"
	"strconv"
	"strings"
	"time"
)

// EventPrefix starts every event line written to the serial console
const EventPrefix = '@'

// EventKind identifies what an Event reports
type EventKind string

const (
	EventMode     EventKind = "mode"
	EventParams   EventKind = "params"
	EventThrottle EventKind = "throttle"
	EventNotice   EventKind = "notice"
)

var ErrMalformedEvent = errors.New("malformed event")

// Event is a single line of the board's serial output. The firmware writes them and
// host tools parse them back, so both sides share this type
type Event struct {
	Elapsed  time.Duration
	Kind     EventKind
	Mode     Mode
	Throttle float64
	Color    color.RGBA
	Params   FlightParameters
	Note     string
}

// String encodes the Event as a line without the trailing newline, for example:
//
//	@12300 mode mode=take_off throttle=0.250 color=ff0000
func (e Event) String() string {
	b := make([]byte, 0, 64)
	b = append(b, EventPrefix)
	b = strconv.AppendInt(b, e.Elapsed.Milliseconds(), 10)
	b = append(b, ' ')
	b = append(b, e.Kind...)

	switch e.Kind {
	case EventMode, EventThrottle:
		b = append(b, " mode="...)
		b = append(b, e.Mode.String()...)
		b = append(b, " throttle="...)
		b = strconv.AppendFloat(b, e.Throttle, 'f', 3, 64)
		if e.Kind == EventMode {
			b = append(b, " color="...)
			b = appendHex(b, e.Color)
		}
	case EventParams:
		b = append(b, " delay="...)
		b = strconv.AppendUint(b, uint64(e.Params.DelaySeconds), 10)
		b = append(b, " flight="...)
		b = strconv.AppendUint(b, uint64(e.Params.FlightDeciseconds), 10)
		b = append(b, " cruise="...)
		b = strconv.AppendUint(b, uint64(e.Params.CruiseThrottlePercent), 10)
	case EventNotice:
		if e.Note != "" {
			b = append(b, ' ')
			b = append(b, e.Note...)
		}
	}
	return string(b)
}

// ParseEvent decodes a line produced by Event.String. Lines that do not start with
// EventPrefix are not events and return ErrMalformedEvent
func ParseEvent(line string) (Event, error) {
	line = strings.TrimSpace(line)
	if len(line) == 0 || line[0] != EventPrefix {
		return Event{}, ErrMalformedEvent
	}

	head, rest, _ := strings.Cut(line[1:], " ")
	ms, err := strconv.ParseInt(head, 10, 64)
	if err != nil {
		return Event{}, malformed("elapsed " + strconv.Quote(head))
	}

	kind, rest, _ := strings.Cut(rest, " ")
	e := Event{
		Elapsed: time.Duration(ms) * time.Millisecond,
		Kind:    EventKind(kind),
	}

	switch e.Kind {
	case EventNotice:
		e.Note = strings.TrimSpace(rest)
		return e, nil
	case EventMode, EventThrottle, EventParams:
	default:
		return Event{}, malformed("kind " + strconv.Quote(kind))
	}

	for _, field := range strings.Fields(rest) {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			return Event{}, malformed("field " + strconv.Quote(field))
		}
		if err := e.setField(key, value); err != nil {
			return Event{}, err
		}
	}
	return e, nil
}

func (e *Event) setField(key, value string) error {
	var err error
	switch key {
	case "mode":
		e.Mode, err = ParseMode(value)
	case "throttle":
		e.Throttle, err = strconv.ParseFloat(value, 64)
	case "color":
		e.Color, err = parseHex(value)
	case "delay":
		e.Params.DelaySeconds, err = parseUint8(value)
	case "flight":
		e.Params.FlightDeciseconds, err = parseUint8(value)
	case "cruise":
		e.Params.CruiseThrottlePercent, err = parseUint8(value)
	default:
		return malformed("unknown field " + strconv.Quote(key))
	}
	if err != nil {
		return malformed(key + ": " + err.Error())
	}
	return nil
}

func malformed(detail string) error {
	return errors.Join(ErrMalformedEvent, errors.New(detail))
}

func parseUint8(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	return uint8(v), err
}

const hexDigits = "0123456789abcdef"

func appendHex(b []byte, c color.RGBA) []byte {
	for _, v := range [3]uint8{c.R, c.G, c.B} {
		b = append(b, hexDigits[v>>4], hexDigits[v&0xF])
	}
	return b
}

// Hex formats a color as rrggbb
func Hex(c color.RGBA) string {
	return string(appendHex(make([]byte, 0, 6), c))
}

func parseHex(s string) (color.RGBA, error) {
	if len(s) != 6 {
		return color.RGBA{}, errors.New("want 6 hex digits")
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, err
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
