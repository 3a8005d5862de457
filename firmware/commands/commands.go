// Package commands is the diagnostic console on the board's serial port. It only
// reports on the timer and can never change what the motor does.
package commands

import (
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/calvinmclean/touchandgo/flight"
)

type Command struct {
	Flag        byte
	Run         func(Controller, io.Writer) error
	Description string
}

// Controller is the running timer as seen from the console
type Controller interface {
	State() flight.State
	Elapsed() time.Duration
	SetVerbose(bool)
	Verbose() bool
}

// Console is the serial link the commands are read from and answered on
type Console interface {
	io.Writer
	io.ByteReader
	Buffered() int
}

var ErrUnknownCommand = errors.New("unknown command")

var (
	DebugCommand = &Command{
		Flag: 'D',
		Run: func(c Controller, w io.Writer) error {
			s := c.State()
			line := ts(c.Elapsed()) + " mode=" + s.Mode.String() +
				" throttle=" + strconv.FormatFloat(s.Throttle, 'f', 3, 64) +
				" touch=" + strconv.FormatBool(s.Gesture.TouchActive) +
				" count=" + strconv.FormatUint(uint64(s.Gesture.ShortTouchCount), 10)
			return writeLine(w, line)
		},
		Description: "Print the current mode, throttle and touch state.",
	}
	ParametersCommand = &Command{
		Flag: 'P',
		Run: func(c Controller, w io.Writer) error {
			p := c.State().Params
			line := "delay=" + p.Delay().String() +
				" flight=" + p.FlightDuration().String() +
				" cruise=" + strconv.Itoa(int(p.CruiseThrottlePercent)) + "%"
			return writeLine(w, line)
		},
		Description: "Print the flight parameters in use.",
	}
	VerboseCommand = &Command{
		Flag: 'V',
		Run: func(c Controller, w io.Writer) error {
			c.SetVerbose(!c.Verbose())
			return writeLine(w, "verbose="+strconv.FormatBool(c.Verbose()))
		},
		Description: "Toggle throttle events on every throttle change.",
	}
	HelpCommand = &Command{
		Flag:        'H',
		Description: "Show all available commands and their descriptions.",
		Run: func(c Controller, w io.Writer) error {
			err := writeLine(w, "Available Commands:")
			for _, cmd := range commands {
				if err != nil {
					return err
				}
				err = writeLine(w, string(cmd.Flag)+": "+cmd.Description)
			}
			return err
		},
	}
)

var commands = []*Command{
	DebugCommand,
	ParametersCommand,
	VerboseCommand,
}

var cmdMap = func() map[byte]*Command {
	m := map[byte]*Command{
		HelpCommand.Flag: HelpCommand,
	}
	for _, cmd := range commands {
		m[cmd.Flag] = cmd
	}
	return m
}()

// Poll runs at most one buffered command and returns immediately when nothing is
// waiting, so it can be called once per control loop tick. Whitespace is ignored
func Poll(c Controller, console Console) error {
	for console.Buffered() > 0 {
		in, err := console.ReadByte()
		if err != nil {
			return err
		}

		switch in {
		case ' ', '\r', '\n', '\t':
			continue
		}

		cmd, ok := cmdMap[in]
		if !ok {
			return errors.Join(ErrUnknownCommand, errors.New(strconv.QuoteRune(rune(in))))
		}
		return cmd.Run(c, console)
	}
	return nil
}

func writeLine(w io.Writer, line string) error {
	_, err := w.Write([]byte(line + "\r\n"))
	return err
}

// ts returns the elapsed timestamp for console output
func ts(elapsed time.Duration) string {
	return "[" + elapsed.Truncate(time.Millisecond).String() + "]"
}
