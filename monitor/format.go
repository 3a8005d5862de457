package monitor

import (
	"fmt"
	"image/color"

	"github.com/calvinmclean/touchandgo"
	"github.com/charmbracelet/lipgloss"
)

var (
	elapsedStyle = lipgloss.NewStyle().Faint(true)
	modeStyle    = lipgloss.NewStyle().Bold(true)
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#" + touchandgo.Hex(touchandgo.Orange)))
)

// Swatch renders a small block in the LED color
func Swatch(c color.RGBA) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color("#" + touchandgo.Hex(c))).
		Render("  ")
}

// Format renders an event for the operator
func Format(e touchandgo.Event) string {
	ts := elapsedStyle.Render(fmt.Sprintf("[%8.2fs]", e.Elapsed.Seconds()))

	switch e.Kind {
	case touchandgo.EventMode:
		return fmt.Sprintf("%s %s %s throttle=%.0f%%", ts, Swatch(e.Color), modeStyle.Render(e.Mode.String()), e.Throttle*100)
	case touchandgo.EventThrottle:
		return fmt.Sprintf("%s    %s throttle=%.1f%%", ts, e.Mode, e.Throttle*100)
	case touchandgo.EventParams:
		return fmt.Sprintf("%s parameters: %s", ts, FormatParameters(e.Params))
	case touchandgo.EventNotice:
		return fmt.Sprintf("%s %s", ts, noticeStyle.Render(e.Note))
	default:
		return ts + " " + e.String()
	}
}

// FormatParameters describes parameters in operator terms
func FormatParameters(p touchandgo.FlightParameters) string {
	return fmt.Sprintf("delay %s, flight %s, cruise %d%%", p.Delay(), p.FlightDuration(), p.CruiseThrottlePercent)
}
