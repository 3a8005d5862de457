// Package ui is the desktop window for the timer. It either simulates the board, with a
// button that can be held like the real one, or shows a connected board's events.
package ui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/calvinmclean/touchandgo"
	"github.com/calvinmclean/touchandgo/flight"
	"github.com/calvinmclean/touchandgo/monitor"
)

const maxLogLines = 200

// Connector opens the board described by cfg. It returns where console commands are
// written and a function that reads the board until ctx is done
type Connector func(cfg monitor.Config) (io.Writer, func(context.Context) error, error)

type TimerUI struct {
	app fyne.App

	readout       readout
	led           *canvas.Circle
	mode          *widget.Label
	throttle      *widget.ProgressBar
	throttleLabel *widget.Label
	params        *widget.Label
	hint          *widget.Label
	timer         *timer
	logLines      []string
	log           *widget.Label
	logScroll     *container.Scroll
}

func NewTimerUI() *TimerUI {
	ui := &TimerUI{
		app:           app.NewWithID("com.calvinmclean.touchandgo"),
		readout:       newReadout(),
		mode:          widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		throttle:      widget.NewProgressBar(),
		throttleLabel: widget.NewLabel(""),
		params:        widget.NewLabel(""),
		hint:          widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Italic: true}),
		timer:         newTimer(),
		log:           widget.NewLabel(""),
	}
	ui.led = canvas.NewCircle(ui.readout.Color)
	ui.throttle.TextFormatter = func() string { return "" }
	ui.logScroll = container.NewVScroll(ui.log)
	ui.logScroll.SetMinSize(fyne.NewSize(360, 120))
	ui.refresh()
	return ui
}

// HandleEvent implements monitor.Sink and is safe to call from any goroutine
func (ui *TimerUI) HandleEvent(_ context.Context, received time.Time, e touchandgo.Event) error {
	fyne.Do(func() {
		ui.readout.apply(e)
		ui.timer.Sync(received, e.Elapsed)
		ui.appendLog(logLine(e))
		ui.refresh()
	})
	return nil
}

// RunSimulator runs c with the window's button as its input, ticking every tick until
// ctx is done or the window is closed. c's event handler should call HandleEvent
func (ui *TimerUI) RunSimulator(ctx context.Context, c *flight.Controller, tick time.Duration) {
	button := newHoldButton("Touch")
	window := ui.mainWindow("Touch and Go - Simulator", container.NewVBox(
		button,
		widget.NewLabel("Hold the button or the space bar like the timer's pushbutton"),
	))

	if deskCanvas, ok := window.Canvas().(desktop.Canvas); ok {
		deskCanvas.SetOnKeyDown(func(ev *fyne.KeyEvent) {
			if ev.Name == fyne.KeySpace {
				button.SetKey(true)
			}
		})
		deskCanvas.SetOnKeyUp(func(ev *fyne.KeyEvent) {
			if ev.Name == fyne.KeySpace {
				button.SetKey(false)
			}
		})
	}

	ui.app.Lifecycle().SetOnStarted(func() {
		ui.timer.Go()
		go ui.simulate(ctx, c, button, tick)
	})

	ui.run(ctx, window)
}

func (ui *TimerUI) simulate(ctx context.Context, c *flight.Controller, button *holdButton, tick time.Duration) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		out := c.Tick(time.Since(start), button.Pressed())
		fyne.Do(func() {
			ui.readout.Mode = out.Mode
			ui.readout.Throttle = out.Throttle
			ui.readout.Color = out.Color
			ui.refresh()
		})
	}
}

// RunLive shows a connected board. When cfg has no serial port the configuration
// window is shown first. Console buttons send read-only diagnostic commands
func (ui *TimerUI) RunLive(ctx context.Context, cfg monitor.Config, connect Connector) {
	start := func() {
		board, run, err := connect(cfg)
		if err != nil {
			window := ui.app.NewWindow("Touch and Go")
			window.Resize(fyne.NewSize(400, 200))
			window.Show()
			showError(ui.app, window, fmt.Errorf("error connecting: %w", err))
			return
		}

		console := &consoleWrapper{writer: board}
		window := ui.mainWindow("Touch and Go - "+cfg.SerialPort, container.NewHBox(
			widget.NewButton("Status", console.Debug),
			widget.NewButton("Parameters", console.Parameters),
			widget.NewButton("Toggle Verbose", console.Verbose),
		))
		window.Show()
		ui.timer.Go()

		go func() {
			err := run(ctx)
			if err != nil {
				fyne.Do(func() {
					showError(ui.app, window, err)
				})
			}
		}()
		console.Parameters()
	}

	if cfg.SerialPort == "" {
		cw := NewConfigWindow(ui.app)
		cw.OnSubmit = start
		cw.Show(&cfg)
	} else {
		ui.app.Lifecycle().SetOnStarted(start)
	}

	ui.run(ctx, nil)
}

func (ui *TimerUI) mainWindow(title string, controls fyne.CanvasObject) fyne.Window {
	window := ui.app.NewWindow(title)

	content := container.NewVBox(
		container.NewHBox(
			container.NewGridWrap(fyne.NewSize(64, 64), ui.led),
			container.NewVBox(ui.mode, ui.throttleLabel),
			layout.NewSpacer(),
			container.NewPadded(ui.timer.text),
		),
		ui.throttle,
		ui.params,
		ui.hint,
		controls,
		widget.NewAccordion(widget.NewAccordionItem("Events", ui.logScroll)),
	)

	window.SetContent(content)
	window.Resize(fyne.NewSize(420, 320))
	window.SetOnClosed(ui.app.Quit)
	return window
}

func (ui *TimerUI) run(ctx context.Context, window fyne.Window) {
	go func() {
		<-ctx.Done()
		fyne.Do(func() {
			ui.app.Quit()
		})
	}()

	if window != nil {
		window.ShowAndRun()
	} else {
		ui.app.Run()
	}
	ui.timer.Stop()
}

func (ui *TimerUI) refresh() {
	ui.led.FillColor = ui.readout.Color
	ui.led.Refresh()
	ui.mode.SetText(title(ui.readout.Mode))
	ui.throttle.SetValue(ui.readout.Throttle)
	ui.throttleLabel.SetText("Throttle " + ui.readout.throttleText())
	ui.params.SetText(ui.readout.paramsText())
	ui.hint.SetText(ui.readout.hint())
}

func (ui *TimerUI) appendLog(line string) {
	ui.logLines = append(ui.logLines, line)
	if len(ui.logLines) > maxLogLines {
		ui.logLines = ui.logLines[len(ui.logLines)-maxLogLines:]
	}
	ui.log.SetText(strings.Join(ui.logLines, "\n"))
	ui.logScroll.ScrollToBottom()
}
