package ui

import (
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/calvinmclean/touchandgo/monitor"
)

// ConfigWindow asks for the board connection before the live window opens. Answers are
// kept in the app preferences for next time
type ConfigWindow struct {
	app      fyne.App
	OnSubmit func()
}

func NewConfigWindow(app fyne.App) *ConfigWindow {
	return &ConfigWindow{
		app: app,
	}
}

var configPreferences = []struct {
	key      string
	field    func(*monitor.Config) *string
	fallback string
}{
	{"serialPort", func(c *monitor.Config) *string { return &c.SerialPort }, ""},
	{"baudRate", func(c *monitor.Config) *string { return &c.BaudRate }, "115200"},
	{"twchartAddr", func(c *monitor.Config) *string { return &c.TWChartAddr }, ""},
	{"sessionName", func(c *monitor.Config) *string { return &c.SessionName }, "Flight"},
}

// loadPreferences fills empty fields of cfg from preferences
func (cw *ConfigWindow) loadPreferences(cfg *monitor.Config) {
	prefs := cw.app.Preferences()
	for _, p := range configPreferences {
		field := p.field(cfg)
		if *field == "" {
			*field = prefs.StringWithFallback(p.key, p.fallback)
		}
	}
}

func (cw *ConfigWindow) savePreferences(cfg *monitor.Config) {
	prefs := cw.app.Preferences()
	for _, p := range configPreferences {
		prefs.SetString(p.key, *p.field(cfg))
	}
}

func (cw *ConfigWindow) Show(cfg *monitor.Config) {
	window := cw.app.NewWindow("Touch and Go - Connect")
	window.Resize(fyne.NewSize(420, 240))
	window.SetCloseIntercept(cw.app.Quit)
	window.Show()

	cw.loadPreferences(cfg)

	serialEntry := widget.NewSelect(nil, nil)
	serialEntry.PlaceHolder = "(no board found)"
	serialEntry.Bind(binding.BindString(&cfg.SerialPort))

	refreshPorts := func() {
		ports, err := monitor.GetSerialPorts()
		if err != nil && !errors.Is(err, monitor.ErrNoUSBSerial) {
			showError(cw.app, window, fmt.Errorf("error getting serial ports: %w", err))
			return
		}
		serialEntry.SetOptions(ports)
		if cfg.SerialPort == "" && len(ports) > 0 {
			serialEntry.SetSelected(ports[0])
		}
	}
	refreshPorts()

	baudRateEntry := widget.NewEntry()
	baudRateEntry.Bind(binding.BindString(&cfg.BaudRate))

	twchartAddrEntry := widget.NewEntry()
	twchartAddrEntry.SetPlaceHolder("optional, e.g. http://localhost:8080")
	twchartAddrEntry.Bind(binding.BindString(&cfg.TWChartAddr))

	sessionEntry := widget.NewEntry()
	sessionEntry.Bind(binding.BindString(&cfg.SessionName))

	status := widget.NewLabel("")
	status.Wrapping = fyne.TextWrapWord

	form := widget.NewForm(
		widget.NewFormItem("Serial Port", container.NewBorder(nil, nil, nil,
			widget.NewButton("Refresh", refreshPorts), serialEntry)),
		widget.NewFormItem("Baud Rate", baudRateEntry),
		widget.NewFormItem("TWChart", twchartAddrEntry),
		widget.NewFormItem("Session Name", sessionEntry),
	)

	connectButton := widget.NewButton("Connect", func() {
		cw.savePreferences(cfg)
		// hidden rather than closed since closing the first window quits the app
		window.Hide()
		cw.OnSubmit()
	})
	connectButton.Importance = widget.HighImportance

	validate := func() {
		err := cfg.Validate()
		if err != nil {
			status.SetText(err.Error())
			connectButton.Disable()
			return
		}
		status.SetText("")
		connectButton.Enable()
	}
	serialEntry.OnChanged = func(string) { validate() }
	for _, entry := range []*widget.Entry{baudRateEntry, twchartAddrEntry, sessionEntry} {
		entry.OnChanged = func(string) { validate() }
	}
	validate()

	window.SetContent(container.NewVBox(
		form,
		status,
		container.NewHBox(widget.NewButton("Quit", cw.app.Quit), connectButton),
	))
}

func showError(app fyne.App, window fyne.Window, err error) {
	d := dialog.NewError(err, window)
	d.SetOnClosed(func() {
		app.Quit()
	})
	d.Show()
}
