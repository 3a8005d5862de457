//go:build tinygo

package device

import (
	"errors"
	"image/color"
	"machine"
	"time"

	"tinygo.org/x/drivers/servo"
	"tinygo.org/x/drivers/ws2812"
)

// Device is the timer's hardware: the ESC signal, the pushbutton and the status LED
type Device struct {
	esc    servo.Servo
	escCfg ESCConfig
	button machine.Pin
	led    ws2812.Device

	color color.RGBA
}

// New configures the hardware. The ESC is set to zero throttle before anything else
// so a controller that is already looking for a signal never sees a stray pulse
func New(escCfg ESCConfig, buttonCfg ButtonConfig, ledCfg LEDConfig) (*Device, error) {
	esc, err := servo.New(escCfg.PWM, escCfg.Pin)
	if err != nil {
		return nil, errors.New("error creating esc: " + err.Error())
	}

	d := &Device{
		esc:    esc,
		escCfg: escCfg,
	}
	d.SetThrottle(0)

	buttonCfg.Pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	d.button = buttonCfg.Pin

	if ledCfg.PowerPin != machine.NoPin {
		ledCfg.PowerPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
		ledCfg.PowerPin.High()
	}
	ledCfg.Pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	d.led = ws2812.New(ledCfg.Pin)

	return d, nil
}

// Pressed reads the button
func (d *Device) Pressed() bool {
	return !d.button.Get()
}

// SetThrottle commands the ESC with a fraction of full throttle
func (d *Device) SetThrottle(throttle float64) {
	if throttle < 0 {
		throttle = 0
	}
	if throttle > 1 {
		throttle = 1
	}

	pulse := d.escCfg.MinPulse + time.Duration(throttle*float64(d.escCfg.MaxPulse-d.escCfg.MinPulse))
	d.esc.SetMicroseconds(int16(pulse.Microseconds()))
}

// SetColor shows c on the LED. Writes are skipped when the color has not changed
func (d *Device) SetColor(c color.RGBA) {
	if c == d.color {
		return
	}
	d.color = c

	err := d.led.WriteColors([]color.RGBA{c})
	if err != nil {
		println("error writing led:", err.Error())
	}
}
