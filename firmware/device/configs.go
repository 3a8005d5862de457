//go:build tinygo

package device

import (
	"machine"
	"time"

	"tinygo.org/x/drivers/servo"
)

// ESCConfig has device-level values for setting up the motor controller output
type ESCConfig struct {
	Pin machine.Pin
	PWM servo.PWM
	// MinPulse and MaxPulse are the pulse widths for throttle 0 and 1
	MinPulse time.Duration
	MaxPulse time.Duration
}

// ButtonConfig is the pushbutton input. The button is active low with the internal pull-up
type ButtonConfig struct {
	Pin machine.Pin
}

// LEDConfig is the on-board RGB LED
type LEDConfig struct {
	Pin machine.Pin
	// PowerPin is enabled before the LED is used on boards that switch its supply
	PowerPin machine.Pin
}
