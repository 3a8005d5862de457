//go:build tinygo

package main

import (
	"log/slog"
	"machine"
	"time"

	"github.com/calvinmclean/touchandgo"
	"github.com/calvinmclean/touchandgo/firmware/commands"
	"github.com/calvinmclean/touchandgo/firmware/device"
	"github.com/calvinmclean/touchandgo/flight"
	"github.com/calvinmclean/touchandgo/params"
)

const loopInterval = 10 * time.Millisecond

func main() {
	escCfg := device.ESCConfig{
		PWM:      machine.TCC0,
		Pin:      machine.D10,
		MinPulse: 750 * time.Microsecond,
		MaxPulse: 2250 * time.Microsecond,
	}
	buttonCfg := device.ButtonConfig{
		Pin: machine.D9,
	}
	ledCfg := device.LEDConfig{
		Pin:      machine.WS2812,
		PowerPin: machine.NoPin,
	}

	d, err := device.New(escCfg, buttonCfg, ledCfg)
	if err != nil {
		println("error setting up device:", err.Error())
		for {
			time.Sleep(time.Second)
		}
	}

	// holding the button at power-up leaves the record to the USB host
	var storage params.Storage = device.NewFlashStorage()
	if d.Pressed() {
		println("button pressed on boot: parameters are read-only")
		storage = params.ReadOnly(storage)
		for d.Pressed() {
			time.Sleep(loopInterval)
		}
	}

	console := device.Console{}
	logger := slog.New(slog.NewTextHandler(console, &slog.HandlerOptions{Level: slog.LevelWarn}))

	c := flight.New(
		params.NewStore(storage),
		flight.WithLogger(logger),
		flight.WithSettle(time.Sleep),
		flight.WithEventHandler(func(e touchandgo.Event) {
			println(e.String())
		}),
	)

	start := time.Now()
	ticker := time.NewTicker(loopInterval)
	defer ticker.Stop()

	for range ticker.C {
		out := c.Tick(time.Since(start), d.Pressed())
		d.SetThrottle(out.Throttle)
		d.SetColor(out.Color)

		err := commands.Poll(c, console)
		if err != nil {
			println("error:", err.Error())
		}
	}
}
