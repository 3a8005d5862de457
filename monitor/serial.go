package monitor

import (
	"errors"
	"fmt"
	"strconv"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// SerialPortNone is offered next to the detected ports for running without a board
const SerialPortNone = "None"

var ErrNoUSBSerial = errors.New("no USB serial ports found")

// GetSerialPorts lists USB serial ports, where the board shows up
func GetSerialPorts() ([]string, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("error listing serial ports: %w", err)
	}

	var result []string
	for _, port := range ports {
		if port.IsUSB {
			result = append(result, port.Name)
		}
	}
	if len(result) == 0 {
		return nil, ErrNoUSBSerial
	}
	return result, nil
}

// OpenSerial opens the board's port
func OpenSerial(port string, baudRate int) (serial.Port, error) {
	if port == "" || port == SerialPortNone {
		return nil, errors.New("serial port is not configured")
	}

	p, err := serial.Open(port, &serial.Mode{BaudRate: baudRate})
	if err != nil {
		return nil, fmt.Errorf("error opening serial port %q: %w", port, err)
	}
	return p, nil
}

// ParseBaudRate reads a baud rate entered as text
func ParseBaudRate(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid baud rate: %q", s)
	}
	return v, nil
}

// Validate reports the first problem that would stop cfg from connecting
func (c Config) Validate() error {
	if c.SerialPort == "" || c.SerialPort == SerialPortNone {
		return errors.New("select a serial port")
	}
	if _, err := ParseBaudRate(c.BaudRate); err != nil {
		return err
	}
	if c.TWChartAddr != "" && c.SessionName == "" {
		return errors.New("a session name is required to record in TWChart")
	}
	return nil
}
