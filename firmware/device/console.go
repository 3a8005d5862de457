//go:build tinygo

package device

import "machine"

// Console is the USB serial port. It satisfies commands.Console
type Console struct{}

func (Console) Buffered() int {
	return machine.Serial.Buffered()
}

func (Console) ReadByte() (byte, error) {
	return machine.Serial.ReadByte()
}

func (Console) Write(b []byte) (int, error) {
	return machine.Serial.Write(b)
}
