//go:build tinygo

package device

import (
	"errors"
	"machine"

	"github.com/calvinmclean/touchandgo/params"
)

// recordMagic marks a written record. Erased flash reads as 0xFF
const recordMagic = 0xA5

type blockDevice interface {
	ReadAt([]byte, int64) (int, error)
	WriteAt([]byte, int64) (int, error)
	EraseBlocks(start, length int64) error
	WriteBlockSize() int64
}

// FlashStorage keeps the parameter record in the first block of the user flash area
type FlashStorage struct {
	dev blockDevice
}

// NewFlashStorage uses machine.Flash
func NewFlashStorage() *FlashStorage {
	return &FlashStorage{dev: machine.Flash}
}

// Read implements params.Storage
func (s *FlashStorage) Read() ([]byte, error) {
	buf := make([]byte, params.RecordSize+1)
	_, err := s.dev.ReadAt(buf, 0)
	if err != nil {
		return nil, errors.New("error reading flash: " + err.Error())
	}
	if buf[0] != recordMagic {
		return nil, params.ErrNotExist
	}
	return buf[1:], nil
}

// Write implements params.Storage
func (s *FlashStorage) Write(b []byte) error {
	size := s.dev.WriteBlockSize()
	n := int64(len(b) + 1)
	if rem := n % size; rem != 0 {
		n += size - rem
	}

	buf := make([]byte, n)
	for i := range buf {
		buf[i] = 0xFF
	}
	buf[0] = recordMagic
	copy(buf[1:], b)

	err := s.dev.EraseBlocks(0, 1)
	if err != nil {
		return errors.New("error erasing flash: " + err.Error())
	}
	_, err = s.dev.WriteAt(buf, 0)
	if err != nil {
		return errors.New("error writing flash: " + err.Error())
	}
	return nil
}
