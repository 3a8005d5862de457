// Package params persists the FlightParameters as a fixed 3-byte record:
// [delay_seconds, flight_deciseconds, cruise_throttle_percent]
package params

import (
	"errors"
	"fmt"

	"github.com/calvinmclean/touchandgo"
)

// RecordSize is the length of an encoded record
const RecordSize = 3

var (
	// ErrNotExist is returned by a Storage that has no record yet. It is not a failure
	ErrNotExist = errors.New("parameter record does not exist")
	// ErrReadOnly is returned when the medium cannot be written by this program
	ErrReadOnly = errors.New("parameter storage is read-only")
	// ErrMalformed is returned when a record has the wrong length
	ErrMalformed = errors.New("malformed parameter record")
)

// Storage reads and writes the raw record. Write must replace the whole record or
// leave the previous one untouched
type Storage interface {
	Read() ([]byte, error)
	Write([]byte) error
}

// Encode returns the record for p
func Encode(p touchandgo.FlightParameters) []byte {
	return []byte{p.DelaySeconds, p.FlightDeciseconds, p.CruiseThrottlePercent}
}

// Decode parses a record produced by Encode
func Decode(b []byte) (touchandgo.FlightParameters, error) {
	if len(b) != RecordSize {
		return touchandgo.FlightParameters{}, fmt.Errorf("%w: got %d bytes", ErrMalformed, len(b))
	}
	return touchandgo.FlightParameters{
		DelaySeconds:          b[0],
		FlightDeciseconds:     b[1],
		CruiseThrottlePercent: b[2],
	}, nil
}

// Store loads and commits FlightParameters through a Storage
type Store struct {
	storage Storage
}

// NewStore creates a Store backed by s
func NewStore(s Storage) *Store {
	return &Store{storage: s}
}

// Load reads the saved parameters. A missing or malformed record is replaced by the
// defaults, which are returned. Any error returned alongside valid parameters comes
// from writing the defaults or reading the medium; the parameters are still usable
func (s *Store) Load() (touchandgo.FlightParameters, error) {
	raw, err := s.storage.Read()
	if err == nil {
		p, decodeErr := Decode(raw)
		if decodeErr == nil {
			return p, nil
		}
		err = decodeErr
	}

	defaults := touchandgo.DefaultParameters()
	if !errors.Is(err, ErrNotExist) && !errors.Is(err, ErrMalformed) {
		return defaults, err
	}

	return defaults, s.Commit(defaults)
}

// Commit overwrites the saved record with p
func (s *Store) Commit(p touchandgo.FlightParameters) error {
	return s.storage.Write(Encode(p))
}
