package params

import "sync"

// MemoryStorage keeps the record in memory. It is useful for tests and as the fallback
// when no medium is available
type MemoryStorage struct {
	mu   sync.Mutex
	data []byte
}

// Read implements Storage
func (m *MemoryStorage) Read() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, ErrNotExist
	}
	return append([]byte(nil), m.data...), nil
}

// Write implements Storage
func (m *MemoryStorage) Write(b []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), b...)
	return nil
}

type readOnly struct {
	Storage
}

// ReadOnly wraps s so every Write fails with ErrReadOnly. The firmware uses it when the
// storage has been given to the USB host at boot
func ReadOnly(s Storage) Storage {
	return readOnly{s}
}

// Write implements Storage
func (readOnly) Write([]byte) error {
	return ErrReadOnly
}
