//go:build !tinygo

package params

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
)

// DefaultFileName is the record's name on a mounted board drive
const DefaultFileName = "parameters.bin"

// FileStorage keeps the record in a file
type FileStorage struct {
	Path string
}

// NewFileStorage creates a FileStorage. If path is a directory the record is stored as
// DefaultFileName inside it
func NewFileStorage(path string) *FileStorage {
	if stat, err := os.Stat(path); err == nil && stat.IsDir() {
		path = filepath.Join(path, DefaultFileName)
	}
	return &FileStorage{Path: path}
}

// Read implements Storage
func (f *FileStorage) Read() ([]byte, error) {
	b, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", f.Path, err)
	}
	return b, nil
}

// Write implements Storage. The record is written to a temporary file which then
// replaces the old one, so a failed write never leaves a partial record
func (f *FileStorage) Write(b []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(f.Path), "."+filepath.Base(f.Path)+".*")
	if err != nil {
		return storageError(f.Path, err)
	}
	tmpName := tmp.Name()

	_, err = tmp.Write(b)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmpName, f.Path)
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return storageError(f.Path, err)
	}
	return nil
}

func storageError(path string, err error) error {
	if errors.Is(err, fs.ErrPermission) || errors.Is(err, syscall.EROFS) {
		return fmt.Errorf("%w: %s: %w", ErrReadOnly, path, err)
	}
	return fmt.Errorf("error writing %s: %w", path, err)
}
