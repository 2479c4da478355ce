package filehandler

import (
	"os"

	"github.com/spf13/afero"
)

// Storage is the file-system surface the handler needs. Every method
// works on a full path and keeps no state between calls.
type Storage interface {
	// Exists reports whether path exists
	Exists(path string) bool
	// CreateDir creates path and any missing parents
	CreateDir(path string) error
	// CreateFile creates an empty file at path if it does not exist
	CreateFile(path string) error
	// Size returns the current size of path in bytes
	Size(path string) (int64, error)
	// Remove deletes path
	Remove(path string) error
	// Append writes data at the end of path in a single append-mode
	// write, creating the file when missing
	Append(path string, data []byte) (int, error)
}

type fsStorage struct {
	fs afero.Fs
}

// NewStorage returns a Storage backed by fs. Use afero.NewOsFs for real
// files and afero.NewMemMapFs in tests.
func NewStorage(fs afero.Fs) Storage {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &fsStorage{fs: fs}
}

func (s *fsStorage) Exists(path string) bool {
	ok, err := afero.Exists(s.fs, path)
	return err == nil && ok
}

func (s *fsStorage) CreateDir(path string) error {
	return s.fs.MkdirAll(path, 0755)
}

func (s *fsStorage) CreateFile(path string) error {
	f, err := s.fs.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	return f.Close()
}

func (s *fsStorage) Size(path string) (int64, error) {
	info, err := s.fs.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (s *fsStorage) Remove(path string) error {
	return s.fs.Remove(path)
}

func (s *fsStorage) Append(path string, data []byte) (int, error) {
	f, err := s.fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return 0, err
	}
	n, err := f.Write(data)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return n, err
}
