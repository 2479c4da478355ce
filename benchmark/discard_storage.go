package benchmark

import (
	"sync/atomic"

	"github.com/philipp01105/masklog/handler/filehandler"
)

// discardStorage accepts every append without touching a file system,
// so the numbers measure filtering, caller lookup and formatting only.
type discardStorage struct {
	size atomic.Int64
}

func newDiscardStorage() filehandler.Storage {
	return &discardStorage{}
}

func (s *discardStorage) Exists(string) bool      { return true }
func (s *discardStorage) CreateDir(string) error  { return nil }
func (s *discardStorage) CreateFile(string) error { return nil }
func (s *discardStorage) Remove(string) error     { s.size.Store(0); return nil }

func (s *discardStorage) Size(string) (int64, error) {
	return s.size.Load(), nil
}

func (s *discardStorage) Append(_ string, data []byte) (int, error) {
	s.size.Add(int64(len(data)))
	return len(data), nil
}
