package handler

import (
	"sync/atomic"

	"github.com/philipp01105/masklog/core"
)

// Stats tracks handler statistics
type Stats struct {
	// Separate atomic counters per single-bit level
	written      [len(statsLevels)]atomic.Uint64
	writtenBytes atomic.Uint64
	// rotated counts files removed for exceeding the size limit
	rotated atomic.Uint64
	// failed counts records that could not be formatted or appended
	failed atomic.Uint64
}

var statsLevels = [...]core.Level{
	core.FatalLevel,
	core.WarningLevel,
	core.NoticeLevel,
	core.TraceLevel,
	core.DebugLevel,
	core.StatisticLevel,
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{}
}

// IncrementWritten records one written line of n bytes. A combined level
// counts once for every bit it carries.
func (s *Stats) IncrementWritten(level core.Level, n int) {
	for i, l := range statsLevels {
		if level&l != 0 {
			s.written[i].Add(1)
		}
	}
	s.writtenBytes.Add(uint64(n))
}

// IncrementRotated atomically increments the rotation counter
func (s *Stats) IncrementRotated() {
	s.rotated.Add(1)
}

// IncrementFailed atomically increments the failure counter
func (s *Stats) IncrementFailed() {
	s.failed.Add(1)
}

// Snapshot returns a snapshot of current stats
type Snapshot struct {
	WrittenTotal map[core.Level]uint64
	WrittenBytes uint64
	RotatedTotal uint64
	FailedTotal  uint64
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() Snapshot {
	written := make(map[core.Level]uint64, len(statsLevels))
	for i, l := range statsLevels {
		written[l] = s.written[i].Load()
	}
	return Snapshot{
		WrittenTotal: written,
		WrittenBytes: s.writtenBytes.Load(),
		RotatedTotal: s.rotated.Load(),
		FailedTotal:  s.failed.Load(),
	}
}
