package handler

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/philipp01105/masklog/core"
)

func TestStats_Written(t *testing.T) {
	s := NewStats()
	s.IncrementWritten(core.DebugLevel, 10)
	s.IncrementWritten(core.DebugLevel, 5)
	s.IncrementWritten(core.FatalLevel, 7)

	snap := s.GetSnapshot()
	assert.Equal(t, uint64(2), snap.WrittenTotal[core.DebugLevel])
	assert.Equal(t, uint64(1), snap.WrittenTotal[core.FatalLevel])
	assert.Zero(t, snap.WrittenTotal[core.NoticeLevel])
	assert.NotContains(t, snap.WrittenTotal, core.AllLevel)
	assert.Equal(t, uint64(22), snap.WrittenBytes)
}

func TestStats_CombinedLevelCountsEachBit(t *testing.T) {
	s := NewStats()
	s.IncrementWritten(core.WarningLevel|core.StatisticLevel, 3)

	snap := s.GetSnapshot()
	assert.Equal(t, uint64(1), snap.WrittenTotal[core.WarningLevel])
	assert.Equal(t, uint64(1), snap.WrittenTotal[core.StatisticLevel])
	assert.Equal(t, uint64(3), snap.WrittenBytes)
}

func TestStats_RotatedAndFailed(t *testing.T) {
	s := NewStats()
	s.IncrementRotated()
	s.IncrementFailed()
	s.IncrementFailed()

	snap := s.GetSnapshot()
	assert.Equal(t, uint64(1), snap.RotatedTotal)
	assert.Equal(t, uint64(2), snap.FailedTotal)
	assert.Zero(t, snap.WrittenBytes)
}

func TestStats_Concurrent(t *testing.T) {
	s := NewStats()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.IncrementWritten(core.NoticeLevel, 1)
				s.IncrementRotated()
			}
		}()
	}
	wg.Wait()

	snap := s.GetSnapshot()
	assert.Equal(t, uint64(1000), snap.WrittenTotal[core.NoticeLevel])
	assert.Equal(t, uint64(1000), snap.RotatedTotal)
}
