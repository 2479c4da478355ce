package handler

import (
	"github.com/philipp01105/masklog/core"
)

// Handler defines the interface for log handlers
type Handler interface {
	// Handle writes a record and returns the number of bytes written
	Handle(rec *core.Record) (int, error)
}

// StatsProvider is implemented by handlers that count their work
type StatsProvider interface {
	Stats() Snapshot
}
