package formatter

import (
	"bytes"
	"sync"
	"time"

	"github.com/philipp01105/masklog/core"
)

// DefaultTimestampFormat renders local wall time as YYYY-MM-DD HH:MM:SS
const DefaultTimestampFormat = "2006-01-02 15:04:05"

// Formatter defines the interface for log formatters
type Formatter interface {
	// Format formats a record into bytes
	Format(rec *core.Record) ([]byte, error)
}

// BufferFormatter is an optional interface that formatters can implement
// to format directly into a caller-provided buffer, avoiding internal
// buffer pool overhead.
type BufferFormatter interface {
	// FormatEntry formats a record into the given buffer.
	FormatEntry(rec *core.Record, buf *bytes.Buffer)
}

// Config holds common formatter configuration
type Config struct {
	// TimestampFormat specifies the time layout (empty for DefaultTimestampFormat)
	TimestampFormat string
	// Location is the zone timestamps are rendered in (nil for time.Local)
	Location *time.Location
}

// bufferPool is a pool of bytes.Buffer to reduce allocations
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}
