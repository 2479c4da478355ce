package core

import (
	"math"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

// Record is a single log event. It lives only for the duration of one
// emit call.
type Record struct {
	Time     time.Time
	Level    Level
	LogID    int64
	Message  string
	Errno    int
	Args     []Arg
	Caller   CallerInfo
	ClientIP string
	URI      string
	// Depth is the number of frames above the emitting call site to
	// report as the origin of the record.
	Depth int
	// logIDSet marks LogID as a per-call override of the correlation id.
	logIDSet bool
}

// SetLogID overrides the correlation id for this record only.
func (r *Record) SetLogID(id int64) {
	r.LogID = id
	r.logIDSet = true
}

// HasLogID reports whether SetLogID was called on r.
func (r *Record) HasLogID() bool {
	return r.logIDSet
}

// CallerInfo contains information about the caller
type CallerInfo struct {
	File      string
	ShortFile string
	Line      int
	Function  string
	Defined   bool
}

// recordPool is a pool of Record objects to reduce allocations
var recordPool = sync.Pool{
	New: func() interface{} {
		return &Record{
			Args: make([]Arg, 0, 8), // Pre-allocate for 8 args
		}
	},
}

// GetRecord retrieves a zeroed Record from the pool
func GetRecord() *Record {
	r := recordPool.Get().(*Record)
	args := r.Args[:0]
	*r = Record{Args: args}
	return r
}

// PutRecord returns a Record to the pool
func PutRecord(r *Record) {
	if r == nil {
		return
	}
	// Re-slice to zero length; GC handles reference cleanup
	r.Args = r.Args[:0]
	r.Message = ""
	r.Caller = CallerInfo{}
	recordPool.Put(r)
}

// GetCaller returns the frame skip levels above the function calling
// GetCaller; skip 0 is that function itself. A skip beyond the stack
// resolves to the outermost frame.
func GetCaller(skip int) CallerInfo {
	if skip < 0 {
		skip = 0
	}

	// The buffer follows the real stack depth, never skip
	pcs := make([]uintptr, 32)
	var n int
	for {
		// 2 drops runtime.Callers and GetCaller
		n = runtime.Callers(2, pcs)
		if n < len(pcs) {
			break
		}
		pcs = make([]uintptr, len(pcs)*2)
	}
	if n == 0 {
		return CallerInfo{}
	}

	frames := runtime.CallersFrames(pcs[:n])
	var frame runtime.Frame
	for i := 0; ; i++ {
		f, more := frames.Next()
		frame = f
		if i >= skip || !more {
			break
		}
	}
	if frame.File == "" {
		return CallerInfo{}
	}

	return CallerInfo{
		File:      frame.File,
		ShortFile: filepath.Base(frame.File),
		Line:      frame.Line,
		Function:  frame.Function,
		Defined:   true,
	}
}

// SaturatingAdd returns a+b for non-negative a and b, capped at
// math.MaxInt instead of wrapping.
func SaturatingAdd(a, b int) int {
	if b > math.MaxInt-a {
		return math.MaxInt
	}
	return a + b
}
