package logger

import (
	"time"

	"github.com/philipp01105/masklog/core"
)

// CallOption adjusts a single emit call: its error number, call-site
// depth, correlation id, or auxiliary args.
type CallOption interface {
	apply(rec *core.Record)
}

type optionFunc func(rec *core.Record)

func (f optionFunc) apply(rec *core.Record) { f(rec) }

// Errno sets the numeric error code of the record
func Errno(n int) CallOption {
	return optionFunc(func(rec *core.Record) { rec.Errno = n })
}

// Depth reports the call site n frames above the caller, for logging
// helpers that want their own caller on the line
func Depth(n int) CallOption {
	return optionFunc(func(rec *core.Record) { rec.Depth = n })
}

// WithLogID stamps id on this record instead of the Logger's
// correlation id
func WithLogID(id int64) CallOption {
	return optionFunc(func(rec *core.Record) { rec.SetLogID(id) })
}

// Args appends already-stringified pairs in order
func Args(args ...core.Arg) CallOption {
	return optionFunc(func(rec *core.Record) { rec.Args = append(rec.Args, args...) })
}

// Field is one auxiliary key/value pair. Fields render in the order
// they are passed.
type Field core.Arg

func (f Field) apply(rec *core.Record) {
	rec.Args = append(rec.Args, core.Arg(f))
}

// Field helper functions for convenience

// String creates a string field
func String(key, val string) Field {
	return Field{Key: key, Value: val}
}

// Int creates an int field
func Int(key string, val int) Field {
	return Field(core.NewArg(key, val))
}

// Int64 creates an int64 field
func Int64(key string, val int64) Field {
	return Field(core.NewArg(key, val))
}

// Float64 creates a float64 field
func Float64(key string, val float64) Field {
	return Field(core.NewArg(key, val))
}

// Bool creates a bool field
func Bool(key string, val bool) Field {
	return Field(core.NewArg(key, val))
}

// Time creates a time field in RFC3339
func Time(key string, val time.Time) Field {
	return Field{Key: key, Value: val.Format(time.RFC3339)}
}

// Duration creates a duration field
func Duration(key string, val time.Duration) Field {
	return Field{Key: key, Value: val.String()}
}

// Err creates an error field
func Err(err error) Field {
	if err == nil {
		return Field{Key: "error"}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Any creates a field with any value
func Any(key string, val interface{}) Field {
	return Field(core.NewArg(key, val))
}
