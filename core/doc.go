// Package core defines the shared types used across masklog.
//
// It provides the bitmask Level registry, the Record type that
// represents a single log event, the Arg type for ordered auxiliary
// key/value pairs, and call-site capture.
//
// Levels are single bits (NONE and ALL are sentinels) and combine with
// bitwise OR into an active mask. Every registry value has exactly one
// name; Name fails with ErrUnknownLevel for anything else.
//
// Record objects are pooled via sync.Pool. Callers get a Record with
// GetRecord and return it with PutRecord once the handler has written
// it. The pool pre-allocates the Args slice with capacity 8.
//
// Arg values are always strings. Conversion from arbitrary values
// happens once, when the Arg is built, using spf13/cast.
package core
