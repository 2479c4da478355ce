// Package handler provides the Handler interface through which the
// logger hands formatted-ready records to an output.
//
// A Handler writes synchronously and reports the number of bytes it
// wrote. There is no queue and no background goroutine; a failed write
// is returned to the caller unchanged.
//
// Built-in handlers:
//
//   - FileHandler (package filehandler) routes records by severity to
//     <base>, <base>.wf or <base>.st and deletes a destination that grew
//     past its size limit before appending.
//
// Handlers track written, rotated and failed counts via the Stats type,
// which can be queried at runtime through StatsProvider.
package handler
