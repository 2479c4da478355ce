// Package formatter defines how records are serialized into bytes.
//
// It exposes two interfaces: Formatter, which returns a []byte, and
// BufferFormatter, which writes into a caller-owned bytes.Buffer.
// Handlers check for BufferFormatter at construction time and prefer it
// when available.
//
// The built-in LineFormatter produces the fixed pipe-delimited line
// format, one record per line, with auxiliary arguments rendered as
// key=value in insertion order between the uri and msg fields. It
// relies on Go's Append-style functions (time.AppendFormat,
// strconv.AppendInt) so the common path does not allocate.
//
// Buffers larger than 64 KiB are not returned to the pool to prevent
// a single large log line from permanently inflating memory usage.
package formatter
