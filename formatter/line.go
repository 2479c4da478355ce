package formatter

import (
	"bytes"
	"strconv"
	"time"

	"github.com/philipp01105/masklog/core"
)

// Separator delimits fields of a formatted line
const Separator = "||"

// LineFormatter renders records as one pipe-delimited line:
//
//	[LEVEL]||logId=<id>||time=<ts>||line=<file>: +<line>||errno=<n>||ip=<ip>||uri=<uri>||[k=v||...]msg=<msg>
type LineFormatter struct {
	Config
}

// NewLineFormatter creates a new line formatter
func NewLineFormatter(cfg Config) *LineFormatter {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = DefaultTimestampFormat
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &LineFormatter{Config: cfg}
}

// Format formats a record as a line
func (f *LineFormatter) Format(rec *core.Record) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	f.FormatEntry(rec, buf)

	// Copy buffer content to return
	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// pre-formatted level tokens to avoid multiple WriteString calls
var levelTokens = map[core.Level]string{
	core.NoneLevel:      "[NONE]",
	core.FatalLevel:     "[FATAL]",
	core.WarningLevel:   "[WARNING]",
	core.NoticeLevel:    "[NOTICE]",
	core.TraceLevel:     "[TRACE]",
	core.DebugLevel:     "[DEBUG]",
	core.StatisticLevel: "[STATISTIC]",
	core.AllLevel:       "[ALL]",
}

// FormatEntry writes the formatted record into buf
func (f *LineFormatter) FormatEntry(rec *core.Record, buf *bytes.Buffer) {
	if tok, ok := levelTokens[rec.Level]; ok {
		buf.WriteString(tok)
	} else {
		buf.WriteByte('[')
		buf.WriteString(rec.Level.String())
		buf.WriteByte(']')
	}

	buf.WriteString("||logId=")
	buf.Write(strconv.AppendInt(buf.AvailableBuffer(), rec.LogID, 10))

	buf.WriteString("||time=")
	buf.Write(rec.Time.In(f.Location).AppendFormat(buf.AvailableBuffer(), f.TimestampFormat))

	buf.WriteString("||line=")
	buf.WriteString(rec.Caller.ShortFile)
	buf.WriteString(": +")
	buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(rec.Caller.Line), 10))

	buf.WriteString("||errno=")
	buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(rec.Errno), 10))

	buf.WriteString("||ip=")
	buf.WriteString(rec.ClientIP)

	buf.WriteString("||uri=")
	buf.WriteString(rec.URI)
	buf.WriteString(Separator)

	for _, a := range rec.Args {
		buf.WriteString(a.Key)
		buf.WriteByte('=')
		buf.WriteString(a.Value)
		buf.WriteString(Separator)
	}

	buf.WriteString("msg=")
	buf.WriteString(rec.Message)
	buf.WriteByte('\n')
}
