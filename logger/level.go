package logger

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/philipp01105/masklog/core"
)

// Level Re-export type and constants for convenience
type Level = core.Level

const (
	NoneLevel      = core.NoneLevel
	FatalLevel     = core.FatalLevel
	WarningLevel   = core.WarningLevel
	NoticeLevel    = core.NoticeLevel
	TraceLevel     = core.TraceLevel
	DebugLevel     = core.DebugLevel
	StatisticLevel = core.StatisticLevel
	AllLevel       = core.AllLevel
)

// ParseLevel converts a string to a level mask. It accepts a number
// ("255", "0x3f"), or level names joined by '|' or ',' ("WARNING|FATAL").
func ParseLevel(s string) (Level, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return NoneLevel, fmt.Errorf("%w: empty level", core.ErrInvalidConfiguration)
	}

	if n, err := cast.ToIntE(s); err == nil {
		if n < 0 {
			return NoneLevel, fmt.Errorf("%w: level %d is negative", core.ErrInvalidConfiguration, n)
		}
		return Level(n), nil
	}

	var mask Level
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' }) {
		switch strings.ToUpper(strings.TrimSpace(part)) {
		case "NONE":
		case "FATAL":
			mask |= FatalLevel
		case "WARN", "WARNING":
			mask |= WarningLevel
		case "NOTICE":
			mask |= NoticeLevel
		case "TRACE":
			mask |= TraceLevel
		case "DEBUG":
			mask |= DebugLevel
		case "STATISTIC":
			mask |= StatisticLevel
		case "ALL":
			mask |= AllLevel
		case "":
		default:
			return NoneLevel, fmt.Errorf("%w: %w %q", core.ErrInvalidConfiguration, core.ErrUnknownLevel, part)
		}
	}
	return mask, nil
}
