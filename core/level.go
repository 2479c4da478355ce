package core

import (
	"fmt"
	"strings"
)

// Level is a severity bit. Levels combine with bitwise OR into an
// active mask.
type Level int

const (
	// NoneLevel enables nothing when used as a mask
	NoneLevel Level = 0x00
	// FatalLevel for unrecoverable conditions (does not exit the process)
	FatalLevel Level = 0x01
	// WarningLevel for recoverable problems
	WarningLevel Level = 0x02
	// NoticeLevel for normal but significant events
	NoticeLevel Level = 0x04
	// TraceLevel for request tracing
	TraceLevel Level = 0x08
	// DebugLevel for detailed debugging information
	DebugLevel Level = 0x10
	// StatisticLevel for metrics-style records routed to their own file
	StatisticLevel Level = 0x20
	// AllLevel enables every severity when used as a mask
	AllLevel Level = 0xFF
)

var levelNames = map[Level]string{
	NoneLevel:      "NONE",
	FatalLevel:     "FATAL",
	WarningLevel:   "WARNING",
	NoticeLevel:    "NOTICE",
	TraceLevel:     "TRACE",
	DebugLevel:     "DEBUG",
	StatisticLevel: "STATISTIC",
	AllLevel:       "ALL",
}

var singleLevels = [...]Level{
	FatalLevel,
	WarningLevel,
	NoticeLevel,
	TraceLevel,
	DebugLevel,
	StatisticLevel,
}

// Levels returns the single-bit severities in ascending bit order.
func Levels() []Level {
	out := make([]Level, len(singleLevels))
	copy(out, singleLevels[:])
	return out
}

// Name returns the registry name of l. Only the values listed in the
// registry (including NONE and ALL) have a name.
func (l Level) Name() (string, error) {
	name, ok := levelNames[l]
	if !ok {
		return "", fmt.Errorf("%w: %#x", ErrUnknownLevel, int(l))
	}
	return name, nil
}

// Known reports whether l is present in the registry.
func (l Level) Known() bool {
	_, ok := levelNames[l]
	return ok
}

// Has reports whether any bit of bits is set in l.
func (l Level) Has(bits Level) bool {
	return l&bits != 0
}

// String returns the registry name, or the set bit names joined by '|'
// for combined masks.
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	if l < 0 {
		return fmt.Sprintf("Level(%d)", int(l))
	}

	var (
		parts []string
		rest  = l
	)
	for _, bit := range singleLevels {
		if l&bit != 0 {
			parts = append(parts, levelNames[bit])
			rest &^= bit
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("Level(%#x)", int(rest)))
	}
	return strings.Join(parts, "|")
}
