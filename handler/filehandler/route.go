package filehandler

import (
	"github.com/philipp01105/masklog/core"
)

const (
	// WarningSuffix is appended to the base path for WARNING and FATAL records
	WarningSuffix = ".wf"
	// StatisticSuffix is appended to the base path for STATISTIC records
	StatisticSuffix = ".st"
)

// Destination returns the file a record at level is written to. The
// choice tests bits rather than equality, so a combined level routes by
// the most severe destination it qualifies for.
func Destination(base string, level core.Level) string {
	switch {
	case level.Has(core.WarningLevel | core.FatalLevel):
		return base + WarningSuffix
	case level.Has(core.StatisticLevel):
		return base + StatisticSuffix
	default:
		return base
	}
}
