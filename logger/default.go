package logger

import (
	"context"
	"sync"
	"time"

	"github.com/philipp01105/masklog/core"
	"github.com/philipp01105/masklog/reqctx"
)

var (
	defaultLogger *Logger
	defaultMu     sync.RWMutex
)

// Configure builds a file Logger and installs it as the default,
// replacing any previous one. On error the previous default stays in
// place; callers must not assume logging works.
func Configure(level Level, filePath string, maxFileSize int64) error {
	l, err := New(level, filePath, maxFileSize)
	if err != nil {
		return err
	}
	SetDefault(l)
	return nil
}

// Instance returns the default logger, building one with DefaultLevel,
// DefaultFilePath and DefaultMaxFileSize on first use. A failed build is
// retried by the next call.
func Instance() (*Logger, error) {
	defaultMu.RLock()
	l := defaultLogger
	defaultMu.RUnlock()
	if l != nil {
		return l, nil
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		built, err := NewBuilder().Build()
		if err != nil {
			return nil, err
		}
		defaultLogger = built
	}
	return defaultLogger, nil
}

// SetDefault sets the default logger. Passing nil makes the next
// Instance call build a fresh default.
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// Package-level convenience functions using the default logger. Each
// reports its own caller, so Depth(0) is the line calling it.

// Fatal logs a fatal message using the default logger
func Fatal(ctx context.Context, msg string, opts ...CallOption) (int, error) {
	l, err := Instance()
	if err != nil {
		return 0, err
	}
	return l.writeLog(ctx, core.FatalLevel, msg, opts, 1)
}

// Warning logs a warning message using the default logger
func Warning(ctx context.Context, msg string, opts ...CallOption) (int, error) {
	l, err := Instance()
	if err != nil {
		return 0, err
	}
	return l.writeLog(ctx, core.WarningLevel, msg, opts, 1)
}

// Notice logs a notice message using the default logger
func Notice(ctx context.Context, msg string, opts ...CallOption) (int, error) {
	l, err := Instance()
	if err != nil {
		return 0, err
	}
	return l.writeLog(ctx, core.NoticeLevel, msg, opts, 1)
}

// Trace logs a trace message using the default logger
func Trace(ctx context.Context, msg string, opts ...CallOption) (int, error) {
	l, err := Instance()
	if err != nil {
		return 0, err
	}
	return l.writeLog(ctx, core.TraceLevel, msg, opts, 1)
}

// Debug logs a debug message using the default logger
func Debug(ctx context.Context, msg string, opts ...CallOption) (int, error) {
	l, err := Instance()
	if err != nil {
		return 0, err
	}
	return l.writeLog(ctx, core.DebugLevel, msg, opts, 1)
}

// Statistic logs a statistic record using the default logger
func Statistic(ctx context.Context, msg string, opts ...CallOption) (int, error) {
	l, err := Instance()
	if err != nil {
		return 0, err
	}
	return l.writeLog(ctx, core.StatisticLevel, msg, opts, 1)
}

// WriteLog logs at an arbitrary registry level using the default logger
func WriteLog(ctx context.Context, level Level, msg string, opts ...CallOption) (int, error) {
	l, err := Instance()
	if err != nil {
		return 0, err
	}
	return l.writeLog(ctx, level, msg, opts, 1)
}

// SetLogID sets the default logger's correlation id
func SetLogID(id int64) error {
	l, err := Instance()
	if err != nil {
		return err
	}
	l.SetLogID(id)
	return nil
}

// CurrentLogID derives a fresh correlation id from the wall clock
func CurrentLogID() int64 {
	return core.NewLogID(time.Now())
}

// ClientIP resolves the client address for ctx from the request in it,
// then the process environment
func ClientIP(ctx context.Context) string {
	return reqctx.ClientIP(ctx, nil)
}
