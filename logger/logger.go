package logger

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/philipp01105/masklog/core"
	"github.com/philipp01105/masklog/formatter"
	"github.com/philipp01105/masklog/handler"
	"github.com/philipp01105/masklog/handler/filehandler"
	"github.com/philipp01105/masklog/reqctx"
)

const (
	// DefaultLevel enables every severity
	DefaultLevel = core.AllLevel
	// DefaultFilePath is used when no path is configured
	DefaultFilePath = "./log/masklog.log"
	// DefaultMaxFileSize disables rotation
	DefaultMaxFileSize = 0
)

// Logger filters records by an active level mask and hands them to its
// handler. Configuration is fixed at Build time; only the correlation id
// changes afterwards.
type Logger struct {
	handler     handler.Handler
	level       core.Level
	filePath    string
	maxFileSize int64
	clock       func() time.Time
	env         reqctx.Env
	// logID is shared by every caller of this Logger; last writer wins
	logID atomic.Int64
}

// Builder provides a fluent API for building Logger instances
type Builder struct {
	handler     handler.Handler
	level       core.Level
	filePath    string
	maxFileSize int64
	location    *time.Location
	clock       func() time.Time
	fs          afero.Fs
	storage     filehandler.Storage
	env         reqctx.Env
	diagnostics *zap.Logger
}

// NewBuilder creates a new logger builder
func NewBuilder() *Builder {
	return &Builder{
		level:       DefaultLevel,
		filePath:    DefaultFilePath,
		maxFileSize: DefaultMaxFileSize,
		location:    time.Local,
		clock:       time.Now,
	}
}

// WithLevel sets the active level mask
func (b *Builder) WithLevel(level core.Level) *Builder {
	b.level = level
	return b
}

// WithFilePath sets the base log file path
func (b *Builder) WithFilePath(path string) *Builder {
	b.filePath = path
	return b
}

// WithMaxFileSize sets the rotation threshold in bytes (0 = unbounded)
func (b *Builder) WithMaxFileSize(size int64) *Builder {
	b.maxFileSize = size
	return b
}

// WithLocation sets the zone timestamps are rendered in
func (b *Builder) WithLocation(loc *time.Location) *Builder {
	b.location = loc
	return b
}

// WithClock replaces time.Now
func (b *Builder) WithClock(clock func() time.Time) *Builder {
	b.clock = clock
	return b
}

// WithFs sets the file system log files live on
func (b *Builder) WithFs(fs afero.Fs) *Builder {
	b.fs = fs
	return b
}

// WithStorage replaces the file system access layer entirely
func (b *Builder) WithStorage(s filehandler.Storage) *Builder {
	b.storage = s
	return b
}

// WithEnv sets the environment lookup used for client IP fallback
func (b *Builder) WithEnv(env reqctx.Env) *Builder {
	b.env = env
	return b
}

// WithDiagnostics sets where the file handler reports rotations and
// storage failures
func (b *Builder) WithDiagnostics(z *zap.Logger) *Builder {
	b.diagnostics = z
	return b
}

// WithHandler bypasses the file handler. The file path and size limit
// are then only validated and reported.
func (b *Builder) WithHandler(h handler.Handler) *Builder {
	b.handler = h
	return b
}

// validate reports every configuration problem at once
func (b *Builder) validate() error {
	var err error
	if b.level < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: level %d is negative", core.ErrInvalidConfiguration, int(b.level)))
	}
	if b.maxFileSize < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: max file size %d is negative", core.ErrInvalidConfiguration, b.maxFileSize))
	}
	if b.filePath == "" {
		err = multierr.Append(err, fmt.Errorf("%w: file path is empty", core.ErrInvalidConfiguration))
	}
	return err
}

// Build validates the configuration, makes sure the base log file
// exists and creates the Logger.
func (b *Builder) Build() (*Logger, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}

	h := b.handler
	if h == nil {
		fh, err := filehandler.NewFileHandler(filehandler.FileConfig{
			BasePath:    b.filePath,
			MaxFileSize: b.maxFileSize,
			Formatter:   formatter.NewLineFormatter(formatter.Config{Location: b.location}),
			Fs:          b.fs,
			Storage:     b.storage,
			Diagnostics: b.diagnostics,
		})
		if err != nil {
			return nil, err
		}
		h = fh
	}

	clock := b.clock
	if clock == nil {
		clock = time.Now
	}

	return &Logger{
		handler:     h,
		level:       b.level,
		filePath:    b.filePath,
		maxFileSize: b.maxFileSize,
		clock:       clock,
		env:         b.env,
	}, nil
}

// New creates a file Logger with the given mask, base path and rotation
// threshold. It fails with ErrInvalidConfiguration on negative values,
// an empty path, or a log file that cannot be created.
func New(level core.Level, filePath string, maxFileSize int64) (*Logger, error) {
	return NewBuilder().
		WithLevel(level).
		WithFilePath(filePath).
		WithMaxFileSize(maxFileSize).
		Build()
}

// WriteLog emits msg at level. Use it for levels without a dedicated
// method; level must be a registry value.
func (l *Logger) WriteLog(ctx context.Context, level core.Level, msg string, opts ...CallOption) (int, error) {
	return l.writeLog(ctx, level, msg, opts, 1)
}

// writeLog is the filtering, formatting and write pipeline. skip is the
// number of frames between writeLog and the user's call site.
//
// A filtered call returns (0, nil).
func (l *Logger) writeLog(ctx context.Context, level core.Level, msg string, opts []CallOption, skip int) (int, error) {
	if _, err := level.Name(); err != nil {
		return 0, fmt.Errorf("%w: %w", core.ErrInvalidArgument, err)
	}

	rec := core.GetRecord()
	defer core.PutRecord(rec)

	for _, opt := range opts {
		if opt != nil {
			opt.apply(rec)
		}
	}
	if rec.Depth < 0 {
		return 0, fmt.Errorf("%w: depth %d is negative", core.ErrInvalidArgument, rec.Depth)
	}

	// Level check after validation so malformed calls fail even when muted
	if l.level&level == 0 {
		return 0, nil
	}

	rec.Level = level
	rec.Message = msg
	rec.Time = l.clock()
	if !rec.HasLogID() {
		rec.LogID = l.logID.Load()
	}
	rec.Caller = core.GetCaller(core.SaturatingAdd(1+skip, rec.Depth))
	rec.ClientIP = reqctx.ClientIP(ctx, l.env)
	rec.URI = reqctx.RequestURI(ctx)

	return l.handler.Handle(rec)
}

// Fatal logs a fatal message. Unlike many loggers it does not exit.
func (l *Logger) Fatal(ctx context.Context, msg string, opts ...CallOption) (int, error) {
	return l.writeLog(ctx, core.FatalLevel, msg, opts, 1)
}

// Warning logs a warning message
func (l *Logger) Warning(ctx context.Context, msg string, opts ...CallOption) (int, error) {
	return l.writeLog(ctx, core.WarningLevel, msg, opts, 1)
}

// Notice logs a notice message
func (l *Logger) Notice(ctx context.Context, msg string, opts ...CallOption) (int, error) {
	return l.writeLog(ctx, core.NoticeLevel, msg, opts, 1)
}

// Trace logs a trace message
func (l *Logger) Trace(ctx context.Context, msg string, opts ...CallOption) (int, error) {
	return l.writeLog(ctx, core.TraceLevel, msg, opts, 1)
}

// Debug logs a debug message
func (l *Logger) Debug(ctx context.Context, msg string, opts ...CallOption) (int, error) {
	return l.writeLog(ctx, core.DebugLevel, msg, opts, 1)
}

// Statistic logs a statistic record to the .st file
func (l *Logger) Statistic(ctx context.Context, msg string, opts ...CallOption) (int, error) {
	return l.writeLog(ctx, core.StatisticLevel, msg, opts, 1)
}

// Enabled reports whether a record at level would be written
func (l *Logger) Enabled(level core.Level) bool {
	return level.Known() && l.level&level != 0
}

// Level returns the active level mask
func (l *Logger) Level() core.Level {
	return l.level
}

// FilePath returns the base log file path
func (l *Logger) FilePath() string {
	return l.filePath
}

// MaxFileSize returns the rotation threshold in bytes
func (l *Logger) MaxFileSize() int64 {
	return l.maxFileSize
}

// SetLogID sets the correlation id stamped on every following record
// from any caller sharing this Logger. Concurrent setters race; the last
// store wins and is visible to all subsequent emits.
func (l *Logger) SetLogID(id int64) {
	l.logID.Store(id)
}

// LogID returns the current correlation id
func (l *Logger) LogID() int64 {
	return l.logID.Load()
}

// CurrentLogID derives a fresh correlation id from the Logger's clock
func (l *Logger) CurrentLogID() int64 {
	return core.NewLogID(l.clock())
}

// ClientIP resolves the client address for ctx
func (l *Logger) ClientIP(ctx context.Context) string {
	return reqctx.ClientIP(ctx, l.env)
}

// Stats returns the handler's counters, or a zero Snapshot when the
// handler does not keep any
func (l *Logger) Stats() handler.Snapshot {
	if sp, ok := l.handler.(handler.StatsProvider); ok {
		return sp.Stats()
	}
	return handler.Snapshot{}
}
