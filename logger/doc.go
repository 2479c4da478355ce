// Package logger is the public API of masklog. Most users only need to
// import this package.
//
// A Logger filters records by an active level mask, stamps them with
// the call site, a correlation id, the client IP and the request URI,
// and appends one line per record to a file chosen by severity:
//
//	<path>      NOTICE, TRACE, DEBUG
//	<path>.wf   WARNING, FATAL
//	<path>.st   STATISTIC
//
// Levels are bits; combine them with | to form the mask:
//
//	log, err := logger.New(logger.WarningLevel|logger.FatalLevel, "/var/log/app/app.log", 64<<20)
//
// For more control, use the Builder:
//
//	log, err := logger.NewBuilder().
//	    WithLevel(logger.AllLevel).
//	    WithFilePath("/var/log/app/app.log").
//	    WithMaxFileSize(64 << 20).
//	    WithDiagnostics(zapLogger).
//	    Build()
//
// Every emit call returns the bytes written. A call whose level is not
// in the mask returns (0, nil) and touches nothing. Storage failures are
// returned as errors and never retried.
//
//	log.Notice(ctx, "order placed", logger.Errno(0), logger.String("order", id))
//
// The package also keeps a process-wide default. Configure replaces it;
// Instance builds one lazily with DefaultLevel, DefaultFilePath and no
// size limit. The package-level functions Debug, Notice, Warning, etc.
// delegate to it. Prefer passing a *Logger explicitly where you can.
//
// When the size limit is set, a destination larger than the limit is
// deleted before the next write. This check is not locked against
// concurrent writers, so files may end slightly over the limit.
package logger
