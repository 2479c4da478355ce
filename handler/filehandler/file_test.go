package filehandler

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/philipp01105/masklog/core"
	"github.com/philipp01105/masklog/formatter"
)

const base = "/var/log/app/app.log"

func newRecord(level core.Level, msg string) *core.Record {
	return &core.Record{
		Time:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Level:    level,
		Message:  msg,
		Caller:   core.CallerInfo{ShortFile: "x.go", Line: 1},
		ClientIP: "127.0.0.1",
	}
}

func newTestHandler(t *testing.T, fs afero.Fs, maxSize int64) *FileHandler {
	t.Helper()
	h, err := NewFileHandler(FileConfig{
		BasePath:    base,
		MaxFileSize: maxSize,
		Fs:          fs,
		Formatter:   formatter.NewLineFormatter(formatter.Config{Location: time.UTC}),
	})
	require.NoError(t, err)
	return h
}

func readFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	b, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(b)
}

func TestNewFileHandler_CreatesDirectoryAndFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	newTestHandler(t, fs, 0)

	info, err := fs.Stat(base)
	require.NoError(t, err)
	assert.Zero(t, info.Size())

	dir, err := afero.IsDir(fs, "/var/log/app")
	require.NoError(t, err)
	assert.True(t, dir)

	// Suffixed destinations are created on first write only
	exists, _ := afero.Exists(fs, base+WarningSuffix)
	assert.False(t, exists)
}

func TestNewFileHandler_KeepsExistingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, base, []byte("old\n"), 0644))

	newTestHandler(t, fs, 0)
	assert.Equal(t, "old\n", readFile(t, fs, base))
}

func TestNewFileHandler_InvalidConfiguration(t *testing.T) {
	_, err := NewFileHandler(FileConfig{Fs: afero.NewMemMapFs()})
	assert.True(t, errors.Is(err, core.ErrInvalidConfiguration))

	_, err = NewFileHandler(FileConfig{BasePath: base, MaxFileSize: -1, Fs: afero.NewMemMapFs()})
	assert.True(t, errors.Is(err, core.ErrInvalidConfiguration))
}

func TestNewFileHandler_CreateFailure(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())

	_, err := NewFileHandler(FileConfig{BasePath: base, Fs: fs})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInvalidConfiguration))
}

func TestDestination(t *testing.T) {
	tests := []struct {
		level core.Level
		want  string
	}{
		{core.FatalLevel, base + ".wf"},
		{core.WarningLevel, base + ".wf"},
		{core.StatisticLevel, base + ".st"},
		{core.NoticeLevel, base},
		{core.TraceLevel, base},
		{core.DebugLevel, base},
		{core.WarningLevel | core.StatisticLevel, base + ".wf"},
		{core.DebugLevel | core.StatisticLevel, base + ".st"},
		{core.AllLevel, base + ".wf"},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Destination(base, tt.level))
		})
	}
}

func TestFileHandler_Routing(t *testing.T) {
	fs := afero.NewMemMapFs()
	h := newTestHandler(t, fs, 0)

	for _, l := range core.Levels() {
		n, err := h.Handle(newRecord(l, "to "+l.String()))
		require.NoError(t, err)
		assert.Positive(t, n)
	}

	main := readFile(t, fs, base)
	wf := readFile(t, fs, base+".wf")
	st := readFile(t, fs, base+".st")

	assert.Equal(t, 3, strings.Count(main, "\n"))
	assert.Contains(t, main, "msg=to NOTICE")
	assert.Contains(t, main, "msg=to TRACE")
	assert.Contains(t, main, "msg=to DEBUG")

	assert.Equal(t, 2, strings.Count(wf, "\n"))
	assert.Contains(t, wf, "msg=to FATAL")
	assert.Contains(t, wf, "msg=to WARNING")

	assert.Equal(t, 1, strings.Count(st, "\n"))
	assert.Contains(t, st, "msg=to STATISTIC")
}

func TestFileHandler_ReturnsBytesWritten(t *testing.T) {
	fs := afero.NewMemMapFs()
	h := newTestHandler(t, fs, 0)

	n, err := h.Handle(newRecord(core.NoticeLevel, "hello"))
	require.NoError(t, err)
	assert.Equal(t, len(readFile(t, fs, base)), n)
}

func TestFileHandler_RotatesOversizedFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	h := newTestHandler(t, fs, 100)
	require.NoError(t, afero.WriteFile(fs, base, []byte(strings.Repeat("x", 150)), 0644))

	n, err := h.Handle(newRecord(core.DebugLevel, "fresh"))
	require.NoError(t, err)

	got := readFile(t, fs, base)
	assert.Len(t, got, n)
	assert.NotContains(t, got, "xxx")
	assert.Contains(t, got, "msg=fresh\n")
	assert.Equal(t, uint64(1), h.Stats().RotatedTotal)
}

func TestFileHandler_KeepsFileAtLimit(t *testing.T) {
	fs := afero.NewMemMapFs()
	h := newTestHandler(t, fs, 100)
	require.NoError(t, afero.WriteFile(fs, base, []byte(strings.Repeat("x", 100)), 0644))

	_, err := h.Handle(newRecord(core.DebugLevel, "appended"))
	require.NoError(t, err)

	got := readFile(t, fs, base)
	assert.True(t, strings.HasPrefix(got, strings.Repeat("x", 100)))
	assert.Zero(t, h.Stats().RotatedTotal)
}

func TestFileHandler_RotationDisabled(t *testing.T) {
	fs := afero.NewMemMapFs()
	h := newTestHandler(t, fs, 0)
	require.NoError(t, afero.WriteFile(fs, base, []byte(strings.Repeat("x", 1<<20)), 0644))

	for i := 0; i < 10; i++ {
		_, err := h.Handle(newRecord(core.DebugLevel, "more"))
		require.NoError(t, err)
	}

	info, err := fs.Stat(base)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(1<<20))
	assert.Zero(t, h.Stats().RotatedTotal)
}

func TestFileHandler_RotatesEachDestinationIndependently(t *testing.T) {
	fs := afero.NewMemMapFs()
	h := newTestHandler(t, fs, 100)
	require.NoError(t, afero.WriteFile(fs, base+".wf", []byte(strings.Repeat("w", 150)), 0644))
	require.NoError(t, afero.WriteFile(fs, base, []byte("keep\n"), 0644))

	_, err := h.Handle(newRecord(core.WarningLevel, "warn"))
	require.NoError(t, err)

	assert.NotContains(t, readFile(t, fs, base+".wf"), "www")
	assert.Equal(t, "keep\n", readFile(t, fs, base))
}

func TestFileHandler_MissingDestinationSkipsRotation(t *testing.T) {
	fs := afero.NewMemMapFs()
	h := newTestHandler(t, fs, 10)

	_, err := h.Handle(newRecord(core.StatisticLevel, "first"))
	require.NoError(t, err)
	assert.Contains(t, readFile(t, fs, base+".st"), "msg=first")
	assert.Zero(t, h.Stats().RotatedTotal)
}

func TestFileHandler_RotationDiagnostics(t *testing.T) {
	obs, logs := observer.New(zapcore.DebugLevel)
	fs := afero.NewMemMapFs()
	h, err := NewFileHandler(FileConfig{
		BasePath:    base,
		MaxFileSize: 100,
		Fs:          fs,
		Diagnostics: zap.New(obs),
	})
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fs, base, []byte(strings.Repeat("x", 150)), 0644))

	_, err = h.Handle(newRecord(core.DebugLevel, "fresh"))
	require.NoError(t, err)

	entries := logs.FilterMessage("rotated log file").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, base, fields["path"])
	assert.Equal(t, int64(150), fields["size"])
	assert.Equal(t, int64(100), fields["limit"])
}

type failingStorage struct {
	Storage
	appendErr error
	removeErr error
}

func (s *failingStorage) Append(path string, data []byte) (int, error) {
	if s.appendErr != nil {
		return 0, s.appendErr
	}
	return s.Storage.Append(path, data)
}

func (s *failingStorage) Remove(path string) error {
	if s.removeErr != nil {
		return s.removeErr
	}
	return s.Storage.Remove(path)
}

func TestFileHandler_AppendFailureSurfaces(t *testing.T) {
	diskFull := errors.New("no space left on device")
	obs, logs := observer.New(zapcore.WarnLevel)
	st := &failingStorage{Storage: NewStorage(afero.NewMemMapFs()), appendErr: diskFull}

	h, err := NewFileHandler(FileConfig{BasePath: base, Storage: st, Diagnostics: zap.New(obs)})
	require.NoError(t, err)

	n, err := h.Handle(newRecord(core.NoticeLevel, "lost"))
	assert.Zero(t, n)
	require.Error(t, err)
	assert.True(t, errors.Is(err, diskFull))
	assert.Equal(t, uint64(1), h.Stats().FailedTotal)
	assert.Equal(t, 1, logs.FilterMessage("append to log file failed").Len())
}

func TestFileHandler_RemoveFailureStillAppends(t *testing.T) {
	fs := afero.NewMemMapFs()
	st := &failingStorage{Storage: NewStorage(fs), removeErr: os.ErrPermission}
	h, err := NewFileHandler(FileConfig{BasePath: base, MaxFileSize: 10, Storage: st})
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fs, base, []byte(strings.Repeat("x", 50)), 0644))

	_, err = h.Handle(newRecord(core.NoticeLevel, "kept"))
	require.NoError(t, err)

	got := readFile(t, fs, base)
	assert.True(t, strings.HasPrefix(got, strings.Repeat("x", 50)))
	assert.Contains(t, got, "msg=kept")
	assert.Zero(t, h.Stats().RotatedTotal)
}

func TestFileHandler_Stats(t *testing.T) {
	fs := afero.NewMemMapFs()
	h := newTestHandler(t, fs, 0)

	for _, l := range []core.Level{core.DebugLevel, core.DebugLevel, core.WarningLevel} {
		_, err := h.Handle(newRecord(l, "s"))
		require.NoError(t, err)
	}

	snap := h.Stats()
	assert.Equal(t, uint64(2), snap.WrittenTotal[core.DebugLevel])
	assert.Equal(t, uint64(1), snap.WrittenTotal[core.WarningLevel])
	assert.Zero(t, snap.WrittenTotal[core.NoticeLevel])
	assert.Equal(t, uint64(len(readFile(t, fs, base))+len(readFile(t, fs, base+".wf"))), snap.WrittenBytes)
}

func TestFileHandler_ConcurrentWritesDoNotInterleave(t *testing.T) {
	// Real files: the per-line guarantee comes from the OS append mode
	fs := afero.NewOsFs()
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	h, err := NewFileHandler(FileConfig{BasePath: path, Fs: fs})
	require.NoError(t, err)

	const writers, perWriter = 8, 50
	done := make(chan struct{})
	for w := 0; w < writers; w++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for i := 0; i < perWriter; i++ {
				_, _ = h.Handle(newRecord(core.TraceLevel, "concurrent"))
			}
		}()
	}
	for w := 0; w < writers; w++ {
		<-done
	}

	lines := strings.Split(strings.TrimSuffix(readFile(t, fs, path), "\n"), "\n")
	require.Len(t, lines, writers*perWriter)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "[TRACE]||"))
		assert.True(t, strings.HasSuffix(line, "msg=concurrent"))
	}
}
