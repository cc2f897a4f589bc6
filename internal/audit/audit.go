// Package audit keeps an optional JSON log of worktree mutations and hook
// results, rotated by size.
package audit

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/raphi011/gw/internal/config"
)

// Recorder writes audit events. The zero value is not usable; use New or Nop.
type Recorder struct {
	zap    *zap.Logger
	closer func() error
}

// Nop returns a Recorder that discards everything.
func Nop() *Recorder {
	return &Recorder{zap: zap.NewNop(), closer: func() error { return nil }}
}

// New returns a Recorder for settings, or Nop when no file is configured.
func New(settings config.AuditSettings) (*Recorder, error) {
	if !settings.Enabled() {
		return Nop(), nil
	}
	if err := os.MkdirAll(filepath.Dir(settings.File), 0o755); err != nil {
		return nil, fmt.Errorf("create audit log directory: %w", err)
	}

	w := &lumberjack.Logger{
		Filename:   settings.File,
		MaxSize:    settings.MaxSizeMB,
		MaxBackups: settings.MaxBackups,
	}
	return newRecorder(zapcore.AddSync(w), w.Close), nil
}

func newRecorder(w zapcore.WriteSyncer, closer func() error) *Recorder {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.LowercaseLevelEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), w, zapcore.InfoLevel)
	return &Recorder{
		zap:    zap.New(core).With(zap.Int("pid", os.Getpid())),
		closer: closer,
	}
}

// Created records a new worktree.
func (r *Recorder) Created(branch, path string, newBranch bool) {
	r.zap.Info("worktree created",
		zap.String("branch", branch),
		zap.String("path", path),
		zap.Bool("new_branch", newBranch))
}

// Removed records a removal attempt.
func (r *Recorder) Removed(path string, err error) {
	if err != nil {
		r.zap.Warn("worktree removal failed", zap.String("path", path), zap.Error(err))
		return
	}
	r.zap.Info("worktree removed", zap.String("path", path))
}

// Deferred records a removal handed to the shell wrapper.
func (r *Recorder) Deferred(path string) {
	r.zap.Info("worktree removal deferred", zap.String("path", path))
}

// Hook records one hook command.
func (r *Recorder) Hook(phase, dir, command string, exitStatus int) {
	fields := []zap.Field{
		zap.String("phase", phase),
		zap.String("dir", dir),
		zap.String("command", command),
		zap.Int("exit_status", exitStatus),
	}
	if exitStatus != 0 {
		r.zap.Warn("hook failed", fields...)
		return
	}
	r.zap.Info("hook ran", fields...)
}

// Close flushes and closes the log file.
func (r *Recorder) Close() error {
	_ = r.zap.Sync()
	return r.closer()
}
