package config

import (
	"context"
	"os"
)

type ctxKey struct{}
type workDirKey struct{}

// WithSettings attaches settings to the context.
func WithSettings(ctx context.Context, s *Settings) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the settings attached to ctx, or nil.
func FromContext(ctx context.Context) *Settings {
	s, _ := ctx.Value(ctxKey{}).(*Settings)
	return s
}

// WithWorkDir attaches the directory gw operates from.
func WithWorkDir(ctx context.Context, dir string) context.Context {
	return context.WithValue(ctx, workDirKey{}, dir)
}

// WorkDirFromContext returns the directory attached to ctx, falling back to
// the process working directory.
func WorkDirFromContext(ctx context.Context) string {
	if dir, _ := ctx.Value(workDirKey{}).(string); dir != "" {
		return dir
	}
	wd, _ := os.Getwd()
	return wd
}
