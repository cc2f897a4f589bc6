package log

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintf(t *testing.T) {
	t.Parallel()

	t.Run("writes when not quiet", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		New(&buf, false, false).Printf("created %s\n", "feature__x")
		assert.Equal(t, "created feature__x\n", buf.String())
	})

	t.Run("suppressed when quiet", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		l := New(&buf, false, true)
		l.Printf("nope")
		l.Println("nope")
		assert.Empty(t, buf.String())
	})
}

func TestCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		verbose bool
		quiet   bool
		dir     string
		want    string
	}{
		{name: "verbose with dir", verbose: true, dir: "/tmp", want: "[/tmp] $ git status (100ms)\n"},
		{name: "verbose without dir", verbose: true, want: "$ git status (100ms)\n"},
		{name: "not verbose", want: ""},
		{name: "quiet wins", verbose: true, quiet: true, dir: "/tmp", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			done := New(&buf, tt.verbose, tt.quiet).Command(tt.dir, "git", "status")
			done(100 * time.Millisecond)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestDebug(t *testing.T) {
	t.Parallel()

	t.Run("key value pairs", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		New(&buf, true, false).Debug("resolved", "input", "feat", "kind", "substring")
		got := buf.String()
		assert.Contains(t, got, "resolved")
		assert.Contains(t, got, "input=feat")
		assert.Contains(t, got, "kind=substring")
	})

	t.Run("odd trailing key dropped", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		New(&buf, true, false).Debug("msg", "key1", "val1", "orphan")
		got := buf.String()
		assert.Contains(t, got, "key1=val1")
		assert.NotContains(t, got, "orphan")
	})

	t.Run("silent unless verbose", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		New(&buf, false, false).Debug("hidden", "k", "v")
		New(&buf, true, true).Debug("hidden", "k", "v")
		assert.Empty(t, buf.String())
	})
}

func TestWarn(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(&buf, false, false).Warn("hook failed", "command", "false")
	assert.Contains(t, buf.String(), "hook failed")
	assert.Contains(t, buf.String(), "command=false")

	buf.Reset()
	New(&buf, false, true).Warn("hook failed")
	assert.Empty(t, buf.String())
}

func TestWithLogger_FromContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf, true, false)
	require.Same(t, l, FromContext(WithLogger(context.Background(), l)))

	fallback := FromContext(context.Background())
	require.NotNil(t, fallback)
	fallback.Printf("should not appear anywhere")
	fallback.Debug("should not appear anywhere")
	assert.Equal(t, io.Discard, fallback.Writer())
	assert.False(t, fallback.IsVerbose())
}
