package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, WarnLevel)

	l.Info("should be dropped")
	l.Warn("should appear")

	out := buf.String()
	require.NotContains(t, out, "should be dropped")
	require.Contains(t, out, "should appear")
}

func TestNamedTagsComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, DebugLevel)

	l.Named("diff").Infof("diff_count=%d", 3)

	out := strings.TrimSpace(buf.String())
	require.Equal(t, "[INFO] [diff] diff_count=3", out)
}

func TestNamedSharesLockWithParent(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, InfoLevel)
	named := l.Named("resize")

	require.Same(t, l.mu, named.mu)
}
