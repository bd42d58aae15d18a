package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer
	l := New(false, &buf)
	l.Debug("hidden")
	l.Info("formatted", zap.String("path", "a.rs"))
	require.NoError(t, l.Sync())
	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "info")
	require.Contains(t, out, "formatted")
	require.Contains(t, out, "a.rs")

	buf.Reset()
	l = New(true, &buf)
	l.Debug("shown")
	require.Contains(t, buf.String(), "shown")
}

func TestOr(t *testing.T) {
	require.NotNil(t, Or(nil))
	l := zap.NewNop()
	require.Same(t, l, Or(l))
}
