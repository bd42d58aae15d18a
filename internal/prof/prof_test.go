package prof

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStartStopWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	opts := Options{
		CPU:   filepath.Join(dir, "cpu.out"),
		Mem:   filepath.Join(dir, "mem.out"),
		Trace: filepath.Join(dir, "trace.out"),
	}
	s, err := Start(opts)
	require.NoError(t, err)
	require.NoError(t, s.Stop())
	// повторный Stop ничего не делает
	require.NoError(t, s.Stop())

	for _, p := range []string{opts.CPU, opts.Mem, opts.Trace} {
		info, err := os.Stat(p)
		require.NoError(t, err)
		require.Positive(t, info.Size(), p)
	}
}

func TestStartWithoutProfiles(t *testing.T) {
	s, err := Start(Options{})
	require.NoError(t, err)
	require.NoError(t, s.Stop())

	var nilSession *Session
	require.NoError(t, nilSession.Stop())
}

func TestStartBadPath(t *testing.T) {
	_, err := Start(Options{CPU: filepath.Join(t.TempDir(), "missing", "cpu.out")})
	require.Error(t, err)
}
