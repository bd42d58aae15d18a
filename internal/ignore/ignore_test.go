package ignore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetMatch(t *testing.T) {
	base := t.TempDir()
	set, err := New(base, []string{"gen/*.rs", "target/**", "src/skip.rs"})
	require.NoError(t, err)

	tests := []struct {
		rel  string
		want bool
	}{
		{"gen/a.rs", true},
		{"gen/deep/a.rs", false},
		{"target/debug/build/x.rs", true},
		{"src/skip.rs", true},
		{"src/keep.rs", false},
		{"src/../src/skip.rs", true},
	}
	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			require.Equal(t, tt.want, set.Match(filepath.Join(base, tt.rel)))
		})
	}
}

func TestSetDirectoryPattern(t *testing.T) {
	base := t.TempDir()
	set, err := New(base, []string{"vendor"})
	require.NoError(t, err)
	require.True(t, set.Match(filepath.Join(base, "vendor", "lib.rs")))
	require.False(t, set.Match(filepath.Join(base, "vendored.rs")))
}

func TestSetAbsolutePattern(t *testing.T) {
	other := t.TempDir()
	set, err := New(t.TempDir(), []string{filepath.ToSlash(other) + "/*.rs"})
	require.NoError(t, err)
	require.True(t, set.Match(filepath.Join(other, "x.rs")))
}

func TestEmptyAndInvalid(t *testing.T) {
	var nilSet *Set
	require.True(t, nilSet.Empty())
	require.False(t, nilSet.Match("/any/file.rs"))

	set, err := New(".", []string{"", "  "})
	require.NoError(t, err)
	require.True(t, set.Empty())

	_, err = New(".", []string{"src/[.rs"})
	require.Error(t, err)
}
