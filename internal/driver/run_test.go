package driver

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"rfmt/internal/cache"
	"rfmt/internal/config"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const (
	messy = "fn main() {\nlet x=1;\n}\n"
	tidy  = "fn main() {\n    let x = 1;\n}\n"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return dir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func testConfig(t *testing.T, dir string, overrides map[string]string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.BaseDir = dir
	for k, v := range overrides {
		require.NoError(t, cfg.OverrideValue(k, v))
	}
	return cfg
}

func TestRunReplaceWritesBackup(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.rs": messy, "b.rs": tidy})
	cfg := testConfig(t, dir, nil)

	report, err := Run(context.Background(), []string{dir}, cfg, Options{})
	require.NoError(t, err)
	require.Len(t, report.Files, 2)
	require.False(t, report.Failed())
	require.Equal(t, 1, report.Changed())

	require.Equal(t, tidy, readFile(t, filepath.Join(dir, "a.rs")))
	require.Equal(t, messy, readFile(t, filepath.Join(dir, "a.rs.bk")))
	require.NoFileExists(t, filepath.Join(dir, "b.rs.bk"))
}

func TestRunOverwriteWithoutBackup(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.rs": messy})
	cfg := testConfig(t, dir, map[string]string{"write_mode": "Overwrite"})

	_, err := Run(context.Background(), []string{filepath.Join(dir, "a.rs")}, cfg, Options{})
	require.NoError(t, err)
	require.Equal(t, tidy, readFile(t, filepath.Join(dir, "a.rs")))
	require.NoFileExists(t, filepath.Join(dir, "a.rs.bk"))
}

func TestRunCheckLeavesFiles(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.rs": messy})
	cfg := testConfig(t, dir, nil)

	report, err := Run(context.Background(), []string{dir}, cfg, Options{Check: true})
	require.NoError(t, err)
	require.Equal(t, 1, report.Changed())
	require.Equal(t, messy, readFile(t, filepath.Join(dir, "a.rs")))
}

func TestRunIgnoredFileWithSyntaxError(t *testing.T) {
	bad := "fn main( {\n"
	dir := writeFiles(t, map[string]string{"bad.rs": bad, "ok.rs": messy})
	cfg := testConfig(t, dir, map[string]string{"ignore": "bad.rs"})

	report, err := Run(context.Background(), []string{dir}, cfg, Options{})
	require.NoError(t, err)
	require.Len(t, report.Files, 2)

	f := report.Files[0]
	require.Equal(t, filepath.Join(dir, "bad.rs"), f.Path)
	require.True(t, f.Ignored)
	require.True(t, f.HasErrors)
	require.True(t, f.CanReset)
	require.Empty(t, f.Diagnostics)
	require.False(t, f.Failed())
	require.False(t, report.Failed())

	require.Equal(t, bad, readFile(t, filepath.Join(dir, "bad.rs")))
	require.Equal(t, tidy, readFile(t, filepath.Join(dir, "ok.rs")))
}

func TestRunParseErrorFails(t *testing.T) {
	bad := "fn main( {\n"
	dir := writeFiles(t, map[string]string{"bad.rs": bad})
	cfg := testConfig(t, dir, nil)

	report, err := Run(context.Background(), []string{dir}, cfg, Options{})
	require.NoError(t, err)
	require.True(t, report.Failed())
	f := report.Files[0]
	require.True(t, f.HasErrors)
	require.False(t, f.CanReset)
	require.NotEmpty(t, f.Diagnostics)
	require.Equal(t, bad, readFile(t, filepath.Join(dir, "bad.rs")))
}

func TestRunHideParseErrors(t *testing.T) {
	dir := writeFiles(t, map[string]string{"bad.rs": "fn main( {\n"})
	cfg := testConfig(t, dir, map[string]string{"hide_parse_errors": "true"})

	report, err := Run(context.Background(), []string{dir}, cfg, Options{})
	require.NoError(t, err)
	require.Empty(t, report.Files[0].Diagnostics)
	require.True(t, report.Failed())
}

func TestRunFailFast(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.rs": "fn (\n", "b.rs": "fn (\n", "c.rs": messy})
	cfg := testConfig(t, dir, nil)

	report, err := Run(context.Background(), []string{dir}, cfg, Options{Jobs: 1, FailFast: true})
	require.ErrorIs(t, err, ErrFailFast)
	require.True(t, report.Failed())
	require.Equal(t, messy, readFile(t, filepath.Join(dir, "c.rs")))
}

func TestRunStreamModes(t *testing.T) {
	tests := []struct {
		mode string
		want func(path string) string
	}{
		{"Plain", func(string) string { return tidy }},
		{"Display", func(path string) string { return path + ":\n\n" + tidy }},
		{"Coverage", func(string) string { return tidy }},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			dir := writeFiles(t, map[string]string{"a.rs": messy})
			cfg := testConfig(t, dir, map[string]string{"write_mode": tt.mode})
			path := filepath.Join(dir, "a.rs")

			var out bytes.Buffer
			_, err := Run(context.Background(), []string{path}, cfg, Options{Out: &out})
			require.NoError(t, err)
			require.Equal(t, tt.want(path), out.String())
			require.Equal(t, messy, readFile(t, path))
		})
	}
}

func TestRunDiff(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.rs": messy, "b.rs": tidy})
	cfg := testConfig(t, dir, map[string]string{"write_mode": "Diff"})

	var out bytes.Buffer
	report, err := Run(context.Background(), []string{dir}, cfg, Options{Out: &out})
	require.NoError(t, err)
	require.Equal(t, 1, report.Changed())
	require.Contains(t, out.String(), "-let x=1;")
	require.Contains(t, out.String(), "+    let x = 1;")
	require.NotContains(t, out.String(), "b.rs")
	require.Equal(t, messy, readFile(t, filepath.Join(dir, "a.rs")))
}

func TestRunCheckstyle(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.rs": messy})
	cfg := testConfig(t, dir, map[string]string{"write_mode": "Checkstyle"})

	var out bytes.Buffer
	_, err := Run(context.Background(), []string{dir}, cfg, Options{Out: &out})
	require.NoError(t, err)
	require.Contains(t, out.String(), `<checkstyle version="4.3">`)
	require.Contains(t, out.String(), `<file name="`+filepath.Join(dir, "a.rs")+`">`)
	require.Contains(t, out.String(), `line="2"`)
	require.Contains(t, out.String(), "Should be `    let x = 1;`")
}

func TestRunWindowsNewlines(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.rs": messy})
	cfg := testConfig(t, dir, map[string]string{"newline_style": "Windows"})

	_, err := Run(context.Background(), []string{dir}, cfg, Options{})
	require.NoError(t, err)
	require.Equal(t, "fn main() {\r\n    let x = 1;\r\n}\r\n", readFile(t, filepath.Join(dir, "a.rs")))
}

func TestRunChildModules(t *testing.T) {
	files := map[string]string{
		"src/lib.rs":       "mod a;\nmod b;\nmod inner {\n    mod c;\n}\n",
		"src/a.rs":         "mod deep;\n",
		"src/a/deep.rs":    messy,
		"src/b/mod.rs":     "fn main( {\n",
		"src/inner/c.rs":   messy,
		"src/unrelated.rs": messy,
	}
	dir := writeFiles(t, files)
	cfg := testConfig(t, dir, map[string]string{"ignore": "src/b/**"})
	lib := filepath.Join(dir, "src", "lib.rs")

	report, err := Run(context.Background(), []string{lib}, cfg, Options{})
	require.NoError(t, err)
	var paths []string
	for _, f := range report.Files {
		paths = append(paths, f.Path)
	}
	require.Equal(t, []string{
		lib,
		filepath.Join(dir, "src", "a.rs"),
		filepath.Join(dir, "src", "a", "deep.rs"),
		filepath.Join(dir, "src", "inner", "c.rs"),
	}, paths)

	root := report.Files[0]
	// ошибки игнорируемого модуля сброшены
	require.False(t, root.HasErrors)
	require.True(t, root.CanReset)
	require.Empty(t, root.Diagnostics)
	require.False(t, report.Failed())
	require.True(t, report.Files[1].Child)

	require.Equal(t, tidy, readFile(t, filepath.Join(dir, "src", "a", "deep.rs")))
	require.Equal(t, tidy, readFile(t, filepath.Join(dir, "src", "inner", "c.rs")))
	require.Equal(t, "fn main( {\n", readFile(t, filepath.Join(dir, "src", "b", "mod.rs")))
	require.Equal(t, messy, readFile(t, filepath.Join(dir, "src", "unrelated.rs")))
}

func TestRunSkipChildren(t *testing.T) {
	dir := writeFiles(t, map[string]string{"lib.rs": "mod a;\n", "a.rs": messy})
	cfg := testConfig(t, dir, map[string]string{"skip_children": "true"})

	report, err := Run(context.Background(), []string{filepath.Join(dir, "lib.rs")}, cfg, Options{})
	require.NoError(t, err)
	require.Len(t, report.Files, 1)
	require.Equal(t, messy, readFile(t, filepath.Join(dir, "a.rs")))
}

func TestRunCache(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.rs": tidy})
	cfg := testConfig(t, dir, nil)
	c, err := cache.Open(t.TempDir())
	require.NoError(t, err)

	first, err := Run(context.Background(), []string{dir}, cfg, Options{Cache: c})
	require.NoError(t, err)
	require.False(t, first.Files[0].Cached)

	second, err := Run(context.Background(), []string{dir}, cfg, Options{Cache: c})
	require.NoError(t, err)
	require.True(t, second.Files[0].Cached)
	require.False(t, second.Files[0].Changed)

	// другой конфиг: другой ключ
	wide := testConfig(t, dir, map[string]string{"max_width": "120"})
	third, err := Run(context.Background(), []string{dir}, wide, Options{Cache: c})
	require.NoError(t, err)
	require.False(t, third.Files[0].Cached)
}

func TestRunNoSources(t *testing.T) {
	dir := writeFiles(t, map[string]string{"README.md": "x"})
	_, err := Run(context.Background(), []string{dir}, testConfig(t, dir, nil), Options{})
	require.True(t, errors.Is(err, ErrNoSources))
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, []string{"."}, config.Default(), Options{})
	require.ErrorIs(t, err, context.Canceled)
}
