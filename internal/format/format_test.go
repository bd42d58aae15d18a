package format

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"rfmt/internal/ast"
	"rfmt/internal/config"
	"rfmt/internal/diag"
	"rfmt/internal/parser"
	"rfmt/internal/session"
	"rfmt/internal/source"
)

// goldenCase: один случай из testdata/*.yaml.
type goldenCase struct {
	Name   string            `yaml:"name"`
	Config map[string]string `yaml:"config"`
	Input  string            `yaml:"input"`
	Output string            `yaml:"output"`
}

func testConfig(t *testing.T, overrides map[string]string) *config.Config {
	t.Helper()
	cfg := config.Default()
	for k, v := range overrides {
		require.NoError(t, cfg.OverrideValue(k, v))
	}
	return cfg
}

func formatText(t *testing.T, cfg *config.Config, text string) string {
	t.Helper()
	sf, b, f, sess := parseSnippet("test.rs", []byte(text))
	require.NotNil(t, f)
	require.False(t, sess.HasErrors(), "parse errors in %q", text)
	out, err := formatParsed(sf, b, f, cfg)
	require.NoError(t, err)
	return string(out)
}

func TestGolden(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)
	for _, path := range paths {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var cases []goldenCase
		require.NoError(t, yaml.Unmarshal(data, &cases), path)
		for _, tc := range cases {
			t.Run(filepath.Base(path)+"/"+tc.Name, func(t *testing.T) {
				cfg := testConfig(t, tc.Config)
				got := formatText(t, cfg, tc.Input)
				if diff := cmp.Diff(tc.Output, got); diff != "" {
					t.Fatalf("output mismatch (-want +got):\n%s", diff)
				}
				again := formatText(t, cfg, got)
				if diff := cmp.Diff(got, again); diff != "" {
					t.Fatalf("second pass changed output (-first +second):\n%s", diff)
				}
			})
		}
	}
}

func TestCheckRoundTrip(t *testing.T) {
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual("lib.rs", []byte("use b::c;\nuse a::{x,y};\nfn main(){let v=vec![1,2,3];}\n")))
	cfg := testConfig(t, map[string]string{"reorder_imports": "true", "merge_imports": "true"})
	ok, msg := CheckRoundTrip(sf, cfg)
	require.True(t, ok, msg)
}

// formatFile прогоняет FormatFile с записывающей сессией.
func formatFile(t *testing.T, cfg *config.Config, text string) (Result, *session.Session) {
	t.Helper()
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual("lib.rs", []byte(text)))
	sess := session.New(fs, nil, session.Default, nil)
	b := ast.NewBuilder(ast.Hints{})
	res := parser.ParseFile(sf, b, parser.Options{Reporter: sess, MaxErrors: 16})
	require.False(t, sess.HasErrors())
	out, err := FormatFile(sf, b, res.File, cfg, sess)
	require.NoError(t, err)
	return out, sess
}

func codes(sess *session.Session) []diag.Code {
	var out []diag.Code
	for _, d := range sess.Diagnostics() {
		out = append(out, d.Code)
	}
	return out
}

func TestFormatFileReportsTodo(t *testing.T) {
	src := "// TODO: split\n// TODO(#7) numbered\nfn main() {}\n"

	_, sess := formatFile(t, testConfig(t, map[string]string{"report_todo": "Always"}), src)
	require.Equal(t, []diag.Code{diag.FmtTodo, diag.FmtTodo}, codes(sess))

	_, sess = formatFile(t, testConfig(t, map[string]string{"report_todo": "Unnumbered"}), src)
	require.Equal(t, []diag.Code{diag.FmtTodo}, codes(sess))

	_, sess = formatFile(t, testConfig(t, map[string]string{"report_todo": "Never"}), src)
	require.Empty(t, codes(sess))
}

func TestFormatFileMacroFallback(t *testing.T) {
	src := "fn main() {\n    m!(=> oops);\n}\n"
	res, sess := formatFile(t, config.Default(), src)
	require.Equal(t, src, string(res.Text))
	require.Equal(t, 1, res.Unformatted)
	require.Equal(t, []diag.Code{diag.FmtUnformattable}, codes(sess))
	require.False(t, sess.HasErrors())
}

func TestFormatFileMacroErrorsReplayed(t *testing.T) {
	src := "fn main() {\n    m!(=> oops);\n}\n"
	res, sess := formatFile(t, testConfig(t, map[string]string{"error_on_unformatted": "true"}), src)
	require.Equal(t, src, string(res.Text))
	got := codes(sess)
	require.Contains(t, got, diag.FmtUnformattable)
	require.True(t, slices.ContainsFunc(got, diag.Code.IsSyntax), "codes %v", got)
	require.True(t, sess.HasErrors())
	require.False(t, sess.CanResetErrors())

	// без error_on_unformatted ошибки разбора тела не попадают в сессию
	_, sess = formatFile(t, config.Default(), src)
	require.False(t, slices.ContainsFunc(codes(sess), diag.Code.IsSyntax))
}

func TestFormatFileCoverage(t *testing.T) {
	src := "fn main() {\n    m!(=> oops);\n}\n"
	res, _ := formatFile(t, testConfig(t, map[string]string{"write_mode": "Coverage"}), src)
	require.Equal(t, "fn main() {\n    XXXXX XXXXX;\n}\n", string(res.Text))
}
