package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"rfmt/internal/diag"
	"rfmt/internal/source"
)

func testFile(path, content string) (*source.FileSet, source.FileID) {
	fs := source.NewFileSetWithBase("/home/user/project")
	return fs, fs.AddVirtual(path, []byte(content))
}

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs, id := testFile("/home/user/project/src/main.rs", "fn main() {\n    let x = ;\n}\n")
	d := diag.New(diag.SevError, diag.SynExpectExpression, source.Span{File: id, Start: 24, End: 25}, "expected expression")

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/main.rs:2:13:"},
		{"Relative path", PathModeRelative, "\nsrc/main.rs:2:13:"},
		{"Basename only", PathModeBasename, "\nmain.rs:2:13:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Pretty(&buf, []diag.Diagnostic{d}, fs, PrettyOpts{PathMode: tt.mode}))
			out := "\n" + buf.String()
			require.Contains(t, out, tt.contains)
			require.Contains(t, out, "ERROR SYN2006: expected expression")
		})
	}
}

func TestPathModeAuto(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"Short path - as is", "test.rs", "test.rs:1:"},
		{"Long absolute path - basename", "/very/long/absolute/path/to/some/nested/directory/file.rs", "file.rs:1:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := source.NewFileSetWithBase("/elsewhere")
			id := fs.AddVirtual(tt.path, []byte("let x = 42\n"))
			d := diag.New(diag.SevWarning, diag.LexUnknownChar, source.Span{File: id, Start: 8, End: 10}, "Test warning")
			var buf bytes.Buffer
			require.NoError(t, Pretty(&buf, []diag.Diagnostic{d}, fs, PrettyOpts{}))
			require.True(t, strings.HasPrefix(buf.String(), tt.expected), buf.String())
		})
	}
}

func TestPrettyExcerpt(t *testing.T) {
	fs, id := testFile("a.rs", "fn main() {\n    let x = ;\n}\n")
	d := diag.New(diag.SevError, diag.SynExpectExpression, source.Span{File: id, Start: 24, End: 25}, "expected expression").
		WithNote(source.Span{File: id, Start: 16, End: 21}, "in this statement")
	var buf bytes.Buffer
	require.NoError(t, Pretty(&buf, []diag.Diagnostic{d}, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true}))
	want := "a.rs:2:13: ERROR SYN2006: expected expression\n" +
		"   2 |     let x = ;\n" +
		"     |             ^\n" +
		"  note: a.rs:2:5: in this statement\n" +
		"   2 |     let x = ;\n" +
		"     |     ^~~~~\n"
	require.Equal(t, want, buf.String())
}

func TestPrettyWithoutLocation(t *testing.T) {
	d := diag.New(diag.SevInfo, diag.IOLoadFileError, source.Span{File: 3}, "cannot read")
	var buf bytes.Buffer
	require.NoError(t, Pretty(&buf, []diag.Diagnostic{d}, source.NewFileSet(), PrettyOpts{}))
	require.Equal(t, "INFO IO5001: cannot read\n", buf.String())
}
