package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"rfmt/internal/diag"
	"rfmt/internal/ignore"
	"rfmt/internal/source"
)

type fixture struct {
	fs      *source.FileSet
	ignored source.FileID
	kept    source.FileID
	bag     *diag.Bag
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	fs := source.NewFileSet()
	return &fixture{
		fs:      fs,
		ignored: fs.Add(filepath.Join(dir, "gen", "bad.rs"), []byte("fn (\n"), 0),
		kept:    fs.Add(filepath.Join(dir, "src", "lib.rs"), []byte("fn main() {}\n"), 0),
		bag:     diag.NewBag(100),
	}
}

func (f *fixture) session(t *testing.T, emission Emission) *Session {
	t.Helper()
	dir := filepath.Dir(filepath.Dir(f.fs.Get(f.ignored).Path))
	set, err := ignore.New(dir, []string{"gen/**"})
	require.NoError(t, err)
	return New(f.fs, set, emission, diag.BagReporter{Bag: f.bag})
}

func errAt(s *Session, file source.FileID) {
	s.Report(diag.NewError(diag.SynUnexpectedToken, source.Span{File: file, Start: 0, End: 1}, "unexpected token"))
}

func TestIgnoreFile(t *testing.T) {
	f := newFixture(t)
	s := f.session(t, Default)
	require.True(t, s.IgnoreFile(f.fs.Get(f.ignored).Path))
	require.False(t, s.IgnoreFile(f.fs.Get(f.kept).Path))
}

func TestErrorsOnlyInIgnoredFileAreResettable(t *testing.T) {
	f := newFixture(t)
	s := f.session(t, Default)

	errAt(s, f.ignored)
	errAt(s, f.ignored)

	require.True(t, s.HasErrors())
	require.True(t, s.CanResetErrors())
	require.Zero(t, f.bag.Len(), "ignored diagnostics must not reach the sink")
	require.Empty(t, s.Diagnostics())

	require.True(t, s.ResetErrors())
	require.False(t, s.HasErrors())
}

func TestNonIgnorableErrorLatches(t *testing.T) {
	f := newFixture(t)
	s := f.session(t, Default)

	errAt(s, f.ignored)
	require.True(t, s.CanResetErrors())

	errAt(s, f.kept)
	require.False(t, s.CanResetErrors())
	require.Equal(t, 1, f.bag.Len())

	// later ignorable errors never reopen the latch
	errAt(s, f.ignored)
	require.False(t, s.CanResetErrors())
	require.False(t, s.ResetErrors())
	require.True(t, s.HasErrors())
	require.Equal(t, 3, s.ErrorCount())
}

func TestWarningsDoNotTouchLatch(t *testing.T) {
	f := newFixture(t)
	s := f.session(t, Default)

	s.Report(diag.New(diag.SevWarning, diag.FmtTodo, source.Span{File: f.kept}, "TODO"))
	s.Report(diag.New(diag.SevInfo, diag.FmtUnformattable, source.Span{File: f.kept}, "left as written"))
	require.False(t, s.HasErrors())
	require.False(t, s.CanResetErrors())
	require.Len(t, s.Diagnostics(), 2)

	errAt(s, f.ignored)
	require.True(t, s.CanResetErrors())
}

func TestSilentSessionSwallowsAndNeverResets(t *testing.T) {
	f := newFixture(t)
	s := f.session(t, Silence)
	require.True(t, s.Silent())

	errAt(s, f.ignored)
	require.True(t, s.HasErrors())
	require.False(t, s.CanResetErrors())
	require.Zero(t, f.bag.Len())
	require.Empty(t, s.Diagnostics())
}

func TestSetSilentEmitter(t *testing.T) {
	f := newFixture(t)
	s := f.session(t, Default)
	errAt(s, f.kept)
	require.Equal(t, 1, f.bag.Len())

	s.SetSilentEmitter()
	errAt(s, f.kept)
	require.Equal(t, 1, f.bag.Len())
	require.Equal(t, 2, s.ErrorCount())
}

func TestEmitDiagnosticsReplaysBatch(t *testing.T) {
	f := newFixture(t)
	s := f.session(t, Default)

	buffered := diag.NewBag(10)
	r := diag.BagReporter{Bag: buffered}
	diag.ReportError(r, diag.SynExpectSemicolon, source.Span{File: f.ignored}, "expected ';'").Emit()
	diag.ReportError(r, diag.SynExpectSemicolon, source.Span{File: f.kept}, "expected ';'").Emit()
	require.False(t, s.HasErrors())

	s.EmitDiagnostics(buffered.Items())
	require.Equal(t, 2, s.ErrorCount())
	require.False(t, s.CanResetErrors())
	require.Equal(t, 1, f.bag.Len())
}

func TestNilIgnoreSetAndVirtualFiles(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("stdin", []byte("fn"))
	s := New(fs, nil, Default, nil)
	require.False(t, s.IgnoreFile("anything.rs"))

	errAt(s, id)
	require.True(t, s.HasErrors())
	require.False(t, s.CanResetErrors())
	require.Len(t, s.Diagnostics(), 1)
}

func TestSpeculativeSessionIsIndependent(t *testing.T) {
	f := newFixture(t)
	s := f.session(t, Default)
	sp := s.Speculative()
	errAt(sp, f.kept)
	require.True(t, sp.HasErrors())
	require.False(t, s.HasErrors())
	require.Zero(t, f.bag.Len())
}
