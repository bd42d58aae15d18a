package diag

import (
	"testing"

	"rfmt/internal/source"
)

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	file := fs.Add("/workspace/src/lib.rs", []byte("a\nb\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevWarning,
			Code:     FmtTodo,
			Message:  "another",
			Primary:  source.Span{File: file, Start: 2, End: 3},
		},
		{
			Severity: SevError,
			Code:     SynUnexpectedToken,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: file, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: file, Start: 2, End: 3}, Msg: "note line"},
			},
		},
	}

	expected := "error SYN2001 src/lib.rs:1:1 first line second\n" +
		"warning FMT4002 src/lib.rs:2:1 another\n" +
		"note SYN2001 src/lib.rs:2:1 note line"

	if got := FormatShortDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestBagLimitAndSort(t *testing.T) {
	b := NewBag(2)
	sp := func(start uint32) source.Span { return source.Span{Start: start, End: start + 1} }
	if !b.Add(NewError(SynUnexpectedToken, sp(5), "late")) {
		t.Fatalf("first add must succeed")
	}
	b.Add(New(SevInfo, FmtUnformattable, sp(1), "early"))
	if b.Add(NewError(SynExpectItem, sp(0), "dropped")) {
		t.Fatalf("bag must respect its limit")
	}
	b.Sort()
	if b.Items()[0].Message != "early" || !b.HasErrors() || b.Dropped() != 1 {
		t.Fatalf("unexpected bag state %+v", b.Items())
	}
	if b.Count(SevError) != 1 || b.Count(SevWarning) != 0 {
		t.Fatalf("counts: errors=%d warnings=%d", b.Count(SevError), b.Count(SevWarning))
	}
}

func TestBagSortSeverityFirstOnSameSpan(t *testing.T) {
	b := NewBag(0)
	sp := source.Span{Start: 4, End: 6}
	b.Add(New(SevWarning, FmtTodo, sp, "todo"))
	b.Add(NewError(SynExpectSemicolon, sp, "semi"))
	b.Add(NewError(SynUnexpectedToken, sp, "token"))
	b.Sort()
	var got []Code
	for _, d := range b.Items() {
		got = append(got, d.Code)
	}
	want := []Code{SynUnexpectedToken, SynExpectSemicolon, FmtTodo}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestBagDedup(t *testing.T) {
	b := NewBag(0)
	sp := source.Span{Start: 1, End: 2}
	b.Add(NewError(SynUnexpectedToken, sp, "x"))
	b.Add(NewError(SynUnexpectedToken, sp, "x").WithNote(sp, "again"))
	b.Add(NewError(SynUnexpectedToken, sp, "y"))
	b.Dedup()
	if b.Len() != 2 || len(b.Items()[0].Notes) != 0 {
		t.Fatalf("dedup kept %+v", b.Items())
	}
}

func TestWithNoteDoesNotAlias(t *testing.T) {
	base := NewError(SynExpectItem, source.Span{}, "base").WithNote(source.Span{}, "first")
	a := base.WithNote(source.Span{Start: 1}, "a")
	b := base.WithNote(source.Span{Start: 2}, "b")
	if len(base.Notes) != 1 || a.Notes[1].Msg != "a" || b.Notes[1].Msg != "b" {
		t.Fatalf("notes alias: base=%v a=%v b=%v", base.Notes, a.Notes, b.Notes)
	}
}

func TestSeverityLabels(t *testing.T) {
	tests := []struct {
		sev          Severity
		upper, lower string
	}{
		{SevInfo, "INFO", "info"},
		{SevWarning, "WARNING", "warning"},
		{SevError, "ERROR", "error"},
		{Severity(9), "UNKNOWN", "info"},
	}
	for _, tt := range tests {
		if tt.sev.String() != tt.upper || tt.sev.Label() != tt.lower {
			t.Errorf("%d: got %q/%q", tt.sev, tt.sev.String(), tt.sev.Label())
		}
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(8)
	r := NewDedupReporter(BagReporter{Bag: bag})
	span := source.Span{Start: 3, End: 4}
	for range 3 {
		ReportError(r, SynUnexpectedToken, span, "unexpected ')'").Emit()
	}
	ReportError(r, SynUnexpectedToken, span, "unexpected ']'").Emit()
	if bag.Len() != 2 || r.Suppressed() != 2 {
		t.Fatalf("len=%d suppressed=%d", bag.Len(), r.Suppressed())
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	var got []Diagnostic
	r := ReporterFunc(func(d Diagnostic) { got = append(got, d) })
	b := ReportWarning(r, FmtTodo, source.Span{}, "todo").WithNote(source.Span{}, "here")
	b.Emit()
	b.Emit()
	if len(got) != 1 || got[0].Severity != SevWarning || len(got[0].Notes) != 1 {
		t.Fatalf("got %+v", got)
	}
}
