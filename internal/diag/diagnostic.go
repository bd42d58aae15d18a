package diag

import (
	"cmp"

	"rfmt/internal/source"
)

// Note points at a secondary location.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic: одно сообщение от лексера, парсера, форматтера или драйвера.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Primary: primary, Message: msg}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

// WithNote returns a copy of d with one more note; d itself is not changed.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	notes := make([]Note, len(d.Notes), len(d.Notes)+1)
	copy(notes, d.Notes)
	d.Notes = append(notes, Note{Span: sp, Msg: msg})
	return d
}

func (d Diagnostic) IsError() bool {
	return d.Severity >= SevError
}

// Compare orders diagnostics by file, start, end, then the more severe
// first, then by code.
func Compare(a, b Diagnostic) int {
	if c := cmp.Compare(a.Primary.File, b.Primary.File); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Primary.Start, b.Primary.Start); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Primary.End, b.Primary.End); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Severity, a.Severity); c != 0 {
		return c
	}
	return cmp.Compare(a.Code, b.Code)
}
