package diagfmt

import (
	"encoding/xml"
	"io"
	"strings"
	"unicode/utf8"

	"fortio.org/safecast"
	"github.com/pmezard/go-difflib/difflib"

	"rfmt/internal/diag"
	"rfmt/internal/source"
)

// CheckstyleFile: один <file> отчёта.
type CheckstyleFile struct {
	Name   string            `xml:"name,attr"`
	Errors []CheckstyleError `xml:"error"`
}

// CheckstyleError: одна диагностика или одно расхождение с форматом.
type CheckstyleError struct {
	Line     uint32 `xml:"line,attr"`
	Column   uint32 `xml:"column,attr,omitempty"`
	Severity string `xml:"severity,attr"`
	Message  string `xml:"message,attr"`
}

type checkstyleDoc struct {
	XMLName xml.Name         `xml:"checkstyle"`
	Version string           `xml:"version,attr"`
	Files   []CheckstyleFile `xml:"file"`
}

// Checkstyle writes files as a single checkstyle XML document.
func Checkstyle(w io.Writer, files []CheckstyleFile) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(checkstyleDoc{Version: "4.3", Files: files}); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// CheckstyleDiagnostics converts diagnostics into <error> entries.
func CheckstyleDiagnostics(diags []diag.Diagnostic, fs *source.FileSet) []CheckstyleError {
	out := make([]CheckstyleError, 0, len(diags))
	for i := range diags {
		d := &diags[i]
		e := CheckstyleError{
			Severity: d.Severity.Label(),
			Message:  d.Code.ID() + ": " + d.Message,
		}
		if loc, ok := diag.Locate(fs, d.Primary); ok {
			e.Line, e.Column = loc.Line, loc.Column
		}
		out = append(out, e)
	}
	return out
}

// CheckstyleMismatches reports every changed region between the original
// and the formatted text as a warning at its first original line, with the
// column where that line first differs.
func CheckstyleMismatches(original, formatted []byte) []CheckstyleError {
	a := splitLines(original)
	b := splitLines(formatted)
	m := difflib.NewMatcher(a, b)
	var out []CheckstyleError
	for _, op := range m.GetOpCodes() {
		if op.Tag == 'e' {
			continue
		}
		want := strings.TrimSuffix(strings.Join(b[op.J1:op.J2], ""), "\n")
		line, err := safecast.Conv[uint32](op.I1 + 1)
		if err != nil {
			line = 0
		}
		var was, now string
		if op.I1 < op.I2 {
			was = a[op.I1]
		}
		if op.J1 < op.J2 {
			now = b[op.J1]
		}
		out = append(out, CheckstyleError{
			Line:     line,
			Column:   firstDiffColumn(was, now),
			Severity: "warning",
			Message:  "Should be `" + want + "`",
		})
	}
	return out
}

// firstDiffColumn returns the 1-based rune column of the first difference.
func firstDiffColumn(a, b string) uint32 {
	col := uint32(1)
	for a != "" && b != "" {
		ra, na := utf8.DecodeRuneInString(a)
		rb, nb := utf8.DecodeRuneInString(b)
		if ra != rb {
			break
		}
		a, b = a[na:], b[nb:]
		col++
	}
	return col
}
