package diag

import "rfmt/internal/source"

// Reporter receives diagnostics from a phase.
// Реализации: BagReporter, DedupReporter, ReporterFunc, session.Session.
type Reporter interface {
	Report(d Diagnostic)
}

// ReporterFunc adapts a plain function to Reporter.
type ReporterFunc func(d Diagnostic)

func (f ReporterFunc) Report(d Diagnostic) { f(d) }

// BagReporter пишет в *Bag; nil Bag всё отбрасывает.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag != nil {
		r.Bag.Add(d)
	}
}

// ReportBuilder collects notes before a single Emit.
type ReportBuilder struct {
	reporter Reporter
	diag     Diagnostic
	emitted  bool
}

func NewReportBuilder(r Reporter, sev Severity, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{reporter: r, diag: New(sev, code, primary, msg)}
}

func ReportError(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevError, code, primary, msg)
}

func ReportWarning(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, code, primary, msg)
}

func ReportInfo(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevInfo, code, primary, msg)
}

func (b *ReportBuilder) WithNote(sp source.Span, msg string) *ReportBuilder {
	b.diag = b.diag.WithNote(sp, msg)
	return b
}

// Emit hands the diagnostic over; repeated calls are no-ops.
func (b *ReportBuilder) Emit() {
	if b.emitted {
		return
	}
	b.emitted = true
	if b.reporter != nil {
		b.reporter.Report(b.diag)
	}
}
