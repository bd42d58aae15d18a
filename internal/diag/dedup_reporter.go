package diag

import "rfmt/internal/source"

type dedupKey struct {
	code Code
	span source.Span
	msg  string
}

func keyOf(d Diagnostic) dedupKey {
	return dedupKey{code: d.Code, span: d.Primary, msg: d.Message}
}

// DedupReporter forwards each distinct (code, span, message) once.
// Восстановление парсера часто повторяет ошибку на том же токене.
type DedupReporter struct {
	next       Reporter
	seen       map[dedupKey]struct{}
	suppressed int
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[dedupKey]struct{})}
}

func (r *DedupReporter) Report(d Diagnostic) {
	k := keyOf(d)
	if _, ok := r.seen[k]; ok {
		r.suppressed++
		return
	}
	r.seen[k] = struct{}{}
	if r.next != nil {
		r.next.Report(d)
	}
}

// Suppressed returns how many repeats were dropped.
func (r *DedupReporter) Suppressed() int {
	return r.suppressed
}
