// Package session оборачивает репортер диагностик одного прохода форматирования.
//
// Сессия решает, куда уходит диагностика (стратегия Emitter), и ведёт
// одностороннюю защёлку: можно ли сбросить ошибки, потому что все они пришли
// из игнорируемых файлов.
package session

import (
	"rfmt/internal/diag"
	"rfmt/internal/ignore"
	"rfmt/internal/source"
)

// Emission selects the emitter strategy a session starts with.
type Emission uint8

const (
	// Default forwards diagnostics to the sink, except those located in ignored files.
	Default Emission = iota
	// Silence swallows everything. Used for speculative parses and hide_parse_errors.
	Silence
)

func (e Emission) String() string {
	if e == Silence {
		return "silence"
	}
	return "default"
}

// Disposition is what an emitter tells the session about one diagnostic.
type Disposition struct {
	// Ignorable reports that the diagnostic was located in an ignored file.
	Ignorable bool
}

// Emitter is the closed set of strategies: silentEmitter, ignoreFilteredEmitter, defaultEmitter.
type Emitter interface {
	Emit(d *diag.Diagnostic) Disposition
	emitter()
}

type silentEmitter struct{}

func (silentEmitter) Emit(*diag.Diagnostic) Disposition { return Disposition{} }
func (silentEmitter) emitter()                          {}

type defaultEmitter struct {
	sink diag.Reporter
}

func (e defaultEmitter) Emit(d *diag.Diagnostic) Disposition {
	if e.sink != nil {
		e.sink.Report(*d)
	}
	return Disposition{}
}
func (defaultEmitter) emitter() {}

type ignoreFilteredEmitter struct {
	inner   defaultEmitter
	ignored func(source.FileID) bool
}

func (e ignoreFilteredEmitter) Emit(d *diag.Diagnostic) Disposition {
	if e.ignored(d.Primary.File) {
		return Disposition{Ignorable: true}
	}
	return e.inner.Emit(d)
}
func (ignoreFilteredEmitter) emitter() {}

// Session is owned by exactly one file pass; it is not safe for concurrent use.
type Session struct {
	fs      *source.FileSet
	ignore  *ignore.Set
	emitter Emitter

	errors       int
	nonIgnorable bool
	canReset     bool

	recorded []diag.Diagnostic
	// кэш ответов ignore-предиката по файлу
	ignoredFiles map[source.FileID]bool
}

// New builds a session. sink may be nil, in which case diagnostics are only recorded.
func New(fs *source.FileSet, ignoreSet *ignore.Set, emission Emission, sink diag.Reporter) *Session {
	s := &Session{
		fs:           fs,
		ignore:       ignoreSet,
		ignoredFiles: make(map[source.FileID]bool),
	}
	s.emitter = ignoreFilteredEmitter{
		inner:   defaultEmitter{sink: sink},
		ignored: s.fileIgnored,
	}
	if emission == Silence {
		s.SetSilentEmitter()
	}
	return s
}

// Speculative returns a fresh silent session over the same files and ignore set.
func (s *Session) Speculative() *Session {
	return New(s.fs, s.ignore, Silence, nil)
}

// FileSet returns the file set diagnostics are resolved against.
func (s *Session) FileSet() *source.FileSet {
	return s.fs
}

// IgnoreFile reports whether path matches the ignore set.
func (s *Session) IgnoreFile(path string) bool {
	return s.ignore.Match(path)
}

func (s *Session) fileIgnored(id source.FileID) bool {
	if s.fs == nil || s.ignore.Empty() || int(id) >= s.fs.Len() {
		return false
	}
	if v, ok := s.ignoredFiles[id]; ok {
		return v
	}
	f := s.fs.Get(id)
	v := !f.Flags.Has(source.FileVirtual) && s.ignore.Match(f.Path)
	s.ignoredFiles[id] = v
	return v
}

// SetSilentEmitter switches the session to swallow every further diagnostic.
func (s *Session) SetSilentEmitter() {
	s.emitter = silentEmitter{}
}

// Silent reports whether the active strategy swallows diagnostics.
func (s *Session) Silent() bool {
	_, ok := s.emitter.(silentEmitter)
	return ok
}

// Report implements diag.Reporter.
func (s *Session) Report(d diag.Diagnostic) {
	s.handle(d)
}

// EmitDiagnostics replays a deferred batch through the active emitter, in order.
func (s *Session) EmitDiagnostics(batch []diag.Diagnostic) {
	for i := range batch {
		s.handle(batch[i])
	}
}

func (s *Session) handle(d diag.Diagnostic) {
	disp := s.emitter.Emit(&d)
	if _, silent := s.emitter.(silentEmitter); !silent && !disp.Ignorable {
		s.recorded = append(s.recorded, d)
	}
	// в защёлку попадают только ошибки: предупреждения (TODO, FIXME) и
	// info-откаты форматтера не мешают сбросу
	if !d.IsError() {
		return
	}
	s.errors++
	s.fold(disp)
}

// fold: единственное место, где меняется защёлка.
func (s *Session) fold(disp Disposition) {
	if !disp.Ignorable {
		s.nonIgnorable = true
	}
	s.canReset = disp.Ignorable && !s.nonIgnorable
}

// HasErrors reports whether an error was recorded since the last reset.
func (s *Session) HasErrors() bool {
	return s.errors > 0
}

// ErrorCount returns the number of errors since the last reset.
func (s *Session) ErrorCount() int {
	return s.errors
}

// CanResetErrors reports whether every error so far came from an ignored file.
func (s *Session) CanResetErrors() bool {
	return s.canReset
}

// ResetErrors clears the error counter when CanResetErrors allows it.
func (s *Session) ResetErrors() bool {
	if !s.canReset {
		return false
	}
	s.errors = 0
	return true
}

// Diagnostics returns the diagnostics that reached the sink.
func (s *Session) Diagnostics() []diag.Diagnostic {
	return s.recorded
}
