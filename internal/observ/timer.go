// Package observ замеряет фазы прохода по файлу: чтение, разбор,
// форматирование и запись.
package observ

import (
	"fmt"
	"io"
	"time"
)

// Названия фаз одного файла.
const (
	PhaseLoad   = "load"
	PhaseParse  = "parse"
	PhaseFormat = "format"
	PhaseWrite  = "write"
)

// Phase records the duration of one phase.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
}

// Timer tracks the phases of one file pass. A nil Timer records nothing.
type Timer struct {
	phases []Phase
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 4)} }

// Begin starts a new phase and returns its index.
func (t *Timer) Begin(name string) int {
	if t == nil {
		return -1
	}
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End finishes a phase by its index.
func (t *Timer) End(idx int) {
	if t == nil || idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
}

// PhaseReport: фаза в сводке; одноимённые фазы складываются.
type PhaseReport struct {
	Name  string
	Dur   time.Duration
	Count int
}

// Report is the per-phase total of one or more timers, phases in first-seen order.
type Report struct {
	Total  time.Duration
	Phases []PhaseReport
}

// Report folds the recorded phases by name.
func (t *Timer) Report() Report {
	var r Report
	if t == nil {
		return r
	}
	for _, p := range t.phases {
		r.add(PhaseReport{Name: p.Name, Dur: p.Dur, Count: 1})
	}
	return r
}

func (r *Report) add(p PhaseReport) {
	r.Total += p.Dur
	for i := range r.Phases {
		if r.Phases[i].Name == p.Name {
			r.Phases[i].Dur += p.Dur
			r.Phases[i].Count += p.Count
			return
		}
	}
	r.Phases = append(r.Phases, p)
}

// Sum merges reports, e.g. those of every file in a run.
func Sum(reports ...Report) Report {
	var out Report
	for _, r := range reports {
		for _, p := range r.Phases {
			out.add(p)
		}
	}
	return out
}

// Write prints the report as an aligned table in milliseconds.
func (r Report) Write(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "timings:"); err != nil {
		return err
	}
	for _, p := range r.Phases {
		if _, err := fmt.Fprintf(w, "  %-10s %9.2f ms  x%d\n", p.Name, millis(p.Dur), p.Count); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "  %-10s %9.2f ms\n", "total", millis(r.Total))
	return err
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
