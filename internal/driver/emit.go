package driver

import (
	"fmt"

	"rfmt/internal/config"
	"rfmt/internal/diagfmt"
)

// emit writes the stream half of the write mode, file by file in report order.
func (r *runner) emit(report *Report) error {
	w := r.opts.Out
	mode := r.cfg.WriteMode()
	if mode == config.WriteCheckstyle {
		return diagfmt.Checkstyle(w, checkstyleFiles(report))
	}
	for i := range report.Files {
		f := &report.Files[i]
		if f.Formatted == nil || f.Failed() {
			continue
		}
		var err error
		switch mode {
		case config.WriteDisplay:
			_, err = fmt.Fprintf(w, "%s:\n\n%s", f.Path, f.Formatted)
		case config.WritePlain, config.WriteCoverage:
			_, err = w.Write(f.Formatted)
		case config.WriteDiff:
			err = diagfmt.Diff(w, f.Path, f.Original, f.Formatted, diagfmt.DiffOpts{Color: r.opts.Color})
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// checkstyleFiles builds one <file> per result with its diagnostics followed
// by the lines formatting would change.
func checkstyleFiles(report *Report) []diagfmt.CheckstyleFile {
	out := make([]diagfmt.CheckstyleFile, 0, len(report.Files))
	for i := range report.Files {
		f := &report.Files[i]
		cf := diagfmt.CheckstyleFile{Name: f.Path}
		if f.FileSet != nil {
			cf.Errors = diagfmt.CheckstyleDiagnostics(f.Diagnostics, f.FileSet)
		}
		if f.Changed {
			cf.Errors = append(cf.Errors, diagfmt.CheckstyleMismatches(f.Original, f.Formatted)...)
		}
		out = append(out, cf)
	}
	return out
}
