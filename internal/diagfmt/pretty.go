package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"rfmt/internal/diag"
	"rfmt/internal/source"
)

// длиннее: в авто-режиме показываем только имя файла
const autoPathLimit = 40

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждой печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку исходника с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	for i := range diags {
		d := &diags[i]
		if err := p.diagnostic(w, d, fs, opts); err != nil {
			return err
		}
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			if err := p.note(w, n, fs, opts); err != nil {
				return err
			}
		}
	}
	return nil
}

type palette struct {
	sev  map[diag.Severity]*color.Color
	code *color.Color
	loc  *color.Color
	mark *color.Color
	hint *color.Color
}

func newPalette(enabled bool) *palette {
	p := &palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevError:   color.New(color.FgRed, color.Bold),
			diag.SevWarning: color.New(color.FgYellow, color.Bold),
			diag.SevInfo:    color.New(color.FgBlue, color.Bold),
		},
		code: color.New(color.Faint),
		loc:  color.New(color.Bold),
		mark: color.New(color.FgRed),
		hint: color.New(color.FgCyan),
	}
	all := []*color.Color{p.code, p.loc, p.mark, p.hint}
	for _, c := range p.sev {
		all = append(all, c)
	}
	for _, c := range all {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *palette) diagnostic(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) error {
	sev := p.sev[d.Severity]
	if sev == nil {
		sev = p.sev[diag.SevInfo]
	}
	head := fmt.Sprintf("%s %s: %s", sev.Sprint(d.Severity.String()), p.code.Sprint(d.Code.ID()), d.Message)
	f, start, end, ok := locate(fs, d.Primary)
	if !ok {
		_, err := fmt.Fprintln(w, head)
		return err
	}
	loc := fmt.Sprintf("%s:%d:%d:", displayPath(f, fs, opts), start.Line, start.Col)
	if _, err := fmt.Fprintf(w, "%s %s\n", p.loc.Sprint(loc), head); err != nil {
		return err
	}
	return p.excerpt(w, f, start, end, p.mark)
}

func (p *palette) note(w io.Writer, n diag.Note, fs *source.FileSet, opts PrettyOpts) error {
	f, start, end, ok := locate(fs, n.Span)
	if !ok {
		_, err := fmt.Fprintf(w, "  %s %s\n", p.hint.Sprint("note:"), n.Msg)
		return err
	}
	loc := fmt.Sprintf("%s:%d:%d:", displayPath(f, fs, opts), start.Line, start.Col)
	if _, err := fmt.Fprintf(w, "  %s %s %s\n", p.hint.Sprint("note:"), loc, n.Msg); err != nil {
		return err
	}
	return p.excerpt(w, f, start, end, p.hint)
}

// excerpt prints the first line of the span with a marker below it.
// Columns are display columns: wide runes count twice.
func (p *palette) excerpt(w io.Writer, f *source.File, start, end source.LineCol, mark *color.Color) error {
	line := f.GetLine(start.Line)
	if line == "" {
		return nil
	}
	startByte := min(int(start.Col)-1, len(line))
	endByte := len(line)
	if end.Line == start.Line {
		endByte = min(max(int(end.Col)-1, startByte), len(line))
	}
	pad := runewidth.StringWidth(expandTabs(line[:startByte]))
	n := max(runewidth.StringWidth(line[startByte:endByte]), 1)

	gutter := fmt.Sprintf("%4d | ", start.Line)
	blank := strings.Repeat(" ", len(gutter)-2) + "| "
	if _, err := fmt.Fprintf(w, "%s%s\n", gutter, expandTabs(line)); err != nil {
		return err
	}
	marker := "^" + strings.Repeat("~", n-1)
	_, err := fmt.Fprintf(w, "%s%s%s\n", blank, strings.Repeat(" ", pad), mark.Sprint(marker))
	return err
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

func locate(fs *source.FileSet, span source.Span) (*source.File, source.LineCol, source.LineCol, bool) {
	if fs == nil || int(span.File) >= fs.Len() {
		return nil, source.LineCol{}, source.LineCol{}, false
	}
	f := fs.Get(span.File)
	start, end := fs.Resolve(span)
	return f, start, end, true
}

func displayPath(f *source.File, fs *source.FileSet, opts PrettyOpts) string {
	base := opts.BaseDir
	if base == "" {
		base = fs.BaseDir()
	}
	switch opts.PathMode {
	case PathModeAbsolute:
		if abs, err := source.AbsolutePath(f.Path); err == nil {
			return abs
		}
		return f.Path
	case PathModeRelative:
		return f.DisplayPath(base)
	case PathModeBasename:
		return filepath.Base(f.Path)
	}
	if len(f.Path) <= autoPathLimit {
		return f.Path
	}
	if rel := f.DisplayPath(base); len(rel) <= autoPathLimit {
		return rel
	}
	return filepath.Base(f.Path)
}
