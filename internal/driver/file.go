package driver

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"

	"rfmt/internal/ast"
	"rfmt/internal/cache"
	"rfmt/internal/config"
	"rfmt/internal/format"
	"rfmt/internal/observ"
	"rfmt/internal/parser"
	"rfmt/internal/session"
	"rfmt/internal/source"
)

// после стольких ошибок разбор файла бросается
const maxParseErrors = 64

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// process formats path and then, unless skip_children is set, the files of
// its out-of-line modules. The file comes first in the returned slice.
func (r *runner) process(ctx context.Context, path string, child bool) []FileResult {
	res, sess, children := r.formatFile(path, child)
	out := []FileResult{res}
	for _, c := range children {
		if ctx.Err() != nil {
			break
		}
		if r.ignore.Match(c) {
			if sess != nil {
				r.parseIgnoredChild(c, sess, &out[0])
			}
			continue
		}
		if _, root := r.roots[c]; root {
			continue
		}
		if _, dup := r.seen.LoadOrStore(c, struct{}{}); dup {
			continue
		}
		out = append(out, r.process(ctx, c, true)...)
	}
	return out
}

// formatFile runs one file through load, parse, format and the on-disk
// part of the write mode. The returned session is nil when the file was
// answered from the cache.
func (r *runner) formatFile(path string, child bool) (FileResult, *session.Session, []string) {
	timer := observ.NewTimer()
	res, sess, children := r.timedFormat(path, child, timer)
	res.Timing = timer.Report()
	return res, sess, children
}

func (r *runner) timedFormat(path string, child bool, timer *observ.Timer) (FileResult, *session.Session, []string) {
	res := FileResult{Path: path, Child: child}
	log := r.log.With(zap.String("path", path))

	fs := source.NewFileSetWithBase(r.cfg.BaseDir)
	phase := timer.Begin(observ.PhaseLoad)
	id, raw, err := fs.Load(path)
	timer.End(phase)
	if err != nil {
		res.Err = fmt.Errorf("failed to read %s: %w", path, err)
		return res, nil, nil
	}
	res.Original = raw
	res.FileSet = fs
	sf := fs.Get(id)

	emission := session.Default
	if r.cfg.HideParseErrors() {
		emission = session.Silence
	}
	sess := session.New(fs, r.ignore, emission, nil)
	res.Ignored = sess.IgnoreFile(path)

	key := cache.Key(r.fp, raw)
	if !res.Ignored && r.cacheable() {
		if e, ok, err := r.opts.Cache.Get(key); err != nil {
			log.Debug("cache read failed", zap.Error(err))
		} else if ok && e.Clean {
			log.Debug("cache hit")
			res.Cached = true
			res.Formatted = raw
			return res, nil, e.Children
		}
	}

	phase = timer.Begin(observ.PhaseParse)
	b := ast.NewBuilder(ast.Hints{})
	parsed := parser.ParseFile(sf, b, parser.Options{Reporter: sess, MaxErrors: maxParseErrors})
	timer.End(phase)
	var children []string
	if !res.Ignored && !r.cfg.SkipChildren() {
		children = childModules(sf, b, parsed.File, !child)
	}
	r.settle(&res, sess)
	if res.Ignored {
		log.Debug("ignored", zap.Bool("errors", res.HasErrors))
		return res, sess, nil
	}
	if res.HasErrors {
		log.Debug("parse failed", zap.Int("errors", sess.ErrorCount()))
		return res, sess, children
	}

	phase = timer.Begin(observ.PhaseFormat)
	out, err := format.FormatFile(sf, b, parsed.File, r.cfg, sess)
	timer.End(phase)
	if err != nil {
		res.Err = err
		r.settle(&res, sess)
		return res, sess, children
	}
	r.settle(&res, sess)
	res.Unformatted = out.Unformatted
	res.Formatted = r.finish(out.Text, sf.Flags)
	res.Changed = !bytes.Equal(res.Formatted, raw)
	log.Debug("formatted", zap.Bool("changed", res.Changed), zap.Int("unformatted", res.Unformatted))

	phase = timer.Begin(observ.PhaseWrite)
	err = r.write(&res)
	timer.End(phase)
	if err != nil {
		res.Err = err
		return res, sess, children
	}
	if r.cacheable() && !res.Changed && res.Unformatted == 0 && len(res.Diagnostics) == 0 {
		if err := r.opts.Cache.Put(key, cache.Entry{Path: path, Clean: true, Children: children}); err != nil {
			log.Debug("cache write failed", zap.Error(err))
		}
	}
	return res, sess, children
}

// parseIgnoredChild parses an ignored module file through the session of
// the file that declared it. Errors that came only from ignored files are
// reset; the file itself is never formatted or written.
func (r *runner) parseIgnoredChild(path string, sess *session.Session, parent *FileResult) {
	fs := sess.FileSet()
	id, _, err := fs.Load(path)
	if err != nil {
		r.log.Debug("ignored child unreadable", zap.String("path", path), zap.Error(err))
		return
	}
	b := ast.NewBuilder(ast.Hints{})
	parser.ParseFile(fs.Get(id), b, parser.Options{Reporter: sess, MaxErrors: maxParseErrors})
	if sess.ResetErrors() {
		r.log.Debug("ignored child errors reset", zap.String("path", path))
	}
	r.settle(parent, sess)
}

func (r *runner) settle(res *FileResult, sess *session.Session) {
	res.HasErrors = sess.HasErrors()
	res.CanReset = sess.CanResetErrors()
	res.Diagnostics = sess.Diagnostics()
}

// cacheable: кэш безопасен только там, где чистый файл не даёт вывода.
func (r *runner) cacheable() bool {
	if r.opts.Cache == nil {
		return false
	}
	switch r.cfg.WriteMode() {
	case config.WriteReplace, config.WriteOverwrite, config.WriteDiff, config.WriteCheckstyle:
		return true
	}
	return false
}

// finish applies newline_style and restores a byte order mark.
func (r *runner) finish(text []byte, flags source.FileFlags) []byte {
	if windowsNewlines(r.cfg.NewlineStyle()) {
		text = bytes.ReplaceAll(text, []byte("\n"), []byte("\r\n"))
	}
	if flags.Has(source.FileHadBOM) {
		text = append(append([]byte(nil), utf8BOM...), text...)
	}
	return text
}

func windowsNewlines(s config.NewlineStyle) bool {
	switch s {
	case config.NewlineWindows:
		return true
	case config.NewlineNative:
		return runtime.GOOS == "windows"
	}
	return false
}

// write performs the on-disk half of Replace and Overwrite.
func (r *runner) write(res *FileResult) error {
	if r.opts.Check || !res.Changed || res.Failed() {
		return nil
	}
	mode := r.cfg.WriteMode()
	if mode != config.WriteReplace && mode != config.WriteOverwrite {
		return nil
	}
	perm := os.FileMode(0o644)
	if info, err := os.Stat(res.Path); err == nil {
		perm = info.Mode().Perm()
	}
	if mode == config.WriteReplace {
		if err := os.WriteFile(res.Path+".bk", res.Original, perm); err != nil {
			return fmt.Errorf("failed to write backup of %s: %w", res.Path, err)
		}
	}
	if err := os.WriteFile(res.Path, res.Formatted, perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", res.Path, err)
	}
	return nil
}
