package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"rfmt/internal/cache"
	"rfmt/internal/config"
	"rfmt/internal/diag"
	"rfmt/internal/ignore"
	"rfmt/internal/logging"
	"rfmt/internal/observ"
	"rfmt/internal/source"
)

// ErrFailFast is returned by Run when a file failed and Options.FailFast
// stopped the remaining work.
var ErrFailFast = errors.New("run aborted after a failed file")

// ErrNoSources: среди путей нет ни одного *.rs.
var ErrNoSources = errors.New("no source files found")

// Options configures one run.
type Options struct {
	// Jobs bounds the number of files formatted at once; <= 0 means GOMAXPROCS.
	Jobs     int
	FailFast bool
	// Check leaves every file on disk untouched whatever the write mode.
	Check bool
	// Out receives Display, Plain, Diff, Coverage and Checkstyle output.
	Out   io.Writer
	Color bool

	Logger *zap.Logger
	Cache  *cache.Cache
}

// FileResult is the outcome of one file.
type FileResult struct {
	Path string
	// Child: файл найден через `mod x;`, а не передан напрямую.
	Child   bool
	Ignored bool
	Cached  bool

	Original  []byte
	Formatted []byte
	Changed   bool
	// Unformatted counts constructs left as written.
	Unformatted int

	FileSet     *source.FileSet
	Diagnostics []diag.Diagnostic
	HasErrors   bool
	CanReset    bool
	Err         error

	Timing observ.Report
}

// Failed reports whether the file makes the run fail.
func (f *FileResult) Failed() bool {
	return f.Err != nil || f.HasErrors && !f.CanReset
}

// Report aggregates the results of a run in input order.
type Report struct {
	Files []FileResult
}

// Failed reports whether any file failed.
func (r *Report) Failed() bool {
	for i := range r.Files {
		if r.Files[i].Failed() {
			return true
		}
	}
	return false
}

// Changed returns the number of files whose formatted text differs from disk.
func (r *Report) Changed() int {
	n := 0
	for i := range r.Files {
		if r.Files[i].Changed {
			n++
		}
	}
	return n
}

// Timing sums the phase timings of every file.
func (r *Report) Timing() observ.Report {
	reports := make([]observ.Report, 0, len(r.Files))
	for i := range r.Files {
		reports = append(reports, r.Files[i].Timing)
	}
	return observ.Sum(reports...)
}

// FailedCount returns the number of failed files.
func (r *Report) FailedCount() int {
	n := 0
	for i := range r.Files {
		if r.Files[i].Failed() {
			n++
		}
	}
	return n
}

// Run formats the files and directories in paths (directories are searched
// for *.rs recursively) and applies the configured write mode.
func Run(ctx context.Context, paths []string, cfg *config.Config, opts Options) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	ign, err := ignore.New(cfg.BaseDir, cfg.Ignore())
	if err != nil {
		return nil, err
	}

	files, err := collectSourceFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoSources
	}

	r := &runner{
		cfg:    cfg,
		opts:   opts,
		ignore: ign,
		log:    logging.Or(opts.Logger),
		fp:     cfg.Fingerprint(),
		roots:  make(map[string]struct{}, len(files)),
	}
	for _, f := range files {
		r.roots[f] = struct{}{}
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([][]FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.process(gctx, path, false)
			if opts.FailFast {
				for j := range results[i] {
					if results[i][j].Failed() {
						return fmt.Errorf("%s: %w", results[i][j].Path, ErrFailFast)
					}
				}
			}
			return nil
		})
	}
	waitErr := g.Wait()

	report := &Report{}
	for _, rs := range results {
		report.Files = append(report.Files, rs...)
	}
	if waitErr != nil && !errors.Is(waitErr, ErrFailFast) {
		return report, waitErr
	}
	if err := r.emit(report); err != nil {
		return report, err
	}
	r.log.Debug("run finished",
		zap.Int("files", len(report.Files)),
		zap.Int("changed", report.Changed()),
		zap.Int("failed", report.FailedCount()))
	return report, waitErr
}

type runner struct {
	cfg    *config.Config
	opts   Options
	ignore *ignore.Set
	log    *zap.Logger
	fp     string

	// roots: файлы, переданные напрямую; дочерний обход их пропускает
	roots map[string]struct{}
	// seen: дочерние файлы, уже взятые в работу
	seen sync.Map
}

func collectSourceFiles(ctx context.Context, paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		path = filepath.Clean(path)
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			addFile(p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if !d.IsDir() && filepath.Ext(path) == ".rs" {
				addFile(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}
