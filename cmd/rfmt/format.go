package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rfmt/internal/cache"
	"rfmt/internal/config"
	"rfmt/internal/diag"
	"rfmt/internal/diagfmt"
	"rfmt/internal/driver"
	"rfmt/internal/logging"
	"rfmt/internal/prof"
)

func runFormat(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	if printMode, _ := flags.GetString("print-config"); printMode != "" {
		return printConfig(cmd, args, printMode)
	}
	if len(args) == 0 {
		return usageError(errors.New("no input paths; see --help"))
	}

	cfg, cfgPath, err := loadConfig(cmd, args)
	if err != nil {
		return usageError(err)
	}

	check, _ := flags.GetBool("check")
	if check {
		switch cfg.WriteMode() {
		case config.WriteReplace, config.WriteOverwrite:
			if err := cfg.OverrideValue("write_mode", "Diff"); err != nil {
				return usageError(err)
			}
		}
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	verbose = verbose || cfg.Verbose()
	log := logging.New(verbose, cmd.ErrOrStderr())
	defer func() { _ = log.Sync() }()
	if cfgPath != "" {
		log.Debug("config loaded", zap.String("path", cfgPath))
	}

	colorOut := useColor(cfg.Color(), os.Stdout)
	colorErr := useColor(cfg.Color(), os.Stderr)
	errFormat, _ := flags.GetString("error-format")
	switch errFormat {
	case "", "human", "short":
	default:
		return usageError(fmt.Errorf("--error-format: unknown value %q (want human or short)", errFormat))
	}

	jobs, _ := flags.GetInt("jobs")
	failFast, _ := flags.GetBool("fail-fast")
	opts := driver.Options{
		Jobs:     jobs,
		FailFast: failFast,
		Check:    check,
		Out:      cmd.OutOrStdout(),
		Color:    colorOut,
		Logger:   log,
	}
	if useCache, _ := flags.GetBool("cache"); useCache {
		dir, _ := flags.GetString("cache-dir")
		c, err := cache.Open(dir)
		if err != nil {
			log.Warn("cache disabled", zap.Error(err))
		} else {
			opts.Cache = c
		}
	}

	profiles, err := startProfiles(cmd)
	if err != nil {
		return usageError(err)
	}
	report, runErr := driver.Run(cmd.Context(), args, cfg, opts)
	if err := profiles.Stop(); err != nil {
		log.Warn("profile not written", zap.Error(err))
	}
	if report != nil {
		if err := printDiagnostics(cmd.ErrOrStderr(), report, colorErr, errFormat == "short"); err != nil {
			return &exitError{code: 1, err: err}
		}
		if verbose {
			printSummary(cmd.ErrOrStderr(), report)
		}
		if timings, _ := flags.GetBool("timings"); timings {
			if err := report.Timing().Write(cmd.ErrOrStderr()); err != nil {
				return &exitError{code: 1, err: err}
			}
		}
	}
	switch {
	case runErr != nil:
		return &exitError{code: 1, err: runErr}
	case report.Failed():
		return &exitError{code: 1}
	case check && report.Changed() > 0:
		return &exitError{code: 1}
	}
	return nil
}

// loadConfig picks --config-path or the nearest rfmt.toml above the first
// path, then applies --config overrides in order.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, string, error) {
	flags := cmd.Flags()
	var (
		cfg  *config.Config
		path string
		err  error
	)
	if explicit, _ := flags.GetString("config-path"); explicit != "" {
		cfg, err = config.Load(explicit)
		path = explicit
	} else {
		cfg, path, err = config.Resolve(startDir(args))
	}
	if err != nil {
		return nil, "", err
	}

	overrides, _ := flags.GetStringArray("config")
	for _, ov := range overrides {
		if err := cfg.ApplyOverrides(ov); err != nil {
			return nil, "", err
		}
	}
	if mode, _ := flags.GetString("write-mode"); mode != "" {
		if err := cfg.OverrideValue("write_mode", mode); err != nil {
			return nil, "", err
		}
	}
	if c, _ := cmd.Flags().GetString("color"); c != "" {
		if err := cfg.OverrideValue("color", capitalize(c)); err != nil {
			return nil, "", err
		}
	}
	return cfg, path, nil
}

func startProfiles(cmd *cobra.Command) (*prof.Session, error) {
	var opts prof.Options
	opts.CPU, _ = cmd.Flags().GetString("cpuprofile")
	opts.Mem, _ = cmd.Flags().GetString("memprofile")
	opts.Trace, _ = cmd.Flags().GetString("trace")
	return prof.Start(opts)
}

func startDir(args []string) string {
	if len(args) == 0 {
		return "."
	}
	if info, err := os.Stat(args[0]); err == nil && info.IsDir() {
		return args[0]
	}
	return filepath.Dir(args[0])
}

func printConfig(cmd *cobra.Command, args []string, mode string) error {
	switch mode {
	case "default":
		return config.Default().Encode(cmd.OutOrStdout())
	case "current":
		cfg, _, err := loadConfig(cmd, args)
		if err != nil {
			return usageError(err)
		}
		return cfg.Encode(cmd.OutOrStdout())
	}
	return usageError(fmt.Errorf("--print-config: unknown value %q (want default or current)", mode))
}

func useColor(mode config.ColorMode, f *os.File) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	return isTerminal(f)
}

func capitalize(s string) string {
	s = strings.ToLower(s)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// printDiagnostics writes each file's diagnostics: the annotated excerpt form,
// or one `<severity> <code> <path>:<line>:<col> <message>` line each when short.
func printDiagnostics(w io.Writer, report *driver.Report, color, short bool) error {
	for i := range report.Files {
		f := &report.Files[i]
		if f.Err != nil {
			if _, err := fmt.Fprintf(w, "rfmt: %v\n", f.Err); err != nil {
				return err
			}
		}
		if len(f.Diagnostics) == 0 {
			continue
		}
		if short {
			if text := diag.FormatShortDiagnostics(f.Diagnostics, f.FileSet, true); text != "" {
				if _, err := fmt.Fprintln(w, text); err != nil {
					return err
				}
			}
			continue
		}
		if err := diagfmt.Pretty(w, f.Diagnostics, f.FileSet, diagfmt.PrettyOpts{Color: color, ShowNotes: true}); err != nil {
			return err
		}
	}
	return nil
}

func printSummary(w io.Writer, report *driver.Report) {
	r := lipgloss.NewRenderer(w)
	ok := r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	bad := r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	dim := r.NewStyle().Faint(true)

	failed := report.FailedCount()
	status := ok.Render("ok")
	if failed > 0 {
		status = bad.Render("failed")
	}
	fmt.Fprintf(w, "%s %s\n", status,
		dim.Render(fmt.Sprintf("%d files, %d changed, %d failed", len(report.Files), report.Changed(), failed)))
}
