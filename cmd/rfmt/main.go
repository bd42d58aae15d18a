package main

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"rfmt/internal/config"
	"rfmt/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "rfmt [flags] [path...]",
	Short: "Format Rust source files",
	Long:  `rfmt rewrites Rust source files into a canonical layout driven by rfmt.toml`,
	Args:  cobra.ArbitraryArgs,
	RunE:  runFormat,
}

// exitError carries the process exit status out of RunE.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func usageError(err error) error { return &exitError{code: 2, err: err} }

// main wires the root command and maps its error to an exit status:
// 1 for a failed run, 2 for configuration and usage errors.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.String()
	rootCmd.SetVersionTemplate("rfmt {{.Version}}\n")
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "", "colorize output (auto|always|never); default from config")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "print per-file progress and a summary")
	rootCmd.PersistentFlags().Bool("timings", false, "show time spent per phase")
	rootCmd.PersistentFlags().String("cpuprofile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("memprofile", "", "write a heap profile to file")
	rootCmd.PersistentFlags().String("trace", "", "write a runtime trace to file")

	rootCmd.Flags().Bool("check", false, "do not write files; print a diff and exit 1 if any file would change")
	rootCmd.Flags().String("write-mode", "", "Replace|Overwrite|Display|Diff|Coverage|Plain|Checkstyle")
	rootCmd.Flags().StringArray("config", nil, "override options: key=value[,key=value]")
	rootCmd.Flags().String("config-path", "", "use this config file instead of searching for rfmt.toml")
	rootCmd.Flags().String("print-config", "", "print the default or current configuration (default|current) and exit")
	rootCmd.Flags().Lookup("print-config").NoOptDefVal = "current"
	rootCmd.Flags().IntP("jobs", "j", 0, "files formatted in parallel (0 = GOMAXPROCS)")
	rootCmd.Flags().Bool("fail-fast", false, "stop at the first file that fails")
	rootCmd.Flags().String("error-format", "human", "diagnostics layout: human (annotated excerpts) or short (one line each)")
	rootCmd.Flags().Bool("cache", false, "skip files already known to be formatted")
	rootCmd.Flags().String("cache-dir", "", "cache location (default $XDG_CACHE_HOME/rfmt)")

	defaultHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		// `--help config` печатает описание опций
		if slices.Contains(args, "config") {
			if err := config.PrintDocs(cmd.OutOrStdout()); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
			}
			return
		}
		defaultHelp(cmd, args)
	})

	os.Exit(execute())
}

func execute() int {
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintf(os.Stderr, "rfmt: %v\n", ee.err)
		}
		return ee.code
	}
	// ошибки разбора флагов cobra
	fmt.Fprintf(os.Stderr, "rfmt: %v\n", err)
	return 2
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
