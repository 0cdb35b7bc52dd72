package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bamsammich/drivetan/internal/config"
	"github.com/bamsammich/drivetan/internal/engine"
	"github.com/bamsammich/drivetan/internal/filter"
	"github.com/bamsammich/drivetan/internal/stub"
	"github.com/bamsammich/drivetan/internal/ui"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// sizeFlag is a pflag.Value accepting plain byte counts or K/M/G/T suffixes.
type sizeFlag struct {
	n *int64
}

var _ pflag.Value = sizeFlag{}

func (s sizeFlag) String() string {
	if s.n == nil {
		return "0"
	}
	return strconv.FormatInt(*s.n, 10)
}

func (sizeFlag) Type() string { return "SIZE" }

func (s sizeFlag) Set(val string) error {
	n, err := filter.ParseSize(val)
	if err != nil {
		return err
	}
	*s.n = n
	return nil
}

type options struct {
	maxSize     int64
	extension   string
	magic       string
	skipFile    string
	bwLimit     int64
	dryRun      bool
	verbose     bool
	quiet       bool
	logFile     string
	showVersion bool
}

//nolint:gocyclo,revive // cyclomatic,cognitive-complexity: main CLI entry point orchestrates all flag parsing
func run(args []string, stdout, stderr io.Writer) int {
	var opts options

	rootCmd := &cobra.Command{
		Use:   "drivetan [flags] <source> <destination>",
		Short: "Mirror a directory tree, replacing large files with size stubs",
		Long: `drivetan mirrors <source> into <destination>, which must be empty or absent.
Files no larger than --max-size are copied verbatim; larger files are replaced
by a small text stub recording the original size. Access and modification
times are carried over. Paths matching a pattern from --skip-file are left out.

Every successfully mirrored source path is printed to stdout.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.showVersion {
				return nil
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.showVersion {
				fmt.Fprintf(stdout, "drivetan %s\n", version)
				return nil
			}

			// Configure logging.
			logLevel := slog.LevelWarn
			if opts.verbose {
				logLevel = slog.LevelDebug
			} else if !opts.quiet {
				logLevel = slog.LevelInfo
			}
			textHandler := slog.NewTextHandler(stderr, &slog.HandlerOptions{
				Level: logLevel,
			})
			var logHandler slog.Handler = textHandler
			if opts.logFile != "" {
				lf, lfErr := os.Create(opts.logFile)
				if lfErr != nil {
					return fmt.Errorf("open log file: %w", lfErr)
				}
				defer lf.Close()
				jsonHandler := slog.NewJSONHandler(lf, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})
				logHandler = ui.NewMultiHandler(textHandler, jsonHandler)
			}
			logger := slog.New(logHandler)
			slog.SetDefault(logger)

			// Load optional config file; a broken one is not fatal.
			cfg, err := config.Load()
			if err != nil {
				slog.Warn("failed to load config", "error", err)
			}
			for _, key := range cfg.Unknown {
				slog.Warn("unknown config key", "key", key, "file", config.Path())
			}
			if err := applyConfigDefaults(cmd, cfg.Defaults, &opts); err != nil {
				return err
			}

			skip, err := filter.LoadFile(config.ExpandHome(opts.skipFile))
			if err != nil {
				return fmt.Errorf("load skip file: %w", err)
			}

			if opts.dryRun {
				slog.Info("dry run mode")
			}
			if opts.bwLimit > 0 {
				slog.Debug("bandwidth limit", "rate", ui.FormatRate(float64(opts.bwLimit)))
			}

			isTTY := false
			if f, ok := stdout.(*os.File); ok {
				isTTY = ui.IsTTY(f.Fd())
			}
			presenter := ui.NewPresenter(ui.Config{
				Writer: stdout,
				Logger: logger,
				IsTTY:  isTTY,
				Quiet:  opts.quiet,
			})

			engineCfg, err := engine.Prepare(engine.Config{
				Src:           args[0],
				Dst:           args[1],
				MaxInlineSize: opts.maxSize,
				StubExtension: opts.extension,
				Magic:         opts.magic,
				Skip:          skip,
				DryRun:        opts.dryRun,
				BWLimit:       opts.bwLimit,
				Events:        presenter,
			})
			if err != nil {
				return err
			}

			// Set up context with signal handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			start := time.Now()
			result := engine.Run(ctx, engineCfg)
			stop()

			fmt.Fprintln(stderr, ui.Summary(result.Stats))
			slog.Debug("details", "summary", ui.Details(result.Stats, time.Since(start)))
			if n := result.Stats.Warnings; n > 0 {
				slog.Warn(fmt.Sprintf("%d entries have stale timestamps", n))
			}

			switch {
			case result.Err == nil:
				return nil
			case errors.Is(result.Err, context.Canceled):
				slog.Error("mirror interrupted")
				return &exitError{code: 130}
			default:
				slog.Error("mirror failed", "error", result.Err)
				return &exitError{code: 1}
			}
		},
	}
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	// Version flag handled in RunE, but also register the flag.
	rootCmd.Flags().BoolVar(&opts.showVersion, "version", false, "print version and exit")

	rootCmd.Flags().
		VarP(sizeFlag{n: &opts.maxSize}, "max-size", "m", "largest file copied verbatim; bigger files become stubs (e.g. 512K, 1M)")
	rootCmd.Flags().
		StringVarP(&opts.extension, "extension", "e", stub.DefaultExtension, "suffix appended to stub file names")
	rootCmd.Flags().StringVar(&opts.magic, "magic", stub.DefaultMagic, "first line of every stub file")
	rootCmd.Flags().
		StringVar(&opts.skipFile, "skip-file", "", "read skip patterns (one regular expression per line) from FILE")
	rootCmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "show what would be mirrored without writing")
	rootCmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")
	rootCmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "do not list mirrored paths; only warnings and errors")
	rootCmd.Flags().StringVar(&opts.logFile, "log", "", "write structured JSON log to FILE")
	rootCmd.Flags().
		Var(sizeFlag{n: &opts.bwLimit}, "bwlimit", "limit verbatim copies to SIZE bytes/sec (e.g. 10M)")

	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
	if err := rootCmd.MarkFlagFilename("skip-file"); err != nil {
		panic(fmt.Sprintf("set flag annotation: %v", err))
	}
	if err := rootCmd.MarkFlagFilename("log"); err != nil {
		panic(fmt.Sprintf("set flag annotation: %v", err))
	}
	// Register subcommands.
	rootCmd.AddCommand(newDocsCmd())

	if err := rootCmd.Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	return 0
}

// applyConfigDefaults applies config file defaults for flags not explicitly set on the CLI.
func applyConfigDefaults(cmd *cobra.Command, defaults config.DefaultsConfig, opts *options) error {
	flags := cmd.Flags()
	if !flags.Changed("max-size") && defaults.MaxSize != nil {
		if err := (sizeFlag{n: &opts.maxSize}).Set(*defaults.MaxSize); err != nil {
			return fmt.Errorf("config max_size: %w", err)
		}
	}
	if !flags.Changed("bwlimit") && defaults.BWLimit != nil {
		if err := (sizeFlag{n: &opts.bwLimit}).Set(*defaults.BWLimit); err != nil {
			return fmt.Errorf("config bwlimit: %w", err)
		}
	}
	if !flags.Changed("extension") && defaults.Extension != nil {
		opts.extension = *defaults.Extension
	}
	if !flags.Changed("magic") && defaults.Magic != nil {
		opts.magic = *defaults.Magic
	}
	if !flags.Changed("skip-file") && defaults.SkipFile != nil {
		opts.skipFile = *defaults.SkipFile
	}
	return nil
}

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}
