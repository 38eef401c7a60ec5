// Package main provides the ucograph binary entry point.
// Ucograph converts NSRL CAID JSON documents into UCO 1.3.0 JSON-LD
// graph documents.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/c360studio/ucograph/config"
	"github.com/c360studio/ucograph/convert"
	"github.com/spf13/cobra"
)

const (
	Version   = "1.0.0"
	BuildTime = "dev"
	appName   = "ucograph"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath  string
		outputDir   string
		glob        string
		logLevel    string
		logFile     string
		metricsAddr string
		combine     bool
		validateOut bool
		watch       bool
	)

	cmd := &cobra.Command{
		Use:   "ucograph <input>",
		Short: "Convert NSRL CAID JSON to UCO format",
		Long: `Ucograph converts NSRL CAID JSON files from ODATA format to UCO
(Unified Cyber Ontology) compliant JSON-LD. It maps NSRL CAID media
objects to UCO observable:File objects with appropriate facets and
relationships.

The input may be a single JSON file or a directory; directories are
expanded with a glob pattern. Each input unit produces one output
document, and --combine additionally merges all units into a single
deduplicated graph.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, args[0], func(c *config.Config) {
				if cmd.Flags().Changed("output") {
					c.Output.Dir = outputDir
				}
				if cmd.Flags().Changed("glob") {
					c.Input.Glob = glob
				}
				if cmd.Flags().Changed("log-level") {
					c.Log.Level = logLevel
				}
				if cmd.Flags().Changed("log-file") {
					c.Log.File = logFile
				}
				if cmd.Flags().Changed("metrics-addr") {
					c.Metrics.Addr = metricsAddr
				}
				if combine {
					c.Output.Combine = true
				}
				if validateOut {
					c.Validation.Enabled = true
				}
				if watch {
					c.Watch.Enabled = true
				}
			})
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "output", "Output directory")
	cmd.Flags().StringVar(&glob, "glob", "*.json", "Glob pattern for directory inputs")
	cmd.Flags().BoolVar(&combine, "combine", false, "Combine all output into single graph")
	cmd.Flags().BoolVar(&validateOut, "validate", false, "Validate output against UCO schema")
	cmd.Flags().BoolVar(&watch, "watch", false, "Keep running and reconvert changed inputs")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&logFile, "log-file", "", "Log file path (optional)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Prometheus metrics listen address (watch mode)")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

// loadConfig resolves layered configuration, then applies flag overrides
// and the positional input path.
func loadConfig(configPath, inputPath string, applyFlags func(*config.Config)) (*config.Config, error) {
	cfg, err := config.NewLoader(nil).Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.Input.Path = inputPath
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func run(cfg *config.Config) error {
	logger, closeLog, err := setupLogging(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	converter := convert.New(cfg, Version, logger)

	if cfg.Watch.Enabled {
		if cfg.Metrics.Addr != "" {
			go func() {
				if err := converter.Metrics().Serve(ctx, cfg.Metrics.Addr, logger); err != nil {
					logger.Error("Metrics server failed", "error", err)
				}
			}()
		}
		return converter.Watch(ctx)
	}

	summary, err := converter.Run(ctx)
	if err != nil {
		return err
	}
	return summary.Err()
}

// setupLogging builds the run logger: text handler on stderr, optionally
// duplicated to a log file.
func setupLogging(cfg config.LogConfig) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var w io.Writer = os.Stderr
	closeLog := func() {}
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = io.MultiWriter(os.Stderr, f)
		closeLog = func() { _ = f.Close() }
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return logger, closeLog, nil
}
