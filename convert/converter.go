// Package convert orchestrates conversion runs: input discovery, per-unit
// processing with an error tally, combine mode, and continuous watch mode.
package convert

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/c360studio/ucograph/config"
	"github.com/c360studio/ucograph/export"
	"github.com/c360studio/ucograph/graph"
	"github.com/c360studio/ucograph/nsrl"
	"github.com/c360studio/ucograph/validate"
)

// Summary is the final tally of one conversion run.
type Summary struct {
	// Processed counts units converted and written successfully.
	Processed int
	// Errors counts units that failed (format or I/O).
	Errors int
	// Outputs lists the written document paths.
	Outputs []string
}

// Err returns a run-level error when nothing succeeded but something
// failed, which is the condition for a non-zero exit.
func (s *Summary) Err() error {
	if s.Processed == 0 && s.Errors > 0 {
		return fmt.Errorf("all %d input units failed", s.Errors)
	}
	return nil
}

// Converter runs the full pipeline for one process invocation. The
// identifier registry and run timestamp live here, shared across units so
// combine mode dedups cleanly.
type Converter struct {
	cfg       *config.Config
	logger    *slog.Logger
	assembler *graph.Assembler
	writer    *export.Writer
	validator *validate.Validator
	metrics   *Metrics
}

// New creates a converter for one run.
func New(cfg *config.Config, version string, logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Converter{
		cfg:       cfg,
		logger:    logger,
		assembler: graph.NewAssembler(graph.NewRegistry(), version, logger),
		writer:    export.NewWriter(cfg.Output.Dir, logger),
		metrics:   NewMetrics(),
	}
	if cfg.Validation.Enabled {
		c.validator = validate.New(cfg.Validation.Command, cfg.Validation.Args, logger)
	}
	return c
}

// Metrics exposes the run counters for the metrics endpoint.
func (c *Converter) Metrics() *Metrics { return c.metrics }

// Run discovers input units and processes each to completion. A failing
// unit is logged and counted; it never blocks or corrupts its siblings.
func (c *Converter) Run(ctx context.Context) (*Summary, error) {
	files, err := nsrl.Discover(c.cfg.Input.Path, c.cfg.Input.Glob)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		c.logger.Warn("No input documents matched",
			"path", c.cfg.Input.Path, "glob", c.cfg.Input.Glob)
	}

	summary := &Summary{}
	var graphs []*graph.Graph

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		g, path, err := c.ProcessUnit(ctx, f)
		if err != nil {
			c.logger.Error("Error processing unit", "input", f, "error", err)
			summary.Errors++
			c.metrics.UnitErrors.Inc()
			continue
		}
		summary.Processed++
		summary.Outputs = append(summary.Outputs, path)
		c.metrics.UnitsProcessed.Inc()
		if c.cfg.Output.Combine {
			graphs = append(graphs, g)
		}
	}

	if c.cfg.Output.Combine && len(graphs) > 0 {
		combined := graph.Combine(graphs...)
		path, err := c.writer.WriteCombined(combined)
		if err != nil {
			c.logger.Error("Error writing combined document", "error", err)
			summary.Errors++
			c.metrics.UnitErrors.Inc()
		} else {
			summary.Outputs = append(summary.Outputs, path)
			c.runValidation(ctx, path)
		}
	}

	c.logger.Info("Processing complete",
		"processed", summary.Processed, "errors", summary.Errors)
	return summary, nil
}

// ProcessUnit converts one input document: decode, assemble, write,
// optionally validate. A unit completes or fails atomically; no partial
// output is written on failure.
func (c *Converter) ProcessUnit(ctx context.Context, inputPath string) (*graph.Graph, string, error) {
	c.logger.Info("Processing input document", "input", inputPath)

	doc, err := nsrl.DecodeFile(inputPath)
	if err != nil {
		return nil, "", err
	}

	g, stats := c.assembler.Assemble(doc.Value)
	c.metrics.RecordsProcessed.Add(float64(stats.Records))
	c.metrics.RecordErrors.Add(float64(stats.RecordErrors))
	c.metrics.NodesEmitted.Add(float64(stats.Nodes))
	if stats.RecordErrors > 0 {
		c.logger.Warn("Unit contained malformed records",
			"input", inputPath, "record_errors", stats.RecordErrors)
	}

	path, err := c.writer.WriteGraph(g, inputPath)
	if err != nil {
		return nil, "", err
	}

	c.runValidation(ctx, path)
	return g, path, nil
}

// runValidation invokes the external validator when enabled. Failures are
// reported and counted but never undo the write.
func (c *Converter) runValidation(ctx context.Context, path string) {
	if c.validator == nil {
		return
	}
	result, err := c.validator.Validate(ctx, path)
	if err != nil {
		c.logger.Error("Validator could not run", "path", path, "error", err)
		return
	}
	if !result.Passed {
		c.metrics.ValidationFailures.Inc()
	}
}
