package convert

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/c360studio/ucograph/graph"
	"github.com/c360studio/ucograph/nsrl"
	"github.com/fsnotify/fsnotify"
)

// Watch converts the input directory once, then keeps running: input
// documents that appear or change are reconverted after a debounce delay.
// In combine mode the merged document is rewritten after every flush.
// Watch returns when ctx is cancelled.
func (c *Converter) Watch(ctx context.Context) error {
	info, err := os.Stat(c.cfg.Input.Path)
	if err != nil {
		return fmt.Errorf("stat input path: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch mode requires a directory input: %s", c.cfg.Input.Path)
	}

	w, err := newInputWatcher(c, c.cfg.Input.Path, c.cfg.Watch.GetDebounceDelay(), c.logger)
	if err != nil {
		return err
	}
	defer w.close()

	// Initial full pass so the output directory starts complete.
	if err := w.initialPass(ctx); err != nil {
		return err
	}

	c.logger.Info("Watching for input changes",
		"dir", c.cfg.Input.Path,
		"debounce", c.cfg.Watch.GetDebounceDelay())

	return w.loop(ctx)
}

// inputWatcher accumulates fsnotify events and reconverts changed input
// documents after a debounce interval.
type inputWatcher struct {
	conv     *Converter
	dir      string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	logger   *slog.Logger

	pendingMu sync.Mutex
	pending   map[string]struct{}

	// graphs tracks the latest graph per input path for combined rewrites.
	graphs map[string]*graph.Graph
}

func newInputWatcher(conv *Converter, dir string, debounce time.Duration, logger *slog.Logger) (*inputWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	return &inputWatcher{
		conv:     conv,
		dir:      dir,
		debounce: debounce,
		watcher:  fsw,
		logger:   logger,
		pending:  make(map[string]struct{}),
		graphs:   make(map[string]*graph.Graph),
	}, nil
}

func (w *inputWatcher) close() { _ = w.watcher.Close() }

// initialPass converts every currently present input document, retaining
// per-unit graphs so later combined rewrites cover unchanged units too.
func (w *inputWatcher) initialPass(ctx context.Context) error {
	files, err := nsrl.Discover(w.dir, w.conv.cfg.Input.Glob)
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		g, _, err := w.conv.ProcessUnit(ctx, f)
		if err != nil {
			w.logger.Error("Error processing unit", "input", f, "error", err)
			w.conv.metrics.UnitErrors.Inc()
			continue
		}
		w.conv.metrics.UnitsProcessed.Inc()
		w.graphs[f] = g
	}
	if w.conv.cfg.Output.Combine && len(w.graphs) > 0 {
		w.rewriteCombined(ctx)
	}
	return nil
}

func (w *inputWatcher) loop(ctx context.Context) error {
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			w.flushPending(ctx)
		}
	}
}

func (w *inputWatcher) handleEvent(event fsnotify.Event) {
	if !strings.EqualFold(filepath.Ext(event.Name), ".json") {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}
	w.pendingMu.Lock()
	w.pending[event.Name] = struct{}{}
	w.pendingMu.Unlock()
	w.logger.Debug("Input change detected", "path", event.Name, "op", event.Op.String())
}

func (w *inputWatcher) flushPending(ctx context.Context) {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	toProcess := make([]string, 0, len(w.pending))
	for p := range w.pending {
		toProcess = append(toProcess, p)
	}
	w.pending = make(map[string]struct{})
	w.pendingMu.Unlock()

	changed := false
	for _, path := range toProcess {
		if ctx.Err() != nil {
			return
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		g, _, err := w.conv.ProcessUnit(ctx, path)
		if err != nil {
			w.logger.Error("Error reconverting unit", "input", path, "error", err)
			w.conv.metrics.UnitErrors.Inc()
			continue
		}
		w.conv.metrics.UnitsProcessed.Inc()
		w.graphs[path] = g
		changed = true
	}

	if changed && w.conv.cfg.Output.Combine {
		w.rewriteCombined(ctx)
	}
}

func (w *inputWatcher) rewriteCombined(ctx context.Context) {
	paths := make([]string, 0, len(w.graphs))
	for p := range w.graphs {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	graphs := make([]*graph.Graph, 0, len(paths))
	for _, p := range paths {
		graphs = append(graphs, w.graphs[p])
	}
	combined := graph.Combine(graphs...)
	path, err := w.conv.writer.WriteCombined(combined)
	if err != nil {
		w.logger.Error("Error rewriting combined document", "error", err)
		return
	}
	w.conv.runValidation(ctx, path)
}
