// Package export serializes assembled graphs into UCO JSON-LD documents
// and writes them to the output directory.
package export

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/c360studio/ucograph/graph"
	"github.com/c360studio/ucograph/vocabulary/uco"
)

// CombinedName is the file name of the merged multi-unit document.
const CombinedName = "uco-combined.json"

// Document is the output document shape: the JSON-LD context header plus
// the flat ordered member list.
type Document struct {
	Context map[string]string `json:"@context"`
	Graph   []*graph.Node     `json:"@graph"`
}

// NewDocument wraps a graph in the output document shape.
func NewDocument(g *graph.Graph) *Document {
	return &Document{
		Context: uco.Context(),
		Graph:   g.Nodes(),
	}
}

// Writer persists graphs as JSON-LD documents under one output directory.
type Writer struct {
	outputDir string
	logger    *slog.Logger
}

// NewWriter creates a writer targeting outputDir. The directory is created
// on first write.
func NewWriter(outputDir string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{outputDir: outputDir, logger: logger}
}

// WriteGraph serializes one unit's graph to uco-<input stem>.json and
// returns the written path.
func (w *Writer) WriteGraph(g *graph.Graph, inputPath string) (string, error) {
	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return w.write(g, fmt.Sprintf("uco-%s.json", stem))
}

// WriteCombined serializes a merged graph to uco-combined.json and returns
// the written path.
func (w *Writer) WriteCombined(g *graph.Graph) (string, error) {
	return w.write(g, CombinedName)
}

// write serializes fully in memory before touching disk, so a failed unit
// never leaves partial output behind.
func (w *Writer) write(g *graph.Graph, name string) (string, error) {
	data, err := json.MarshalIndent(NewDocument(g), "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize document %s: %w", name, err)
	}

	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(w.outputDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write document %s: %w", path, err)
	}

	w.logger.Info("Wrote output document", "path", path, "nodes", g.Len())
	return path, nil
}
