package export_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/c360studio/ucograph/export"
	"github.com/c360studio/ucograph/graph"
	"github.com/c360studio/ucograph/nsrl"
)

func testGraph(t *testing.T) *graph.Graph {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	a := graph.NewAssembler(graph.NewRegistry(), "test", logger)
	g, _ := a.Assemble([]nsrl.Media{
		{
			MediaID: "7",
			MediaFiles: []nsrl.MediaFile{
				{FileName: "a.txt", FilePath: "/a.txt", MD5: "d41d8cd98f00b204e9800998ecf8427e"},
			},
		},
	})
	return g
}

func TestWriteGraph(t *testing.T) {
	dir := t.TempDir()
	w := export.NewWriter(dir, nil)

	path, err := w.WriteGraph(testGraph(t), "/input/NSRL-CAID-7.json")
	if err != nil {
		t.Fatalf("WriteGraph failed: %v", err)
	}
	if filepath.Base(path) != "uco-NSRL-CAID-7.json" {
		t.Errorf("unexpected output name: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if _, ok := doc["@context"]; !ok {
		t.Error("output should contain @context")
	}
	if _, ok := doc["@graph"]; !ok {
		t.Error("output should contain @graph")
	}

	out := string(data)
	if !strings.Contains(out, "unifiedcyberontology.org/uco/core/") {
		t.Error("context should map the uco-core prefix")
	}
	if !strings.Contains(out, `"uco-observable:fileName": "a.txt"`) {
		t.Error("output should contain the file name attribute")
	}
	if !strings.Contains(out, "D41D8CD98F00B204E9800998ECF8427E") {
		t.Error("output should contain the uppercased hash value")
	}
	if !strings.Contains(out, `"uco-observable:extension": "txt"`) {
		t.Error("output should contain the derived extension")
	}
}

func TestWriteGraph_CreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	w := export.NewWriter(dir, nil)

	if _, err := w.WriteGraph(testGraph(t), "in.json"); err != nil {
		t.Fatalf("WriteGraph failed: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("output directory should exist: %v", err)
	}
}

func TestWriteCombined(t *testing.T) {
	dir := t.TempDir()
	w := export.NewWriter(dir, nil)

	path, err := w.WriteCombined(testGraph(t))
	if err != nil {
		t.Fatalf("WriteCombined failed: %v", err)
	}
	if filepath.Base(path) != export.CombinedName {
		t.Errorf("unexpected combined name: %s", path)
	}
}

func TestDocumentMemberCount(t *testing.T) {
	g := testGraph(t)
	doc := export.NewDocument(g)
	if len(doc.Graph) != g.Len() {
		t.Errorf("document members = %d, graph nodes = %d", len(doc.Graph), g.Len())
	}
}
