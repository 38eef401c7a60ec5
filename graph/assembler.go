package graph

import (
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/c360studio/ucograph/nsrl"
	"github.com/c360studio/ucograph/vocabulary/uco"
)

// Context node descriptions, fixed per the NSRL CAID dataset.
const (
	toolName        = "ucograph"
	toolDescription = "Converts NSRL CAID JSON to UCO format"

	orgName        = "National Institute of Standards and Technology"
	orgDescription = "NIST maintains the NSRL CAID repository"

	sourceName        = "NSRL CAID Repository"
	sourceDescription = "National Software Reference Library - Comprehensive Application Identifier"
	sourceURL         = "https://s3.amazonaws.com/rds.nsrl.nist.gov/RDS/CAID/current/NSRL-CAID-JSONs.zip"

	bundleDescription = "NSRL CAID media file reference data converted to UCO format"
)

// Stats summarizes one unit's assembly.
type Stats struct {
	// Records is the number of media records processed successfully.
	Records int
	// RecordErrors counts records skipped for structural problems
	// (missing MediaFiles list).
	RecordErrors int
	// Nodes is the total node count of the emitted graph.
	Nodes int
}

// Assembler turns media records into UCO graphs. It owns the run-scoped
// identifier registry and the single run timestamp shared by every node,
// so graphs assembled from sibling units dedup cleanly when combined.
type Assembler struct {
	reg     *Registry
	logger  *slog.Logger
	now     TypedValue
	version string
}

// NewAssembler creates an assembler for one conversion run. The run
// timestamp is captured once here; every node in every graph of the run
// carries it.
func NewAssembler(reg *Registry, version string, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{
		reg:     reg,
		logger:  logger,
		now:     XSDDateTime(time.Now()),
		version: version,
	}
}

// Assemble produces one graph from one input unit's media records.
// Context nodes resolve to run-stable identifiers, so repeated units
// share them and per-record entities collapse onto single nodes.
func (a *Assembler) Assemble(medias []nsrl.Media) (*Graph, Stats) {
	g := newGraph()
	var stats Stats

	bundle := NewBundle(a.reg.Resolve("bundle", "nsrl-caid"), bundleDescription, a.now)
	g.add(bundle)

	tool := NewTool(a.reg.Resolve("tool", "ucograph"), toolName, toolDescription, a.version, a.now)
	org := NewOrganization(a.reg.Resolve("org", "nist"), orgName, orgDescription, a.now)
	source := NewSource(a.reg.Resolve("source", "nsrl-caid"), sourceName, sourceDescription, sourceURL, a.now)
	env := NewEnvironment(a.reg.Resolve("environment", "go"),
		"Go Environment", fmt.Sprintf("Go %s", runtime.Version()), a.now)
	g.add(tool)
	g.add(org)
	g.add(source)
	g.add(env)

	a.addRelationship(g, "bundle-createdBy-tool", bundle.Ref(), tool.Ref(), uco.RelCreatedBy)
	a.addRelationship(g, "source-managedBy-org", source.Ref(), org.Ref(), uco.RelManagedBy)

	for i := range medias {
		if a.assembleRecord(g, &medias[i], source) {
			stats.Records++
		} else {
			stats.RecordErrors++
		}
	}

	// Back-fill the bundle member list with lightweight references to
	// every other node, in insertion order.
	props := bundle.Props.(*BundleProps)
	props.Objects = make([]Ref, 0, g.Len()-1)
	for _, n := range g.Nodes() {
		if n == bundle {
			continue
		}
		props.Objects = append(props.Objects, n.Ref())
	}

	stats.Nodes = g.Len()
	return g, stats
}

// assembleRecord adds one media record's nodes to the graph. It reports
// whether the record was structurally sound; a skipped record contributes
// nothing to the graph.
func (a *Assembler) assembleRecord(g *Graph, m *nsrl.Media, source *Node) bool {
	if len(m.MediaFiles) == 0 {
		a.logger.Error("Record has no MediaFiles entry list, skipping",
			"media_id", m.MediaID.String())
		return false
	}

	mediaID := m.MediaID.String()
	if mediaID == "" {
		// Absent grouping identifiers collapse onto one "unknown" File
		// node. Documented current behavior; see DESIGN.md.
		a.logger.Warn("Record missing MediaID, using 'unknown' grouping key")
	}

	fileID := a.reg.Resolve("file", mediaID)
	file := g.Get(fileID)
	if file == nil {
		file = NewFileNode(fileID, a.now)
		g.add(file)
		a.addRelationship(g, mediaID+"-derivedFrom-source",
			file.Ref(), source.Ref(), uco.RelDerivedFrom)
	}

	size := a.parseSize(m)

	for _, mf := range m.MediaFiles {
		hashes := a.buildHashes(g, m, &mf)

		if mf.FileName == "" {
			a.logger.Warn("File entry missing FileName, skipping facets",
				"media_id", mediaID, "file_path", mf.FilePath)
			continue
		}

		// Entries within one record are distinct physical copies of the
		// same content and routinely share an MD5, so the facet key also
		// carries the copy's own path to keep them apart.
		facetKey := mediaID + "-" + firstNonEmpty(mf.MD5, "unknown") +
			"-" + firstNonEmpty(mf.FilePath, mf.FileName)
		ff, err := NewFileFacet(a.reg.Resolve("facet", facetKey),
			mf.FileName, mf.FilePath, size, hashes)
		if err != nil {
			a.logger.Warn("Skipping file facet", "media_id", mediaID, "error", err)
			continue
		}
		cdf, err := NewContentDataFacet(a.reg.Resolve("content-facet", facetKey),
			mf.FileName, size, hashes)
		if err != nil {
			a.logger.Warn("Skipping content data facet", "media_id", mediaID, "error", err)
			continue
		}

		// A literally repeated entry resolves to the same facet ids; only
		// facets actually inserted may be referenced from the File node.
		var refs []Ref
		if g.add(ff) {
			refs = append(refs, ff.Ref())
		}
		if g.add(cdf) {
			refs = append(refs, cdf.Ref())
		}
		if len(refs) > 0 {
			AttachFacets(file, refs...)
		}
	}

	return true
}

// buildHashes creates Hash nodes for every present hash value on a file
// entry and its parent record, deduplicating by value so an identical hash
// appearing on multiple records yields one shared node. Empty values are
// skipped with a log record, never emitted.
func (a *Assembler) buildHashes(g *Graph, m *nsrl.Media, mf *nsrl.MediaFile) []Ref {
	type candidate struct {
		method uco.HashMethod
		value  string
	}
	candidates := []candidate{
		{uco.HashMD5, mf.MD5},
		{uco.HashSHA1, mf.SHA1},
		{uco.HashSHA1, m.SHA1},
	}

	var refs []Ref
	seen := make(map[string]bool)
	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		id := a.reg.Resolve("hash", c.value)
		if seen[id] {
			continue
		}
		seen[id] = true

		node, err := NewHashNode(id, c.method, c.value, a.now)
		if err != nil {
			a.logger.Warn("Skipping hash", "method", c.method, "error", err)
			continue
		}
		g.add(node)
		refs = append(refs, Ref{ID: id})
	}
	return refs
}

// addRelationship builds and inserts a directed edge. The logical key
// keeps the edge id stable within the run so sibling units share it.
func (a *Assembler) addRelationship(g *Graph, key string, source, target Ref, kind uco.RelationshipKind) {
	rel, err := NewRelationship(a.reg.Resolve("relationship", key), source, target, kind, a.now)
	if err != nil {
		a.logger.Warn("Skipping relationship", "key", key, "error", err)
		return
	}
	g.add(rel)
}

// parseSize extracts the record's size in bytes, omitting the field with a
// warning when the value is present but not an integer.
func (a *Assembler) parseSize(m *nsrl.Media) *int64 {
	if m.MediaSize == "" {
		return nil
	}
	n, err := m.MediaSize.Int64()
	if err != nil {
		a.logger.Warn("Invalid MediaSize value, omitting sizeInBytes",
			"media_id", m.MediaID.String(), "media_size", m.MediaSize.String())
		return nil
	}
	return &n
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
