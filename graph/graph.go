package graph

// Graph holds the nodes produced by one conversion run (or one combined
// run). Nodes enter through add, the single insertion path, which enforces
// the id-based dedup invariant: an id seen before is never inserted twice.
// Insertion order is preserved for reproducible output.
type Graph struct {
	nodes []*Node
	byID  map[string]*Node
}

func newGraph() *Graph {
	return &Graph{byID: make(map[string]*Node)}
}

// add inserts a node unless its id is already present. It reports whether
// the node was inserted.
func (g *Graph) add(n *Node) bool {
	if n == nil || n.ID == "" {
		return false
	}
	if _, ok := g.byID[n.ID]; ok {
		return false
	}
	g.byID[n.ID] = n
	g.nodes = append(g.nodes, n)
	return true
}

// Nodes returns the node list in first-insertion order.
func (g *Graph) Nodes() []*Node { return g.nodes }

// Get returns the node with the given id, or nil.
func (g *Graph) Get(id string) *Node { return g.byID[id] }

// Contains reports whether a node with the given id is present.
func (g *Graph) Contains(id string) bool {
	_, ok := g.byID[id]
	return ok
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int { return len(g.nodes) }

// Combine merges multiple graphs into one. The id-based dedup rule
// applies across graphs: the first occurrence of an id wins and later
// occurrences are dropped, preserving first-appearance order so combined
// output diffs stay stable. Two node kinds carry references to their
// graph's other members and need more than first-occurrence-wins: File
// nodes dropped as duplicates have their facet references merged onto the
// survivor, and Bundle member lists are recomputed over the merged graph
// so the combined container names every node. The source graphs are never
// mutated; merged nodes are copies. Combining a graph with itself yields
// the same member set.
func Combine(graphs ...*Graph) *Graph {
	out := newGraph()
	for _, g := range graphs {
		if g == nil {
			continue
		}
		for _, n := range g.nodes {
			if !out.add(n) {
				out.mergeDuplicate(n)
			}
		}
	}
	out.rebuildBundles()
	return out
}

// mergeDuplicate folds a dropped duplicate into its surviving node. Only
// File nodes carry per-graph state worth merging: facets contributed by a
// later unit would otherwise be orphaned when its File node is dropped.
func (g *Graph) mergeDuplicate(n *Node) {
	existing := g.byID[n.ID]
	if existing.Kind != KindFile || n.Kind != KindFile {
		return
	}
	ep, ok := existing.Props.(*FileProps)
	if !ok {
		return
	}
	np, ok := n.Props.(*FileProps)
	if !ok {
		return
	}

	seen := make(map[string]bool, len(ep.HasFacet))
	for _, r := range ep.HasFacet {
		seen[r.ID] = true
	}
	var extra []Ref
	for _, r := range np.HasFacet {
		if !seen[r.ID] {
			seen[r.ID] = true
			extra = append(extra, r)
		}
	}
	if len(extra) == 0 {
		return
	}

	merged := *existing
	merged.Props = &FileProps{
		CreatedTime: ep.CreatedTime,
		HasFacet:    append(append([]Ref{}, ep.HasFacet...), extra...),
	}
	g.replace(&merged)
}

// rebuildBundles recomputes each Bundle's member reference list over the
// merged graph. The per-unit back-fill only ever saw its own unit's nodes.
func (g *Graph) rebuildBundles() {
	for _, n := range g.nodes {
		if n.Kind != KindBundle {
			continue
		}
		bp, ok := n.Props.(*BundleProps)
		if !ok {
			continue
		}
		objects := make([]Ref, 0, len(g.nodes)-1)
		for _, m := range g.nodes {
			if m.ID == n.ID {
				continue
			}
			objects = append(objects, m.Ref())
		}
		fresh := *n
		fresh.Props = &BundleProps{
			Description: bp.Description,
			CreatedTime: bp.CreatedTime,
			Objects:     objects,
		}
		g.replace(&fresh)
	}
}

// replace swaps in a new node for the existing node with the same id,
// keeping its position in insertion order.
func (g *Graph) replace(n *Node) {
	old := g.byID[n.ID]
	for i, existing := range g.nodes {
		if existing == old {
			g.nodes[i] = n
			break
		}
	}
	g.byID[n.ID] = n
}
