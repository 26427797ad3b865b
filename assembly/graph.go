package assembly

import "sort"

// exonGraph is the directed splice graph of one gene locus. Nodes are exon
// handles; an edge records an observed exon-to-exon transition.
type exonGraph struct {
	succ map[ExonID]map[ExonID]struct{}
	pred map[ExonID]map[ExonID]struct{}
}

func newExonGraph() *exonGraph {
	return &exonGraph{
		succ: map[ExonID]map[ExonID]struct{}{},
		pred: map[ExonID]map[ExonID]struct{}{},
	}
}

func (g *exonGraph) addNode(id ExonID) {
	if _, ok := g.succ[id]; !ok {
		g.succ[id] = map[ExonID]struct{}{}
		g.pred[id] = map[ExonID]struct{}{}
	}
}

func (g *exonGraph) addEdge(from, to ExonID) {
	g.addNode(from)
	g.addNode(to)
	g.succ[from][to] = struct{}{}
	g.pred[to][from] = struct{}{}
}

// removeNode deletes id and every edge incident to it.
func (g *exonGraph) removeNode(id ExonID) {
	for t := range g.succ[id] {
		delete(g.pred[t], id)
	}
	for f := range g.pred[id] {
		delete(g.succ[f], id)
	}
	delete(g.succ, id)
	delete(g.pred, id)
}

func (g *exonGraph) has(id ExonID) bool {
	_, ok := g.succ[id]
	return ok
}

func (g *exonGraph) len() int { return len(g.succ) }

// successors returns id's successors in genomic coordinate order.
func (g *exonGraph) successors(db *ExonDB, id ExonID) []ExonID {
	out := make([]ExonID, 0, len(g.succ[id]))
	for t := range g.succ[id] {
		out = append(out, t)
	}
	sortByCoord(db, out)
	return out
}

// nodesSorted returns the node set ordered by less over the backing exons.
func (g *exonGraph) nodesSorted(db *ExonDB, less func(a, b *Exon) bool) []ExonID {
	out := make([]ExonID, 0, len(g.succ))
	for id := range g.succ {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := db.Exon(out[i]), db.Exon(out[j])
		if less(a, b) {
			return true
		}
		if less(b, a) {
			return false
		}
		return out[i] < out[j]
	})
	return out
}

func sortByCoord(db *ExonDB, ids []ExonID) {
	sort.Slice(ids, func(i, j int) bool {
		a, b := db.Exon(ids[i]), db.Exon(ids[j])
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.End != b.End {
			return a.End < b.End
		}
		return ids[i] < ids[j]
	})
}

// buildGeneGraph unions the exon transitions of every intron of one locus
// into a directed splice graph.
func (s *State) buildGeneGraph(locus []IntronID) *exonGraph {
	g := newExonGraph()
	for _, id := range locus {
		for _, e := range s.introns.Intron(id).edges {
			g.addEdge(e.from, e.to)
		}
	}
	return g
}

// collapseExons removes redundant alternative termini in two ordered passes,
// in place. The first pass scans exons sharing an end coordinate and
// collapses alternative 5' starts; the second scans exons sharing a start
// and collapses alternative 3' ends, rewiring predecessors. The second pass
// operates on the graph already reduced by the first, so the order of the
// passes matters.
func (s *State) collapseExons(g *exonGraph) {
	db := s.exons
	minUTR := s.opts.MinUTR

	// Pass 1: shared ends. A left-terminal exon starting inside another
	// exon with the same end is an alternative 5' start; the spliced-out
	// exon's successors move to its replacement.
	exons := g.nodesSorted(db, func(a, b *Exon) bool {
		if a.End != b.End {
			return a.End < b.End
		}
		return a.Start < b.Start
	})
	if len(exons) == 0 {
		return
	}
	cur := db.Exon(exons[0])
	for _, id := range exons[1:] {
		next := db.Exon(id)
		if cur.End != next.End {
			cur = next
			continue
		}
		if next.Terminal == TerminalLeft {
			for _, t := range g.successors(db, next.ID) {
				g.addEdge(cur.ID, t)
			}
			g.removeNode(next.ID)
			// cur keeps scanning the run of shared ends.
			continue
		}
		if cur.Terminal == TerminalLeft && next.Start-cur.Start <= minUTR {
			for _, t := range g.successors(db, cur.ID) {
				g.addEdge(next.ID, t)
			}
			g.removeNode(cur.ID)
		}
		cur = next
	}

	// Pass 2: shared starts, collapsing alternative 3' ends within the UTR
	// tolerance by predecessor rewiring.
	exons = g.nodesSorted(db, func(a, b *Exon) bool {
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.End < b.End
	})
	if len(exons) == 0 {
		return
	}
	cur = db.Exon(exons[0])
	for _, id := range exons[1:] {
		next := db.Exon(id)
		if cur.Start != next.Start {
			cur = next
			continue
		}
		if cur.Terminal == TerminalRight {
			for _, f := range g.predecessors(db, cur.ID) {
				g.addEdge(f, next.ID)
			}
			g.removeNode(cur.ID)
			cur = next
			continue
		}
		if next.Terminal == TerminalRight && next.End-cur.End <= minUTR {
			for _, f := range g.predecessors(db, next.ID) {
				g.addEdge(f, cur.ID)
			}
			g.removeNode(next.ID)
			continue
		}
		cur = next
	}
}

// predecessors returns id's predecessors in genomic coordinate order.
func (g *exonGraph) predecessors(db *ExonDB, id ExonID) []ExonID {
	out := make([]ExonID, 0, len(g.pred[id]))
	for f := range g.pred[id] {
		out = append(out, f)
	}
	sortByCoord(db, out)
	return out
}

// enumeratePaths returns every maximal root-to-leaf path of the graph. The
// walk keeps an explicit stack and an on-path visited set: a successor
// already on the current path is never re-entered, and a node with no
// unvisited successor ends its path. Successors are walked in coordinate
// order, so the result is deterministic.
func (g *exonGraph) enumeratePaths(db *ExonDB) [][]ExonID {
	var roots []ExonID
	for id := range g.succ {
		if len(g.pred[id]) == 0 {
			roots = append(roots, id)
		}
	}
	sortByCoord(db, roots)

	type frame struct {
		succs    []ExonID
		next     int
		extended bool
	}

	var paths [][]ExonID
	for _, root := range roots {
		path := []ExonID{root}
		onPath := map[ExonID]bool{root: true}
		stack := []*frame{{succs: g.successors(db, root)}}
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			child := invalidExonID
			for f.next < len(f.succs) {
				n := f.succs[f.next]
				f.next++
				if !onPath[n] {
					child = n
					break
				}
			}
			if child != invalidExonID {
				f.extended = true
				path = append(path, child)
				onPath[child] = true
				stack = append(stack, &frame{succs: g.successors(db, child)})
				continue
			}
			if !f.extended {
				paths = append(paths, append([]ExonID(nil), path...))
			}
			stack = stack[:len(stack)-1]
			last := path[len(path)-1]
			delete(onPath, last)
			path = path[:len(path)-1]
		}
	}
	return paths
}
