package assembly

// minimumPathCover selects a subset of paths whose union of edges covers
// every edge appearing in any path. Selection is greedy: each round takes
// the path covering the most still-uncovered edges, ties to the earliest
// path, which also returns the single path unchanged on degenerate
// fully-overlapping inputs. Edgeless (single-node) paths are always kept.
// The cover is returned in enumeration order.
func minimumPathCover(paths [][]ExonID) [][]ExonID {
	edgeSets := make([]map[exonEdge]struct{}, len(paths))
	uncovered := map[exonEdge]struct{}{}
	for i, p := range paths {
		set := map[exonEdge]struct{}{}
		for j := 0; j+1 < len(p); j++ {
			e := exonEdge{p[j], p[j+1]}
			set[e] = struct{}{}
			uncovered[e] = struct{}{}
		}
		edgeSets[i] = set
	}

	chosen := make([]bool, len(paths))
	for i, set := range edgeSets {
		if len(set) == 0 {
			chosen[i] = true
		}
	}
	for len(uncovered) > 0 {
		best, bestGain := -1, 0
		for i, set := range edgeSets {
			if chosen[i] {
				continue
			}
			gain := 0
			for e := range set {
				if _, ok := uncovered[e]; ok {
					gain++
				}
			}
			if gain > bestGain {
				best, bestGain = i, gain
			}
		}
		if best < 0 {
			break
		}
		chosen[best] = true
		for e := range edgeSets[best] {
			delete(uncovered, e)
		}
	}

	var cover [][]ExonID
	for i, p := range paths {
		if chosen[i] {
			cover = append(cover, p)
		}
	}
	return cover
}
