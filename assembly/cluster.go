package assembly

import "sort"

// unionFind is a disjoint-set forest over dense int32 handles, union by size
// with path halving. Slot 0 mirrors the invalid handle of the arenas.
type unionFind struct {
	parent []int32
	size   []int32
}

func newUnionFind() *unionFind {
	return &unionFind{parent: []int32{0}, size: []int32{0}}
}

// add appends a new singleton set for the next handle.
func (u *unionFind) add() {
	u.parent = append(u.parent, int32(len(u.parent)))
	u.size = append(u.size, 1)
}

func (u *unionFind) find(x int32) int32 {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b int32) int32 {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return ra
	}
	if u.size[ra] < u.size[rb] {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
	u.size[ra] += u.size[rb]
	return ra
}

// clone returns an independent copy of the partition.
func (u *unionFind) clone() *unionFind {
	return &unionFind{
		parent: append([]int32(nil), u.parent...),
		size:   append([]int32(nil), u.size...),
	}
}

// Cluster returns the cluster owning the given intron. The representative
// intron handle doubles as the cluster id; clusters merge but never split,
// so the id of a merged-away cluster simply resolves to its absorber.
func (s *State) Cluster(id IntronID) IntronID {
	return IntronID(s.clusters.find(int32(id)))
}

// ClusterCount returns the number of live clusters.
func (s *State) ClusterCount() int {
	n := 0
	for i := int32(1); i < int32(len(s.clusters.parent)); i++ {
		if s.clusters.find(i) == i {
			n++
		}
	}
	return n
}

// MergeLoci groups clusters into gene loci: whenever a single exon carries
// introns owned by more than one cluster, those clusters belong to one
// locus. Cluster discovery is alignment-order dependent and can split a true
// locus into several clusters until a later alignment reveals the shared
// exon; this pass heals the split. It returns the member introns of each
// locus, both ordered by genomic coordinates.
func (s *State) MergeLoci() [][]IntronID {
	loci := s.clusters.clone()
	for _, e := range s.exons.exons[1:] {
		first := invalidIntronID
		for id := range e.Introns {
			if first == invalidIntronID {
				first = id
				continue
			}
			loci.union(int32(first), int32(id))
		}
	}

	members := map[int32][]IntronID{}
	for i := int32(1); i < int32(len(loci.parent)); i++ {
		root := loci.find(i)
		members[root] = append(members[root], IntronID(i))
	}
	out := make([][]IntronID, 0, len(members))
	for _, introns := range members {
		sort.Slice(introns, func(i, j int) bool {
			return s.intronLess(introns[i], introns[j])
		})
		out = append(out, introns)
	}
	sort.Slice(out, func(i, j int) bool {
		return s.intronLess(out[i][0], out[j][0])
	})
	return out
}

func (s *State) intronLess(a, b IntronID) bool {
	ia, ib := s.introns.Intron(a), s.introns.Intron(b)
	if ia.Chrom != ib.Chrom {
		return ia.Chrom < ib.Chrom
	}
	if ia.Start != ib.Start {
		return ia.Start < ib.Start
	}
	if ia.End != ib.End {
		return ia.End < ib.End
	}
	return a < b
}
