package assembly

// Block is one aligned block on the reference, 0-based half-open.
type Block struct {
	Start, End int
}

// Len returns the block length in bases.
func (b Block) Len() int { return b.End - b.Start }

// State carries every registry mutated during one assembly run: the exon and
// intron databases, the intron cluster partition, and the unspliced
// alignments awaiting the final single-exon merge. All pipeline stages
// operate on one State; it is not safe for concurrent use.
type State struct {
	opts Opts

	exons   *ExonDB
	introns *IntronDB
	// clusters partitions intron handles into splice-junction clusters.
	// Introns observed in one alignment, or introns sharing an exon through
	// a previously seen intron, end up in the same set.
	clusters *unionFind
	// single collects unspliced alignment blocks per chromosome.
	single map[string][]Block

	stats Stats
}

// NewState returns an empty State configured with opts.
func NewState(opts Opts) *State {
	return &State{
		opts:     opts,
		exons:    newExonDB(),
		introns:  newIntronDB(),
		clusters: newUnionFind(),
		single:   map[string][]Block{},
	}
}

// Exons returns the exon registry.
func (s *State) Exons() *ExonDB { return s.exons }

// Introns returns the intron registry.
func (s *State) Introns() *IntronDB { return s.introns }

// Stats returns the counters accumulated so far.
func (s *State) Stats() Stats { return s.stats }

// Add registers one alignment: its blocks are gap-filled, short exons are
// dropped (splitting the alignment into independent runs), spliced runs are
// interned and linked into introns and clusters, and single-exon runs are
// set aside for the per-chromosome merge at the end of the run.
func (s *State) Add(chrom string, blocks []Block) {
	if len(blocks) == 0 {
		return
	}
	s.stats.Alignments++
	blocks = FillGaps(blocks, s.opts.GapSize)
	for _, run := range s.splitShort(blocks) {
		if len(run) > 1 {
			s.stats.Spliced++
			ids := s.addExons(chrom, run)
			s.linkIntrons(chrom, ids)
		} else {
			s.stats.SingleExon++
			s.single[chrom] = append(s.single[chrom], run[0])
		}
	}
}

// splitShort drops blocks shorter than MinExonLen. Each maximal run of
// surviving blocks becomes its own partial transcript. Block length is
// measured inclusively here, matching the assembler's historical cutoff.
func (s *State) splitShort(blocks []Block) [][]Block {
	var runs [][]Block
	var kept []Block
	for _, b := range blocks {
		if b.Len()+1 >= s.opts.MinExonLen {
			kept = append(kept, b)
			continue
		}
		s.stats.ShortExonsDropped++
		if len(kept) > 0 {
			runs = append(runs, kept)
			kept = nil
		}
	}
	if len(kept) > 0 {
		runs = append(runs, kept)
	}
	return runs
}

// addExons interns the exons of one spliced run, marking the first and last
// as left- and right-terminal. An exon already known from another alignment
// keeps its single registry entry; the stored terminal flag is cleared when
// any occurrence is internal, since terminality is a per-alignment position.
func (s *State) addExons(chrom string, run []Block) []ExonID {
	ids := make([]ExonID, len(run))
	for i, b := range run {
		occ := TerminalNone
		switch i {
		case 0:
			occ = TerminalLeft
		case len(run) - 1:
			occ = TerminalRight
		}
		id, created := s.exons.intern(chrom, b.Start, b.End)
		e := s.exons.Exon(id)
		if created {
			e.Terminal = occ
		} else if occ == TerminalNone && e.Terminal != TerminalNone {
			e.Terminal = TerminalNone
		}
		ids[i] = id
	}
	return ids
}

// linkIntrons derives the introns between consecutive exons of one run and
// folds them into the cluster partition. The run's introns are chained so
// its junctions land in a single cluster; an intron seen before drags its
// existing cluster into the same set. Exon pairs implying an intron longer
// than MaxIntron are skipped without linking.
func (s *State) linkIntrons(chrom string, exons []ExonID) {
	var introns []IntronID
	for i := 0; i+1 < len(exons); i++ {
		cur := s.exons.Exon(exons[i])
		next := s.exons.Exon(exons[i+1])
		intronStart := cur.End + 1
		intronEnd := next.Start - 1
		if intronEnd-intronStart > s.opts.MaxIntron {
			s.stats.LongIntronsSkipped++
			continue
		}
		cur.Next[next.ID] = struct{}{}
		id, created := s.introns.intern(chrom, intronStart, intronEnd)
		if created {
			s.clusters.add()
		}
		in := s.introns.Intron(id)
		in.addEdge(cur.ID, next.ID)
		cur.Introns[id] = struct{}{}
		next.Introns[id] = struct{}{}
		introns = append(introns, id)
	}
	for i := 0; i+1 < len(introns); i++ {
		s.clusters.union(int32(introns[i]), int32(introns[i+1]))
	}
}
