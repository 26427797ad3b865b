package assembly

import "sort"

// Isoform is one assembled transcript model: an ordered run of exon blocks
// on a chromosome. Gene ids are assigned per emitting locus; transcript
// numbering restarts at 1 for every gene.
type Isoform struct {
	Chrom      string
	Gene       int
	Transcript int
	// Exons holds the model's exon blocks in genomic order.
	Exons []Block
}

// Start returns the genomic start of the model.
func (m Isoform) Start() int { return m.Exons[0].Start }

// End returns the genomic end of the model.
func (m Isoform) End() int { return m.Exons[len(m.Exons)-1].End }

// Length returns the summed exon length, excluding introns.
func (m Isoform) Length() int { return transcriptLength(m.Exons) }

// BuildGeneModels assembles transcript models from everything registered so
// far. Gene loci are derived from the cluster partition; each locus graph is
// collapsed and its paths enumerated (every maximal path, or a minimum cover
// when MinimalSet is set); transcripts whose summed exon length does not
// exceed MinTranscriptLen are excluded; and merged single-exon alignments
// are appended as one-exon genes. A locus whose every path is excluded gives
// back its tentatively assigned gene id.
func (s *State) BuildGeneModels() []Isoform {
	var models []Isoform
	geneID := 0
	for _, locus := range s.MergeLoci() {
		g := s.buildGeneGraph(locus)
		if g.len() == 0 {
			continue
		}
		geneID++
		tranID := 0
		s.collapseExons(g)
		paths := g.enumeratePaths(s.exons)
		if s.opts.MinimalSet {
			paths = minimumPathCover(paths)
		}
		for _, path := range paths {
			exons := s.pathBlocks(path)
			if transcriptLength(exons) <= s.opts.MinTranscriptLen {
				s.stats.Excluded++
				continue
			}
			tranID++
			models = append(models, Isoform{
				Chrom:      s.exons.Exon(path[0]).Chrom,
				Gene:       geneID,
				Transcript: tranID,
				Exons:      exons,
			})
		}
		if tranID == 0 {
			geneID--
		}
	}

	chroms := make([]string, 0, len(s.single))
	for chrom := range s.single {
		chroms = append(chroms, chrom)
	}
	sort.Strings(chroms)
	for _, chrom := range chroms {
		for _, b := range mergeSingleExons(s.single[chrom]) {
			geneID++
			models = append(models, Isoform{
				Chrom:      chrom,
				Gene:       geneID,
				Transcript: 1,
				Exons:      []Block{b},
			})
		}
	}

	s.stats.Genes = geneID
	s.stats.Transcripts = len(models)
	return models
}

// pathBlocks returns the path's exon blocks in genomic order.
func (s *State) pathBlocks(path []ExonID) []Block {
	blocks := make([]Block, len(path))
	for i, id := range path {
		e := s.exons.Exon(id)
		blocks[i] = Block{e.Start, e.End}
	}
	sort.Slice(blocks, func(i, j int) bool {
		if blocks[i].Start != blocks[j].Start {
			return blocks[i].Start < blocks[j].Start
		}
		return blocks[i].End < blocks[j].End
	})
	return blocks
}

func transcriptLength(blocks []Block) int {
	n := 0
	for _, b := range blocks {
		n += b.Len()
	}
	return n
}
