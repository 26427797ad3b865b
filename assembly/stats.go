package assembly

// Stats counts the work done during one assembly run.
type Stats struct {
	// Alignments is the number of alignments registered.
	Alignments int
	// Spliced is the number of multi-exon runs linked into the splice data.
	Spliced int
	// SingleExon is the number of unspliced runs set aside for merging.
	SingleExon int
	// ShortExonsDropped counts blocks below the minimum exon length.
	ShortExonsDropped int
	// LongIntronsSkipped counts exon pairs left unlinked because the
	// implied intron exceeded the maximum intron size.
	LongIntronsSkipped int
	// Genes and Transcripts count the emitted models.
	Genes, Transcripts int
	// Excluded counts candidate transcripts rejected by the length filter.
	Excluded int
}

// Merge adds the field values of the two Stats objects and creates new Stats.
func (s Stats) Merge(o Stats) Stats {
	s.Alignments += o.Alignments
	s.Spliced += o.Spliced
	s.SingleExon += o.SingleExon
	s.ShortExonsDropped += o.ShortExonsDropped
	s.LongIntronsSkipped += o.LongIntronsSkipped
	s.Genes += o.Genes
	s.Transcripts += o.Transcripts
	s.Excluded += o.Excluded
	return s
}
