package assembly

import "fmt"

// Opts holds the tunable parameters of one assembly run.
type Opts struct {
	// GapSize is the largest alignment gap (bp) filled when merging aligned
	// blocks into exons. Gaps wider than this become candidate introns.
	GapSize int
	// MaxIntron is the largest intron (bp) that may link two exons. Exon
	// pairs implying a longer intron are left unlinked.
	MaxIntron int
	// MinUTR is the distance cutoff (bp) under which alternative 5'/3'
	// termini collapse into their longer neighbor.
	MinUTR int
	// MinExonLen drops exons shorter than this many bases; the alignment is
	// split into independent runs at each dropped exon.
	MinExonLen int
	// MinTranscriptLen excludes assembled transcripts whose summed exon
	// length is not strictly greater than this.
	MinTranscriptLen int
	// MinimalSet reports a minimum path cover of each splice graph instead
	// of every maximal isoform.
	MinimalSet bool
}

// DefaultOpts sets the default values to Opts.
var DefaultOpts = Opts{
	GapSize:          10,
	MaxIntron:        100000,
	MinUTR:           100,
	MinExonLen:       10,
	MinTranscriptLen: 300,
}

// Validate reports the first invalid parameter, if any. Callers must
// validate before reading any input.
func (o Opts) Validate() error {
	if o.GapSize < 0 {
		return fmt.Errorf("assembly: invalid gap size %d (<0)", o.GapSize)
	}
	if o.MaxIntron <= 0 {
		return fmt.Errorf("assembly: invalid max intron size %d (<=0)", o.MaxIntron)
	}
	if o.MinUTR <= 0 {
		return fmt.Errorf("assembly: invalid UTR size %d (<=0)", o.MinUTR)
	}
	return nil
}
