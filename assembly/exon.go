package assembly

// ExonID is a dense sequence number (1, 2, 3, ...) assigned to an exon on
// first observation. IDs are valid only within one run.
type ExonID int32

const invalidExonID = ExonID(0)

// Terminal records where an exon has been observed within its alignments.
type Terminal uint8

const (
	// TerminalNone marks an exon observed at an internal position.
	TerminalNone Terminal = iota
	// TerminalLeft marks the leftmost exon of an alignment.
	TerminalLeft
	// TerminalRight marks the rightmost exon of an alignment.
	TerminalRight
)

// Exon is one deduplicated exon interval. Identity is (Chrom, Start, End):
// two observations with equal coordinates share a single Exon, and their
// attributes are merged into it.
type Exon struct {
	ID    ExonID
	Chrom string
	// Start and End are 0-based half-open block coordinates.
	Start, End int
	// Terminal is reset to TerminalNone once any observation places the
	// exon at an internal alignment position.
	Terminal Terminal
	// Next holds the exons observed immediately downstream of this one.
	Next map[ExonID]struct{}
	// Introns holds the introns incident to this exon.
	Introns map[IntronID]struct{}
}

// Len returns the exon length in bases.
func (e *Exon) Len() int { return e.End - e.Start }

type exonKey struct {
	chrom      string
	start, end int
}

// ExonDB stores every distinct exon of a run, keyed by genomic coordinates.
type ExonDB struct {
	ids   map[exonKey]ExonID
	exons []*Exon // indexed by ExonID
}

func newExonDB() *ExonDB {
	return &ExonDB{
		ids:   map[exonKey]ExonID{},
		exons: []*Exon{{Chrom: "invalid"}},
	}
}

// Len returns the number of registered exons.
func (db *ExonDB) Len() int { return len(db.exons) - 1 }

// Exon returns the exon with the given ID. It always returns a non-nil exon.
//
// REQUIRES: id is valid.
func (db *ExonDB) Exon(id ExonID) *Exon {
	if id == invalidExonID {
		panic(id)
	}
	return db.exons[id]
}

// Lookup returns the ID of the exon with the given coordinates, or
// invalidExonID if it was never observed.
func (db *ExonDB) Lookup(chrom string, start, end int) ExonID {
	return db.ids[exonKey{chrom, start, end}]
}

// intern finds or creates the exon with the given coordinates, reporting
// whether a new entry was created.
func (db *ExonDB) intern(chrom string, start, end int) (ExonID, bool) {
	key := exonKey{chrom, start, end}
	if id, ok := db.ids[key]; ok {
		return id, false
	}
	id := ExonID(len(db.exons))
	db.ids[key] = id
	db.exons = append(db.exons, &Exon{
		ID:      id,
		Chrom:   chrom,
		Start:   start,
		End:     end,
		Next:    map[ExonID]struct{}{},
		Introns: map[IntronID]struct{}{},
	})
	return id, true
}
