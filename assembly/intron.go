package assembly

// IntronID is a dense sequence number (1, 2, 3, ...) assigned to an intron
// on first observation. IDs are valid only within one run.
type IntronID int32

const invalidIntronID = IntronID(0)

// exonEdge is one observed exon-to-exon transition across an intron.
type exonEdge struct {
	from, to ExonID
}

// Intron is one deduplicated intron, identified by its splice-site
// coordinates. A single intron can accumulate several exon transitions when
// alternative exon boundaries share the same splice sites.
type Intron struct {
	ID    IntronID
	Chrom string
	// Start is the upstream exon end plus one, End the downstream exon
	// start minus one.
	Start, End int

	// edges lists the exon transitions in discovery order, deduplicated.
	edges   []exonEdge
	edgeSet map[exonEdge]struct{}
}

func (in *Intron) addEdge(from, to ExonID) {
	e := exonEdge{from, to}
	if _, ok := in.edgeSet[e]; ok {
		return
	}
	in.edgeSet[e] = struct{}{}
	in.edges = append(in.edges, e)
}

// IntronDB stores every distinct intron of a run, keyed by splice-site
// coordinates.
type IntronDB struct {
	ids     map[exonKey]IntronID
	introns []*Intron // indexed by IntronID
}

func newIntronDB() *IntronDB {
	return &IntronDB{
		ids:     map[exonKey]IntronID{},
		introns: []*Intron{{Chrom: "invalid"}},
	}
}

// Len returns the number of registered introns.
func (db *IntronDB) Len() int { return len(db.introns) - 1 }

// Intron returns the intron with the given ID.
//
// REQUIRES: id is valid.
func (db *IntronDB) Intron(id IntronID) *Intron {
	if id == invalidIntronID {
		panic(id)
	}
	return db.introns[id]
}

// Lookup returns the ID of the intron with the given coordinates, or
// invalidIntronID if it was never observed.
func (db *IntronDB) Lookup(chrom string, start, end int) IntronID {
	return db.ids[exonKey{chrom, start, end}]
}

func (db *IntronDB) intern(chrom string, start, end int) (IntronID, bool) {
	key := exonKey{chrom, start, end}
	if id, ok := db.ids[key]; ok {
		return id, false
	}
	id := IntronID(len(db.introns))
	db.ids[key] = id
	db.introns = append(db.introns, &Intron{
		ID:      id,
		Chrom:   chrom,
		Start:   start,
		End:     end,
		edgeSet: map[exonEdge]struct{}{},
	})
	return id, true
}
