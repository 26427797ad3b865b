// Package retention detects retained introns in assembled transcript
// models. A retained intron shows up as a transcript exon spanning exactly
// the genomic range between two adjacent exons of another transcript of the
// same gene. Events are reported as GFF rows (gene, mRNA, exon) suitable for
// differential exon-usage analysis.
package retention

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/biogo/store/interval"
	"github.com/grailbio/base/errors"

	"github.com/gimmebio/gimme/encoding/bed"
)

// Exon is one transcript exon. Coordinates are 1-based inclusive, the form
// used in GFF output.
type Exon struct {
	Chrom      string
	Start, End int
	Transcript string
	Strand     string
}

type exonKey struct {
	start, end int
}

type exonEdge struct {
	from, to exonKey
}

// Gene accumulates the exon graph of one gene's transcripts: nodes are
// deduplicated exons, edges the observed exon-to-exon transitions.
type Gene struct {
	ID string

	exons   map[exonKey]*Exon
	edges   []exonEdge
	edgeSet map[exonEdge]struct{}
}

func newGene(id string) *Gene {
	return &Gene{
		ID:      id,
		exons:   map[exonKey]*Exon{},
		edgeSet: map[exonEdge]struct{}{},
	}
}

// addTranscript interns the transcript's exons and chains them into the
// gene graph.
func (g *Gene) addTranscript(exons []Exon) {
	var prev exonKey
	for i := range exons {
		key := exonKey{exons[i].Start, exons[i].End}
		if _, ok := g.exons[key]; !ok {
			e := exons[i]
			g.exons[key] = &e
		}
		if i > 0 {
			edge := exonEdge{prev, key}
			if _, ok := g.edgeSet[edge]; !ok {
				g.edgeSet[edge] = struct{}{}
				g.edges = append(g.edges, edge)
			}
		}
		prev = key
	}
}

// Event is one retained-intron event: the exon pair flanking an intron, and
// the exons of other transcripts spanning exactly that intron's range.
type Event struct {
	Gene     string
	Up, Down *Exon
	Retained []*Exon
}

// exonInterval adapts an Exon to the biogo interval tree.
type exonInterval struct {
	e  *Exon
	id uintptr
}

func (iv exonInterval) ID() uintptr { return iv.id }
func (iv exonInterval) Overlap(r interval.IntRange) bool {
	return iv.e.Start < r.End && iv.e.End > r.Start
}
func (iv exonInterval) Range() interval.IntRange {
	return interval.IntRange{Start: iv.e.Start, End: iv.e.End}
}

// query is a bare range probe into the tree.
type query struct {
	start, end int
}

func (q query) ID() uintptr { return 0 }
func (q query) Overlap(r interval.IntRange) bool {
	return q.start < r.End && q.end > r.Start
}
func (q query) Range() interval.IntRange {
	return interval.IntRange{Start: q.start, End: q.end}
}

// Events returns the gene's retained-intron events in edge discovery order.
func (g *Gene) Events() []Event {
	if len(g.edges) == 0 {
		return nil
	}
	keys := make([]exonKey, 0, len(g.exons))
	for k := range g.exons {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].start != keys[j].start {
			return keys[i].start < keys[j].start
		}
		return keys[i].end < keys[j].end
	})
	t := &interval.IntTree{}
	for i, k := range keys {
		if err := t.Insert(exonInterval{g.exons[k], uintptr(i)}, true); err != nil {
			panic(err)
		}
	}
	t.AdjustRanges()

	var events []Event
	for _, edge := range g.edges {
		up, dn := g.exons[edge.from], g.exons[edge.to]
		var retained []*Exon
		for _, iv := range t.Get(query{up.Start, dn.End}) {
			e := iv.(exonInterval).e
			if e.Start == up.Start && e.End == dn.End {
				retained = append(retained, e)
			}
		}
		if len(retained) > 0 {
			events = append(events, Event{Gene: g.ID, Up: up, Down: dn, Retained: retained})
		}
	}
	return events
}

// Scan reads assembled models from sc, grouping consecutive records by
// gene, and invokes emit once per gene. Gene grouping follows the
// assembler's record naming: the name up to the first '.' (with ':'
// replaced by '-') names the gene. Records with strand "." are skipped.
func Scan(sc *bed.Scanner, emit func(*Gene) error) error {
	var (
		cur *Gene
		rec bed.Record
	)
	for sc.Scan(&rec) {
		if rec.Strand == "." {
			continue
		}
		tid := strings.Replace(rec.Name, ":", "-", -1)
		geneID := tid
		if i := strings.Index(tid, "."); i >= 0 {
			geneID = tid[:i]
		}
		if cur == nil || cur.ID != geneID {
			if cur != nil {
				if err := emit(cur); err != nil {
					return err
				}
			}
			cur = newGene(geneID)
		}
		cur.addTranscript(transcriptExons(&rec, tid))
	}
	if err := sc.Err(); err != nil {
		return err
	}
	if cur != nil {
		return emit(cur)
	}
	return nil
}

// transcriptExons converts one BED record into 1-based inclusive exons.
func transcriptExons(r *bed.Record, tid string) []Exon {
	start := r.Start + 1
	exons := make([]Exon, len(r.BlockSizes))
	for i := range r.BlockSizes {
		s := start + r.BlockStarts[i]
		exons[i] = Exon{
			Chrom:      r.Chrom,
			Start:      s,
			End:        s + r.BlockSizes[i] - 1,
			Transcript: tid,
			Strand:     r.Strand,
		}
	}
	return exons
}

// WriteGFF writes one event as a gene row spanning all involved exons,
// followed by one mRNA per structure: the spliced flank pair first, then
// each retained exon. eventNo distinguishes multiple events of one gene.
func WriteGFF(w io.Writer, ev Event, eventNo int) error {
	all := append([]*Exon{ev.Up, ev.Down}, ev.Retained...)
	sort.Slice(all, func(i, j int) bool { return all[i].End < all[j].End })
	first, last := all[0], all[len(all)-1]
	geneID := fmt.Sprintf("%s.ev%d", ev.Gene, eventNo)

	er := errors.Once{}
	_, err := fmt.Fprintf(w, "%s\tRI\tgene\t%d\t%d\t.\t%s\t.\tID=%s;Name=%s\n",
		first.Chrom, first.Start, last.End, first.Strand, geneID, ev.Gene)
	er.Set(err)

	structures := [][]*Exon{{ev.Up, ev.Down}}
	for _, e := range ev.Retained {
		structures = append(structures, []*Exon{e})
	}
	for mrna, exons := range structures {
		sorted := append([]*Exon(nil), exons...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].End < sorted[j].End })
		f, l := sorted[0], sorted[len(sorted)-1]
		_, err = fmt.Fprintf(w, "%s\tRI\tmRNA\t%d\t%d\t.\t%s\t.\tID=%s.%d;Parent=%s\n",
			f.Chrom, f.Start, l.End, f.Strand, geneID, mrna+1, geneID)
		er.Set(err)
		for i, e := range sorted {
			_, err = fmt.Fprintf(w, "%s\tRI\texon\t%d\t%d\t.\t%s\t.\tID=%s.%d.%d;Parent=%s.%d\n",
				e.Chrom, e.Start, e.End, e.Strand, geneID, mrna+1, i+1, geneID, mrna+1)
			er.Set(err)
		}
	}
	return er.Err()
}
