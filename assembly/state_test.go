package assembly

import (
	"testing"

	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func TestAddInternsExons(t *testing.T) {
	st := NewState(DefaultOpts)
	st.Add("chr1", []Block{{100, 200}, {300, 400}})
	st.Add("chr1", []Block{{100, 200}, {300, 400}})
	expect.EQ(t, st.Exons().Len(), 2)

	id := st.Exons().Lookup("chr1", 100, 200)
	assert.NEQ(t, id, invalidExonID)
	e := st.Exons().Exon(id)
	expect.EQ(t, e.Chrom, "chr1")
	expect.EQ(t, e.Len(), 100)
	expect.EQ(t, e.Terminal, TerminalLeft)

	// Same coordinates on another chromosome are a distinct exon.
	st.Add("chr2", []Block{{100, 200}, {300, 400}})
	expect.EQ(t, st.Exons().Len(), 4)
	assert.NEQ(t, st.Exons().Lookup("chr2", 100, 200), id)

	expect.EQ(t, st.Stats().Alignments, 3)
	expect.EQ(t, st.Stats().Spliced, 3)
}

func TestAddClearsTerminalOnInternalObservation(t *testing.T) {
	st := NewState(DefaultOpts)
	st.Add("chr1", []Block{{300, 400}, {500, 600}})
	id := st.Exons().Lookup("chr1", 300, 400)
	expect.EQ(t, st.Exons().Exon(id).Terminal, TerminalLeft)

	// An internal observation demotes the stored flag for good.
	st.Add("chr1", []Block{{100, 200}, {300, 400}, {500, 600}})
	expect.EQ(t, st.Exons().Exon(id).Terminal, TerminalNone)
	st.Add("chr1", []Block{{300, 400}, {500, 600}})
	expect.EQ(t, st.Exons().Exon(id).Terminal, TerminalNone)

	// The last exon of the long alignment stays right-terminal.
	last := st.Exons().Lookup("chr1", 500, 600)
	expect.EQ(t, st.Exons().Exon(last).Terminal, TerminalRight)
}

func TestAddDropsShortExons(t *testing.T) {
	st := NewState(DefaultOpts) // MinExonLen 10
	// The 5-base block is dropped, splitting the alignment into a spliced
	// left run and a single-exon right run.
	st.Add("chr1", []Block{{100, 200}, {300, 400}, {600, 605}, {800, 900}})
	expect.EQ(t, st.Exons().Len(), 2)
	assert.NEQ(t, st.Exons().Lookup("chr1", 100, 200), invalidExonID)
	expect.EQ(t, st.Exons().Lookup("chr1", 600, 605), invalidExonID)
	expect.EQ(t, st.Exons().Lookup("chr1", 800, 900), invalidExonID)
	expect.EQ(t, st.Stats().ShortExonsDropped, 1)
	expect.EQ(t, st.Stats().Spliced, 1)
	expect.EQ(t, st.Stats().SingleExon, 1)
}

func TestAddSkipsLongIntrons(t *testing.T) {
	opts := DefaultOpts
	opts.MaxIntron = 1000
	st := NewState(opts)
	st.Add("chr1", []Block{{0, 100}, {2000, 2100}})
	expect.EQ(t, st.Stats().LongIntronsSkipped, 1)
	expect.EQ(t, st.Introns().Len(), 0)
	e := st.Exons().Exon(st.Exons().Lookup("chr1", 0, 100))
	expect.EQ(t, len(e.Next), 0)
}

func TestIntronCoordinates(t *testing.T) {
	st := NewState(DefaultOpts)
	st.Add("chr1", []Block{{100, 200}, {300, 400}})
	assert.EQ(t, st.Introns().Len(), 1)
	id := st.Introns().Lookup("chr1", 201, 299)
	assert.NEQ(t, id, invalidIntronID)
	in := st.Introns().Intron(id)
	expect.EQ(t, in.Start, 201)
	expect.EQ(t, in.End, 299)

	from := st.Exons().Lookup("chr1", 100, 200)
	to := st.Exons().Lookup("chr1", 300, 400)
	_, ok := st.Exons().Exon(from).Next[to]
	expect.True(t, ok)
}

func TestClusters(t *testing.T) {
	st := NewState(DefaultOpts)
	// One spliced alignment puts all its introns in one cluster.
	st.Add("chr1", []Block{{0, 100}, {200, 300}, {400, 500}})
	expect.EQ(t, st.ClusterCount(), 1)
	i1 := st.Introns().Lookup("chr1", 101, 199)
	i2 := st.Introns().Lookup("chr1", 301, 399)
	expect.EQ(t, st.Cluster(i1), st.Cluster(i2))

	// A disjoint junction forms its own cluster.
	st.Add("chr1", []Block{{400, 500}, {600, 700}})
	i3 := st.Introns().Lookup("chr1", 501, 599)
	expect.EQ(t, st.ClusterCount(), 2)
	assert.NEQ(t, st.Cluster(i1), st.Cluster(i3))

	// An alignment chaining a known intron from each cluster merges them.
	st.Add("chr1", []Block{{200, 300}, {400, 500}, {600, 700}})
	expect.EQ(t, st.ClusterCount(), 1)
	expect.EQ(t, st.Cluster(i1), st.Cluster(i3))
}

func TestMergeLoci(t *testing.T) {
	st := NewState(DefaultOpts)
	// Two clusters sharing exon 400-500: mergeLoci heals them into one
	// locus without touching the cluster partition itself.
	st.Add("chr1", []Block{{0, 100}, {200, 300}, {400, 500}})
	st.Add("chr1", []Block{{400, 500}, {600, 700}})
	// An unrelated locus on another chromosome.
	st.Add("chr2", []Block{{0, 100}, {200, 300}})
	expect.EQ(t, st.ClusterCount(), 3)

	loci := st.MergeLoci()
	assert.EQ(t, len(loci), 2)
	expect.EQ(t, len(loci[0]), 3)
	expect.EQ(t, len(loci[1]), 1)
	expect.EQ(t, st.Introns().Intron(loci[0][0]).Chrom, "chr1")
	expect.EQ(t, st.Introns().Intron(loci[1][0]).Chrom, "chr2")
	// Locus members come back in coordinate order.
	expect.EQ(t, st.Introns().Intron(loci[0][0]).Start, 101)
	expect.EQ(t, st.Introns().Intron(loci[0][1]).Start, 301)
	expect.EQ(t, st.Introns().Intron(loci[0][2]).Start, 501)
}
