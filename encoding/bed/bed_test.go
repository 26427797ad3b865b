package bed

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.Write(&Record{
		Chrom:       "chr1",
		Start:       100,
		End:         450,
		Name:        "chr1:1.1",
		Score:       1000,
		Strand:      "+",
		ThickStart:  100,
		ThickEnd:    450,
		ItemRGB:     "0,0,0",
		BlockSizes:  []int{100, 50},
		BlockStarts: []int{0, 300},
	}))
	assert.Equal(t,
		"chr1\t100\t450\tchr1:1.1\t1000\t+\t100\t450\t0,0,0\t2\t100,50\t0,300\n",
		buf.String())
}

func TestScanner(t *testing.T) {
	in := `track name=models
# a comment
chr1	100	450	chr1:1.1	1000	+	100	450	0,0,0	2	100,50,	0,300,

chr2	0	80	chr2:2.1	1000	+	0	80	0,0,0	1	80,	0,
`
	sc := NewScanner(strings.NewReader(in))
	var rec Record
	require.True(t, sc.Scan(&rec))
	assert.Equal(t, "chr1", rec.Chrom)
	assert.Equal(t, 100, rec.Start)
	assert.Equal(t, 450, rec.End)
	assert.Equal(t, "chr1:1.1", rec.Name)
	assert.Equal(t, "+", rec.Strand)
	assert.Equal(t, []int{100, 50}, rec.BlockSizes)
	assert.Equal(t, []int{0, 300}, rec.BlockStarts)

	require.True(t, sc.Scan(&rec))
	assert.Equal(t, "chr2", rec.Chrom)
	assert.Equal(t, 1, rec.Blocks())

	assert.False(t, sc.Scan(&rec))
	assert.NoError(t, sc.Err())
}

func TestScannerRoundTrip(t *testing.T) {
	recs := []Record{
		{
			Chrom: "chr1", Start: 10, End: 700, Name: "chr1:1.1", Score: 1000,
			Strand: "+", ThickStart: 10, ThickEnd: 700, ItemRGB: "0,0,0",
			BlockSizes: []int{90, 100, 100}, BlockStarts: []int{0, 190, 590},
		},
		{
			Chrom: "chr1", Start: 1000, End: 1200, Name: "chr1:2.1", Score: 1000,
			Strand: "+", ThickStart: 1000, ThickEnd: 1200, ItemRGB: "0,0,0",
			BlockSizes: []int{200}, BlockStarts: []int{0},
		},
	}
	var buf bytes.Buffer
	w := NewWriter(&buf)
	for i := range recs {
		require.NoError(t, w.Write(&recs[i]))
	}
	sc := NewScanner(&buf)
	var got Record
	for i := range recs {
		require.True(t, sc.Scan(&got))
		assert.Equal(t, recs[i], got)
	}
	assert.False(t, sc.Scan(&got))
	assert.NoError(t, sc.Err())
}

func TestScannerShortRow(t *testing.T) {
	sc := NewScanner(strings.NewReader("chr1\t100\t450\tx\n"))
	var rec Record
	assert.False(t, sc.Scan(&rec))
	assert.Error(t, sc.Err())
}
