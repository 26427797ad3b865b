package main

//
// Gimme
//
// Assembles transcript models from spliced alignments. Input is one or more
// PSL files (optionally gzipped); output is BED12, one record per predicted
// isoform, with names of the form chrom:gene.transcript.
//
// Example:
//
//    gimme -min-transcript-len 300 -o models.bed reads1.psl reads2.psl.gz
//
import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"

	"github.com/gimmebio/gimme/assembly"
	"github.com/gimmebio/gimme/encoding/bed"
	"github.com/gimmebio/gimme/encoding/psl"
)

var (
	opts       = assembly.DefaultOpts
	outputPath = flag.String("o", "", "Output BED file. (default stdout)")
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: gimme [flags] input.psl...

Assemble transcript models from spliced PSL alignments and write them as
BED12 records.

Flags:
`)
	flag.PrintDefaults()
	os.Exit(1)
}

// readAlignments streams one PSL file into the assembly state.
func readAlignments(path string, st *assembly.State) error {
	ctx := vcontext.Background()
	in, err := file.Open(ctx, path)
	if err != nil {
		return err
	}
	var inr io.Reader = in.Reader(ctx)
	if u := compress.NewReaderPath(inr, in.Name()); u != nil {
		inr = u
	}
	n := 0
	sc := psl.NewScanner(inr)
	rec := psl.Record{}
	for sc.Scan(&rec) {
		blocks := make([]assembly.Block, rec.Blocks())
		for i := range rec.BlockSizes {
			blocks[i] = assembly.Block{
				Start: rec.TStarts[i],
				End:   rec.TStarts[i] + rec.BlockSizes[i],
			}
		}
		st.Add(rec.TName, blocks)
		n++
		if n%(1024*1024) == 0 {
			log.Printf("%s: %dMi alignments", path, n/(1024*1024))
		}
	}
	log.Printf("Processed %d alignments in %s", n, path)
	once := errors.Once{}
	once.Set(sc.Err())
	once.Set(in.Close(ctx))
	return once.Err()
}

// writeModels writes the isoforms as BED12 to outPath, or to stdout when
// outPath is empty.
func writeModels(outPath string, models []assembly.Isoform) error {
	ctx := vcontext.Background()
	var (
		raw io.Writer = os.Stdout
		out file.File
		err error
	)
	if outPath != "" {
		if out, err = file.Create(ctx, outPath); err != nil {
			return err
		}
		raw = out.Writer(ctx)
	}
	bw := bufio.NewWriter(raw)
	w := bed.NewWriter(bw)
	once := errors.Once{}
	for i := range models {
		once.Set(w.Write(record(&models[i])))
	}
	once.Set(bw.Flush())
	if out != nil {
		once.Set(out.Close(ctx))
	}
	return once.Err()
}

// record converts one isoform into its BED12 representation.
func record(m *assembly.Isoform) *bed.Record {
	r := &bed.Record{
		Chrom:      m.Chrom,
		Start:      m.Start(),
		End:        m.End(),
		Name:       fmt.Sprintf("%s:%d.%d", m.Chrom, m.Gene, m.Transcript),
		Score:      1000,
		Strand:     "+",
		ThickStart: m.Start(),
		ThickEnd:   m.End(),
		ItemRGB:    "0,0,0",
	}
	for _, b := range m.Exons {
		r.BlockSizes = append(r.BlockSizes, b.Len())
		r.BlockStarts = append(r.BlockStarts, b.Start-m.Start())
	}
	return r
}

func main() {
	flag.Usage = usage
	flag.IntVar(&opts.GapSize, "gap-size", assembly.DefaultOpts.GapSize, "Maximum alignment gap closed when merging adjacent blocks.")
	flag.IntVar(&opts.MaxIntron, "max-intron", assembly.DefaultOpts.MaxIntron, "Maximum intron size; larger gaps between exons are left unlinked.")
	flag.IntVar(&opts.MinUTR, "min-utr", assembly.DefaultOpts.MinUTR, "Maximum extension of a terminal exon absorbed when collapsing shared splice sites.")
	flag.IntVar(&opts.MinExonLen, "min-exon", assembly.DefaultOpts.MinExonLen, "Minimum exon length; shorter blocks are dropped and split their alignment.")
	flag.IntVar(&opts.MinTranscriptLen, "min-transcript-len", assembly.DefaultOpts.MinTranscriptLen, "Minimum total exon length of an emitted transcript.")
	flag.BoolVar(&opts.MinimalSet, "min", assembly.DefaultOpts.MinimalSet, "Report a minimal set of paths covering all splice junctions instead of all paths.")
	cleanup := grail.Init()
	defer cleanup()

	if flag.NArg() == 0 {
		usage()
	}
	if err := opts.Validate(); err != nil {
		log.Panic(err)
	}
	st := assembly.NewState(opts)
	for _, path := range flag.Args() {
		if err := readAlignments(path, st); err != nil {
			log.Panicf("read %v: %v", path, err)
		}
	}
	models := st.BuildGeneModels()
	if err := writeModels(*outputPath, models); err != nil {
		log.Panicf("write %v: %v", *outputPath, err)
	}
	stats := st.Stats()
	log.Printf("Total exons: %d", st.Exons().Len())
	log.Printf("Total genes: %d", stats.Genes)
	log.Printf("Total transcripts: %d", stats.Transcripts)
	if n := st.ClusterCount(); n > 0 {
		log.Printf("Isoform/gene: %.2f", float64(stats.Transcripts)/float64(n))
	}
}
