package main

//
// Gimme-RI
//
// Detects retained introns in an assembled BED12 gene model file and writes
// the events as GFF. Transcripts of one gene must be consecutive in the
// input, which is how gimme writes them.
//
// Example:
//
//    gimme-ri -o events.gff models.bed
//
import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"

	"github.com/gimmebio/gimme/encoding/bed"
	"github.com/gimmebio/gimme/retention"
)

var outputPath = flag.String("o", "", "Output GFF file. (default stdout)")

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: gimme-ri [flags] models.bed

Report retained-intron events found in a BED12 gene model file as GFF.

Flags:
`)
	flag.PrintDefaults()
	os.Exit(1)
}

func main() {
	flag.Usage = usage
	cleanup := grail.Init()
	defer cleanup()

	if flag.NArg() != 1 {
		usage()
	}
	inPath := flag.Arg(0)
	sc, closeIn, err := bed.OpenPath(inPath)
	if err != nil {
		log.Panicf("open %v: %v", inPath, err)
	}

	ctx := vcontext.Background()
	var (
		raw io.Writer = os.Stdout
		out file.File
	)
	if *outputPath != "" {
		if out, err = file.Create(ctx, *outputPath); err != nil {
			log.Panicf("create %v: %v", *outputPath, err)
		}
		raw = out.Writer(ctx)
	}
	bw := bufio.NewWriter(raw)

	nGenes, nEvents := 0, 0
	err = retention.Scan(sc, func(g *retention.Gene) error {
		nGenes++
		for i, ev := range g.Events() {
			nEvents++
			if err := retention.WriteGFF(bw, ev, i+1); err != nil {
				return err
			}
		}
		return nil
	})
	once := errors.Once{}
	once.Set(err)
	once.Set(closeIn())
	once.Set(bw.Flush())
	if out != nil {
		once.Set(out.Close(ctx))
	}
	if err := once.Err(); err != nil {
		log.Panicf("gimme-ri: %v", err)
	}
	log.Printf("Scanned %d genes, found %d retained-intron events", nGenes, nEvents)
}
