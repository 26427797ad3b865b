// Package bed reads and writes 12-column BED records, the output format of
// the assembler and the input of the intron-retention scanner.
package bed

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	gunsafe "github.com/grailbio/base/unsafe"
	"github.com/grailbio/base/vcontext"
	"github.com/klauspost/compress/gzip"
)

// A Record is one BED12 row. Coordinates are 0-based half-open; block starts
// are relative to Start.
type Record struct {
	Chrom      string
	Start, End int
	Name       string
	Score      int
	Strand     string
	ThickStart int
	ThickEnd   int
	ItemRGB    string
	// BlockSizes and BlockStarts have equal length.
	BlockSizes  []int
	BlockStarts []int
}

// Blocks returns the number of blocks of the record.
func (r *Record) Blocks() int { return len(r.BlockSizes) }

// Writer writes BED12 rows. The first write error sticks; subsequent writes
// are no-ops returning that error.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter constructs a new BED writer that writes records to the
// underlying writer w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write writes the record r as one tab-separated row. An error is returned
// if this or any earlier write failed.
func (w *Writer) Write(r *Record) error {
	w.writeString(
		r.Chrom, "\t",
		strconv.Itoa(r.Start), "\t",
		strconv.Itoa(r.End), "\t",
		r.Name, "\t",
		strconv.Itoa(r.Score), "\t",
		r.Strand, "\t",
		strconv.Itoa(r.ThickStart), "\t",
		strconv.Itoa(r.ThickEnd), "\t",
		r.ItemRGB, "\t",
		strconv.Itoa(r.Blocks()), "\t",
		joinInts(r.BlockSizes), "\t",
		joinInts(r.BlockStarts), "\n")
	return w.err
}

func (w *Writer) writeString(strs ...string) {
	for _, s := range strs {
		if w.err != nil {
			return
		}
		_, w.err = w.w.Write(gunsafe.StringToBytes(s))
	}
}

func joinInts(vals []int) string {
	var buf strings.Builder
	for i, v := range vals {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Itoa(v))
	}
	return buf.String()
}

// Scanner reads BED12 rows from a stream, skipping blank lines and
// "track"/"browser"/"#" lines. Scanners are not threadsafe.
type Scanner struct {
	b    *bufio.Scanner
	err  error
	line int
}

// NewScanner constructs a new Scanner that reads BED data from the provided
// reader.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{b: bufio.NewScanner(r)}
}

// OpenPath opens path, transparently decompressing gzip by file type, and
// returns a Scanner over it together with a close function for the
// underlying file.
func OpenPath(path string) (*Scanner, func() error, error) {
	ctx := vcontext.Background()
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	r := io.Reader(in.Reader(ctx))
	if fileio.DetermineType(path) == fileio.Gzip {
		if r, err = gzip.NewReader(r); err != nil {
			_ = in.Close(ctx)
			return nil, nil, err
		}
	}
	return NewScanner(r), func() error { return in.Close(ctx) }, nil
}

// Scan the next row into the provided record. Scan returns a boolean
// indicating whether the scan succeeded; check Err after it returns false.
func (s *Scanner) Scan(rec *Record) bool {
	if s.err != nil {
		return false
	}
	for s.b.Scan() {
		s.line++
		line := strings.TrimRight(s.b.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") ||
			strings.HasPrefix(line, "track") || strings.HasPrefix(line, "browser") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 12 {
			s.err = fmt.Errorf("bed: line %d: expected 12 fields, found %d", s.line, len(fields))
			return false
		}
		rec.Chrom = fields[0]
		rec.Name = fields[3]
		rec.Strand = fields[5]
		rec.ItemRGB = fields[8]
		if !s.parseInts(
			intField{fields[1], &rec.Start},
			intField{fields[2], &rec.End},
			intField{fields[4], &rec.Score},
			intField{fields[6], &rec.ThickStart},
			intField{fields[7], &rec.ThickEnd}) {
			return false
		}
		var count int
		if !s.parseInts(intField{fields[9], &count}) {
			return false
		}
		if rec.BlockSizes, s.err = s.parseIntList(fields[10]); s.err != nil {
			return false
		}
		if rec.BlockStarts, s.err = s.parseIntList(fields[11]); s.err != nil {
			return false
		}
		if len(rec.BlockSizes) != count || len(rec.BlockStarts) != count {
			s.err = fmt.Errorf("bed: line %d: blockCount %d does not match %d sizes, %d starts",
				s.line, count, len(rec.BlockSizes), len(rec.BlockStarts))
			return false
		}
		return true
	}
	s.err = s.b.Err()
	return false
}

// Err returns the scanning error, if any.
func (s *Scanner) Err() error {
	return s.err
}

type intField struct {
	s string
	v *int
}

func (s *Scanner) parseInts(fields ...intField) bool {
	for _, f := range fields {
		v, err := strconv.Atoi(f.s)
		if err != nil {
			s.err = fmt.Errorf("bed: line %d: %v", s.line, err)
			return false
		}
		*f.v = v
	}
	return true
}

func (s *Scanner) parseIntList(field string) ([]int, error) {
	parts := strings.Split(strings.TrimSuffix(field, ","), ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("bed: line %d: %v", s.line, err)
		}
		out = append(out, v)
	}
	return out, nil
}
