// Package psl reads PSL (BLAT) alignment records. Only the target-side
// fields consumed by the assembler are retained.
package psl

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// A Record is one PSL alignment.
type Record struct {
	// TName is the reference sequence name.
	TName string
	// TStart and TEnd bound the alignment on the reference, 0-based
	// half-open.
	TStart, TEnd int
	// Strand is the query strand, "+" or "-" (possibly doubled for
	// translated alignments).
	Strand string
	// BlockSizes and TStarts describe the aligned blocks. The slices have
	// equal length; block i covers [TStarts[i], TStarts[i]+BlockSizes[i]).
	BlockSizes []int
	TStarts    []int
}

// Blocks returns the number of aligned blocks.
func (r *Record) Blocks() int { return len(r.BlockSizes) }

// Scanner provides a convenient interface for reading PSL alignment data.
// The optional psLayout header (title line, column headers, dashes, blanks)
// is skipped. Scanners are not threadsafe.
type Scanner struct {
	b    *bufio.Scanner
	err  error
	line int
}

// NewScanner constructs a new Scanner that reads PSL data from the provided
// reader.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{b: bufio.NewScanner(r)}
}

// Scan the next alignment into the provided record. Scan returns a boolean
// indicating whether the scan succeeded. Once Scan returns false, it never
// returns true again. Upon completion, the user should check the Err method
// to determine whether scanning stopped because of an error or because the
// end of the stream was reached.
func (s *Scanner) Scan(rec *Record) bool {
	if s.err != nil {
		return false
	}
	for s.b.Scan() {
		s.line++
		line := strings.TrimRight(s.b.Text(), "\r")
		if !isRecordLine(line) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 21 {
			s.err = fmt.Errorf("psl: line %d: expected 21 fields, found %d", s.line, len(fields))
			return false
		}
		rec.TName = fields[13]
		rec.Strand = fields[8]
		if rec.TStart, s.err = s.parseInt(fields[15]); s.err != nil {
			return false
		}
		if rec.TEnd, s.err = s.parseInt(fields[16]); s.err != nil {
			return false
		}
		var count int
		if count, s.err = s.parseInt(fields[17]); s.err != nil {
			return false
		}
		if rec.BlockSizes, s.err = s.parseIntList(fields[18]); s.err != nil {
			return false
		}
		if rec.TStarts, s.err = s.parseIntList(fields[20]); s.err != nil {
			return false
		}
		if len(rec.BlockSizes) != count || len(rec.TStarts) != count {
			s.err = fmt.Errorf("psl: line %d: blockCount %d does not match %d sizes, %d starts",
				s.line, count, len(rec.BlockSizes), len(rec.TStarts))
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

// isRecordLine distinguishes alignment rows from the psLayout header: a
// record line starts with the integer match count.
func isRecordLine(line string) bool {
	if line == "" {
		return false
	}
	f := strings.Fields(line)
	if len(f) == 0 {
		return false
	}
	_, err := strconv.Atoi(f[0])
	return err == nil
}

func (s *Scanner) parseInt(field string) (int, error) {
	v, err := strconv.Atoi(field)
	if err != nil {
		return 0, fmt.Errorf("psl: line %d: %v", s.line, err)
	}
	return v, nil
}

// parseIntList parses a comma-separated integer list; PSL lists carry a
// trailing comma.
func (s *Scanner) parseIntList(field string) ([]int, error) {
	parts := strings.Split(strings.TrimSuffix(field, ","), ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("psl: line %d: %v", s.line, err)
		}
		out = append(out, v)
	}
	return out, nil
}
