package assembly

import "sort"

// FillGaps merges consecutive aligned blocks separated by at most gapSize
// bases, so small alignment gaps do not surface as spurious introns. Blocks
// must be in ascending reference order. The input slice is not modified.
func FillGaps(blocks []Block, gapSize int) []Block {
	if len(blocks) == 0 {
		return nil
	}
	merged := make([]Block, 0, len(blocks))
	cur := blocks[0]
	for _, b := range blocks[1:] {
		if b.Start-cur.End <= gapSize {
			cur.End = b.End
			continue
		}
		merged = append(merged, cur)
		cur = b
	}
	return append(merged, cur)
}

// mergeSingleExons merges one chromosome's unspliced alignments by interval
// overlap: after sorting by start, a block whose start falls within the
// running block is folded in, extending the end when it reaches further.
func mergeSingleExons(blocks []Block) []Block {
	if len(blocks) == 0 {
		return nil
	}
	sorted := append([]Block(nil), blocks...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	merged := make([]Block, 0, len(sorted))
	cur := sorted[0]
	for _, b := range sorted[1:] {
		if b.Start <= cur.End {
			if b.End > cur.End {
				cur.End = b.End
			}
			continue
		}
		merged = append(merged, cur)
		cur = b
	}
	return append(merged, cur)
}
