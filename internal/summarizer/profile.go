package summarizer

import "github.com/pmcfadin/post-database-era-sub002/internal/dataset"

// ColumnSummary is the generic per-column profile scan prints when no
// plan is supplied: exact distinct counts, the most common value, and
// the lexicographic bounds.
type ColumnSummary struct {
	Name     string
	Nulls    int // empty-string values
	Distinct int
	Top      string
	TopCount int
	Min      string
	Max      string
}

// Profile computes a ColumnSummary for every column in header order.
// Empty values count as nulls and are excluded from the distribution
// and the bounds.
func Profile(ds *dataset.Dataset) []ColumnSummary {
	summaries := make([]ColumnSummary, 0, len(ds.Header))

	for _, col := range ds.Header {
		s := ColumnSummary{Name: col}
		counts := make(map[string]int)
		var order []string

		for r := 0; r < ds.Len(); r++ {
			v := ds.Value(r, col)
			if v == "" {
				s.Nulls++
				continue
			}
			if _, seen := counts[v]; !seen {
				order = append(order, v)
			}
			counts[v]++

			if s.Min == "" || v < s.Min {
				s.Min = v
			}
			if v > s.Max {
				s.Max = v
			}
		}

		s.Distinct = len(counts)
		for _, v := range order {
			if counts[v] > s.TopCount {
				s.Top = v
				s.TopCount = counts[v]
			}
		}

		summaries = append(summaries, s)
	}

	return summaries
}
