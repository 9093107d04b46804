// Package render turns a summarizer report into the plain-text form
// the analysis scripts print. Rendering is pure: the same report
// always yields the same string, and the caller decides whether it
// goes to stdout or a file.
package render

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pmcfadin/post-database-era-sub002/internal/summarizer"
)

// Render formats the whole report with one banner per section.
func Render(rep *summarizer.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "=== %s ===\n\n", filepath.Base(rep.Source))
	fmt.Fprintf(&b, "Total records: %d\n", rep.Records)
	if rep.Filtered > 0 {
		fmt.Fprintf(&b, "Records excluded by filter: %d\n", rep.Filtered)
	}

	for _, sec := range rep.Sections {
		fmt.Fprintf(&b, "\n=== %s ===\n", sec.Title)
		writeSection(&b, sec)
	}

	return b.String()
}

func writeSection(b *strings.Builder, sec summarizer.Section) {
	switch sec.Kind {
	case summarizer.KindCountDistinct, summarizer.KindYearBuckets:
		if len(sec.Entries) == 0 {
			b.WriteString("(no records)\n")
			return
		}
		for _, e := range sec.Entries {
			fmt.Fprintf(b, "%s: %d\n", e.Label, e.Count)
		}

	case summarizer.KindNumericAverage:
		fmt.Fprintf(b, "Average %s: %s\n", sec.Column, sec.Scalar)

	case summarizer.KindStringRange:
		// A nil range means zero records; empty strings are a real
		// (if degenerate) min and max.
		if sec.Range == nil {
			b.WriteString("(no records)\n")
			return
		}
		fmt.Fprintf(b, "%s to %s\n", sec.Range.Min, sec.Range.Max)

	case summarizer.KindMembershipRatio:
		for _, r := range sec.Ratios {
			fmt.Fprintf(b, "%s: %d (%.1f%%)\n", r.Name, r.Count, r.Percent)
		}

	case summarizer.KindGroupSamples:
		if len(sec.Groups) == 0 {
			b.WriteString("(no records)\n")
			return
		}
		for _, g := range sec.Groups {
			fmt.Fprintf(b, "%s:\n", g.Key)
			for _, s := range g.Samples {
				fmt.Fprintf(b, "  - %q\n", s)
			}
		}
	}
}
