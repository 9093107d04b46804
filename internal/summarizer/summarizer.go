package summarizer

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/hashicorp/go-bexpr"

	"github.com/pmcfadin/post-database-era-sub002/internal/dataset"
)

// Summarize runs every aggregate in the plan over the dataset and
// returns the report. Column references are validated before any
// aggregation runs, so a bad plan fails without partial output.
// An empty dataset is a valid input: every aggregate has a defined
// empty result rather than an error.
func Summarize(ds *dataset.Dataset, plan *Plan) (*Report, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	for _, agg := range plan.Aggregates {
		for _, col := range agg.columns() {
			if _, ok := ds.Column(col); !ok {
				return nil, dataset.UnknownColumnErr(col, ds.Header)
			}
		}
	}

	rows, filtered, err := selectRows(ds, plan.Where)
	if err != nil {
		return nil, err
	}

	rep := &Report{
		Source:   ds.Path,
		Records:  len(rows),
		Filtered: filtered,
	}

	for _, agg := range plan.Aggregates {
		sec, err := aggregate(ds, rows, agg)
		if err != nil {
			return nil, err
		}
		rep.Sections = append(rep.Sections, sec)
	}

	return rep, nil
}

// selectRows applies the optional boolean filter and returns the
// surviving record indices in dataset order.
func selectRows(ds *dataset.Dataset, where string) ([]int, int, error) {
	rows := make([]int, 0, ds.Len())

	if where == "" {
		for i := 0; i < ds.Len(); i++ {
			rows = append(rows, i)
		}
		return rows, 0, nil
	}

	eval, err := bexpr.CreateEvaluator(where)
	if err != nil {
		return nil, 0, dataset.BadFilterErr("cannot parse filter expression", map[string]any{
			"where": where, "cause": err,
		})
	}

	filtered := 0
	for i := 0; i < ds.Len(); i++ {
		ok, err := eval.Evaluate(ds.RecordMap(i))
		if err != nil {
			return nil, 0, dataset.BadFilterErr("cannot evaluate filter expression", map[string]any{
				"where": where, "record": i + 1, "cause": err,
			})
		}
		if ok {
			rows = append(rows, i)
		} else {
			filtered++
		}
	}

	return rows, filtered, nil
}

func aggregate(ds *dataset.Dataset, rows []int, agg Aggregate) (Section, error) {
	sec := Section{
		Kind:   agg.Kind,
		Column: agg.Column,
		Title:  agg.title(),
	}

	switch agg.Kind {
	case KindCountDistinct:
		sec.Entries = countDistinct(ds, rows, agg.Column)

	case KindNumericAverage:
		scalar, err := numericAverage(ds, rows, agg.Column)
		if err != nil {
			return Section{}, err
		}
		sec.Scalar = scalar

	case KindStringRange:
		sec.Range = stringRange(ds, rows, agg.Column)

	case KindMembershipRatio:
		sec.Ratios = membershipRatios(ds, rows, agg)

	case KindYearBuckets:
		sec.Entries = yearBuckets(ds, rows, agg.Column)

	case KindGroupSamples:
		sec.Column = agg.GroupColumn
		sec.Groups = groupSamples(ds, rows, agg)
	}

	return sec, nil
}

// countDistinct tallies each distinct value, ordered most common first.
// Ties keep the order in which the values first appear in the dataset.
func countDistinct(ds *dataset.Dataset, rows []int, column string) []Entry {
	counts := make(map[string]int)
	var order []string

	for _, r := range rows {
		v := ds.Value(r, column)
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}

	entries := make([]Entry, 0, len(order))
	for _, v := range order {
		entries = append(entries, Entry{Label: v, Count: counts[v]})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	return entries
}

// numericAverage returns the arithmetic mean formatted to one decimal,
// or "N/A" for an empty input.
func numericAverage(ds *dataset.Dataset, rows []int, column string) (string, error) {
	if len(rows) == 0 {
		return "N/A", nil
	}

	sum := 0.0
	for _, r := range rows {
		raw := ds.Value(r, column)
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			// r is the dataset record index, so the diagnostic names
			// the right record even when a filter skipped earlier rows.
			return "", dataset.NotNumericErr(column, raw, r+1)
		}
		sum += v
	}

	return fmt.Sprintf("%.1f", sum/float64(len(rows))), nil
}

// stringRange finds the lexicographic min and max of the raw values.
// For chronologically meaningful results on dates the column must hold
// fixed-width zero-padded values such as YYYY-MM-DD; nothing here
// parses or validates a date. Empty input yields a nil range, which is
// distinct from a column whose values are all empty strings.
func stringRange(ds *dataset.Dataset, rows []int, column string) *ValueRange {
	if len(rows) == 0 {
		return nil
	}

	vr := &ValueRange{
		Min: ds.Value(rows[0], column),
		Max: ds.Value(rows[0], column),
	}
	for _, r := range rows[1:] {
		v := ds.Value(r, column)
		if v < vr.Min {
			vr.Min = v
		}
		if v > vr.Max {
			vr.Max = v
		}
	}

	return vr
}

// membershipRatios counts records whose value belongs to each label
// set, independently, with the share of all selected records. Empty
// input yields zero counts and 0% with no division.
func membershipRatios(ds *dataset.Dataset, rows []int, agg Aggregate) []RatioEntry {
	sets := []struct {
		name   string
		values []string
	}{
		{orDefault(agg.SetA.Name, "Set A"), agg.SetA.Values},
		{orDefault(agg.SetB.Name, "Set B"), agg.SetB.Values},
	}

	total := len(rows)
	ratios := make([]RatioEntry, 0, len(sets))

	for _, set := range sets {
		members := make(map[string]struct{}, len(set.values))
		for _, v := range set.values {
			members[v] = struct{}{}
		}

		count := 0
		for _, r := range rows {
			if _, ok := members[ds.Value(r, agg.Column)]; ok {
				count++
			}
		}

		pct := 0.0
		if total > 0 {
			pct = float64(count*100) / float64(total)
		}

		ratios = append(ratios, RatioEntry{Name: set.name, Count: count, Percent: pct})
	}

	return ratios
}

// yearBuckets counts records per year key (the first four characters
// of the value), ordered by year ascending.
func yearBuckets(ds *dataset.Dataset, rows []int, column string) []Entry {
	counts := make(map[string]int)

	for _, r := range rows {
		v := ds.Value(r, column)
		if len(v) > 4 {
			v = v[:4]
		}
		counts[v]++
	}

	years := make([]string, 0, len(counts))
	for y := range counts {
		years = append(years, y)
	}
	sort.Strings(years)

	entries := make([]Entry, 0, len(years))
	for _, y := range years {
		entries = append(entries, Entry{Label: y, Count: counts[y]})
	}

	return entries
}

// groupSamples collects up to limit phrase values per distinct group
// value, groups in first-seen order and samples in row order.
func groupSamples(ds *dataset.Dataset, rows []int, agg Aggregate) []GroupSample {
	limit := agg.Limit
	if limit == 0 {
		limit = DefaultSampleLimit
	}

	byKey := make(map[string]int)
	var groups []GroupSample

	for _, r := range rows {
		key := ds.Value(r, agg.GroupColumn)
		idx, seen := byKey[key]
		if !seen {
			idx = len(groups)
			byKey[key] = idx
			groups = append(groups, GroupSample{Key: key})
		}
		if len(groups[idx].Samples) < limit {
			groups[idx].Samples = append(groups[idx].Samples, ds.Value(r, agg.PhraseColumn))
		}
	}

	return groups
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
