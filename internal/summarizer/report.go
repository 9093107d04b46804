package summarizer

// Report is the structured output of Summarize: ordered sections, one
// per plan aggregate, each tagged with its kind and source column so a
// renderer can format it without re-deriving meaning.
type Report struct {
	Source   string
	Records  int // records aggregated, after any filter
	Filtered int // records removed by the filter

	Sections []Section
}

// Section holds the result of one aggregate. Exactly one payload field
// is populated, selected by Kind.
type Section struct {
	Kind   string
	Column string
	Title  string

	Scalar  string        // numeric_average
	Entries []Entry       // count_distinct, year_buckets
	Range   *ValueRange   // string_range
	Ratios  []RatioEntry  // membership_ratio
	Groups  []GroupSample // group_samples
}

// Entry is one (label, count) pair of a distribution.
type Entry struct {
	Label string
	Count int
}

// ValueRange is the lexicographic min and max of a column.
type ValueRange struct {
	Min string
	Max string
}

// RatioEntry is one membership count with its share of all records.
type RatioEntry struct {
	Name    string
	Count   int
	Percent float64
}

// GroupSample holds up to the configured limit of example values for
// one group key, in row order.
type GroupSample struct {
	Key     string
	Samples []string
}
