package summarizer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pmcfadin/post-database-era-sub002/internal/dataset"
)

// Aggregate kinds a plan may request.
const (
	KindCountDistinct   = "count_distinct"
	KindNumericAverage  = "numeric_average"
	KindStringRange     = "string_range"
	KindMembershipRatio = "membership_ratio"
	KindYearBuckets     = "year_buckets"
	KindGroupSamples    = "group_samples"
)

// DefaultSampleLimit caps group_samples output when a plan leaves Limit unset.
const DefaultSampleLimit = 2

// Plan is the aggregation configuration for one dataset: which columns
// to aggregate and how, plus an optional boolean row filter applied
// before any aggregation.
type Plan struct {
	// Dataset is the file to summarize. A --file flag on the command
	// line takes precedence when both are given.
	Dataset string `yaml:"dataset"`

	// Where is an optional go-bexpr expression over column names,
	// e.g. `source == "Gartner" or context in "Market Research"`.
	Where string `yaml:"where"`

	Aggregates []Aggregate `yaml:"aggregates"`
}

// LabelSet is a named category list for membership_ratio, e.g. the
// tier-A analyst/vendor sources of the source-credibility split.
type LabelSet struct {
	Name   string   `yaml:"name"`
	Values []string `yaml:"values"`
}

// Aggregate names one computation over one or two columns. Fields
// beyond Kind and Column only apply to some kinds.
type Aggregate struct {
	Kind   string `yaml:"kind"`
	Title  string `yaml:"title"`
	Column string `yaml:"column"`

	// membership_ratio
	SetA LabelSet `yaml:"set_a"`
	SetB LabelSet `yaml:"set_b"`

	// group_samples
	GroupColumn  string `yaml:"group_column"`
	PhraseColumn string `yaml:"phrase_column"`
	Limit        int    `yaml:"limit"`
}

// LoadPlan reads and validates a YAML plan file.
func LoadPlan(path string) (*Plan, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, dataset.NotFoundErr(path)
		}
		return nil, err
	}

	var p Plan
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, dataset.BadPlanErr("plan is not valid YAML", map[string]any{
			"path": path, "cause": err,
		})
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return &p, nil
}

// Validate checks that every aggregate is complete enough to run.
// Column existence is checked later against the dataset header.
func (p *Plan) Validate() error {
	if len(p.Aggregates) == 0 {
		return dataset.BadPlanErr("plan has no aggregates", nil)
	}

	for i, agg := range p.Aggregates {
		switch agg.Kind {
		case KindCountDistinct, KindNumericAverage, KindStringRange, KindYearBuckets:
			if agg.Column == "" {
				return badAggregate(i, agg.Kind, "column is required")
			}
		case KindMembershipRatio:
			if agg.Column == "" {
				return badAggregate(i, agg.Kind, "column is required")
			}
			if len(agg.SetA.Values) == 0 && len(agg.SetB.Values) == 0 {
				return badAggregate(i, agg.Kind, "set_a or set_b must list values")
			}
		case KindGroupSamples:
			if agg.GroupColumn == "" || agg.PhraseColumn == "" {
				return badAggregate(i, agg.Kind, "group_column and phrase_column are required")
			}
			if agg.Limit < 0 {
				return badAggregate(i, agg.Kind, "limit cannot be negative")
			}
		case "":
			return badAggregate(i, agg.Kind, "kind is required")
		default:
			return badAggregate(i, agg.Kind, "unknown aggregate kind")
		}
	}

	return nil
}

func badAggregate(index int, kind, title string) error {
	return dataset.BadPlanErr(title, map[string]any{
		"aggregate": index, "kind": kind,
	})
}

// columns lists every dataset column the aggregate reads.
func (a Aggregate) columns() []string {
	if a.Kind == KindGroupSamples {
		return []string{a.GroupColumn, a.PhraseColumn}
	}
	return []string{a.Column}
}

// title resolves the section heading, deriving one when the plan
// does not name it.
func (a Aggregate) title() string {
	if a.Title != "" {
		return a.Title
	}

	switch a.Kind {
	case KindCountDistinct:
		return fmt.Sprintf("%s distribution", a.Column)
	case KindNumericAverage:
		return fmt.Sprintf("Average %s", a.Column)
	case KindStringRange:
		return fmt.Sprintf("%s range", a.Column)
	case KindMembershipRatio:
		return fmt.Sprintf("%s membership", a.Column)
	case KindYearBuckets:
		return fmt.Sprintf("%s by year", a.Column)
	case KindGroupSamples:
		return fmt.Sprintf("Sample %s by %s", a.PhraseColumn, a.GroupColumn)
	}
	return a.Kind
}
