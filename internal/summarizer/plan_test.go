package summarizer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmcfadin/post-database-era-sub002/internal/dataset"
)

func writePlan(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadPlan(t *testing.T) {
	t.Run("full plan", func(t *testing.T) {
		path := writePlan(t, `
dataset: gateway-terms.csv
where: 'context == "Market Research"'
aggregates:
  - kind: count_distinct
    column: term_found
    title: Term Distribution
  - kind: numeric_average
    column: phrase_word_count
  - kind: string_range
    column: date
  - kind: membership_ratio
    column: source
    set_a:
      name: Tier A
      values: [Gartner, Forrester, IDC Report]
    set_b:
      name: Tier B
      values: [InfoWorld, ZDNet, TechCrunch]
  - kind: year_buckets
    column: date
  - kind: group_samples
    group_column: term_found
    phrase_column: exact_phrase
    limit: 2
`)

		plan, err := LoadPlan(path)
		require.NoError(t, err)

		assert.Equal(t, "gateway-terms.csv", plan.Dataset)
		assert.Equal(t, `context == "Market Research"`, plan.Where)
		require.Len(t, plan.Aggregates, 6)
		assert.Equal(t, "Term Distribution", plan.Aggregates[0].Title)
		assert.Equal(t, []string{"Gartner", "Forrester", "IDC Report"}, plan.Aggregates[3].SetA.Values)
		assert.Equal(t, 2, plan.Aggregates[5].Limit)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadPlan(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.True(t, dataset.ErrIs(err, dataset.CodeNotFound))
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writePlan(t, "aggregates: [kind: {{")

		_, err := LoadPlan(path)
		require.Error(t, err)
		assert.True(t, dataset.ErrIs(err, dataset.CodeBadPlan))
	})
}

func TestPlanValidate(t *testing.T) {
	cases := []struct {
		name string
		plan Plan
	}{
		{"no aggregates", Plan{}},
		{"unknown kind", Plan{Aggregates: []Aggregate{{Kind: "median", Column: "x"}}}},
		{"missing kind", Plan{Aggregates: []Aggregate{{Column: "x"}}}},
		{"count_distinct without column", Plan{Aggregates: []Aggregate{{Kind: KindCountDistinct}}}},
		{"membership_ratio without sets", Plan{Aggregates: []Aggregate{{Kind: KindMembershipRatio, Column: "x"}}}},
		{"group_samples without columns", Plan{Aggregates: []Aggregate{{Kind: KindGroupSamples}}}},
		{"group_samples negative limit", Plan{Aggregates: []Aggregate{{
			Kind: KindGroupSamples, GroupColumn: "a", PhraseColumn: "b", Limit: -1,
		}}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.plan.Validate()
			require.Error(t, err)
			assert.True(t, dataset.ErrIs(err, dataset.CodeBadPlan))
		})
	}

	t.Run("valid plan passes", func(t *testing.T) {
		plan := Plan{Aggregates: []Aggregate{
			{Kind: KindCountDistinct, Column: "a"},
			{Kind: KindMembershipRatio, Column: "b", SetA: LabelSet{Values: []string{"x"}}},
		}}
		assert.NoError(t, plan.Validate())
	})
}

func TestAggregateTitles(t *testing.T) {
	assert.Equal(t, "Custom", Aggregate{Kind: KindCountDistinct, Column: "c", Title: "Custom"}.title())
	assert.Equal(t, "term distribution", Aggregate{Kind: KindCountDistinct, Column: "term"}.title())
	assert.Equal(t, "Average words", Aggregate{Kind: KindNumericAverage, Column: "words"}.title())
	assert.Equal(t, "date range", Aggregate{Kind: KindStringRange, Column: "date"}.title())
	assert.Equal(t, "date by year", Aggregate{Kind: KindYearBuckets, Column: "date"}.title())
	assert.Equal(t, "Sample phrase by term", Aggregate{
		Kind: KindGroupSamples, GroupColumn: "term", PhraseColumn: "phrase",
	}.title())
}
