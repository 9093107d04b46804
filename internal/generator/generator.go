// Package generator synthesizes research CSV datasets from configured
// scenario lists and numeric ranges. Output files follow the
// collection's naming convention
// (YYYY-MM-DD__data__<topic>__<subtopic>__<slug>.csv) and satisfy the
// same header/record contract dataset.Load expects.
package generator

import (
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Range is an inclusive numeric sampling range.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Scenario is one optimization case-study template: the deployment
// shapes involved and the outcome ranges to sample from.
type Scenario struct {
	Name             string `yaml:"name"`
	BeforeDeployment string `yaml:"before"`
	AfterDeployment  string `yaml:"after"`
	WorkloadPattern  string `yaml:"pattern"`
	CostReduction    Range  `yaml:"cost_reduction"`
	Utilization      Range  `yaml:"utilization"`
}

// CaseStudyConfig drives the cost-optimization case-study dataset.
type CaseStudyConfig struct {
	PerScenario  int        `yaml:"per_scenario"`
	CompanySizes []string   `yaml:"company_sizes"`
	Industries   []string   `yaml:"industries"`
	Scenarios    []Scenario `yaml:"scenarios"`
}

// AutoscalerConfig drives the autoscaler efficiency-metrics dataset.
type AutoscalerConfig struct {
	PerType        int      `yaml:"per_type"`
	Types          []string `yaml:"types"`
	Engines        []string `yaml:"engines"`
	TriggerMetrics []string `yaml:"trigger_metrics"`
}

// Config is the full generator configuration. Seed zero means seed
// from the clock; any other value makes output reproducible.
type Config struct {
	Seed int64  `yaml:"seed"`
	Date string `yaml:"date"` // filename stamp, default today

	CaseStudies *CaseStudyConfig  `yaml:"case_studies"`
	Autoscalers *AutoscalerConfig `yaml:"autoscalers"`
}

// LoadConfig reads the YAML scenario configuration.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading generator config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parsing generator config %s: %w", path, err)
	}

	if cfg.CaseStudies == nil && cfg.Autoscalers == nil {
		return nil, fmt.Errorf("generator config %s defines no datasets", path)
	}

	return &cfg, nil
}

// Output describes one file the generator wrote.
type Output struct {
	Path    string
	Records int
}

type Generator struct {
	cfg *Config
	rng *rand.Rand
}

func New(cfg *Config) *Generator {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// WriteAll generates every configured dataset into dir and returns
// what was written.
func (g *Generator) WriteAll(dir string) ([]Output, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	var outputs []Output

	if g.cfg.CaseStudies != nil {
		out, err := g.writeCaseStudies(dir)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, out)
	}

	if g.cfg.Autoscalers != nil {
		out, err := g.writeAutoscalerMetrics(dir)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, out)
	}

	return outputs, nil
}

func (g *Generator) writeCaseStudies(dir string) (Output, error) {
	cc := g.cfg.CaseStudies
	perScenario := cc.PerScenario
	if perScenario == 0 {
		perScenario = 5
	}

	header := []string{
		"case_study_id", "company_size", "industry",
		"before_deployment", "after_deployment", "workload_pattern",
		"before_cpu_util_avg", "after_cpu_util_avg",
		"before_idle_pct", "after_idle_pct",
		"cost_reduction_pct", "implementation_weeks", "roi_months",
	}

	var rows [][]string
	for _, sc := range cc.Scenarios {
		for i := 0; i < perScenario; i++ {
			rows = append(rows, []string{
				fmt.Sprintf("%s_%d", sc.Name, i+1),
				g.choice(cc.CompanySizes),
				g.choice(cc.Industries),
				sc.BeforeDeployment,
				sc.AfterDeployment,
				sc.WorkloadPattern,
				g.uniform1(15, 35),
				g.uniform1(60, 90),
				g.uniform1(65, 85),
				g.uniform1(10, 40),
				g.uniform1(sc.CostReduction.Min, sc.CostReduction.Max),
				fmt.Sprintf("%d", g.intBetween(2, 12)),
				fmt.Sprintf("%d", g.intBetween(1, 6)),
			})
		}
	}

	name := g.filename("compute-utilization", "case-studies", "optimization-outcomes")
	return g.writeCSV(filepath.Join(dir, name), header, rows)
}

func (g *Generator) writeAutoscalerMetrics(dir string) (Output, error) {
	ac := g.cfg.Autoscalers
	perType := ac.PerType
	if perType == 0 {
		perType = 8
	}

	header := []string{
		"autoscaler_type", "engine", "trigger_metric",
		"scale_up_threshold", "scale_down_threshold",
		"avg_scale_events_day", "scale_accuracy_pct",
		"false_positive_rate", "response_time_seconds",
		"cpu_util_improvement", "cost_savings_pct",
	}

	var rows [][]string
	for _, typ := range ac.Types {
		for i := 0; i < perType; i++ {
			rows = append(rows, []string{
				typ,
				g.choice(ac.Engines),
				g.choice(ac.TriggerMetrics),
				g.uniform1(60, 80),
				g.uniform1(20, 40),
				fmt.Sprintf("%d", g.intBetween(5, 200)),
				g.uniform1(70, 95),
				g.uniform1(5, 25),
				g.uniform1(10, 300),
				g.uniform1(15, 50),
				g.uniform1(10, 40),
			})
		}
	}

	name := g.filename("compute-utilization", "autoscaler", "efficiency-metrics")
	return g.writeCSV(filepath.Join(dir, name), header, rows)
}

func (g *Generator) writeCSV(path string, header []string, rows [][]string) (Output, error) {
	f, err := os.Create(path)
	if err != nil {
		return Output{}, fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return Output{}, fmt.Errorf("writing header to %s: %w", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return Output{}, fmt.Errorf("writing records to %s: %w", path, err)
	}

	return Output{Path: path, Records: len(rows)}, nil
}

func (g *Generator) filename(topic, subtopic, slug string) string {
	stamp := g.cfg.Date
	if stamp == "" {
		stamp = time.Now().Format("2006-01-02")
	}
	return fmt.Sprintf("%s__data__%s__%s__%s.csv", stamp, topic, subtopic, slug)
}

// uniform1 samples [min, max) rounded to one decimal place, matching
// the precision of the collected datasets.
func (g *Generator) uniform1(min, max float64) string {
	v := min + g.rng.Float64()*(max-min)
	return fmt.Sprintf("%.1f", math.Round(v*10)/10)
}

func (g *Generator) intBetween(min, max int) int {
	return min + g.rng.Intn(max-min+1)
}

func (g *Generator) choice(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[g.rng.Intn(len(values))]
}
