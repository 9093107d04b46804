package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pmcfadin/post-database-era-sub002/internal/dataset"
	"github.com/pmcfadin/post-database-era-sub002/internal/render"
	"github.com/pmcfadin/post-database-era-sub002/internal/summarizer"
)

var (
	summarizeFile   string
	summarizePlan   string
	summarizeOutput string
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Summarize a CSV dataset against an aggregation plan",
	Long: `Load a CSV dataset, run the aggregates named in a YAML plan
and print the rendered report.

Examples:
  datasum summarize --file gateway-terms.csv --plan gateway-plan.yaml
  datasum summarize --plan plan.yaml --output report.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		planPath := summarizePlan
		if planPath == "" {
			planPath = appCfg.PlanPath
		}
		if planPath == "" {
			return fmt.Errorf("no plan given: use --plan or set DATASUM_PLAN")
		}

		plan, err := summarizer.LoadPlan(planPath)
		if err != nil {
			return err
		}

		file := summarizeFile
		if file == "" {
			file = plan.Dataset
		}
		if file == "" {
			return fmt.Errorf("no dataset given: use --file or set dataset: in the plan")
		}

		logger.Debug("Summarizing dataset",
			zap.String("file", file),
			zap.String("plan", planPath))

		ds, err := dataset.Load(file)
		if err != nil {
			return err
		}

		rep, err := summarizer.Summarize(ds, plan)
		if err != nil {
			return err
		}

		text := render.Render(rep)

		if summarizeOutput != "" {
			if err := os.WriteFile(summarizeOutput, []byte(text), 0644); err != nil {
				return fmt.Errorf("writing report to %s: %w", summarizeOutput, err)
			}
			logger.Info("Report saved", zap.String("path", summarizeOutput))
			return nil
		}

		fmt.Print(text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summarizeCmd)

	summarizeCmd.Flags().StringVarP(&summarizeFile, "file", "f", "",
		"CSV file to summarize (overrides the plan's dataset)")
	summarizeCmd.Flags().StringVarP(&summarizePlan, "plan", "p", "",
		"YAML aggregation plan")
	summarizeCmd.Flags().StringVarP(&summarizeOutput, "output", "o", "",
		"Write the report to a file instead of stdout")
}
