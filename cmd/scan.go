package cmd

import (
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pmcfadin/post-database-era-sub002/internal/connectors"
	"github.com/pmcfadin/post-database-era-sub002/internal/dataset"
	"github.com/pmcfadin/post-database-era-sub002/internal/summarizer"
)

var (
	scanDir       string
	scanRecursive bool
	scanWorkers   int
	scanMinSize   int64
	scanMaxSize   int64
	scanVerbose   bool
)

// scanResult is one file's generic profile, or the load error that
// prevented it. A failed file never aborts the scan.
type scanResult struct {
	meta    connectors.FileMeta
	records int
	columns []summarizer.ColumnSummary
	err     error
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Profile every CSV dataset in a directory",
	Long: `Discover CSV files in a directory and print a generic profile
for each: record count, per-column distinct counts, most common value
and value bounds.

Examples:
  datasum scan --dir datasets/
  datasum scan --dir datasets/ --recursive --details`,
	RunE: func(cmd *cobra.Command, args []string) error {
		options := connectors.DiscoveryOptions{
			Recursive: scanRecursive,
			MinSize:   scanMinSize,
			MaxSize:   scanMaxSize,
		}

		files, err := connectors.DiscoverFiles(scanDir, "csv", options)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Printf("No CSV files found in %s\n", scanDir)
			return nil
		}

		logger.Debug("Discovered files", zap.Int("count", len(files)))

		bar := progressbar.NewOptions(len(files),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetDescription("[cyan][reset] Profiling files..."),
			progressbar.OptionSetWidth(20),
			progressbar.OptionShowCount(),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(os.Stderr)
			}),
		)

		results := profileFiles(files, scanWorkers, bar)
		bar.Finish()

		// Deterministic output order regardless of worker timing.
		sort.Slice(results, func(i, j int) bool {
			return results[i].meta.Path < results[j].meta.Path
		})

		for _, res := range results {
			if res.err != nil {
				logger.Warn("Skipping file",
					zap.String("path", res.meta.Path),
					zap.Error(res.err))
				continue
			}

			fmt.Printf("\nFile: %s (%s)\n", res.meta.Path,
				humanize.Bytes(uint64(res.meta.Size)))
			fmt.Printf("- Records: %d\n", res.records)
			fmt.Printf("- Columns: %d\n", len(res.columns))

			if scanVerbose {
				for _, col := range res.columns {
					fmt.Printf("\nColumn: %s\n", col.Name)
					fmt.Printf("  Nulls: %d\n", col.Nulls)
					fmt.Printf("  Distinct: %d\n", col.Distinct)
					if col.Top != "" {
						fmt.Printf("  Top: %s (%d)\n", col.Top, col.TopCount)
					}
					fmt.Printf("  Min: %s\n", col.Min)
					fmt.Printf("  Max: %s\n", col.Max)
				}
			}
		}

		return nil
	},
}

// profileFiles loads and profiles the files with a bounded worker
// pool. Datasets are independent, so no coordination is needed beyond
// the semaphore.
func profileFiles(files []connectors.FileMeta, workers int, bar *progressbar.ProgressBar) []scanResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	semaphore := make(chan struct{}, workers)
	out := make(chan scanResult, len(files))

	var wg sync.WaitGroup
	for _, file := range files {
		wg.Add(1)
		go func(f connectors.FileMeta) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			res := scanResult{meta: f}
			ds, err := dataset.Load(f.Path)
			if err != nil {
				res.err = err
			} else {
				res.records = ds.Len()
				res.columns = summarizer.Profile(ds)
			}

			bar.Add(1)
			out <- res
		}(file)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	var results []scanResult
	for res := range out {
		results = append(results, res)
	}
	return results
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVarP(&scanDir, "dir", "d", "",
		"Directory to scan (required)")
	scanCmd.Flags().BoolVarP(&scanRecursive, "recursive", "r", false,
		"Search directories recursively")
	scanCmd.Flags().IntVar(&scanWorkers, "workers", 0,
		"Number of parallel workers (default: CPU cores)")
	scanCmd.Flags().Int64Var(&scanMinSize, "min-size", 0,
		"Minimum file size in bytes")
	scanCmd.Flags().Int64Var(&scanMaxSize, "max-size", 0,
		"Maximum file size in bytes")
	scanCmd.Flags().BoolVar(&scanVerbose, "details", false,
		"Print per-column profiles")

	scanCmd.MarkFlagRequired("dir")
}
