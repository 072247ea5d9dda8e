package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/avetrov/credence/internal/model"
	"github.com/avetrov/credence/internal/pipeline"
	"github.com/avetrov/credence/internal/worker"
	"github.com/spf13/cobra"
)

var (
	batchWorkers int
	batchRate    float64
	batchOutDir  string
	batchDomain  string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <list-file>",
	Short: "Verify many documents concurrently",
	Long: `Batch reads a list file (one document path per line, # for
comments), verifies every document concurrently and writes one JSON
report per document into the output directory.

Concurrent verification needs no coordination beyond the worker pool:
the pipeline is pure and is simply invoked once per document.

Example:
  credence batch documents.txt --workers 8 --out-dir reports/`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "concurrent workers (0 = from config)")
	batchCmd.Flags().Float64Var(&batchRate, "rate", 0, "max documents per second (0 = from config)")
	batchCmd.Flags().StringVar(&batchOutDir, "out-dir", ".", "directory for per-document reports")
	batchCmd.Flags().StringVar(&batchDomain, "domain", "", "domain hint applied to every document")
}

// batchVerifier adapts the sniffing dispatch to the worker pool.
type batchVerifier struct {
	cfg    *model.Config
	domain string
}

func (b *batchVerifier) Verify(ctx context.Context, text string) (*model.Report, error) {
	return verifyDocument(ctx, b.cfg, text, b.domain, false)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	cfg.Output.Verbose = verbose
	if batchWorkers > 0 {
		cfg.Workers = batchWorkers
	}
	if batchRate > 0 {
		cfg.Rate = batchRate
	}

	if err := os.MkdirAll(batchOutDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	processor := worker.NewBatchProcessor(
		&batchVerifier{cfg: cfg, domain: batchDomain},
		cfg.Workers,
		worker.NewThrottle(cfg.Rate, cfg.Workers),
	)

	results, err := processor.ProcessListFile(ctx, args[0])
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	failed := 0
	for _, r := range results {
		if r.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.Path, r.Error)
			continue
		}

		outPath := filepath.Join(batchOutDir, reportFileName(r.Path))
		if err := renderer.RenderJSON(r.Report, outPath); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.Path, err)
			continue
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ %s → %s (%d claims, %d high-risk)\n",
				r.Path, outPath,
				r.Report.SummaryStatistics.TotalClaims,
				r.Report.SummaryStatistics.HighRiskCount)
		}
	}

	fmt.Printf("Processed %d document(s): %d succeeded, %d failed\n",
		len(results), len(results)-failed, failed)

	if failed == len(results) && len(results) > 0 {
		return fmt.Errorf("all %d document(s) failed", failed)
	}
	return nil
}

func reportFileName(docPath string) string {
	base := filepath.Base(docPath)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base + ".report.json"
}
