package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/avetrov/credence/internal/cache"
	"github.com/avetrov/credence/internal/catalog"
	"github.com/avetrov/credence/internal/evidence"
	"github.com/avetrov/credence/internal/model"
	"github.com/avetrov/credence/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	verifyJSON       string
	verifyMD         string
	verifyDomain     string
	verifyThreshold  float64
	verifyNoCache    bool
	verifyTranscript bool
	verifyNoFooter   bool
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <file|->",
	Short: "Verify a document and generate a claim-by-claim report",
	Long: `Verify analyzes one document (a file, or stdin when the argument
is "-") to:
- Extract factual assertions with their source positions
- Classify each claim's subject domain
- Gather and rank evidence from the trusted source catalog
- Score confidence and publication risk per claim
- Filter unsafe language and annotate uncertainty

HTML input is reduced to visible text first. Timestamped or
speaker-tagged input is treated as a transcript and additionally
scanned for manipulation signals.

Example:
  credence verify article.txt
  credence verify article.txt --json report.json --md report.md
  credence verify transcript.txt --domain history`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVar(&verifyJSON, "json", "report.json", "output JSON path")
	verifyCmd.Flags().StringVar(&verifyMD, "md", "", "output Markdown path (optional)")
	verifyCmd.Flags().StringVar(&verifyDomain, "domain", "", "domain hint (physics, biology, history, statistics, general)")
	verifyCmd.Flags().Float64Var(&verifyThreshold, "threshold", 0, "confidence threshold override (0 = from config)")
	verifyCmd.Flags().BoolVar(&verifyNoCache, "no-cache", false, "disable the report cache")
	verifyCmd.Flags().BoolVar(&verifyTranscript, "transcript", false, "force transcript handling")
	verifyCmd.Flags().BoolVar(&verifyNoFooter, "no-footer", false, "disable footer in Markdown reports")
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if verifyThreshold > 0 {
		cfg.ConfidenceThreshold = verifyThreshold
	}
	cfg.Output.Verbose = verbose
	if verifyNoCache {
		cfg.Cache.Enabled = false
	}
	if verifyNoFooter {
		cfg.Output.IncludeFooter = false
	}

	text, err := readInput(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	var store cache.Cache
	if cfg.Cache.Enabled {
		store = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.TTL)
		if rep, ok := cache.LoadReport(store, text); ok {
			if verbose {
				fmt.Fprintln(os.Stderr, "✓ Report served from cache")
			}
			return renderOutputs(cfg, rep)
		}
	}

	rep, err := verifyDocument(ctx, cfg, text, verifyDomain, verifyTranscript)
	if err != nil {
		return fmt.Errorf("verify failed: %w", err)
	}

	if store != nil {
		if err := cache.StoreReport(store, text, rep, cfg.Cache.TTL); err != nil && verbose {
			fmt.Fprintf(os.Stderr, "Warning: cache store failed: %v\n", err)
		}
	}

	return renderOutputs(cfg, rep)
}

// verifyDocument sniffs the input shape and dispatches to the right
// orchestrator.
func verifyDocument(ctx context.Context, cfg *model.Config, text, domainHint string, forceTranscript bool) (*model.Report, error) {
	var obs pipeline.Observer = pipeline.NopObserver{}
	if cfg.Output.Verbose {
		obs = pipeline.WriterObserver{W: os.Stderr}
	}

	cat := catalog.New(cfg.Trusted)
	retriever := evidence.NewSyntheticRetriever()

	kind := pipeline.Sniff(text)
	if kind == pipeline.ContentTypeHTML {
		stripped, err := pipeline.StripHTML(text)
		if err != nil {
			return nil, fmt.Errorf("strip html: %w", err)
		}
		text = stripped
		kind = pipeline.Sniff(text)
	}

	if forceTranscript || kind == pipeline.ContentTypeTranscript {
		return pipeline.NewTranscript(cfg, cat, retriever, obs).VerifyTranscript(ctx, text, domainHint)
	}
	return pipeline.NewArticle(cfg, cat, retriever, obs).VerifyText(ctx, text, domainHint)
}

func readInput(arg string) (string, error) {
	if arg == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

func renderOutputs(cfg *model.Config, rep *model.Report) error {
	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)

	if verifyJSON != "" {
		if err := renderer.RenderJSON(rep, verifyJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", verifyJSON)
		}
	}
	if verifyMD != "" {
		if err := renderer.RenderMarkdown(rep, verifyMD); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", verifyMD)
		}
	}

	renderer.RenderSummary(rep)
	return nil
}
