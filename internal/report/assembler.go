// Package report aggregates per-claim verdicts into the final report.
package report

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/avetrov/credence/internal/model"
)

// baseDisclaimer is always present; the safety enforcer appends topic
// paragraphs to it, never replaces it.
const baseDisclaimer = "This report was produced by automated verification and is not a substitute for editorial judgment."

// InputHash returns the content-addressed identifier of the input
// text recorded in report metadata.
func InputHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Assembler builds reports from scored claims.
type Assembler struct {
	cfg *model.Config
}

// NewAssembler creates an assembler bound to the configuration.
func NewAssembler(cfg *model.Config) *Assembler {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	return &Assembler{cfg: cfg}
}

// Assemble computes summary statistics and templated summary text for
// the given results and signals.
func (a *Assembler) Assemble(inputText string, results []model.VerificationResult, signals []model.ManipulationSignal, elapsed time.Duration) model.Report {
	stats := summarize(results)

	return model.Report{
		Metadata: model.Metadata{
			Timestamp:        time.Now().UTC(),
			Version:          model.Version,
			InputHash:        InputHash(inputText),
			ProcessingTimeMS: elapsed.Milliseconds(),
		},
		Claims:              results,
		ManipulationSignals: signals,
		SummaryStatistics:   stats,
		HumanSummary:        a.humanSummary(stats, results, signals),
		Recommendations:     a.recommendations(stats, signals),
		Disclaimer:          baseDisclaimer,
	}
}

// summarize computes the aggregate statistics: arithmetic-mean
// confidence (0.0 for empty input), high-risk count and a histogram
// covering all four tiers.
func summarize(results []model.VerificationResult) model.SummaryStatistics {
	breakdown := map[model.RiskLevel]int{
		model.RiskLow:      0,
		model.RiskMedium:   0,
		model.RiskHigh:     0,
		model.RiskCritical: 0,
	}

	var sum float64
	highRisk := 0
	for _, r := range results {
		sum += r.Confidence
		breakdown[r.RiskLevel]++
		if r.RiskLevel == model.RiskHigh || r.RiskLevel == model.RiskCritical {
			highRisk++
		}
	}

	avg := 0.0
	if len(results) > 0 {
		avg = sum / float64(len(results))
	}

	return model.SummaryStatistics{
		TotalClaims:       len(results),
		HighRiskCount:     highRisk,
		AverageConfidence: avg,
		RiskBreakdown:     breakdown,
	}
}

// humanSummary templates a short prose summary from the aggregates
// and the highest-risk claims.
func (a *Assembler) humanSummary(stats model.SummaryStatistics, results []model.VerificationResult, signals []model.ManipulationSignal) string {
	if stats.TotalClaims == 0 {
		return "No verifiable factual claims were found in the input."
	}

	summary := fmt.Sprintf("Analyzed %d claim(s) with an average confidence of %.1f/100. %d claim(s) fall into the high or critical risk tiers.",
		stats.TotalClaims, stats.AverageConfidence, stats.HighRiskCount)

	for _, r := range results {
		if r.RiskLevel != model.RiskHigh && r.RiskLevel != model.RiskCritical {
			continue
		}
		summary += fmt.Sprintf(" %s risk: %q.", titleRisk(r.RiskLevel), truncate(r.Claim.Text, 80))
	}

	if len(signals) > 0 {
		summary += fmt.Sprintf(" %d manipulation signal(s) were detected in the transcript.", len(signals))
	}

	return summary
}

// recommendations derives the editorial follow-up list. Never empty.
func (a *Assembler) recommendations(stats model.SummaryStatistics, signals []model.ManipulationSignal) []string {
	var recs []string
	if stats.HighRiskCount > 0 {
		recs = append(recs, fmt.Sprintf("Review the %d high-risk claim(s) before publication.", stats.HighRiskCount))
	}
	if stats.TotalClaims > 0 && stats.AverageConfidence < a.cfg.ConfidenceThreshold {
		recs = append(recs, "Seek additional sources to raise overall confidence.")
	}
	if len(signals) > 0 {
		recs = append(recs, "Review the flagged manipulation signals against the original recording.")
	}
	if len(recs) == 0 {
		recs = append(recs, "No follow-up required; re-run verification after any content revision.")
	}
	return recs
}

func titleRisk(r model.RiskLevel) string {
	switch r {
	case model.RiskCritical:
		return "Critical"
	case model.RiskHigh:
		return "High"
	case model.RiskMedium:
		return "Medium"
	default:
		return "Low"
	}
}

// truncate cuts s to at most max bytes, backing up to a rune boundary
// so multi-byte characters are never split.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
