package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/avetrov/credence/internal/model"
)

// Renderer writes reports as JSON or Markdown and prints terminal
// summaries.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON to path.
func (r *Renderer) RenderJSON(rep *model.Report, path string) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable Markdown report to path.
func (r *Renderer) RenderMarkdown(rep *model.Report, path string) error {
	var b strings.Builder

	b.WriteString("# Verification Report\n\n")
	fmt.Fprintf(&b, "- Generated: %s\n", rep.Metadata.Timestamp.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "- Input hash: `%s`\n", rep.Metadata.InputHash)
	fmt.Fprintf(&b, "- Claims: %d | High risk: %d | Average confidence: %.1f/100\n\n",
		rep.SummaryStatistics.TotalClaims,
		rep.SummaryStatistics.HighRiskCount,
		rep.SummaryStatistics.AverageConfidence)

	b.WriteString("## Summary\n\n")
	b.WriteString(rep.HumanSummary)
	b.WriteString("\n\n")

	if len(rep.Claims) > 0 {
		b.WriteString("## Claims\n\n")
		for i, c := range rep.Claims {
			fmt.Fprintf(&b, "### %d. %s\n\n", i+1, c.Claim.Text)
			fmt.Fprintf(&b, "- Domain: %s | Confidence: %.1f/100 | Risk: %s\n",
				c.Claim.Domain, c.Confidence, c.RiskLevel)
			fmt.Fprintf(&b, "- Evidence: %d supporting, %d contradicting\n\n",
				len(c.SupportingEvidence), len(c.ContradictingEvidence))
			fmt.Fprintf(&b, "%s\n\n%s\n\n", c.Reasoning, c.Recommendation)
		}
	}

	if len(rep.ManipulationSignals) > 0 {
		b.WriteString("## Manipulation Signals\n\n")
		for _, s := range rep.ManipulationSignals {
			fmt.Fprintf(&b, "- **%s** (%s, confidence %.0f/100): %s\n", s.Type, s.Severity, s.Confidence, s.Description)
		}
		b.WriteString("\n")
	}

	if len(rep.Recommendations) > 0 {
		b.WriteString("## Recommendations\n\n")
		for _, rec := range rep.Recommendations {
			fmt.Fprintf(&b, "- %s\n", rec)
		}
		b.WriteString("\n")
	}

	if len(rep.Warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, w := range rep.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Disclaimer\n\n")
	b.WriteString(rep.Disclaimer)
	b.WriteString("\n")

	if r.includeFooter {
		fmt.Fprintf(&b, "\n---\nGenerated by credence v%s\n", rep.Metadata.Version)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// RenderSummary prints a short report summary to stdout.
func (r *Renderer) RenderSummary(rep *model.Report) {
	fmt.Printf("Claims analyzed:     %d\n", rep.SummaryStatistics.TotalClaims)
	fmt.Printf("Average confidence:  %.1f/100\n", rep.SummaryStatistics.AverageConfidence)
	fmt.Printf("High-risk claims:    %d\n", rep.SummaryStatistics.HighRiskCount)
	if len(rep.ManipulationSignals) > 0 {
		fmt.Printf("Manipulation signals: %d\n", len(rep.ManipulationSignals))
	}
	if len(rep.Warnings) > 0 {
		fmt.Printf("Warnings:            %d\n", len(rep.Warnings))
	}
}
