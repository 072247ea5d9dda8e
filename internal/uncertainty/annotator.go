// Package uncertainty injects graded uncertainty language into report
// text for low-confidence results. Annotation is idempotent: already
// marked text is never marked again.
package uncertainty

import (
	"fmt"
	"strings"

	"github.com/avetrov/credence/internal/model"
)

// Severity-graded markers, strongest first.
const (
	markerHighlyUncertain = "⚠️ HIGHLY UNCERTAIN: "
	markerUncertain       = "⚠️ UNCERTAIN: "
	markerNote            = "Note: "
)

// summaryCaution is appended to the human summary when the report's
// aggregate confidence is below threshold.
const summaryCaution = "Overall confidence across all claims is below the configured threshold. Treat these findings with caution."

// Annotator rewrites text fields of results whose confidence falls
// below the configured threshold.
type Annotator struct {
	threshold float64
}

// NewAnnotator creates an annotator with the given confidence
// threshold.
func NewAnnotator(threshold float64) *Annotator {
	return &Annotator{threshold: threshold}
}

// Annotate returns a fresh report with uncertainty language applied.
// The caller's report is not modified.
func (a *Annotator) Annotate(r model.Report) model.Report {
	out := r.Clone()

	for i := range out.Claims {
		conf := out.Claims[i].Confidence
		if conf >= a.threshold {
			continue
		}
		out.Claims[i].Reasoning = a.annotateText(out.Claims[i].Reasoning, conf)
		out.Claims[i].Recommendation = a.annotateText(out.Claims[i].Recommendation, conf)
	}

	for i := range out.ManipulationSignals {
		conf := out.ManipulationSignals[i].Confidence
		if conf >= a.threshold {
			continue
		}
		out.ManipulationSignals[i].Description = a.annotateText(out.ManipulationSignals[i].Description, conf)
	}

	if out.SummaryStatistics.AverageConfidence < a.threshold &&
		!strings.Contains(out.HumanSummary, summaryCaution) {
		if out.HumanSummary == "" {
			out.HumanSummary = summaryCaution
		} else {
			out.HumanSummary = out.HumanSummary + "\n\n" + summaryCaution
		}
	}

	return out
}

// annotateText prepends the severity marker and appends a parenthetical
// confidence note. Text already carrying a marker is returned as is.
func (a *Annotator) annotateText(text string, confidence float64) string {
	if hasMarker(text) {
		return text
	}

	var marker, reason string
	switch {
	case confidence < 30:
		marker, reason = markerHighlyUncertain, "insufficient evidence"
	case confidence < 50:
		marker, reason = markerUncertain, "limited supporting evidence"
	default:
		marker, reason = markerNote, "below standard threshold"
	}

	return fmt.Sprintf("%s%s (confidence %.1f/100, %s)", marker, text, confidence, reason)
}

// hasMarker detects existing uncertainty markers so repeated
// annotation never double-prepends.
func hasMarker(text string) bool {
	return strings.HasPrefix(text, markerHighlyUncertain) ||
		strings.HasPrefix(text, markerUncertain) ||
		strings.HasPrefix(text, markerNote)
}
