package report

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/avetrov/credence/internal/model"
)

func result(conf float64, risk model.RiskLevel, text string) model.VerificationResult {
	return model.VerificationResult{
		Claim:      model.ClassifiedClaim{Claim: model.Claim{Text: text}},
		Confidence: conf,
		RiskLevel:  risk,
	}
}

func TestAssembler_Assemble_Statistics(t *testing.T) {
	a := NewAssembler(nil)

	results := []model.VerificationResult{
		result(90, model.RiskLow, "Safe claim."),
		result(60, model.RiskMedium, "Middling claim."),
		result(40, model.RiskHigh, "Shaky claim."),
		result(20, model.RiskCritical, "Bad claim."),
	}

	rep := a.Assemble("input text", results, nil, 15*time.Millisecond)

	stats := rep.SummaryStatistics
	if stats.TotalClaims != 4 {
		t.Errorf("Expected 4 claims, got %d", stats.TotalClaims)
	}
	// High-risk counts the high and critical tiers.
	if stats.HighRiskCount != 2 {
		t.Errorf("Expected 2 high-risk claims, got %d", stats.HighRiskCount)
	}
	if stats.AverageConfidence != 52.5 {
		t.Errorf("Expected average 52.5, got %v", stats.AverageConfidence)
	}

	// The histogram covers all four tiers, even at zero.
	for _, level := range model.RiskLevels() {
		if _, ok := stats.RiskBreakdown[level]; !ok {
			t.Errorf("Missing histogram tier %q", level)
		}
	}
	if stats.RiskBreakdown[model.RiskLow] != 1 || stats.RiskBreakdown[model.RiskCritical] != 1 {
		t.Errorf("Unexpected breakdown: %v", stats.RiskBreakdown)
	}
}

func TestAssembler_Assemble_EmptyResults(t *testing.T) {
	a := NewAssembler(nil)

	rep := a.Assemble("no claims here", nil, nil, time.Millisecond)

	if rep.SummaryStatistics.TotalClaims != 0 {
		t.Errorf("Expected 0 claims, got %d", rep.SummaryStatistics.TotalClaims)
	}
	if rep.SummaryStatistics.AverageConfidence != 0.0 {
		t.Errorf("Expected average 0.0 for empty results, got %v", rep.SummaryStatistics.AverageConfidence)
	}
	if !strings.Contains(rep.HumanSummary, "No verifiable factual claims") {
		t.Errorf("Expected the no-claims summary, got %q", rep.HumanSummary)
	}
	if len(rep.Recommendations) == 0 {
		t.Error("Recommendations must never be empty")
	}
	if rep.Disclaimer == "" {
		t.Error("Disclaimer must never be empty")
	}
}

func TestAssembler_Assemble_Metadata(t *testing.T) {
	a := NewAssembler(nil)

	rep := a.Assemble("some input", nil, nil, 42*time.Millisecond)

	if rep.Metadata.Version != model.Version {
		t.Errorf("Expected version %q, got %q", model.Version, rep.Metadata.Version)
	}
	if rep.Metadata.InputHash != InputHash("some input") {
		t.Error("Metadata hash does not match the input hash")
	}
	if rep.Metadata.ProcessingTimeMS != 42 {
		t.Errorf("Expected 42ms, got %d", rep.Metadata.ProcessingTimeMS)
	}
	if rep.Metadata.Timestamp.IsZero() {
		t.Error("Expected a timestamp")
	}
}

func TestAssembler_Assemble_HighRiskHighlights(t *testing.T) {
	a := NewAssembler(nil)

	results := []model.VerificationResult{
		result(90, model.RiskLow, "Fine claim."),
		result(20, model.RiskCritical, "The moon is made of cheese."),
	}

	rep := a.Assemble("input", results, nil, time.Millisecond)

	if !strings.Contains(rep.HumanSummary, "The moon is made of cheese.") {
		t.Errorf("Expected the critical claim highlighted, got %q", rep.HumanSummary)
	}
	if strings.Contains(rep.HumanSummary, "Fine claim.") {
		t.Errorf("Low-risk claim should not be highlighted: %q", rep.HumanSummary)
	}
}

func TestAssembler_Assemble_SignalRecommendation(t *testing.T) {
	a := NewAssembler(nil)

	signals := []model.ManipulationSignal{{Type: model.SignalNarrativeBias, Severity: model.SeverityMedium}}
	results := []model.VerificationResult{result(90, model.RiskLow, "Fine claim.")}
	rep := a.Assemble("input", results, signals, time.Millisecond)

	found := false
	for _, rec := range rep.Recommendations {
		if strings.Contains(rec, "manipulation signals") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected a manipulation-signal recommendation, got %v", rep.Recommendations)
	}
	if !strings.Contains(rep.HumanSummary, "manipulation signal") {
		t.Errorf("Expected the summary to mention signals, got %q", rep.HumanSummary)
	}
}

func TestAssembler_Assemble_TruncationKeepsValidUTF8(t *testing.T) {
	a := NewAssembler(nil)

	// A high-risk claim longer than the highlight limit, built from
	// three-byte runes so the 80-byte cut point falls mid-rune.
	long := strings.Repeat("€", 90) + " was claimed."
	results := []model.VerificationResult{result(20, model.RiskCritical, long)}

	rep := a.Assemble("input", results, nil, time.Millisecond)

	if !utf8.ValidString(rep.HumanSummary) {
		t.Errorf("Summary contains invalid UTF-8: %q", rep.HumanSummary)
	}
	if !strings.Contains(rep.HumanSummary, "...") {
		t.Errorf("Expected the long claim to be truncated, got %q", rep.HumanSummary)
	}
}

func TestInputHash_Deterministic(t *testing.T) {
	a := InputHash("some document text")
	b := InputHash("some document text")
	c := InputHash("different text")

	if a != b {
		t.Error("Same input produced different hashes")
	}
	if a == c {
		t.Error("Different inputs produced the same hash")
	}
	if len(a) != 64 {
		t.Errorf("Expected a 64-char hex digest, got %d chars", len(a))
	}
}
