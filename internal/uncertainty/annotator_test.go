package uncertainty

import (
	"reflect"
	"strings"
	"testing"

	"github.com/avetrov/credence/internal/model"
)

func reportWithConfidence(conf float64) model.Report {
	return model.Report{
		Claims: []model.VerificationResult{{
			Claim:          model.ClassifiedClaim{Claim: model.Claim{Text: "Some claim."}},
			Confidence:     conf,
			Reasoning:      "Limited information was found.",
			Recommendation: "Seek additional sources.",
		}},
		HumanSummary: "One claim was analyzed.",
		SummaryStatistics: model.SummaryStatistics{
			TotalClaims:       1,
			AverageConfidence: conf,
		},
	}
}

func TestAnnotator_Annotate_HighlyUncertain(t *testing.T) {
	a := NewAnnotator(70)

	out := a.Annotate(reportWithConfidence(25))

	reasoning := out.Claims[0].Reasoning
	if !strings.HasPrefix(reasoning, "⚠️ HIGHLY UNCERTAIN: ") {
		t.Errorf("Expected the highly-uncertain marker, got %q", reasoning)
	}
	if !strings.Contains(reasoning, "(confidence 25.0/100, insufficient evidence)") {
		t.Errorf("Expected the confidence note, got %q", reasoning)
	}
	// The original text survives between marker and note.
	if !strings.Contains(reasoning, "Limited information was found.") {
		t.Errorf("Original reasoning lost: %q", reasoning)
	}
}

func TestAnnotator_Annotate_Uncertain(t *testing.T) {
	a := NewAnnotator(70)

	out := a.Annotate(reportWithConfidence(40))

	reasoning := out.Claims[0].Reasoning
	if !strings.HasPrefix(reasoning, "⚠️ UNCERTAIN: ") {
		t.Errorf("Expected the uncertain marker, got %q", reasoning)
	}
	if !strings.Contains(reasoning, "limited supporting evidence") {
		t.Errorf("Expected the mid-tier reason, got %q", reasoning)
	}
}

func TestAnnotator_Annotate_Note(t *testing.T) {
	a := NewAnnotator(70)

	out := a.Annotate(reportWithConfidence(60))

	reasoning := out.Claims[0].Reasoning
	if !strings.HasPrefix(reasoning, "Note: ") {
		t.Errorf("Expected the note marker, got %q", reasoning)
	}
	if !strings.Contains(reasoning, "below standard threshold") {
		t.Errorf("Expected the note reason, got %q", reasoning)
	}
}

func TestAnnotator_Annotate_AboveThresholdUntouched(t *testing.T) {
	a := NewAnnotator(70)

	r := reportWithConfidence(70)
	out := a.Annotate(r)

	if out.Claims[0].Reasoning != r.Claims[0].Reasoning {
		t.Errorf("Reasoning at the threshold was annotated: %q", out.Claims[0].Reasoning)
	}
	if out.HumanSummary != r.HumanSummary {
		t.Errorf("Summary at the threshold was annotated: %q", out.HumanSummary)
	}
}

func TestAnnotator_Annotate_Idempotent(t *testing.T) {
	a := NewAnnotator(70)

	for _, conf := range []float64{25, 40, 60} {
		once := a.Annotate(reportWithConfidence(conf))
		twice := a.Annotate(once)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("Annotation at confidence %v not idempotent:\n once: %q\ntwice: %q",
				conf, once.Claims[0].Reasoning, twice.Claims[0].Reasoning)
		}
	}
}

func TestAnnotator_Annotate_DoesNotMutateInput(t *testing.T) {
	a := NewAnnotator(70)

	r := reportWithConfidence(25)
	original := r.Claims[0].Reasoning

	_ = a.Annotate(r)

	if r.Claims[0].Reasoning != original {
		t.Error("Annotate mutated the caller's report")
	}
}

func TestAnnotator_Annotate_SummaryCaution(t *testing.T) {
	a := NewAnnotator(70)

	out := a.Annotate(reportWithConfidence(40))
	if !strings.Contains(out.HumanSummary, "Treat these findings with caution.") {
		t.Errorf("Expected the summary caution, got %q", out.HumanSummary)
	}
	if !strings.Contains(out.HumanSummary, "One claim was analyzed.") {
		t.Errorf("Original summary lost: %q", out.HumanSummary)
	}
}

func TestAnnotator_Annotate_Signals(t *testing.T) {
	a := NewAnnotator(70)

	r := model.Report{
		ManipulationSignals: []model.ManipulationSignal{
			{Confidence: 45, Description: "Loaded language detected."},
			{Confidence: 90, Description: "Strong signal."},
		},
		SummaryStatistics: model.SummaryStatistics{AverageConfidence: 80},
	}

	out := a.Annotate(r)

	if !strings.HasPrefix(out.ManipulationSignals[0].Description, "⚠️ UNCERTAIN: ") {
		t.Errorf("Expected low-confidence signal annotated, got %q", out.ManipulationSignals[0].Description)
	}
	if out.ManipulationSignals[1].Description != "Strong signal." {
		t.Errorf("High-confidence signal was annotated: %q", out.ManipulationSignals[1].Description)
	}
}
