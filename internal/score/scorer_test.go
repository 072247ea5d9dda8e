package score

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/avetrov/credence/internal/model"
)

func classified(text string) model.ClassifiedClaim {
	return model.ClassifiedClaim{
		Claim:            model.Claim{ID: "c1", Text: text},
		Domain:           model.DomainPhysics,
		DomainConfidence: 80,
	}
}

func TestScorer_Verify_SingleStrongSupport(t *testing.T) {
	scorer := NewScorer(nil)

	// One supporting source with credibility 95 and relevance 98:
	// group score = 0.6*95 + 0.4*98 = 96.2, capped at 95.
	evidence := []model.Evidence{
		{Source: "Nature", CredibilityScore: 95, Relevance: 98},
	}

	result := scorer.Verify(classified("Water boils at 100 degrees Celsius."), evidence)

	if result.Confidence != 95 {
		t.Errorf("Expected confidence 95, got %v", result.Confidence)
	}
	if result.RiskLevel != model.RiskLow {
		t.Errorf("Expected low risk, got %v", result.RiskLevel)
	}
	if len(result.SupportingEvidence) != 1 || len(result.ContradictingEvidence) != 0 {
		t.Errorf("Expected 1 supporting / 0 contradicting, got %d / %d",
			len(result.SupportingEvidence), len(result.ContradictingEvidence))
	}
}

func TestScorer_Verify_NoEvidence(t *testing.T) {
	scorer := NewScorer(nil)

	result := scorer.Verify(classified("Unverifiable claim."), nil)

	if result.Confidence != 30 {
		t.Errorf("Expected low-information default 30, got %v", result.Confidence)
	}
	// 30 falls in the high band [30, 50).
	if result.RiskLevel != model.RiskHigh {
		t.Errorf("Expected high risk, got %v", result.RiskLevel)
	}
	if !strings.Contains(result.Reasoning, "No evidence") {
		t.Errorf("Expected no-evidence reasoning, got %q", result.Reasoning)
	}
}

func TestScorer_Verify_ContradictingOnly(t *testing.T) {
	scorer := NewScorer(nil)

	// Relevance below 60 partitions as contradicting. Group score is
	// 0.6*80 + 0.4*40 = 64, so confidence = 50 - 32 = 18.
	evidence := []model.Evidence{
		{Source: "Reuters", CredibilityScore: 80, Relevance: 40},
	}

	result := scorer.Verify(classified("Disputed claim."), evidence)

	if math.Abs(result.Confidence-18) > 1e-9 {
		t.Errorf("Expected confidence 18, got %v", result.Confidence)
	}
	if result.RiskLevel != model.RiskCritical {
		t.Errorf("Expected critical risk, got %v", result.RiskLevel)
	}
}

func TestScorer_Verify_ContradictingFloor(t *testing.T) {
	scorer := NewScorer(nil)

	// Group score 0.6*100 + 0.4*59 = 83.6 would put 50 - 41.8 = 8.2
	// below the floor; the floor wins.
	evidence := []model.Evidence{
		{Source: "Science", CredibilityScore: 100, Relevance: 59},
	}

	result := scorer.Verify(classified("Strongly disputed claim."), evidence)

	if result.Confidence != 10 {
		t.Errorf("Expected floor confidence 10, got %v", result.Confidence)
	}
}

func TestScorer_Verify_MixedEvidenceWithPenalty(t *testing.T) {
	scorer := NewScorer(nil)

	// supporting group = 0.6*90 + 0.4*90 = 90
	// contradicting group = 0.6*90 + 0.4*50 = 74 (> 70, penalty applies)
	// confidence = 100*90/(90+74) * 0.7
	evidence := []model.Evidence{
		{Source: "Nature", CredibilityScore: 90, Relevance: 90},
		{Source: "Reuters", CredibilityScore: 90, Relevance: 50},
	}

	result := scorer.Verify(classified("Contested claim."), evidence)

	want := 100 * 90.0 / (90.0 + 74.0) * 0.7
	if math.Abs(result.Confidence-want) > 1e-9 {
		t.Errorf("Expected confidence %v, got %v", want, result.Confidence)
	}
	if result.RiskLevel != model.RiskHigh {
		t.Errorf("Expected high risk, got %v", result.RiskLevel)
	}
	if !strings.Contains(result.Reasoning, "Strong contradicting evidence") {
		t.Errorf("Expected contradiction note in reasoning, got %q", result.Reasoning)
	}
}

func TestScorer_Verify_MixedEvidenceWithoutPenalty(t *testing.T) {
	scorer := NewScorer(nil)

	// contradicting group = 0.6*60 + 0.4*40 = 52, below the 70 bar.
	evidence := []model.Evidence{
		{Source: "Nature", CredibilityScore: 90, Relevance: 90},
		{Source: "Blog", CredibilityScore: 60, Relevance: 40},
	}

	result := scorer.Verify(classified("Mildly contested claim."), evidence)

	want := 100 * 90.0 / (90.0 + 52.0)
	if math.Abs(result.Confidence-want) > 1e-9 {
		t.Errorf("Expected confidence %v, got %v", want, result.Confidence)
	}
}

func TestScorer_Verify_RelevanceCutoffIsInclusive(t *testing.T) {
	scorer := NewScorer(nil)

	evidence := []model.Evidence{
		{Source: "A", CredibilityScore: 80, Relevance: 60},
		{Source: "B", CredibilityScore: 80, Relevance: 59.9},
	}

	result := scorer.Verify(classified("Boundary claim."), evidence)

	if len(result.SupportingEvidence) != 1 || result.SupportingEvidence[0].Source != "A" {
		t.Errorf("Expected relevance 60 to support, got supporting %v", result.SupportingEvidence)
	}
	if len(result.ContradictingEvidence) != 1 || result.ContradictingEvidence[0].Source != "B" {
		t.Errorf("Expected relevance 59.9 to contradict, got contradicting %v", result.ContradictingEvidence)
	}
}

func TestScorer_Verify_ConfidenceAlwaysInRange(t *testing.T) {
	scorer := NewScorer(nil)

	cases := [][]model.Evidence{
		nil,
		{{CredibilityScore: 0, Relevance: 0}},
		{{CredibilityScore: 100, Relevance: 100}},
		{{CredibilityScore: 100, Relevance: 0}},
		{{CredibilityScore: 0, Relevance: 100}},
		{
			{CredibilityScore: 100, Relevance: 100},
			{CredibilityScore: 100, Relevance: 0},
		},
		{
			{CredibilityScore: 50, Relevance: 61},
			{CredibilityScore: 50, Relevance: 59},
			{CredibilityScore: 95, Relevance: 95},
		},
	}

	for i, evidence := range cases {
		result := scorer.Verify(classified("Range claim."), evidence)
		if result.Confidence < 0 || result.Confidence > 100 {
			t.Errorf("Case %d: confidence %v out of [0,100]", i, result.Confidence)
		}
		if !result.RiskLevel.Valid() {
			t.Errorf("Case %d: invalid risk level %q", i, result.RiskLevel)
		}
		if result.Reasoning == "" || result.Recommendation == "" {
			t.Errorf("Case %d: expected non-empty reasoning and recommendation", i)
		}
	}
}

func TestScorer_Verify_MoreCredibleSupportNeverLowersConfidence(t *testing.T) {
	scorer := NewScorer(nil)
	claim := classified("Monotonic claim.")

	prev := -1.0
	for cred := 0.0; cred <= 100; cred += 10 {
		evidence := []model.Evidence{{CredibilityScore: cred, Relevance: 80}}
		conf := scorer.Verify(claim, evidence).Confidence
		if conf < prev {
			t.Errorf("Confidence dropped from %v to %v when credibility rose to %v", prev, conf, cred)
		}
		prev = conf
	}
}

func TestScorer_Verify_Deterministic(t *testing.T) {
	scorer := NewScorer(nil)
	claim := classified("Same claim, same score.")
	evidence := []model.Evidence{
		{Source: "Nature", CredibilityScore: 92, Relevance: 88},
		{Source: "Reuters", CredibilityScore: 70, Relevance: 40},
	}

	first := scorer.Verify(claim, evidence)
	for i := 0; i < 5; i++ {
		again := scorer.Verify(claim, evidence)
		if again.Confidence != first.Confidence || again.RiskLevel != first.RiskLevel {
			t.Fatalf("Run %d differed: %v/%v vs %v/%v",
				i, again.Confidence, again.RiskLevel, first.Confidence, first.RiskLevel)
		}
		if again.Reasoning != first.Reasoning {
			t.Fatalf("Run %d reasoning differed", i)
		}
	}
}

func TestScorer_Verify_CustomBandsAndFallback(t *testing.T) {
	cfg := model.DefaultConfig()
	// Bands covering only [0, 80): 80+ falls back by the >= 30 rule.
	cfg.RiskBands = map[model.RiskLevel]model.RiskBand{
		model.RiskCritical: {Min: 0, Max: 20},
		model.RiskHigh:     {Min: 20, Max: 40},
		model.RiskMedium:   {Min: 40, Max: 60},
		model.RiskLow:      {Min: 60, Max: 80},
	}
	scorer := NewScorer(cfg)

	// Supporting-only score of 95 lands outside every band.
	evidence := []model.Evidence{{CredibilityScore: 95, Relevance: 98}}
	result := scorer.Verify(classified("Uncovered confidence."), evidence)
	if result.RiskLevel != model.RiskLow {
		t.Errorf("Expected fallback to low for confidence %v, got %v", result.Confidence, result.RiskLevel)
	}

	// No evidence (30) now lands in the custom high band [20, 40).
	result = scorer.Verify(classified("Uncovered low confidence."), nil)
	if result.RiskLevel != model.RiskHigh {
		t.Errorf("Expected high in custom bands, got %v", result.RiskLevel)
	}
}

func TestScorer_VerifyBatch_LengthMismatch(t *testing.T) {
	scorer := NewScorer(nil)

	claims := []model.ClassifiedClaim{classified("One."), classified("Two.")}
	evidence := [][]model.Evidence{nil}

	results, err := scorer.VerifyBatch(claims, evidence)
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("Expected ErrLengthMismatch, got %v", err)
	}
	if results != nil {
		t.Errorf("Expected no partial results, got %d", len(results))
	}
}

func TestScorer_VerifyBatch_PreservesOrder(t *testing.T) {
	scorer := NewScorer(nil)

	claims := []model.ClassifiedClaim{
		classified("First."),
		classified("Second."),
		classified("Third."),
	}
	evidence := [][]model.Evidence{
		{{CredibilityScore: 95, Relevance: 95}},
		nil,
		{{CredibilityScore: 50, Relevance: 40}},
	}

	results, err := scorer.VerifyBatch(claims, evidence)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	for i, want := range []string{"First.", "Second.", "Third."} {
		if results[i].Claim.Text != want {
			t.Errorf("Result %d: expected claim %q, got %q", i, want, results[i].Claim.Text)
		}
	}
	if results[1].Confidence != 30 {
		t.Errorf("Expected middle result to use the no-evidence default, got %v", results[1].Confidence)
	}
}
