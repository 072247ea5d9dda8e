// Package score blends evidence into a confidence score and a risk
// tier. Every formula is explicit and deterministic: the same claim,
// evidence and configuration always produce the same result.
package score

import (
	"errors"
	"fmt"

	"github.com/avetrov/credence/internal/model"
)

// ErrLengthMismatch is returned by VerifyBatch when the claim and
// evidence lists differ in length. No partial results are produced.
var ErrLengthMismatch = errors.New("claims and evidence lists must have equal length")

const (
	// supportRelevanceCutoff partitions evidence: relevance at or above
	// this supports the claim, anything below contradicts it. This is
	// the sole classification signal; no entailment check is performed.
	supportRelevanceCutoff = 60.0

	// noEvidenceConfidence is the low-information default. Unknown is
	// never allowed to collapse into "false".
	noEvidenceConfidence = 30.0

	credibilityBlend = 0.6
	relevanceBlend   = 0.4

	supportCeiling       = 95.0
	contradictFloor      = 10.0
	strongContradictBar  = 70.0
	contradictionPenalty = 0.7

	highQualityCredibility = 90.0
)

// Scorer produces VerificationResults from classified claims and
// their evidence.
type Scorer struct {
	cfg *model.Config
}

// NewScorer creates a scorer bound to an immutable configuration.
func NewScorer(cfg *model.Config) *Scorer {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	return &Scorer{cfg: cfg}
}

// Verify scores one claim against its evidence.
func (s *Scorer) Verify(claim model.ClassifiedClaim, evidence []model.Evidence) model.VerificationResult {
	var supporting, contradicting []model.Evidence
	for _, e := range evidence {
		if e.Relevance >= supportRelevanceCutoff {
			supporting = append(supporting, e)
		} else {
			contradicting = append(contradicting, e)
		}
	}

	confidence := s.confidence(supporting, contradicting)
	risk := s.riskFor(confidence)

	return model.VerificationResult{
		Claim:                 claim,
		SupportingEvidence:    supporting,
		ContradictingEvidence: contradicting,
		Confidence:            confidence,
		RiskLevel:             risk,
		Reasoning:             s.reasoning(confidence, supporting, contradicting),
		Recommendation:        recommendationFor(risk),
	}
}

// VerifyBatch scores claims pairwise against evidence lists, failing
// before any scoring when lengths differ. Output order matches input
// order 1:1.
func (s *Scorer) VerifyBatch(claims []model.ClassifiedClaim, evidence [][]model.Evidence) ([]model.VerificationResult, error) {
	if len(claims) != len(evidence) {
		return nil, fmt.Errorf("%w: %d claims, %d evidence lists", ErrLengthMismatch, len(claims), len(evidence))
	}

	results := make([]model.VerificationResult, len(claims))
	for i, claim := range claims {
		results[i] = s.Verify(claim, evidence[i])
	}
	return results, nil
}

// confidence blends the two evidence groups into one 0-100 score:
//   - no evidence: 30 (low-information default)
//   - supporting only: min(95, supporting_score)
//   - contradicting only: max(10, 50 - 0.5*contradicting_score)
//   - both: 100*s/(s+c), x0.7 when contradicting_score > 70
func (s *Scorer) confidence(supporting, contradicting []model.Evidence) float64 {
	if len(supporting) == 0 && len(contradicting) == 0 {
		return noEvidenceConfidence
	}

	supportScore := groupScore(supporting)
	contradictScore := groupScore(contradicting)

	var confidence float64
	switch {
	case len(contradicting) == 0:
		confidence = supportScore
		if confidence > supportCeiling {
			confidence = supportCeiling
		}
	case len(supporting) == 0:
		confidence = 50 - 0.5*contradictScore
		if confidence < contradictFloor {
			confidence = contradictFloor
		}
	default:
		confidence = 100 * supportScore / (supportScore + contradictScore)
		if contradictScore > strongContradictBar {
			confidence *= contradictionPenalty
		}
	}

	return clamp(confidence, 0, 100)
}

// groupScore averages per-evidence weights (0.6*credibility +
// 0.4*relevance) over the group. Empty groups score zero.
func groupScore(group []model.Evidence) float64 {
	if len(group) == 0 {
		return 0
	}
	var sum float64
	for _, e := range group {
		sum += credibilityBlend*e.CredibilityScore + relevanceBlend*e.Relevance
	}
	return sum / float64(len(group))
}

// riskFor maps confidence to the first containing band, checked in
// critical, high, medium, low order. Outside every band, confidence
// below 30 is critical and anything else is low.
func (s *Scorer) riskFor(confidence float64) model.RiskLevel {
	for _, level := range model.RiskLevels() {
		if band, ok := s.cfg.RiskBands[level]; ok && band.Contains(confidence) {
			return level
		}
	}
	if confidence < 30 {
		return model.RiskCritical
	}
	return model.RiskLow
}

// reasoning templates an explanation from the confidence tier, the
// evidence counts and the average credibility of high-quality
// supporting sources.
func (s *Scorer) reasoning(confidence float64, supporting, contradicting []model.Evidence) string {
	if len(supporting) == 0 && len(contradicting) == 0 {
		return "No evidence was available for this claim; confidence reflects the low-information default."
	}

	base := fmt.Sprintf("The claim is %s: %d supporting and %d contradicting source(s) were evaluated.",
		confidenceTier(confidence), len(supporting), len(contradicting))

	if avg, n := highQualityAverage(supporting); n > 0 {
		base += fmt.Sprintf(" %d supporting source(s) with credibility %.0f or above average %.1f.",
			n, highQualityCredibility, avg)
	}
	if len(contradicting) > 0 && groupScore(contradicting) > strongContradictBar {
		base += " Strong contradicting evidence reduced the score."
	}
	return base
}

// confidenceTier is the wording used inside reasoning text.
func confidenceTier(confidence float64) string {
	switch {
	case confidence >= 80:
		return "well supported"
	case confidence >= 60:
		return "moderately supported"
	case confidence >= 40:
		return "weakly supported"
	default:
		return "largely unsupported"
	}
}

// highQualityAverage returns the mean credibility of supporting
// sources at or above the high-quality bar, with the count.
func highQualityAverage(supporting []model.Evidence) (float64, int) {
	var sum float64
	var n int
	for _, e := range supporting {
		if e.CredibilityScore >= highQualityCredibility {
			sum += e.CredibilityScore
			n++
		}
	}
	if n == 0 {
		return 0, 0
	}
	return sum / float64(n), n
}

// recommendationFor templates the per-tier editorial recommendation.
func recommendationFor(risk model.RiskLevel) string {
	switch risk {
	case model.RiskLow:
		return "The claim may be published as stated."
	case model.RiskMedium:
		return "Review the claim's wording against the cited sources before publication."
	case model.RiskHigh:
		return "Verify the claim against additional independent sources before publication."
	default:
		return "Do not publish the claim without independent verification."
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
