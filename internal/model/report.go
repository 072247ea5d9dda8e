package model

import "time"

// Version is the report schema/tool version recorded in metadata.
const Version = "0.2.0"

// RiskLevel is the publication risk tier derived from confidence.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// RiskLevels returns all tiers in band-lookup order: the scorer checks
// bands in this order and the first containing band wins.
func RiskLevels() []RiskLevel {
	return []RiskLevel{RiskCritical, RiskHigh, RiskMedium, RiskLow}
}

// Valid reports whether r is one of the four enumerated tiers.
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical:
		return true
	}
	return false
}

// VerificationResult is the per-claim verdict: the claim, its evidence
// partition, a 0-100 confidence, a risk tier, and templated prose.
// Numeric fields never change after scoring; only the safety enforcer
// and uncertainty annotator rewrite the text fields, and both operate
// on fresh report copies.
type VerificationResult struct {
	Claim                 ClassifiedClaim `json:"claim"`
	SupportingEvidence    []Evidence      `json:"supporting_evidence"`
	ContradictingEvidence []Evidence      `json:"contradicting_evidence"`
	Confidence            float64         `json:"confidence"` // 0-100
	RiskLevel             RiskLevel       `json:"risk_level"`
	Reasoning             string          `json:"reasoning"`
	Recommendation        string          `json:"recommendation"`
}

// SignalType classifies a manipulation signal found in a transcript.
type SignalType string

const (
	SignalLogicalInconsistency  SignalType = "logical_inconsistency"
	SignalEmotionalManipulation SignalType = "emotional_manipulation"
	SignalNarrativeBias         SignalType = "narrative_bias"
)

// Severity grades a manipulation signal.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// ManipulationSignal is a transcript-only finding: rhetorical or
// structural manipulation detected in spoken content.
type ManipulationSignal struct {
	Type         SignalType `json:"type"`
	Severity     Severity   `json:"severity"`
	Confidence   float64    `json:"confidence"` // 0-100
	StartSeconds *float64   `json:"start_seconds,omitempty"`
	EndSeconds   *float64   `json:"end_seconds,omitempty"`
	Description  string     `json:"description"`
	Evidence     string     `json:"evidence,omitempty"`
}

// Metadata records provenance for a report.
type Metadata struct {
	Timestamp        time.Time `json:"timestamp"`
	Version          string    `json:"version"`
	InputHash        string    `json:"input_hash"`
	ProcessingTimeMS int64     `json:"processing_time_ms"`
}

// SummaryStatistics aggregates the per-claim verdicts.
type SummaryStatistics struct {
	TotalClaims       int               `json:"total_claims"`
	HighRiskCount     int               `json:"high_risk_count"`
	AverageConfidence float64           `json:"average_confidence"`
	RiskBreakdown     map[RiskLevel]int `json:"risk_breakdown"`
}

// Report is the complete verification output for one input document.
// The assembler builds it once; the safety enforcer and uncertainty
// annotator each return a transformed copy rather than mutating it.
type Report struct {
	Metadata            Metadata             `json:"metadata"`
	Claims              []VerificationResult `json:"claims"`
	ManipulationSignals []ManipulationSignal `json:"manipulation_signals,omitempty"`
	SummaryStatistics   SummaryStatistics    `json:"summary_statistics"`
	HumanSummary        string               `json:"human_summary"`
	Recommendations     []string             `json:"recommendations"`
	Disclaimer          string               `json:"disclaimer"`
	Warnings            []string             `json:"warnings,omitempty"`
}

// Clone returns a deep copy of the report. Text transforms work on
// clones so the caller's value is never mutated.
func (r Report) Clone() Report {
	out := r

	out.Claims = make([]VerificationResult, len(r.Claims))
	copy(out.Claims, r.Claims)
	for i := range out.Claims {
		out.Claims[i].SupportingEvidence = append([]Evidence(nil), r.Claims[i].SupportingEvidence...)
		out.Claims[i].ContradictingEvidence = append([]Evidence(nil), r.Claims[i].ContradictingEvidence...)
	}

	out.ManipulationSignals = append([]ManipulationSignal(nil), r.ManipulationSignals...)
	out.Recommendations = append([]string(nil), r.Recommendations...)
	out.Warnings = append([]string(nil), r.Warnings...)

	if r.SummaryStatistics.RiskBreakdown != nil {
		out.SummaryStatistics.RiskBreakdown = make(map[RiskLevel]int, len(r.SummaryStatistics.RiskBreakdown))
		for k, v := range r.SummaryStatistics.RiskBreakdown {
			out.SummaryStatistics.RiskBreakdown[k] = v
		}
	}

	return out
}
