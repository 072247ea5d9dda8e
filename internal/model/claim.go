package model

// Domain is a subject-matter category used to select relevant sources.
type Domain string

const (
	DomainPhysics    Domain = "physics"
	DomainBiology    Domain = "biology"
	DomainHistory    Domain = "history"
	DomainStatistics Domain = "statistics"
	DomainGeneral    Domain = "general"
)

// BuiltinDomains returns the non-general domains in declaration order.
// Declaration order is load-bearing: the classifier breaks exact score
// ties in favor of the earlier domain.
func BuiltinDomains() []Domain {
	return []Domain{DomainPhysics, DomainBiology, DomainHistory, DomainStatistics}
}

// Valid reports whether d is one of the enumerated domains.
func (d Domain) Valid() bool {
	switch d {
	case DomainPhysics, DomainBiology, DomainHistory, DomainStatistics, DomainGeneral:
		return true
	}
	return false
}

// Span is a half-open [Start, End) byte range into the source text.
// Offsets are bytes, not runes, so text[Start:End] always recovers
// the spanned substring, including for non-ASCII input.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Overlaps reports whether two spans share at least one character.
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End && other.Start < s.End
}

// Claim is a single factual assertion extracted from input text.
// It carries no domain or score: classification and scoring produce
// richer values (ClassifiedClaim, VerificationResult) instead of
// mutating the claim in place.
type Claim struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Position Span   `json:"position"`
}

// ClassifiedClaim is a claim with its subject domain attached. The
// scorer only accepts classified claims, so an unclassified claim
// cannot reach scoring by construction.
type ClassifiedClaim struct {
	Claim
	Domain Domain `json:"domain"`
	// DomainConfidence expresses how decisively the domain won, 0-100.
	DomainConfidence float64 `json:"domain_confidence"`
}
