// Package evidence gathers and ranks evidence for claims. Retrieval
// is deliberately pluggable: the reference implementation fabricates
// deterministic excerpts from the claim's own keywords, and a real
// retrieval backend can be substituted without touching the scorer or
// anything downstream.
package evidence

import (
	"fmt"
	"sort"
	"strings"

	"github.com/avetrov/credence/internal/model"
)

// Default rank weights when the configuration supplies none.
const (
	DefaultCredibilityWeight = 0.5
	DefaultRelevanceWeight   = 0.5
)

// SourceProvider is the catalog surface the ranker consumes. The
// catalog is injected, never owned.
type SourceProvider interface {
	TrustedSources(d model.Domain) []model.Source
	IsTrusted(rawURL string, d model.Domain) bool
}

// Retriever produces evidence for a claim from candidate sources.
type Retriever interface {
	Retrieve(claim model.ClassifiedClaim, sources []model.Source, maxResults int) []model.Evidence
}

// SyntheticRetriever is the reference Retriever: no network, no I/O.
// It synthesizes one excerpt per source from the claim's search terms
// and derives relevance from source credibility.
type SyntheticRetriever struct{}

// NewSyntheticRetriever creates the reference retriever.
func NewSyntheticRetriever() *SyntheticRetriever {
	return &SyntheticRetriever{}
}

// Retrieve returns up to maxResults evidence records sorted by
// relevance descending. relevance = min(100, 0.8*credibility + 20).
func (r *SyntheticRetriever) Retrieve(claim model.ClassifiedClaim, sources []model.Source, maxResults int) []model.Evidence {
	terms := SearchTerms(claim.Text)
	cited := terms
	if len(cited) > 3 {
		cited = cited[:3]
	}

	out := make([]model.Evidence, 0, len(sources))
	for _, s := range sources {
		relevance := 0.8*s.CredibilityScore + 20
		if relevance > 100 {
			relevance = 100
		}
		excerpt := fmt.Sprintf("Reference material from %s discussing %s.", s.Name, strings.Join(cited, ", "))
		if len(cited) == 0 {
			excerpt = fmt.Sprintf("Reference material from %s.", s.Name)
		}
		out = append(out, model.Evidence{
			Source:           s.Name,
			SourceType:       s.Type,
			CredibilityScore: s.CredibilityScore,
			Relevance:        relevance,
			Excerpt:          excerpt,
			URL:              s.URL,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Relevance != out[j].Relevance {
			return out[i].Relevance > out[j].Relevance
		}
		return out[i].Source < out[j].Source
	})

	if maxResults > 0 && len(out) > maxResults {
		out = out[:maxResults]
	}
	return out
}

// RelevanceScore measures how relevant evidenceText is to the claim:
// keyword-set overlap ratio scaled to 100, plus 10 per claim trigram
// found verbatim in the evidence, capped at +30 and clamped to 100.
func RelevanceScore(claimText, evidenceText string) float64 {
	claimTerms := SearchTerms(claimText)
	if len(claimTerms) == 0 {
		return 0
	}

	evidenceTerms := make(map[string]bool)
	for _, t := range SearchTerms(evidenceText) {
		evidenceTerms[t] = true
	}

	overlap := 0
	for _, t := range claimTerms {
		if evidenceTerms[t] {
			overlap++
		}
	}
	score := float64(overlap) / float64(len(claimTerms)) * 100

	lowerEvidence := strings.ToLower(evidenceText)
	words := tokenize(claimText)
	bonus := 0.0
	for i := 0; i+3 <= len(words) && bonus < 30; i++ {
		phrase := strings.Join(words[i:i+3], " ")
		if strings.Contains(lowerEvidence, phrase) {
			bonus += 10
		}
	}
	if bonus > 30 {
		bonus = 30
	}

	score += bonus
	if score > 100 {
		score = 100
	}
	return score
}

// Rank sorts evidence by credWeight*credibility + relWeight*relevance
// descending. Zero weights fall back to the 0.5/0.5 defaults. The
// input slice is not modified.
func Rank(evidence []model.Evidence, credWeight, relWeight float64) []model.Evidence {
	if credWeight == 0 && relWeight == 0 {
		credWeight, relWeight = DefaultCredibilityWeight, DefaultRelevanceWeight
	}

	out := append([]model.Evidence(nil), evidence...)
	sort.SliceStable(out, func(i, j int) bool {
		si := credWeight*out[i].CredibilityScore + relWeight*out[i].Relevance
		sj := credWeight*out[j].CredibilityScore + relWeight*out[j].Relevance
		return si > sj
	})
	return out
}

// FilterByCredibility keeps evidence with credibility >= min.
func FilterByCredibility(evidence []model.Evidence, min float64) []model.Evidence {
	out := make([]model.Evidence, 0, len(evidence))
	for _, e := range evidence {
		if e.CredibilityScore >= min {
			out = append(out, e)
		}
	}
	return out
}

// FilterByRelevance keeps evidence with relevance >= min.
func FilterByRelevance(evidence []model.Evidence, min float64) []model.Evidence {
	out := make([]model.Evidence, 0, len(evidence))
	for _, e := range evidence {
		if e.Relevance >= min {
			out = append(out, e)
		}
	}
	return out
}

// stopWords excluded from search terms.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "is": true, "are": true,
	"was": true, "were": true, "be": true, "been": true, "being": true,
	"of": true, "in": true, "on": true, "at": true, "to": true,
	"and": true, "or": true, "but": true, "for": true, "with": true,
	"by": true, "from": true, "that": true, "this": true, "these": true,
	"those": true, "it": true, "its": true, "as": true, "has": true,
	"have": true, "had": true, "will": true, "would": true, "can": true,
	"could": true, "not": true, "no": true,
}

// SearchTerms strips stop-words from text and returns the remaining
// distinct terms in first-occurrence order.
func SearchTerms(text string) []string {
	var terms []string
	seen := make(map[string]bool)
	for _, w := range tokenize(text) {
		if stopWords[w] || seen[w] {
			continue
		}
		seen[w] = true
		terms = append(terms, w)
	}
	return terms
}

// tokenize lowercases text and splits it into bare alphanumeric words.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	})
}
