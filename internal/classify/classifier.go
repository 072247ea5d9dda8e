package classify

import (
	"sort"
	"strings"

	"github.com/avetrov/credence/internal/model"
)

// scoreThreshold is the minimum winning score; anything below falls
// back to the general domain.
const scoreThreshold = 1.0

const (
	primaryWeight   = 2.0
	secondaryWeight = 1.0

	// Companion-confidence defaults.
	generalConfidence    = 30.0
	soleScorerConfidence = 50.0
)

// keywordSet holds the weighted vocabulary for one domain. Single-word
// keywords match whole words; multi-word keywords match as substrings.
type keywordSet struct {
	domain    model.Domain
	primary   []string
	secondary []string
}

func builtinKeywordSets() []keywordSet {
	return []keywordSet{
		{
			domain: model.DomainPhysics,
			primary: []string{
				"energy", "force", "quantum", "particle", "gravity",
				"velocity", "mass", "atom", "radiation", "momentum",
				"speed of light", "boils", "freezes",
			},
			secondary: []string{
				"temperature", "light", "motion", "wave", "heat",
				"pressure", "electric", "magnetic", "nuclear", "degrees",
				"celsius", "fahrenheit",
			},
		},
		{
			domain: model.DomainBiology,
			primary: []string{
				"cell", "cells", "dna", "gene", "genes", "protein",
				"organism", "evolution", "species", "bacteria", "virus",
				"enzyme", "chromosome",
			},
			secondary: []string{
				"blood", "brain", "plant", "animal", "body", "disease",
				"immune", "tissue", "organ", "biological",
			},
		},
		{
			domain: model.DomainHistory,
			primary: []string{
				"century", "empire", "war", "revolution", "ancient",
				"dynasty", "treaty", "civilization", "medieval", "monarchy",
				"world war",
			},
			secondary: []string{
				"king", "queen", "battle", "era", "colonial", "historic",
				"historical", "founded", "reign", "kingdom",
			},
		},
		{
			domain: model.DomainStatistics,
			primary: []string{
				"percent", "percentage", "average", "median", "probability",
				"correlation", "survey", "sample", "statistics", "statistic",
				"per capita",
			},
			secondary: []string{
				"data", "increase", "decrease", "majority", "minority",
				"ratio", "trend", "estimated", "rate", "population",
			},
		},
	}
}

// Classifier scores claims against per-domain weighted keyword sets.
// Domains are evaluated in declaration order, and a later domain only
// displaces the leader with a strictly greater score, so the earlier
// domain wins exact ties.
type Classifier struct {
	domains []keywordSet
}

// NewClassifier creates a classifier. Custom per-domain keywords from
// the configuration are appended to the primary list before scoring;
// names outside the built-in set declare new domains after them.
func NewClassifier(cfg *model.Config) *Classifier {
	sets := builtinKeywordSets()

	if cfg != nil && len(cfg.CustomDomains) > 0 {
		known := make(map[model.Domain]int, len(sets))
		for i, ks := range sets {
			known[ks.domain] = i
		}

		// Built-in extensions first, then new domains in a stable order.
		var custom []string
		for name := range cfg.CustomDomains {
			custom = append(custom, name)
		}
		sort.Strings(custom)

		for _, name := range custom {
			keywords := cfg.CustomDomains[name]
			d := model.Domain(name)
			if idx, ok := known[d]; ok {
				sets[idx].primary = append(sets[idx].primary, lowerAll(keywords)...)
				continue
			}
			if d == model.DomainGeneral {
				continue // general is the fallback, never scored
			}
			sets = append(sets, keywordSet{domain: d, primary: lowerAll(keywords)})
		}
	}

	return &Classifier{domains: sets}
}

// Classify attaches the best-scoring domain to the claim, or general
// when no domain clears the threshold.
func (c *Classifier) Classify(claim model.Claim) model.ClassifiedClaim {
	domain, confidence := c.classifyText(claim.Text)
	return model.ClassifiedClaim{
		Claim:            claim,
		Domain:           domain,
		DomainConfidence: confidence,
	}
}

// classifyText scores every domain and returns the winner plus a
// companion confidence: how much the winner exceeded the runner-up,
// scaled into [0,100]. The general fallback reports 30; a winner with
// no other domain above zero reports 50.
func (c *Classifier) classifyText(text string) (model.Domain, float64) {
	lower := strings.ToLower(text)
	words := wordSet(lower)

	best, next := 0.0, 0.0
	winner := model.DomainGeneral
	for _, ks := range c.domains {
		score := scoreKeywords(lower, words, ks)
		if score > best {
			next = best
			best = score
			winner = ks.domain
		} else if score > next {
			next = score
		}
	}

	if best < scoreThreshold {
		return model.DomainGeneral, generalConfidence
	}
	if next == 0 {
		return winner, soleScorerConfidence
	}
	confidence := 50 + 50*(best-next)/best
	if confidence > 100 {
		confidence = 100
	}
	return winner, confidence
}

// scoreKeywords counts distinct keyword matches: 2.0 per primary,
// 1.0 per secondary.
func scoreKeywords(lower string, words map[string]bool, ks keywordSet) float64 {
	var score float64
	for _, kw := range ks.primary {
		if keywordMatches(lower, words, kw) {
			score += primaryWeight
		}
	}
	for _, kw := range ks.secondary {
		if keywordMatches(lower, words, kw) {
			score += secondaryWeight
		}
	}
	return score
}

// keywordMatches applies whole-word matching for single-word keywords
// and substring matching for phrases.
func keywordMatches(lower string, words map[string]bool, keyword string) bool {
	if strings.ContainsRune(keyword, ' ') {
		return strings.Contains(lower, keyword)
	}
	return words[keyword]
}

// wordSet tokenizes lowered text into a set of bare words.
func wordSet(lower string) map[string]bool {
	words := make(map[string]bool)
	for _, f := range strings.FieldsFunc(lower, func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	}) {
		words[f] = true
	}
	return words
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
