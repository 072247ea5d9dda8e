package extract

import (
	"errors"
	"regexp"
	"sort"
	"strings"

	"github.com/avetrov/credence/internal/model"
	"github.com/google/uuid"
)

// ErrClaimNotFound is returned by ClaimBoundaries when the claim text
// does not occur in the source. This indicates a caller bug, not bad
// input, and is never retried.
var ErrClaimNotFound = errors.New("claim not found in source text")

// abbreviations that must not terminate a sentence at their dot.
var abbreviations = map[string]bool{
	"dr": true, "mr": true, "mrs": true, "ms": true, "prof": true,
	"sr": true, "jr": true, "st": true, "vs": true, "etc": true,
	"e.g": true, "i.e": true, "inc": true, "ltd": true, "co": true,
	"no": true, "fig": true, "al": true, "approx": true, "dept": true,
	"u.s": true, "u.k": true,
}

type assertionPattern struct {
	name string
	re   *regexp.Regexp
}

// Extractor segments text into sentences and keeps the ones that read
// as factual assertions.
type Extractor struct {
	patterns   []assertionPattern
	definitive *regexp.Regexp
	hedged     *regexp.Regexp
	imperative map[string]bool
}

// NewExtractor creates an extractor with the fixed assertion pattern
// library.
func NewExtractor() *Extractor {
	return &Extractor{
		patterns: []assertionPattern{
			{"numeric_unit", regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*(?:percent|degrees?|celsius|fahrenheit|kelvin|kilometers?|km|miles?|meters?|metres?|feet|kilograms?|kg|pounds?|tons?|years?|hours?|minutes?|seconds?|liters?|litres?)\b|\d+(?:\.\d+)?\s*%`)},
			{"causal", regexp.MustCompile(`(?i)\b(?:causes?|caused|leads?\s+to|led\s+to|results?\s+in|resulted\s+in|due\s+to|because\s+of|triggers?|triggered)\b`)},
			{"date_anchored", regexp.MustCompile(`(?i)\b(?:in|since|by|during|before|after|until)\s+(?:\d{3,4}|the\s+\d{1,2}(?:st|nd|rd|th)\s+century)\b`)},
			{"comparative", regexp.MustCompile(`(?i)\b(?:more|less|fewer|higher|lower|greater|larger|smaller|faster|slower|longer|shorter|better|worse)\s+than\b`)},
			{"superlative", regexp.MustCompile(`(?i)\b(?:largest|smallest|biggest|tallest|fastest|slowest|oldest|newest|earliest|latest|highest|lowest|deepest|longest|shortest|most|least|best|worst|first)\b`)},
			{"percentage_ratio", regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*percent(?:age)?\b|\b\d+\s+(?:out\s+of|in)\s+\d+\b|\bratio\s+of\b`)},
			{"location_composition", regexp.MustCompile(`(?i)\b(?:is|are|was|were)\s+(?:located|situated|found)\s+in\b|\b(?:consists?\s+of|composed\s+of|comprises?|contains?|made\s+(?:of|up\s+of))\b`)},
		},
		definitive: regexp.MustCompile(`(?i)\b(?:is|are|was|were|has|have|had|will|can|does|did|must)\b`),
		hedged:     regexp.MustCompile(`(?i)\b(?:maybe|perhaps|probably|possibly|might|allegedly|supposedly|apparently|seems?|appears?)\b|\bi\s+think\b|\bi\s+believe\b|\bi\s+guess\b|\bin\s+my\s+opinion\b|\bcould\s+be\b`),
		imperative: map[string]bool{
			"please": true, "let": true, "let's": true, "do": true,
			"don't": true, "consider": true, "note": true, "remember": true,
			"imagine": true, "try": true, "check": true, "look": true,
			"listen": true, "stop": true, "make": true,
		},
	}
}

type sentence struct {
	text string
	span model.Span
}

// Extract returns the factual assertions found in text, in source
// order, with original character offsets. Empty or whitespace-only
// input yields an empty result, never an error: the extractor only
// adds claims it is confident about.
func (e *Extractor) Extract(text string) []model.Claim {
	var claims []model.Claim
	for _, s := range splitSentences(text) {
		if !e.isFactualAssertion(s.text) {
			continue
		}
		claims = append(claims, model.Claim{
			ID:       uuid.NewString(),
			Text:     s.text,
			Position: s.span,
		})
	}
	return claims
}

// isFactualAssertion applies the surface-pattern library, falling back
// to a definitive-verb check guarded against hedged and imperative
// phrasing. Questions are never assertions.
func (e *Extractor) isFactualAssertion(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || strings.HasSuffix(trimmed, "?") {
		return false
	}

	for _, p := range e.patterns {
		if p.re.MatchString(trimmed) {
			return true
		}
	}

	if !e.definitive.MatchString(trimmed) {
		return false
	}
	if e.hedged.MatchString(trimmed) {
		return false
	}
	first := strings.ToLower(strings.TrimRight(firstWord(trimmed), ",.!"))
	return !e.imperative[first]
}

// ClaimBoundaries locates claimText inside text and returns its span.
func ClaimBoundaries(text, claimText string) (model.Span, error) {
	idx := strings.Index(text, claimText)
	if idx < 0 {
		return model.Span{}, ErrClaimNotFound
	}
	return model.Span{Start: idx, End: idx + len(claimText)}, nil
}

// MergeOverlappingClaims collapses claims whose spans overlap, keeping
// the one with the larger span. On equal spans the claim reaching
// further into the text wins. Input order is not assumed; output is
// sorted by start offset.
func MergeOverlappingClaims(claims []model.Claim) []model.Claim {
	if len(claims) <= 1 {
		return append([]model.Claim(nil), claims...)
	}

	sorted := append([]model.Claim(nil), claims...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Position.Start != sorted[j].Position.Start {
			return sorted[i].Position.Start < sorted[j].Position.Start
		}
		return sorted[i].Position.End < sorted[j].Position.End
	})

	merged := []model.Claim{sorted[0]}
	for _, c := range sorted[1:] {
		last := &merged[len(merged)-1]
		if !c.Position.Overlaps(last.Position) {
			merged = append(merged, c)
			continue
		}
		if c.Position.Len() > last.Position.Len() ||
			(c.Position.Len() == last.Position.Len() && c.Position.End > last.Position.End) {
			*last = c
		}
	}
	return merged
}

// splitSentences segments text on boundary punctuation, protecting
// known abbreviations and single-letter initials from false splits.
// Spans index into the original text.
func splitSentences(text string) []sentence {
	var sentences []sentence
	start := -1 // first non-space index of the current sentence

	flush := func(end int) {
		if start < 0 {
			return
		}
		raw := text[start:end]
		trimmed := strings.TrimRight(raw, " \t\n\r")
		if hasLetter(trimmed) {
			sentences = append(sentences, sentence{
				text: trimmed,
				span: model.Span{Start: start, End: start + len(trimmed)},
			})
		}
		start = -1
	}

	for i := 0; i < len(text); i++ {
		ch := text[i]
		if start < 0 {
			if !isSpace(ch) {
				start = i
			}
			continue
		}

		if ch != '.' && ch != '!' && ch != '?' {
			continue
		}
		// A terminator only ends the sentence at a break.
		if i+1 < len(text) && !isSpace(text[i+1]) {
			continue
		}
		if ch == '.' && protectedDot(text, i) {
			continue
		}
		flush(i + 1)
	}
	flush(len(text))

	return sentences
}

// protectedDot reports whether the dot at index i belongs to an
// abbreviation or a single-letter initial.
func protectedDot(text string, i int) bool {
	j := i
	for j > 0 {
		prev := text[j-1]
		if isWordByte(prev) || prev == '.' {
			j--
			continue
		}
		break
	}
	word := strings.ToLower(strings.Trim(text[j:i], "."))
	if word == "" {
		return false
	}
	if abbreviations[word] {
		return true
	}
	// Single letters read as initials ("J. Smith"), not boundaries.
	return len(word) == 1 && word[0] >= 'a' && word[0] <= 'z'
}

func firstWord(s string) string {
	if idx := strings.IndexAny(s, " \t\n"); idx >= 0 {
		return s[:idx]
	}
	return s
}

func hasLetter(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isWordByte(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
