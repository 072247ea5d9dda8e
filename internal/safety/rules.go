package safety

import "regexp"

// Category names a forbidden content class.
type Category string

const (
	CategoryIntentionAttribution Category = "intention_attribution"
	CategoryPoliticalJudgment    Category = "political_judgment"
	CategoryMedicalAdvice        Category = "medical_advice"
	CategoryFabricatedSource     Category = "fabricated_source"
)

// Rule is one declarative rewrite: text matching Pattern is replaced
// with Replacement. Rules are data, not code, so every forbidden
// content class can be audited and tested table-style.
type Rule struct {
	Category    Category
	Pattern     *regexp.Regexp
	Replacement string
}

// rules are applied in this fixed order to every free-text field,
// unconditionally. Replacements must never themselves match any rule,
// or a second enforcement pass would keep rewriting.
var rules = []Rule{
	{
		Category: CategoryIntentionAttribution,
		// Whole-clause capture: a matched clause is replaced wholesale
		// with a neutral observation sentence.
		Pattern:     regexp.MustCompile(`(?i)[^.!?]*\b(?:deliberately|intentionally|purposely|on\s+purpose|hidden\s+agenda|intends?\s+to\s+(?:mislead|deceive|manipulate|confuse)|intended\s+to\s+(?:mislead|deceive|manipulate|confuse)|designed\s+to\s+(?:mislead|deceive|manipulate))\b[^.!?]*[.!?]?`),
		Replacement: "The text makes assertions whose framing could not be independently verified.",
	},
	{
		Category:    CategoryPoliticalJudgment,
		Pattern:     regexp.MustCompile(`(?i)\b(?:left-wing|right-wing|liberal|conservative|partisan)\s+(?:bias|agenda|propaganda|slant|spin)\b|\bpolitically\s+(?:motivated|biased|slanted)\b`),
		Replacement: "content with political themes",
	},
	{
		Category:    CategoryMedicalAdvice,
		Pattern:     regexp.MustCompile(`(?i)\byou\s+should\s+(?:take|use|try|stop\s+taking|start\s+taking)\b[^.!?]*|\b(?:recommended|prescribed)\s+(?:treatment|dosage|medication)\b[^.!?]*|\bwill\s+cure\b[^.!?]*|\bdiagnos(?:e|es|ed|ing)\s+(?:yourself|you|your)\b[^.!?]*`),
		Replacement: "medical information (consult healthcare professional)",
	},
	{
		Category:    CategoryFabricatedSource,
		Pattern:     regexp.MustCompile(`(?i)\baccording\s+to\s+(?:a|one|some|an?\s+recent)\s+(?:study|studies|report|survey|source|expert)s?\b|\b(?:studies|experts|researchers|scientists|sources)\s+(?:show|say|claim|suggest|agree|confirm|believe)\b|\bresearch\s+(?:shows|suggests|indicates|proves|confirms)\b`),
		Replacement: "claims requiring specific source verification",
	},
}

// Rules returns a copy of the ordered rule table for inspection.
func Rules() []Rule {
	return append([]Rule(nil), rules...)
}

// Violation is one detected occurrence of forbidden content.
type Violation struct {
	Category Category `json:"category"`
	Match    string   `json:"match"`
}

// CheckContentSafety scans text against every rule and reports all
// matches. Sanitized text reports none.
func CheckContentSafety(text string) []Violation {
	var violations []Violation
	for _, r := range rules {
		for _, m := range r.Pattern.FindAllString(text, -1) {
			violations = append(violations, Violation{Category: r.Category, Match: m})
		}
	}
	return violations
}

// sanitizeText applies every rule in order. All rules run even after
// earlier matches; there is no early exit.
func sanitizeText(text string) string {
	for _, r := range rules {
		text = r.Pattern.ReplaceAllString(text, r.Replacement)
	}
	return text
}
