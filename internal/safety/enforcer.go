// Package safety rewrites forbidden content classes out of report
// text and attaches topic disclaimers. The enforcer is a total
// function over well-formed reports: it never fails, and running it
// twice is equivalent to running it once.
package safety

import (
	"fmt"
	"strings"

	"github.com/avetrov/credence/internal/model"
)

// URLChecker is the catalog surface used to flag untrusted evidence
// URLs.
type URLChecker interface {
	IsTrusted(rawURL string, d model.Domain) bool
}

// Topic disclaimers, one fixed paragraph per detected sensitive topic.
// Appended, never replacing the incoming disclaimer, and only when not
// already present.
var topicDisclaimers = []struct {
	topic     string
	keywords  []string
	paragraph string
}{
	{
		topic:     "medical",
		keywords:  []string{"medical", "health", "disease", "treatment", "diagnosis", "medicine", "symptom", "vaccine", "drug"},
		paragraph: "This report may touch on medical topics. It is not medical advice; consult a qualified healthcare professional.",
	},
	{
		topic:     "political",
		keywords:  []string{"political", "election", "government", "policy", "vote", "congress", "parliament", "senate"},
		paragraph: "This report may touch on political topics. Verification covers factual support only and takes no political position.",
	},
	{
		topic:     "financial",
		keywords:  []string{"financial", "investment", "stock", "market", "money", "tax", "economy", "interest rate"},
		paragraph: "This report may touch on financial topics. It is not financial advice.",
	},
	{
		topic:     "legal",
		keywords:  []string{"legal", "law", "court", "lawsuit", "statute", "contract", "liability"},
		paragraph: "This report may touch on legal topics. It is not legal advice; consult a qualified attorney.",
	},
	{
		topic:     "religious",
		keywords:  []string{"religion", "religious", "faith", "church", "mosque", "temple", "sacred", "worship"},
		paragraph: "This report may touch on religious topics. Verification addresses factual support only, not matters of belief.",
	},
}

// lowConfidenceDisclaimer is appended when the report's average
// confidence sits below the configured threshold.
const lowConfidenceDisclaimer = "Average verification confidence is below the configured threshold; treat the conclusions as provisional."

// Enforcer applies the safety rule tables and disclaimers to reports.
type Enforcer struct {
	cfg  *model.Config
	urls URLChecker
}

// NewEnforcer creates an enforcer. urls may be nil, which disables
// URL trust warnings.
func NewEnforcer(cfg *model.Config, urls URLChecker) *Enforcer {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	return &Enforcer{cfg: cfg, urls: urls}
}

// Enforce returns a fresh report with every free-text field passed
// through the rule tables, untrusted evidence URLs recorded as
// warnings, and disclaimers appended for detected sensitive topics.
// The caller's report is not modified.
func (e *Enforcer) Enforce(r model.Report) model.Report {
	out := r.Clone()

	for i := range out.Claims {
		out.Claims[i].Reasoning = sanitizeText(out.Claims[i].Reasoning)
		out.Claims[i].Recommendation = sanitizeText(out.Claims[i].Recommendation)
	}
	for i := range out.ManipulationSignals {
		out.ManipulationSignals[i].Description = sanitizeText(out.ManipulationSignals[i].Description)
		out.ManipulationSignals[i].Evidence = sanitizeText(out.ManipulationSignals[i].Evidence)
	}
	out.HumanSummary = sanitizeText(out.HumanSummary)
	for i := range out.Recommendations {
		out.Recommendations[i] = sanitizeText(out.Recommendations[i])
	}

	e.flagUntrustedURLs(&out)
	e.appendDisclaimers(&out)

	return out
}

// flagUntrustedURLs checks every evidence URL against the catalog.
// Untrusted URLs become warnings; they never block the report.
func (e *Enforcer) flagUntrustedURLs(r *model.Report) {
	if e.urls == nil {
		return
	}
	for _, claim := range r.Claims {
		domain := claim.Claim.Domain
		for _, ev := range append(append([]model.Evidence(nil), claim.SupportingEvidence...), claim.ContradictingEvidence...) {
			if ev.URL == "" || e.urls.IsTrusted(ev.URL, domain) {
				continue
			}
			warning := fmt.Sprintf("evidence URL not in trusted catalog: %s", ev.URL)
			if !containsString(r.Warnings, warning) {
				r.Warnings = append(r.Warnings, warning)
			}
		}
	}
}

// appendDisclaimers adds one paragraph per sensitive topic detected in
// the combined claim, summary and reasoning text, plus one when the
// average confidence is below threshold. Paragraphs already present
// are not repeated.
func (e *Enforcer) appendDisclaimers(r *model.Report) {
	var combined strings.Builder
	for _, claim := range r.Claims {
		combined.WriteString(claim.Claim.Text)
		combined.WriteString(" ")
		combined.WriteString(claim.Reasoning)
		combined.WriteString(" ")
	}
	combined.WriteString(r.HumanSummary)
	lower := strings.ToLower(combined.String())

	for _, td := range topicDisclaimers {
		if !containsAnyKeyword(lower, td.keywords) {
			continue
		}
		r.Disclaimer = appendParagraph(r.Disclaimer, td.paragraph)
	}

	if r.SummaryStatistics.AverageConfidence < e.cfg.ConfidenceThreshold {
		r.Disclaimer = appendParagraph(r.Disclaimer, lowConfidenceDisclaimer)
	}
}

// appendParagraph appends to (never replaces) the disclaimer, skipping
// paragraphs already present so repeated enforcement stays stable.
func appendParagraph(disclaimer, paragraph string) string {
	if strings.Contains(disclaimer, paragraph) {
		return disclaimer
	}
	if disclaimer == "" {
		return paragraph
	}
	return disclaimer + "\n\n" + paragraph
}

func containsAnyKeyword(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
