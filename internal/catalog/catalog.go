// Package catalog holds the static registry of named sources. The
// catalog is an immutable value built once at startup and injected
// into consumers; registering a source produces a new catalog rather
// than mutating shared state.
package catalog

import (
	"sort"
	"strings"

	"github.com/avetrov/credence/internal/model"
)

// builtinSources is the default registry. General-purpose entries
// carry the general domain tag and are unioned into every lookup.
func builtinSources() []model.Source {
	return []model.Source{
		{Name: "Nature", URL: "https://www.nature.com", Type: model.SourceTypeAcademic, CredibilityScore: 95, Domains: []model.Domain{model.DomainPhysics, model.DomainBiology}},
		{Name: "Science", URL: "https://www.science.org", Type: model.SourceTypeAcademic, CredibilityScore: 94, Domains: []model.Domain{model.DomainPhysics, model.DomainBiology}},
		{Name: "arXiv", URL: "https://arxiv.org", Type: model.SourceTypeAcademic, CredibilityScore: 88, Domains: []model.Domain{model.DomainPhysics, model.DomainStatistics}},
		{Name: "NASA", URL: "https://www.nasa.gov", Type: model.SourceTypeGovernment, CredibilityScore: 94, Domains: []model.Domain{model.DomainPhysics}},
		{Name: "NIST", URL: "https://www.nist.gov", Type: model.SourceTypeGovernment, CredibilityScore: 93, Domains: []model.Domain{model.DomainPhysics, model.DomainStatistics}},
		{Name: "PubMed", URL: "https://pubmed.ncbi.nlm.nih.gov", Type: model.SourceTypeAcademic, CredibilityScore: 92, Domains: []model.Domain{model.DomainBiology}},
		{Name: "NIH", URL: "https://www.nih.gov", Type: model.SourceTypeGovernment, CredibilityScore: 93, Domains: []model.Domain{model.DomainBiology}},
		{Name: "WHO", URL: "https://www.who.int", Type: model.SourceTypeGovernment, CredibilityScore: 92, Domains: []model.Domain{model.DomainBiology, model.DomainStatistics}},
		{Name: "JSTOR", URL: "https://www.jstor.org", Type: model.SourceTypeAcademic, CredibilityScore: 90, Domains: []model.Domain{model.DomainHistory}},
		{Name: "National Archives", URL: "https://www.archives.gov", Type: model.SourceTypeGovernment, CredibilityScore: 91, Domains: []model.Domain{model.DomainHistory}},
		{Name: "Library of Congress", URL: "https://www.loc.gov", Type: model.SourceTypeGovernment, CredibilityScore: 90, Domains: []model.Domain{model.DomainHistory}},
		{Name: "US Census Bureau", URL: "https://www.census.gov", Type: model.SourceTypeGovernment, CredibilityScore: 91, Domains: []model.Domain{model.DomainStatistics}},
		{Name: "OECD", URL: "https://www.oecd.org", Type: model.SourceTypeGovernment, CredibilityScore: 89, Domains: []model.Domain{model.DomainStatistics}},
		{Name: "Reuters", URL: "https://www.reuters.com", Type: model.SourceTypeNews, CredibilityScore: 88, Domains: []model.Domain{model.DomainGeneral}},
		{Name: "Associated Press", URL: "https://apnews.com", Type: model.SourceTypeNews, CredibilityScore: 88, Domains: []model.Domain{model.DomainGeneral}},
		{Name: "BBC News", URL: "https://www.bbc.com/news", Type: model.SourceTypeNews, CredibilityScore: 85, Domains: []model.Domain{model.DomainGeneral}},
		{Name: "Encyclopaedia Britannica", URL: "https://www.britannica.com", Type: model.SourceTypeEncyclopedia, CredibilityScore: 89, Domains: []model.Domain{model.DomainGeneral, model.DomainHistory}},
		{Name: "Wikipedia", URL: "https://en.wikipedia.org", Type: model.SourceTypeEncyclopedia, CredibilityScore: 75, Domains: []model.Domain{model.DomainGeneral}},
	}
}

// Catalog is a read-only source registry with whitelist/blacklist
// filtering from configuration.
type Catalog struct {
	sources   []model.Source
	whitelist map[string]bool
	blacklist map[string]bool
}

// New builds a catalog from the built-in registry and the configured
// trusted-source filters.
func New(trusted model.TrustedSources) *Catalog {
	c := &Catalog{
		sources:   builtinSources(),
		whitelist: make(map[string]bool, len(trusted.Whitelist)),
		blacklist: make(map[string]bool, len(trusted.Blacklist)),
	}
	for _, name := range trusted.Whitelist {
		c.whitelist[name] = true
	}
	for _, name := range trusted.Blacklist {
		c.blacklist[name] = true
	}
	return c
}

// WithSource returns a new catalog that also contains s. The receiver
// is left untouched; runtime registration is never persisted.
func (c *Catalog) WithSource(s model.Source) *Catalog {
	out := &Catalog{
		sources:   append(append([]model.Source(nil), c.sources...), s),
		whitelist: c.whitelist,
		blacklist: c.blacklist,
	}
	return out
}

// TrustedSources returns the sources applicable to the domain unioned
// with the always-included general-purpose sources, filtered by the
// configured whitelist (exclusive when non-empty) and blacklist, and
// sorted by credibility descending. Name breaks credibility ties so
// the order is deterministic.
func (c *Catalog) TrustedSources(d model.Domain) []model.Source {
	var out []model.Source
	for _, s := range c.sources {
		if !s.AppliesTo(d) && !s.AppliesTo(model.DomainGeneral) {
			continue
		}
		if len(c.whitelist) > 0 && !c.whitelist[s.Name] {
			continue
		}
		if c.blacklist[s.Name] {
			continue
		}
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CredibilityScore != out[j].CredibilityScore {
			return out[i].CredibilityScore > out[j].CredibilityScore
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// IsTrusted reports whether rawURL prefix-matches a catalog source
// applicable to the domain (or to general).
func (c *Catalog) IsTrusted(rawURL string, d model.Domain) bool {
	for _, s := range c.TrustedSources(d) {
		if s.URL != "" && strings.HasPrefix(rawURL, s.URL) {
			return true
		}
	}
	return false
}

// All returns a copy of every registered source, unfiltered.
func (c *Catalog) All() []model.Source {
	return append([]model.Source(nil), c.sources...)
}
