package model

import "time"

// SourceType classifies the publication type of a source.
type SourceType string

const (
	SourceTypeAcademic     SourceType = "academic"
	SourceTypeNews         SourceType = "news"
	SourceTypeGovernment   SourceType = "government"
	SourceTypeEncyclopedia SourceType = "encyclopedia"
)

// Evidence is a source excerpt plus scores used to support or
// contradict a claim. Evidence values are read-only after creation.
type Evidence struct {
	Source           string     `json:"source"`
	SourceType       SourceType `json:"source_type"`
	CredibilityScore float64    `json:"credibility_score"` // 0-100
	Relevance        float64    `json:"relevance"`         // 0-100
	Excerpt          string     `json:"excerpt"`
	URL              string     `json:"url,omitempty"`
	PublicationDate  *time.Time `json:"publication_date,omitempty"`
}

// Source is a catalog entry: a named publication with a static
// credibility score and the domains it is relevant to.
type Source struct {
	Name             string     `json:"name"`
	URL              string     `json:"url"`
	Type             SourceType `json:"source_type"`
	CredibilityScore float64    `json:"credibility_score"` // 0-100
	Domains          []Domain   `json:"domains"`
}

// AppliesTo reports whether the source covers the given domain.
func (s Source) AppliesTo(d Domain) bool {
	for _, sd := range s.Domains {
		if sd == d {
			return true
		}
	}
	return false
}
