package model

import (
	"fmt"
	"time"
)

// RiskBand is a half-open confidence interval [Min, Max) mapped to one
// risk tier.
type RiskBand struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Contains reports whether v falls inside the band.
func (b RiskBand) Contains(v float64) bool {
	return v >= b.Min && v < b.Max
}

// TrustedSources filters the source catalog. A non-empty whitelist is
// exclusive: only listed source names are used. Blacklisted names are
// always removed.
type TrustedSources struct {
	Whitelist []string `yaml:"whitelist" json:"whitelist"`
	Blacklist []string `yaml:"blacklist" json:"blacklist"`
}

// CacheConfig controls the report cache wrapped around pipeline calls.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled"`
	Dir       string        `yaml:"dir" json:"dir"`
	TTL       time.Duration `yaml:"ttl" json:"ttl"`
	MemoryTTL time.Duration `yaml:"memory_ttl" json:"memory_ttl"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" json:"verbose"`
	IncludeFooter bool `yaml:"include_footer" json:"include_footer"`
}

// Config is the immutable configuration shared by every pipeline
// stage. The pipeline itself only reads ConfidenceThreshold, RiskBands,
// Trusted, CustomDomains and the evidence knobs; cache, worker and
// timeout settings are consumed by the CLI orchestration around it.
type Config struct {
	ConfidenceThreshold float64                `yaml:"confidence_threshold" json:"confidence_threshold"`
	RiskBands           map[RiskLevel]RiskBand `yaml:"risk_level_mappings" json:"risk_level_mappings"`
	Trusted             TrustedSources         `yaml:"trusted_sources" json:"trusted_sources"`
	// CustomDomains maps a domain name to extra primary keywords. A
	// name outside the built-in set declares a new domain, appended
	// after the built-ins in declaration order.
	CustomDomains map[string][]string `yaml:"custom_domains" json:"custom_domains"`

	MaxInputBytes     int     `yaml:"max_input_bytes" json:"max_input_bytes"`
	MaxEvidence       int     `yaml:"max_evidence" json:"max_evidence"`
	CredibilityWeight float64 `yaml:"credibility_weight" json:"credibility_weight"`
	RelevanceWeight   float64 `yaml:"relevance_weight" json:"relevance_weight"`

	Cache   CacheConfig   `yaml:"cache" json:"cache"`
	Workers int           `yaml:"workers" json:"workers"`
	Rate    float64       `yaml:"rate_per_second" json:"rate_per_second"`
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
	Output  OutputConfig  `yaml:"output" json:"output"`
}

// DefaultRiskBands returns the built-in band set:
// critical [0,30), high [30,50), medium [50,70), low [70,100).
// Confidence values outside every band fall back in the scorer
// (<30 critical, otherwise low), which keeps 100.0 in the low tier.
func DefaultRiskBands() map[RiskLevel]RiskBand {
	return map[RiskLevel]RiskBand{
		RiskCritical: {Min: 0, Max: 30},
		RiskHigh:     {Min: 30, Max: 50},
		RiskMedium:   {Min: 50, Max: 70},
		RiskLow:      {Min: 70, Max: 100},
	}
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		ConfidenceThreshold: 70,
		RiskBands:           DefaultRiskBands(),
		MaxInputBytes:       1_000_000,
		MaxEvidence:         5,
		CredibilityWeight:   0.5,
		RelevanceWeight:     0.5,
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".credence-cache",
			TTL:       24 * time.Hour,
			MemoryTTL: 30 * time.Minute,
		},
		Workers: 4,
		Rate:    10,
		Timeout: 2 * time.Minute,
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}

// ValidateRiskBands checks that all four tiers are present, each band
// is a well-formed sub-range of [0,100], and no two bands overlap.
// Callers that hit an error must discard the whole band set and use
// DefaultRiskBands; partial fallback is not allowed.
func (c *Config) ValidateRiskBands() error {
	levels := RiskLevels()

	for _, level := range levels {
		band, ok := c.RiskBands[level]
		if !ok {
			return fmt.Errorf("risk band %q missing", level)
		}
		if band.Min < 0 || band.Max > 100 || band.Min >= band.Max {
			return fmt.Errorf("risk band %q malformed: [%v,%v)", level, band.Min, band.Max)
		}
	}
	if len(c.RiskBands) != len(levels) {
		return fmt.Errorf("expected exactly %d risk bands, got %d", len(levels), len(c.RiskBands))
	}

	for i, a := range levels {
		for _, b := range levels[i+1:] {
			ba, bb := c.RiskBands[a], c.RiskBands[b]
			if ba.Min < bb.Max && bb.Min < ba.Max {
				return fmt.Errorf("risk bands %q and %q overlap", a, b)
			}
		}
	}

	return nil
}
