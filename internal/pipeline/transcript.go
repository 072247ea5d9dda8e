package pipeline

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/avetrov/credence/internal/evidence"
	"github.com/avetrov/credence/internal/model"
)

// Transcript verifies video/audio transcripts: the article stages plus
// manipulation-signal analysis over timestamped utterances.
type Transcript struct {
	article *Article
}

// NewTranscript creates a transcript pipeline sharing the article
// stage wiring.
func NewTranscript(cfg *model.Config, sources evidence.SourceProvider, retriever evidence.Retriever, obs Observer) *Transcript {
	return &Transcript{article: NewArticle(cfg, sources, retriever, obs)}
}

// VerifyTranscript verifies transcript text. Timestamp and speaker
// markers are stripped before claim extraction; manipulation signals
// keep the original utterance timing.
func (t *Transcript) VerifyTranscript(ctx context.Context, text, domainHint string) (*model.Report, error) {
	utterances := parseUtterances(text)

	var plain strings.Builder
	for _, u := range utterances {
		plain.WriteString(u.text)
		if !strings.HasSuffix(u.text, ".") && !strings.HasSuffix(u.text, "!") && !strings.HasSuffix(u.text, "?") {
			plain.WriteString(".")
		}
		plain.WriteString(" ")
	}

	signals := detectManipulation(utterances)
	return t.article.run(ctx, plain.String(), domainHint, signals)
}

// utterance is one transcript line with optional timing.
type utterance struct {
	speaker string
	text    string
	start   *float64 // seconds
	end     *float64
}

var (
	utteranceTimestamp = regexp.MustCompile(`^\[?(\d{1,2}):(\d{2})(?::(\d{2}))?\]?\s*`)
	utteranceSpeaker   = regexp.MustCompile(`^([A-Z][A-Z .'-]{1,30}):\s*`)
)

// parseUtterances splits transcript text into utterances, reading a
// leading [mm:ss] or [hh:mm:ss] timestamp and a SPEAKER: tag when
// present. Each utterance's end time is the next one's start.
func parseUtterances(text string) []utterance {
	var utterances []utterance
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		u := utterance{}
		if m := utteranceTimestamp.FindStringSubmatch(line); m != nil {
			secs := parseTimestamp(m)
			u.start = &secs
			line = line[len(m[0]):]
		}
		if m := utteranceSpeaker.FindStringSubmatch(line); m != nil {
			u.speaker = strings.TrimSpace(m[1])
			line = line[len(m[0]):]
		}

		u.text = strings.TrimSpace(line)
		if u.text == "" {
			continue
		}
		utterances = append(utterances, u)
	}

	for i := 0; i+1 < len(utterances); i++ {
		if utterances[i].start != nil && utterances[i+1].start != nil {
			utterances[i].end = utterances[i+1].start
		}
	}
	return utterances
}

func parseTimestamp(m []string) float64 {
	a, _ := strconv.Atoi(m[1])
	b, _ := strconv.Atoi(m[2])
	if m[3] != "" {
		c, _ := strconv.Atoi(m[3])
		return float64(a*3600 + b*60 + c)
	}
	return float64(a*60 + b)
}

// Deterministic manipulation heuristics. Word lists are data so the
// detection rules stay auditable.
var (
	emotionalWords = []string{
		"outrageous", "shocking", "disgusting", "terrifying", "horrifying",
		"unbelievable", "disaster", "catastrophe", "devastating", "scandalous",
	}
	absolutistWords = []string{
		"always", "never", "everyone", "nobody", "everybody", "all",
		"none", "obviously", "clearly", "undeniably", "certainly",
	}
	inconsistencyMarkers = []string{
		"that's not true", "that is not true", "i never said",
		"contradicts", "you said earlier", "but earlier you said",
	}
)

// detectManipulation scans utterances for the three signal types.
func detectManipulation(utterances []utterance) []model.ManipulationSignal {
	var signals []model.ManipulationSignal

	for _, u := range utterances {
		lower := strings.ToLower(u.text)
		words := strings.Fields(lower)

		if n := countWordHits(words, emotionalWords); n >= 2 {
			signals = append(signals, newSignal(
				model.SignalEmotionalManipulation, n, u,
				"Emotionally loaded language concentrated in a single utterance.",
			))
		}

		if n := countWordHits(words, absolutistWords); n >= 3 {
			signals = append(signals, newSignal(
				model.SignalNarrativeBias, n, u,
				"Absolutist framing leaves no room for competing accounts.",
			))
		}

		for _, marker := range inconsistencyMarkers {
			if strings.Contains(lower, marker) {
				signals = append(signals, newSignal(
					model.SignalLogicalInconsistency, 2, u,
					"The utterance disputes an earlier statement in the same transcript.",
				))
				break
			}
		}
	}

	return signals
}

func newSignal(kind model.SignalType, hits int, u utterance, description string) model.ManipulationSignal {
	severity := model.SeverityLow
	switch {
	case hits >= 4:
		severity = model.SeverityHigh
	case hits >= 3:
		severity = model.SeverityMedium
	}

	confidence := 40 + 10*float64(hits)
	if confidence > 90 {
		confidence = 90
	}

	return model.ManipulationSignal{
		Type:         kind,
		Severity:     severity,
		Confidence:   confidence,
		StartSeconds: u.start,
		EndSeconds:   u.end,
		Description:  description,
		Evidence:     u.text,
	}
}

// countWordHits counts occurrences of any listed word among the
// utterance's words.
func countWordHits(words []string, list []string) int {
	set := make(map[string]bool, len(list))
	for _, w := range list {
		set[w] = true
	}
	n := 0
	for _, w := range words {
		if set[strings.Trim(w, ".,!?;:\"'")] {
			n++
		}
	}
	return n
}
