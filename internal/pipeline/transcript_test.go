package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/avetrov/credence/internal/catalog"
	"github.com/avetrov/credence/internal/evidence"
	"github.com/avetrov/credence/internal/model"
)

func TestParseUtterances_TimestampsAndSpeakers(t *testing.T) {
	text := "[00:05] HOST: Welcome to the show.\n[00:30] GUEST: Water boils at 100 degrees Celsius.\n[01:02:10] HOST: Thanks."

	utterances := parseUtterances(text)

	if len(utterances) != 3 {
		t.Fatalf("Expected 3 utterances, got %d", len(utterances))
	}

	first := utterances[0]
	if first.speaker != "HOST" {
		t.Errorf("Expected speaker HOST, got %q", first.speaker)
	}
	if first.text != "Welcome to the show." {
		t.Errorf("Unexpected text: %q", first.text)
	}
	if first.start == nil || *first.start != 5 {
		t.Errorf("Expected start 5s, got %v", first.start)
	}
	// End time comes from the next utterance's start.
	if first.end == nil || *first.end != 30 {
		t.Errorf("Expected end 30s, got %v", first.end)
	}

	// hh:mm:ss timestamps parse to seconds.
	third := utterances[2]
	if third.start == nil || *third.start != 3730 {
		t.Errorf("Expected start 3730s, got %v", third.start)
	}
	if third.end != nil {
		t.Errorf("Last utterance has no end time, got %v", third.end)
	}
}

func TestParseUtterances_PlainLines(t *testing.T) {
	utterances := parseUtterances("First line of speech.\n\nSecond line.")

	if len(utterances) != 2 {
		t.Fatalf("Expected 2 utterances, got %d", len(utterances))
	}
	if utterances[0].start != nil || utterances[0].speaker != "" {
		t.Errorf("Expected bare utterance, got %+v", utterances[0])
	}
}

func TestDetectManipulation_EmotionalLanguage(t *testing.T) {
	utterances := parseUtterances("[00:10] This shocking and outrageous disaster changes everything.")

	signals := detectManipulation(utterances)

	if len(signals) != 1 {
		t.Fatalf("Expected 1 signal, got %d", len(signals))
	}
	s := signals[0]
	if s.Type != model.SignalEmotionalManipulation {
		t.Errorf("Expected emotional manipulation, got %v", s.Type)
	}
	// Three hits: shocking, outrageous, disaster.
	if s.Severity != model.SeverityMedium {
		t.Errorf("Expected medium severity for 3 hits, got %v", s.Severity)
	}
	if s.Confidence != 70 {
		t.Errorf("Expected confidence 70, got %v", s.Confidence)
	}
	if s.StartSeconds == nil || *s.StartSeconds != 10 {
		t.Errorf("Expected signal timing preserved, got %v", s.StartSeconds)
	}
}

func TestDetectManipulation_AbsolutistFraming(t *testing.T) {
	utterances := parseUtterances("Everyone always agrees; nobody ever disputes it, obviously.")

	signals := detectManipulation(utterances)

	found := false
	for _, s := range signals {
		if s.Type == model.SignalNarrativeBias {
			found = true
			if s.Severity != model.SeverityHigh {
				t.Errorf("Expected high severity for 4 hits, got %v", s.Severity)
			}
		}
	}
	if !found {
		t.Errorf("Expected a narrative-bias signal, got %v", signals)
	}
}

func TestDetectManipulation_Inconsistency(t *testing.T) {
	utterances := parseUtterances("GUEST: That's not true, I never said that.")

	signals := detectManipulation(utterances)

	found := false
	for _, s := range signals {
		if s.Type == model.SignalLogicalInconsistency {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected a logical-inconsistency signal, got %v", signals)
	}
}

func TestDetectManipulation_NeutralSpeech(t *testing.T) {
	utterances := parseUtterances("[00:10] The measurement was taken at noon.\n[00:20] The result was 42.")

	if signals := detectManipulation(utterances); len(signals) != 0 {
		t.Errorf("Expected no signals from neutral speech, got %v", signals)
	}
}

func TestTranscript_VerifyTranscript_EndToEnd(t *testing.T) {
	cfg := model.DefaultConfig()
	p := NewTranscript(cfg, catalog.New(cfg.Trusted), evidence.NewSyntheticRetriever(), nil)

	text := "[00:05] HOST: Water boils at 100 degrees Celsius\n" +
		"[00:30] GUEST: This shocking, outrageous disaster proves everything"

	rep, err := p.VerifyTranscript(context.Background(), text, "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(rep.Claims) == 0 {
		t.Error("Expected claims extracted from utterance text")
	}
	if len(rep.ManipulationSignals) == 0 {
		t.Error("Expected manipulation signals in the report")
	}
	// Timestamp and speaker markers never leak into claim text.
	for _, c := range rep.Claims {
		for _, fragment := range []string{"[00:", "HOST:", "GUEST:"} {
			if strings.Contains(c.Claim.Text, fragment) {
				t.Errorf("Transcript marker %q leaked into claim %q", fragment, c.Claim.Text)
			}
		}
	}
}
