// Package pipeline wires the verification stages together. Every
// stage is a pure function of its input plus the immutable
// configuration and catalog, so one pipeline value may serve any
// number of goroutines concurrently with no locking.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avetrov/credence/internal/classify"
	"github.com/avetrov/credence/internal/evidence"
	"github.com/avetrov/credence/internal/extract"
	"github.com/avetrov/credence/internal/model"
	"github.com/avetrov/credence/internal/report"
	"github.com/avetrov/credence/internal/safety"
	"github.com/avetrov/credence/internal/score"
	"github.com/avetrov/credence/internal/uncertainty"
)

var (
	// ErrEmptyInput is returned for empty or whitespace-only input.
	// The extractor itself treats such input as zero claims; the
	// orchestrator is where the non-empty contract is enforced.
	ErrEmptyInput = errors.New("input text is empty")

	// ErrInputTooLarge is returned when input exceeds the configured
	// maximum length.
	ErrInputTooLarge = errors.New("input text exceeds maximum length")

	// ErrUnknownDomain is returned for a domain hint outside the
	// enumerated set.
	ErrUnknownDomain = errors.New("unknown domain hint")
)

// hintConfidence is the domain confidence recorded when a claim falls
// back to the caller-supplied hint.
const hintConfidence = 50.0

// Article runs the full verification pipeline over article-style text.
type Article struct {
	cfg        *model.Config
	extractor  *extract.Extractor
	classifier *classify.Classifier
	sources    evidence.SourceProvider
	retriever  evidence.Retriever
	scorer     *score.Scorer
	assembler  *report.Assembler
	enforcer   *safety.Enforcer
	annotator  *uncertainty.Annotator
	observer   Observer
}

// NewArticle creates an article pipeline. The source catalog and the
// retriever are injected; pass evidence.NewSyntheticRetriever() for
// the reference behavior. A nil observer disables stage events.
func NewArticle(cfg *model.Config, sources evidence.SourceProvider, retriever evidence.Retriever, obs Observer) *Article {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	if obs == nil {
		obs = NopObserver{}
	}
	return &Article{
		cfg:        cfg,
		extractor:  extract.NewExtractor(),
		classifier: classify.NewClassifier(cfg),
		sources:    sources,
		retriever:  retriever,
		scorer:     score.NewScorer(cfg),
		assembler:  report.NewAssembler(cfg),
		enforcer:   safety.NewEnforcer(cfg, sources),
		annotator:  uncertainty.NewAnnotator(cfg.ConfidenceThreshold),
		observer:   obs,
	}
}

// VerifyText verifies article text and returns the safety-filtered,
// uncertainty-annotated report. domainHint, when non-empty, must be
// one of the enumerated domains and is used for claims the classifier
// would otherwise leave in the general domain.
func (p *Article) VerifyText(ctx context.Context, text, domainHint string) (*model.Report, error) {
	return p.run(ctx, text, domainHint, nil)
}

// run is the shared stage sequence for both orchestrators.
func (p *Article) run(ctx context.Context, text, domainHint string, signals []model.ManipulationSignal) (*model.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}
	if p.cfg.MaxInputBytes > 0 && len(text) > p.cfg.MaxInputBytes {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(text), p.cfg.MaxInputBytes)
	}
	hint := model.Domain(domainHint)
	if domainHint != "" && !hint.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDomain, domainHint)
	}

	started := time.Now()

	stageStart := time.Now()
	claims := extract.MergeOverlappingClaims(p.extractor.Extract(text))
	p.observer.StageCompleted(StageExtract, time.Since(stageStart), len(claims))

	stageStart = time.Now()
	classified := make([]model.ClassifiedClaim, len(claims))
	for i, c := range claims {
		cc := p.classifier.Classify(c)
		if cc.Domain == model.DomainGeneral && domainHint != "" {
			cc.Domain = hint
			cc.DomainConfidence = hintConfidence
		}
		classified[i] = cc
	}
	p.observer.StageCompleted(StageClassify, time.Since(stageStart), len(classified))

	stageStart = time.Now()
	evidenceLists := make([][]model.Evidence, len(classified))
	for i, cc := range classified {
		sources := p.sources.TrustedSources(cc.Domain)
		retrieved := p.retriever.Retrieve(cc, sources, p.cfg.MaxEvidence)
		evidenceLists[i] = evidence.Rank(retrieved, p.cfg.CredibilityWeight, p.cfg.RelevanceWeight)
	}
	p.observer.StageCompleted(StageRetrieve, time.Since(stageStart), len(evidenceLists))

	stageStart = time.Now()
	results, err := p.scorer.VerifyBatch(classified, evidenceLists)
	if err != nil {
		return nil, fmt.Errorf("score claims: %w", err)
	}
	p.observer.StageCompleted(StageScore, time.Since(stageStart), len(results))

	stageStart = time.Now()
	rep := p.assembler.Assemble(text, results, signals, time.Since(started))
	p.observer.StageCompleted(StageAssemble, time.Since(stageStart), len(rep.Claims))

	stageStart = time.Now()
	rep = p.enforcer.Enforce(rep)
	p.observer.StageCompleted(StageSafety, time.Since(stageStart), len(rep.Warnings))

	stageStart = time.Now()
	rep = p.annotator.Annotate(rep)
	p.observer.StageCompleted(StageUncertainty, time.Since(stageStart), len(rep.Claims))

	return &rep, nil
}
