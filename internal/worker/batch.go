package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/avetrov/credence/internal/model"
)

// Verifier runs one document through the verification pipeline. Both
// pipeline orchestrators satisfy it via small adapters in the CLI.
type Verifier interface {
	Verify(ctx context.Context, text string) (*model.Report, error)
}

// DocumentJob verifies one file.
type DocumentJob struct {
	Path     string
	Verifier Verifier
	Throttle *Throttle
}

// DocumentResult pairs a document path with its report or error.
type DocumentResult struct {
	Path   string
	Report *model.Report
	Error  error
}

// Err implements Result.
func (r *DocumentResult) Err() error { return r.Error }

// Execute reads the document, waits for throttle clearance and
// verifies it.
func (j *DocumentJob) Execute(ctx context.Context) Result {
	data, err := os.ReadFile(j.Path)
	if err != nil {
		return &DocumentResult{Path: j.Path, Error: fmt.Errorf("read document: %w", err)}
	}

	if j.Throttle != nil {
		if err := j.Throttle.Wait(ctx); err != nil {
			return &DocumentResult{Path: j.Path, Error: err}
		}
	}

	rep, err := j.Verifier.Verify(ctx, string(data))
	if err != nil {
		return &DocumentResult{Path: j.Path, Error: err}
	}
	return &DocumentResult{Path: j.Path, Report: rep}
}

// BatchProcessor verifies many documents concurrently. Concurrency is
// safe because the pipeline is pure; each document gets its own
// invocation.
type BatchProcessor struct {
	verifier    Verifier
	concurrency int
	throttle    *Throttle
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(verifier Verifier, concurrency int, throttle *Throttle) *BatchProcessor {
	return &BatchProcessor{verifier: verifier, concurrency: concurrency, throttle: throttle}
}

// ProcessPaths verifies each document path concurrently and returns
// the results in completion order.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*DocumentResult {
	if len(paths) == 0 {
		return []*DocumentResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()
	for _, path := range paths {
		pool.Submit(&DocumentJob{Path: path, Verifier: b.verifier, Throttle: b.throttle})
	}

	results := pool.Wait()
	out := make([]*DocumentResult, len(results))
	for i, r := range results {
		out[i] = r.(*DocumentResult)
	}
	return out
}

// ProcessListFile reads a document list file and verifies every entry.
func (b *BatchProcessor) ProcessListFile(ctx context.Context, listPath string) ([]*DocumentResult, error) {
	paths, err := ReadDocumentList(listPath)
	if err != nil {
		return nil, fmt.Errorf("read document list: %w", err)
	}
	return b.ProcessPaths(ctx, paths), nil
}

// ReadDocumentList reads document paths from a file, one per line,
// skipping blanks and # comments, deduplicating while preserving
// order.
func ReadDocumentList(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open list: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan list: %w", err)
	}
	return paths, nil
}
