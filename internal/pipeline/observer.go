package pipeline

import (
	"fmt"
	"io"
	"time"
)

// Stage names reported to observers, in execution order.
const (
	StageExtract     = "extract"
	StageClassify    = "classify"
	StageRetrieve    = "retrieve"
	StageScore       = "score"
	StageAssemble    = "assemble"
	StageSafety      = "safety"
	StageUncertainty = "uncertainty"
)

// Observer receives stage-boundary events from the pipeline. It
// decouples the pipeline from any concrete logging or metrics
// backend.
type Observer interface {
	StageCompleted(stage string, elapsed time.Duration, items int)
}

// NopObserver discards all events.
type NopObserver struct{}

// StageCompleted implements Observer.
func (NopObserver) StageCompleted(string, time.Duration, int) {}

// WriterObserver prints one line per stage, used by verbose CLI runs.
type WriterObserver struct {
	W io.Writer
}

// StageCompleted implements Observer.
func (o WriterObserver) StageCompleted(stage string, elapsed time.Duration, items int) {
	fmt.Fprintf(o.W, "✓ %-11s %4d item(s) in %v\n", stage, items, elapsed.Round(time.Microsecond))
}
