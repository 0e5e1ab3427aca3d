package repo

import (
	"context"
	"time"

	"github.com/hamed0406/resourceprobe/internal/domain"
)

// Run is one pass over the configured URLs with its outcomes.
type Run struct {
	ID        int64            `json:"id"`
	Suite     string           `json:"suite"`
	StartedAt time.Time        `json:"started_at"`
	Outcomes  []domain.Outcome `json:"outcomes"`
}

// Failures counts the outcomes that went wrong.
func (r Run) Failures() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Failed() {
			n++
		}
	}
	return n
}

// RunStore persists probe history for the API. Swap in any adapter.
type RunStore interface {
	SaveRun(ctx context.Context, run *Run) error
	ListRuns(ctx context.Context, limit int) ([]Run, error)
}
