package memory

import (
	"context"
	"sync"
	"time"

	"github.com/hamed0406/resourceprobe/internal/repo"
)

type Store struct {
	mu   sync.RWMutex
	next int64
	runs []repo.Run
}

func New() *Store {
	return &Store{next: 1, runs: make([]repo.Run, 0, 32)}
}

func (m *Store) SaveRun(ctx context.Context, run *repo.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	run.ID = m.next
	m.next++
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}
	m.runs = append(m.runs, *run)
	return nil
}

// ListRuns returns runs newest first, at most limit of them.
func (m *Store) ListRuns(ctx context.Context, limit int) ([]repo.Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if limit <= 0 || limit > len(m.runs) {
		limit = len(m.runs)
	}
	out := make([]repo.Run, 0, limit)
	for i := len(m.runs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.runs[i])
	}
	return out, nil
}
