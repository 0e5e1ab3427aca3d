package memory

import (
	"context"
	"testing"

	"github.com/hamed0406/resourceprobe/internal/domain"
	"github.com/hamed0406/resourceprobe/internal/repo"
)

func TestStore_SaveAndListNewestFirst(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, suite := range []string{"first", "second", "third"} {
		run := &repo.Run{
			Suite: suite,
			Outcomes: []domain.Outcome{
				{CaseName: "dns_resolution[x]", Status: domain.StatusPass},
			},
		}
		if err := s.SaveRun(ctx, run); err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
		if run.ID == 0 {
			t.Fatalf("SaveRun should assign an ID")
		}
	}

	runs, err := s.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("want 2 runs, got %d", len(runs))
	}
	if runs[0].Suite != "third" || runs[1].Suite != "second" {
		t.Fatalf("want newest first, got %q then %q", runs[0].Suite, runs[1].Suite)
	}

	all, _ := s.ListRuns(ctx, 0)
	if len(all) != 3 {
		t.Fatalf("limit 0 should return everything, got %d", len(all))
	}
}

func TestRun_Failures(t *testing.T) {
	run := repo.Run{Outcomes: []domain.Outcome{
		{Status: domain.StatusPass},
		{Status: domain.StatusFail},
		{Status: domain.StatusError},
		{Status: domain.StatusSkipped},
	}}
	if got := run.Failures(); got != 2 {
		t.Fatalf("want 2 failures, got %d", got)
	}
}
