package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/hamed0406/resourceprobe/internal/domain"
)

type Notifier interface {
	Send(ctx context.Context, title, text string) error
}

type Multi []Notifier

func (m Multi) Send(ctx context.Context, title, text string) error {
	var firstErr error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Send(ctx, title, text); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// FailureSummary condenses a run into a notification. The second
// return is empty when nothing failed, meaning nothing to send.
func FailureSummary(suite string, outcomes []domain.Outcome) (title, text string) {
	var lines []string
	for _, o := range outcomes {
		if !o.Failed() {
			continue
		}
		msg := o.FailureMessage
		if o.Status == domain.StatusError {
			msg = o.ErrorDetail
		}
		lines = append(lines, fmt.Sprintf("%s: %s", o.CaseName, msg))
	}
	if len(lines) == 0 {
		return "", ""
	}
	title = fmt.Sprintf("%s: %d check(s) failed", suite, len(lines))
	return title, strings.Join(lines, "\n")
}
