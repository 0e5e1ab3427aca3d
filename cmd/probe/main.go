package main

import (
	"context"
	"log"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/hamed0406/resourceprobe/internal/config"
	"github.com/hamed0406/resourceprobe/internal/logging"
	"github.com/hamed0406/resourceprobe/internal/notify"
	"github.com/hamed0406/resourceprobe/internal/report"
	"github.com/hamed0406/resourceprobe/internal/runner"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx := context.Background()
	r := runner.New(logger, cfg)
	outcomes := r.Run(ctx)

	failures := 0
	for _, o := range outcomes {
		if o.Failed() {
			failures++
		}
	}
	logger.Info("run_complete",
		zap.Int("outcomes", len(outcomes)),
		zap.Int("failures", failures),
		zap.String("report", report.Path(cfg.ReportDir, cfg.SuiteName)),
	)

	var errs error
	if err := report.Write(cfg.ReportDir, cfg.SuiteName, outcomes); err != nil {
		errs = multierr.Append(errs, err)
	}

	if title, text := notify.FailureSummary(cfg.SuiteName, outcomes); title != "" {
		if s := notify.NewSlack(cfg.Webhook); s != nil {
			if err := s.Send(ctx, title, text); err != nil {
				errs = multierr.Append(errs, err)
			}
		}
	}

	// failed checks belong in the report, not the exit code; only
	// failing to deliver the report fails the process
	if errs != nil {
		logger.Error("run_errors", zap.Error(errs))
		log.Fatal(errs)
	}
}
