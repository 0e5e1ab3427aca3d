package main

import (
	"context"
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/hamed0406/resourceprobe/internal/config"
	"github.com/hamed0406/resourceprobe/internal/httpapi"
	"github.com/hamed0406/resourceprobe/internal/logging"
	"github.com/hamed0406/resourceprobe/internal/notify"
	"github.com/hamed0406/resourceprobe/internal/repo"
	"github.com/hamed0406/resourceprobe/internal/repo/memory"
	"github.com/hamed0406/resourceprobe/internal/repo/sqlite"
	"github.com/hamed0406/resourceprobe/internal/runner"
	"github.com/hamed0406/resourceprobe/internal/scheduler"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}
	serve := config.ServeFromEnv()

	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx := context.Background()

	var runs repo.RunStore
	if serve.DBPath != "" {
		store, err := sqlite.Open(ctx, serve.DBPath)
		if err != nil {
			log.Fatal(err)
		}
		defer store.Close()
		runs = store
	} else {
		runs = memory.New()
	}

	r := runner.New(logger, cfg)
	api := httpapi.NewServer(logger, r, runs, serve.APIKeys)

	if len(cfg.URLs) > 0 && serve.CheckInterval > 0 {
		var notifier notify.Notifier
		if s := notify.NewSlack(cfg.Webhook); s != nil {
			notifier = s
		}
		rc := scheduler.NewRechecker(logger, r, runs, notifier, cfg.SuiteName, serve.CheckInterval)
		go rc.Run(ctx)
	}

	logger.Info("api_listen", zap.String("addr", serve.Addr))
	if err := http.ListenAndServe(serve.Addr, api.Router()); err != nil {
		log.Fatal(err)
	}
}
