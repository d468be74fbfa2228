/* Copyright (c) 2025 beNovelty
 * SPDX-License-Identifier: BSD-3-Clause */
package main

import (
    "context"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/franklincheung-dev/jira-report/internal/config"
    httpx "github.com/franklincheung-dev/jira-report/internal/http"
    "github.com/franklincheung-dev/jira-report/internal/jobs"
    "github.com/franklincheung-dev/jira-report/internal/logger"
    "github.com/franklincheung-dev/jira-report/internal/repo"
    "github.com/franklincheung-dev/jira-report/internal/services"
    "github.com/franklincheung-dev/jira-report/internal/store"
)

func main() {
    cfg := config.Load()
    log := logger.New(cfg)
    ctx, cancel := context.WithCancel(context.Background())
    defer cancel()

    // DB
    db := repo.MustOpen(ctx, cfg, log)
    defer db.Close()
    if err := repo.Migrate(cfg.DBDSN); err != nil {
        log.Fatal().Err(err).Msg("db migrate failed")
    }

    // Services
    repository := repo.NewRepository(db, log)
    datasets := store.New()
    svc := services.New(cfg, log, datasets, repository)

    // HTTP server (Gin)
    router := httpx.NewRouter(cfg, log, svc)

    // Cron
    cr := jobs.NewCron(cfg, log, svc)
    cr.Start()
    defer cr.Stop()

    // graceful shutdown
    errCh := make(chan error, 1)
    go func() { errCh <- router.Run(cfg.HTTPAddr) }()

    sigCh := make(chan os.Signal, 1)
    signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

    select {
    case <-sigCh:
        log.Info().Msg("shutting down...")
    case err := <-errCh:
        if err != nil { log.Error().Err(err).Msg("http server error") }
    }

    time.Sleep(500 * time.Millisecond)
}
