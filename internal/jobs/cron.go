package jobs

import (
    "time"

    "github.com/robfig/cron/v3"
    "github.com/rs/zerolog"

    "github.com/franklincheung-dev/jira-report/internal/config"
)

type service interface{ SweepDatasets() int }

// Cron runs the periodic eviction of expired uploaded datasets.
type Cron struct {
    cfg config.Config
    log zerolog.Logger
    svc service
    c   *cron.Cron
}

func NewCron(cfg config.Config, log zerolog.Logger, svc service) *Cron {
    loc, _ := time.LoadLocation(cfg.TZ)
    c := cron.New(cron.WithLocation(loc), cron.WithParser(cron.NewParser(cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow)))
    cr := &Cron{cfg: cfg, log: log, svc: svc, c: c}
    _, _ = c.AddFunc(cfg.SweepCron, cr.sweep)
    return cr
}

func (cr *Cron) Start() { cr.c.Start() }
func (cr *Cron) Stop()  { cr.c.Stop() }

func (cr *Cron) sweep() {
    n := cr.svc.SweepDatasets()
    cr.log.Debug().Int("evicted", n).Msg("cron: dataset sweep")
}
