/* Copyright (c) 2025 beNovelty
 * SPDX-License-Identifier: BSD-3-Clause */
package services

import (
    "context"
    "errors"
    "fmt"
    "io"
    "time"

    "github.com/google/uuid"
    "github.com/rs/zerolog"

    "github.com/franklincheung-dev/jira-report/internal/config"
    "github.com/franklincheung-dev/jira-report/internal/domain"
    "github.com/franklincheung-dev/jira-report/internal/engine"
    "github.com/franklincheung-dev/jira-report/internal/ingest"
    "github.com/franklincheung-dev/jira-report/internal/store"
)

// ErrNoDataset is returned when a session has not uploaded an export
// yet, or its dataset already expired.
var ErrNoDataset = errors.New("no dataset for session")

// Archive is the persistence surface for report snapshots, implemented
// by the Postgres repository.
type Archive interface {
    SaveReport(ctx context.Context, rep domain.ArchivedReport) error
    GetReport(ctx context.Context, id string) (domain.ArchivedReport, error)
    ListReports(ctx context.Context, sessionID string) ([]domain.ArchivedReport, error)
    DeleteReport(ctx context.Context, id string) error
}

// Service is the application surface behind the HTTP handlers. It owns
// no computation of its own: ingestion feeds the engine, the engine's
// output flows to the caller or into the archive verbatim.
type Service struct {
    cfg   config.Config
    log   zerolog.Logger
    store *store.Store
    repo  Archive
    now   func() time.Time
}

func New(cfg config.Config, log zerolog.Logger, st *store.Store, archive Archive) *Service {
    return &Service{cfg: cfg, log: log, store: st, repo: archive, now: time.Now}
}

// UploadResult summarizes a processed upload.
type UploadResult struct {
    IssueCount    int                    `json:"issue_count"`
    MalformedRows int                    `json:"malformed_rows"`
    Sprints       []domain.SprintSummary `json:"sprints"`
}

// Upload decodes, validates and normalizes an export, then replaces the
// session's working set in one swap.
func (s *Service) Upload(sessionID string, r io.Reader) (UploadResult, error) {
    header, records, err := ingest.ReadCSV(r)
    if err != nil { return UploadResult{}, err }
    if err := ingest.ValidateColumns(header); err != nil { return UploadResult{}, err }

    issues, malformed := engine.Normalize(header, records)
    ix := engine.BuildIndex(issues)
    s.store.Replace(sessionID, &store.Dataset{
        Issues:     issues,
        Index:      ix,
        Malformed:  malformed,
        UploadedAt: s.now(),
    })

    s.log.Info().
        Str("session", sessionID).
        Int("issues", len(issues)).
        Int("malformed", malformed).
        Msg("dataset replaced")

    return UploadResult{
        IssueCount:    len(issues),
        MalformedRows: malformed,
        Sprints:       engine.ListSprints(ix),
    }, nil
}

func (s *Service) dataset(sessionID string) (*store.Dataset, error) {
    ds := s.store.Get(sessionID)
    if ds == nil { return nil, ErrNoDataset }
    return ds, nil
}

// Sprints lists the session's sprints in display order.
func (s *Service) Sprints(sessionID string) ([]domain.SprintSummary, error) {
    ds, err := s.dataset(sessionID)
    if err != nil { return nil, err }
    return engine.ListSprints(ds.Index), nil
}

// Dashboard is the combined per-sprint view: metrics, the velocity
// trend, and the capacity forecast. When the session has an archived
// snapshot of the same sprint, the newest one serves as the scope-change
// baseline.
type Dashboard struct {
    Metrics  domain.SprintMetrics `json:"metrics"`
    Trend    domain.VelocityTrend `json:"trend"`
    Forecast domain.Forecast      `json:"forecast"`
}

func (s *Service) Dashboard(ctx context.Context, sessionID, sprintName string, teamCapacityHours float64) (Dashboard, error) {
    ds, err := s.dataset(sessionID)
    if err != nil { return Dashboard{}, err }

    prior := s.priorSnapshot(ctx, sessionID, sprintName)
    if teamCapacityHours == 0 { teamCapacityHours = s.cfg.TeamCapacityHours }

    return Dashboard{
        Metrics:  engine.ComputeMetrics(ds.Index, sprintName, engine.Filter{}, prior, s.now()),
        Trend:    engine.Trend(ds.Index),
        Forecast: engine.ForecastCapacity(ds.Index, sprintName, teamCapacityHours, s.cfg.ForecastWindow),
    }, nil
}

// priorSnapshot finds the newest archived metrics for the same sprint.
// Archive lookups are best-effort; a storage error only disables the
// scope-change diff.
func (s *Service) priorSnapshot(ctx context.Context, sessionID, sprintName string) *domain.SprintMetrics {
    reports, err := s.repo.ListReports(ctx, sessionID)
    if err != nil {
        s.log.Warn().Err(err).Str("session", sessionID).Msg("archive lookup failed")
        return nil
    }
    for _, rep := range reports {
        if rep.SprintName == sprintName {
            m := rep.Metrics
            return &m
        }
    }
    return nil
}

// Assignees returns the per-assignee drill-down for a sprint.
func (s *Service) Assignees(sessionID, sprintName string) ([]domain.AssigneeReport, error) {
    ds, err := s.dataset(sessionID)
    if err != nil { return nil, err }
    return engine.AssigneeReports(ds.Index, sprintName, s.now()), nil
}

// Projects returns the per-project drill-down for a sprint.
func (s *Service) Projects(sessionID, sprintName string) ([]domain.ProjectReport, error) {
    ds, err := s.dataset(sessionID)
    if err != nil { return nil, err }
    return engine.ProjectReports(ds.Index, sprintName, s.now()), nil
}

// Archive persists a full computed snapshot of one sprint so it can be
// retrieved later exactly as computed.
func (s *Service) Archive(ctx context.Context, sessionID, sprintName string, teamCapacityHours float64) (domain.ArchivedReport, error) {
    ds, err := s.dataset(sessionID)
    if err != nil { return domain.ArchivedReport{}, err }
    if teamCapacityHours == 0 { teamCapacityHours = s.cfg.TeamCapacityHours }

    now := s.now()
    rep := domain.ArchivedReport{
        ID:         uuid.NewString(),
        SessionID:  sessionID,
        SprintName: sprintName,
        ArchivedAt: now.UTC(),
        Metrics:    engine.ComputeMetrics(ds.Index, sprintName, engine.Filter{}, nil, now),
        Forecast:   engine.ForecastCapacity(ds.Index, sprintName, teamCapacityHours, s.cfg.ForecastWindow),
        Assignees:  engine.AssigneeReports(ds.Index, sprintName, now),
        Projects:   engine.ProjectReports(ds.Index, sprintName, now),
    }
    if err := s.repo.SaveReport(ctx, rep); err != nil {
        return domain.ArchivedReport{}, fmt.Errorf("archive report: %w", err)
    }
    s.log.Info().Str("archive", rep.ID).Str("sprint", sprintName).Msg("report archived")
    return rep, nil
}

func (s *Service) ArchivedReports(ctx context.Context, sessionID string) ([]domain.ArchivedReport, error) {
    return s.repo.ListReports(ctx, sessionID)
}

func (s *Service) ArchivedReport(ctx context.Context, id string) (domain.ArchivedReport, error) {
    return s.repo.GetReport(ctx, id)
}

func (s *Service) DeleteArchived(ctx context.Context, id string) error {
    return s.repo.DeleteReport(ctx, id)
}

// SweepDatasets evicts expired working sets. Called from the cron job.
func (s *Service) SweepDatasets() int {
    n := s.store.Sweep(s.cfg.DatasetTTL, s.now())
    if n > 0 {
        s.log.Info().Int("evicted", n).Msg("dataset sweep")
    }
    return n
}
