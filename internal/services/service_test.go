package services

import (
    "context"
    "strings"
    "testing"
    "time"

    "github.com/rs/zerolog"
    "github.com/stretchr/testify/assert"

    "github.com/franklincheung-dev/jira-report/internal/config"
    "github.com/franklincheung-dev/jira-report/internal/domain"
    "github.com/franklincheung-dev/jira-report/internal/store"
)

type fakeArchive struct {
    reports map[string]domain.ArchivedReport
}

func newFakeArchive() *fakeArchive {
    return &fakeArchive{reports: map[string]domain.ArchivedReport{}}
}

func (f *fakeArchive) SaveReport(_ context.Context, rep domain.ArchivedReport) error {
    f.reports[rep.ID] = rep
    return nil
}

func (f *fakeArchive) GetReport(_ context.Context, id string) (domain.ArchivedReport, error) {
    return f.reports[id], nil
}

func (f *fakeArchive) ListReports(_ context.Context, sessionID string) ([]domain.ArchivedReport, error) {
    var out []domain.ArchivedReport
    for _, rep := range f.reports {
        if rep.SessionID == sessionID { out = append(out, rep) }
    }
    return out, nil
}

func (f *fakeArchive) DeleteReport(_ context.Context, id string) error {
    delete(f.reports, id)
    return nil
}

const exportCSV = "Issue key,Summary,Work type,Assignee,Reporter,Priority,Status,Created,Updated,Due date,Original estimate,Parent summary,Sprint\n" +
    "ACME-1,Login page,Story,Alice,Carol,High,Done,2024-03-01,2024-03-10,,28800,Billable | Portal,Sprint 1\n" +
    "ACME-2,Sessions,Task,Bob,Carol,Low,To Do,2024-03-02,2024-03-05,,14400,Product | Core,Sprint 1\n"

func newTestService(archive Archive) *Service {
    cfg := config.Config{DatasetTTL: 2 * time.Hour, ForecastWindow: 4}
    svc := New(cfg, zerolog.Nop(), store.New(), archive)
    svc.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
    return svc
}

func TestUploadAndSprints(t *testing.T) {
    svc := newTestService(newFakeArchive())

    res, err := svc.Upload("sess", strings.NewReader(exportCSV))
    assert.NoError(t, err)
    assert.Equal(t, 2, res.IssueCount)
    assert.Equal(t, 0, res.MalformedRows)
    if assert.Len(t, res.Sprints, 1) {
        assert.Equal(t, "Sprint 1", res.Sprints[0].Name)
    }

    sprints, err := svc.Sprints("sess")
    assert.NoError(t, err)
    assert.Len(t, sprints, 1)
}

func TestUploadRejectsMissingColumns(t *testing.T) {
    svc := newTestService(newFakeArchive())
    _, err := svc.Upload("sess", strings.NewReader("Issue key,Summary\nA-1,x\n"))
    assert.Error(t, err)
}

func TestSprintsWithoutUpload(t *testing.T) {
    svc := newTestService(newFakeArchive())
    _, err := svc.Sprints("sess")
    assert.ErrorIs(t, err, ErrNoDataset)
}

func TestDashboard(t *testing.T) {
    svc := newTestService(newFakeArchive())
    _, err := svc.Upload("sess", strings.NewReader(exportCSV))
    assert.NoError(t, err)

    d, err := svc.Dashboard(context.Background(), "sess", "Sprint 1", 0)
    assert.NoError(t, err)
    assert.Equal(t, "Sprint 1", d.Metrics.SprintName)
    assert.Equal(t, 2, d.Metrics.TotalIssues)
    assert.Equal(t, 12.0, d.Metrics.TotalPoints)
    assert.Nil(t, d.Metrics.ScopeChange)
}

func TestArchiveRoundTrip(t *testing.T) {
    archive := newFakeArchive()
    svc := newTestService(archive)
    _, err := svc.Upload("sess", strings.NewReader(exportCSV))
    assert.NoError(t, err)

    rep, err := svc.Archive(context.Background(), "sess", "Sprint 1", 0)
    assert.NoError(t, err)
    assert.NotEmpty(t, rep.ID)
    assert.Equal(t, "Sprint 1", rep.SprintName)

    got, err := svc.ArchivedReport(context.Background(), rep.ID)
    assert.NoError(t, err)
    assert.Equal(t, rep.Metrics, got.Metrics)

    // the archived snapshot now serves as the scope-change baseline
    d, err := svc.Dashboard(context.Background(), "sess", "Sprint 1", 0)
    assert.NoError(t, err)
    if assert.NotNil(t, d.Metrics.ScopeChange) {
        assert.Equal(t, 0, d.Metrics.ScopeChange.IssuesAdded)
        assert.Equal(t, 0, d.Metrics.ScopeChange.IssuesRemoved)
    }
}

func TestSweepDatasets(t *testing.T) {
    svc := newTestService(newFakeArchive())
    _, err := svc.Upload("sess", strings.NewReader(exportCSV))
    assert.NoError(t, err)

    svc.now = func() time.Time { return time.Date(2024, 6, 1, 3, 0, 0, 0, time.UTC) }
    assert.Equal(t, 1, svc.SweepDatasets())

    _, err = svc.Sprints("sess")
    assert.ErrorIs(t, err, ErrNoDataset)
}
