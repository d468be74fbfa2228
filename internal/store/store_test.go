package store

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"

    "github.com/franklincheung-dev/jira-report/internal/domain"
    "github.com/franklincheung-dev/jira-report/internal/engine"
)

func dataset(uploadedAt time.Time) *Dataset {
    issues := []domain.Issue{{Key: "A-1", Sprints: []string{"Sprint 1"}}}
    return &Dataset{Issues: issues, Index: engine.BuildIndex(issues), UploadedAt: uploadedAt}
}

func TestReplaceAndGet(t *testing.T) {
    s := New()
    assert.Nil(t, s.Get("sess"))

    first := dataset(time.Now())
    s.Replace("sess", first)
    assert.Same(t, first, s.Get("sess"))

    second := dataset(time.Now())
    s.Replace("sess", second)
    assert.Same(t, second, s.Get("sess"))
    assert.Equal(t, 1, s.Len())
}

func TestDelete(t *testing.T) {
    s := New()
    s.Replace("sess", dataset(time.Now()))
    s.Delete("sess")
    assert.Nil(t, s.Get("sess"))
}

func TestSweep(t *testing.T) {
    now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
    s := New()
    s.Replace("old", dataset(now.Add(-3*time.Hour)))
    s.Replace("fresh", dataset(now.Add(-10*time.Minute)))

    evicted := s.Sweep(2*time.Hour, now)
    assert.Equal(t, 1, evicted)
    assert.Nil(t, s.Get("old"))
    assert.NotNil(t, s.Get("fresh"))
}
