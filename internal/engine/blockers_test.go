package engine

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"

    "github.com/franklincheung-dev/jira-report/internal/domain"
)

func TestDetectBlockersOverdueWinsOverIncomplete(t *testing.T) {
    today := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
    past := today.AddDate(0, 0, -3)
    issues := []domain.Issue{
        {Key: "A-1", Status: "In Progress", Priority: "Highest", DueDate: &past},
    }
    blockers := DetectBlockers(issues, today)
    if assert.Len(t, blockers, 1) {
        assert.Equal(t, domain.BlockerOverdue, blockers[0].Type)
    }
}

func TestDetectBlockersOrderAndDoneExcluded(t *testing.T) {
    today := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
    past := today.AddDate(0, 0, -1)
    future := today.AddDate(0, 0, 7)
    issues := []domain.Issue{
        {Key: "A-1", Status: "In Progress", Priority: "High"},
        {Key: "A-2", Status: "To Do", DueDate: &past},
        {Key: "A-3", Status: "Done", Priority: "Highest", DueDate: &past},
        {Key: "A-4", Status: "To Do", Priority: "Low", DueDate: &future},
    }
    blockers := DetectBlockers(issues, today)
    if assert.Len(t, blockers, 2) {
        // overdue group first, then high-priority incomplete, input order within groups
        assert.Equal(t, "A-2", blockers[0].IssueKey)
        assert.Equal(t, domain.BlockerOverdue, blockers[0].Type)
        assert.Equal(t, "A-1", blockers[1].IssueKey)
        assert.Equal(t, domain.BlockerIncomplete, blockers[1].Type)
    }
}

func TestDetectBlockersDueTodayNotOverdue(t *testing.T) {
    today := time.Date(2024, 6, 1, 15, 30, 0, 0, time.UTC)
    dueToday := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
    issues := []domain.Issue{
        {Key: "A-1", Status: "To Do", DueDate: &dueToday},
    }
    assert.Empty(t, DetectBlockers(issues, today))
}

func TestDetectBlockersUnassignedBucket(t *testing.T) {
    today := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
    issues := []domain.Issue{
        {Key: "A-1", Status: "To Do", Priority: "Critical"},
    }
    blockers := DetectBlockers(issues, today)
    if assert.Len(t, blockers, 1) {
        assert.Equal(t, "Unassigned", blockers[0].Assignee)
    }
}
