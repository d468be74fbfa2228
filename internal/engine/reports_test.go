package engine

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"

    "github.com/franklincheung-dev/jira-report/internal/domain"
)

func reportFixture() *SprintIndex {
    return BuildIndex([]domain.Issue{
        {Key: "ACME-1", Sprints: []string{"Sprint 1"}, Assignee: "Alice", Status: "Done",
            EstimateHours: 8, Category: domain.CategoryBillable, ParentSummary: "Billable | Portal"},
        {Key: "ACME-2", Sprints: []string{"Sprint 1"}, Assignee: "Alice", Status: "To Do",
            EstimateHours: 4, Category: domain.CategoryBillable, ParentSummary: "Billable | Portal"},
        {Key: "CORE-1", Sprints: []string{"Sprint 1"}, Status: "In Progress",
            EstimateHours: 6, Category: domain.CategoryProduct, ParentSummary: "Product | Core"},
    })
}

func TestAssigneeReports(t *testing.T) {
    today := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
    reports := AssigneeReports(reportFixture(), "Sprint 1", today)

    if assert.Len(t, reports, 2) {
        alice := reports[0]
        assert.Equal(t, "Alice", alice.Name)
        assert.Equal(t, 2, alice.TotalTasks)
        assert.Equal(t, 12.0, alice.TotalPoints)
        assert.Equal(t, 8.0, alice.CompletedPoints)
        assert.InDelta(t, 100.0*8/12, alice.CompletionPercentage, 1e-9)
        assert.Equal(t, 1, alice.StatusCounts["Done"])
        assert.Equal(t, 1, alice.StatusCounts["To Do"])

        assert.Equal(t, "Unassigned", reports[1].Name)
    }
}

func TestAssigneeReportsUnknownSprint(t *testing.T) {
    today := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
    assert.Empty(t, AssigneeReports(reportFixture(), "Sprint 99", today))
}

func TestProjectReports(t *testing.T) {
    today := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
    reports := ProjectReports(reportFixture(), "Sprint 1", today)

    if assert.Len(t, reports, 2) {
        core := reports[0]
        assert.Equal(t, "Core", core.Name)
        assert.Equal(t, []string{"Unassigned"}, core.TeamMembers)

        portal := reports[1]
        assert.Equal(t, "Portal", portal.Name)
        assert.Equal(t, 2, portal.TotalTasks)
        assert.Equal(t, 12.0, portal.TotalPoints)
        assert.Equal(t, []string{"Alice"}, portal.TeamMembers)
        assert.Equal(t, 12.0, portal.AssigneeDistribution["Alice"])
    }
}
