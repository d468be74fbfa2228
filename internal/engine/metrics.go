/* Copyright (c) 2025 beNovelty
 * SPDX-License-Identifier: BSD-3-Clause */
package engine

import (
    "sort"
    "time"

    "github.com/franklincheung-dev/jira-report/internal/domain"
)

// unassignedBucket labels issues without an assignee in utilization
// and drill-down views.
const unassignedBucket = "Unassigned"

// Filter optionally narrows a computation to one assignee or project.
// Empty fields match everything.
type Filter struct {
    Assignee string
    Project  string
}

func (f Filter) match(iss domain.Issue) bool {
    if f.Assignee != "" && assigneeOf(iss) != f.Assignee { return false }
    if f.Project != "" && ProjectOf(iss) != f.Project { return false }
    return true
}

func assigneeOf(iss domain.Issue) string {
    if iss.Assignee == "" { return unassignedBucket }
    return iss.Assignee
}

// ComputeMetrics builds the full snapshot for one sprint. An unknown
// sprint yields empty zero-filled metrics, never an error. The result is
// a pure function of its inputs; no rounding happens here. When a prior
// snapshot of the same sprint is supplied, membership is diffed into a
// scope-change record.
func ComputeMetrics(ix *SprintIndex, sprintName string, f Filter, prior *domain.SprintMetrics, today time.Time) domain.SprintMetrics {
    m := domain.SprintMetrics{
        SprintName:        sprintName,
        SprintStatus:      "Not Started",
        CategoryBreakdown: map[domain.Category]float64{},
        ProjectBreakdown:  map[string]float64{},
        BlockerCounts:     map[domain.BlockerType]int{},
        IssuePoints:       map[string]float64{},
    }
    for _, c := range domain.Categories() {
        m.CategoryBreakdown[c] = 0
    }
    m.BlockerCounts[domain.BlockerOverdue] = 0
    m.BlockerCounts[domain.BlockerIncomplete] = 0

    var issues []domain.Issue
    for _, iss := range ix.Issues(sprintName) {
        if f.match(iss) { issues = append(issues, iss) }
    }
    if len(issues) == 0 {
        m.ResourceUtilization = []domain.ResourceUtilization{}
        m.Blockers = []domain.Blocker{}
        return m
    }

    byAssignee := map[string]*domain.ResourceUtilization{}
    doneCount := 0
    startedCount := 0
    for _, iss := range issues {
        pts := iss.EstimateHours
        m.TotalIssues++
        m.TotalPoints += pts
        m.CategoryBreakdown[iss.Category] += pts
        m.ProjectBreakdown[ProjectOf(iss)] += pts
        m.IssuePoints[iss.Key] += pts

        a := assigneeOf(iss)
        ru := byAssignee[a]
        if ru == nil {
            ru = &domain.ResourceUtilization{Assignee: a}
            byAssignee[a] = ru
        }
        ru.TotalPoints += pts

        if StatusDone(iss.Status) {
            m.CompletedPoints += pts
            ru.CompletedPoints += pts
            doneCount++
        } else if !statusNotStarted(iss.Status) {
            startedCount++
        }
    }
    if m.TotalPoints > 0 {
        m.CompletionPercentage = m.CompletedPoints / m.TotalPoints * 100
    }
    switch {
    case doneCount == len(issues):
        m.SprintStatus = "Completed"
    case doneCount > 0 || startedCount > 0:
        m.SprintStatus = "In Progress"
    }

    for _, ru := range byAssignee {
        if ru.TotalPoints > 0 {
            ru.CompletionRate = ru.CompletedPoints / ru.TotalPoints * 100
        }
        m.ResourceUtilization = append(m.ResourceUtilization, *ru)
    }
    sortUtilization(m.ResourceUtilization)

    m.Blockers = DetectBlockers(issues, today)
    for _, b := range m.Blockers {
        m.BlockerCounts[b.Type]++
    }

    if prior != nil {
        m.ScopeChange = diffScope(prior.IssuePoints, m.IssuePoints)
    }
    return m
}

// sortUtilization orders assignees alphabetically, the unassigned
// bucket always last.
func sortUtilization(rows []domain.ResourceUtilization) {
    sort.SliceStable(rows, func(i, j int) bool {
        a, b := rows[i].Assignee, rows[j].Assignee
        if (a == unassignedBucket) != (b == unassignedBucket) {
            return b == unassignedBucket
        }
        return a < b
    })
}

func statusNotStarted(status string) bool {
    switch normalizeStatus(status) {
    case "to do", "todo", "open", "backlog", "":
        return true
    }
    return false
}

// diffScope compares membership and point totals against a prior
// snapshot of the same sprint.
func diffScope(prior, current map[string]float64) *domain.ScopeChange {
    sc := &domain.ScopeChange{}
    for key, pts := range current {
        if _, ok := prior[key]; !ok {
            sc.IssuesAdded++
            sc.PointsAdded += pts
        }
    }
    for key, pts := range prior {
        if _, ok := current[key]; !ok {
            sc.IssuesRemoved++
            sc.PointsRemoved += pts
        }
    }
    return sc
}
