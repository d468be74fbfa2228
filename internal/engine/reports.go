/* Copyright (c) 2025 beNovelty
 * SPDX-License-Identifier: BSD-3-Clause */
package engine

import (
    "sort"
    "time"

    "github.com/franklincheung-dev/jira-report/internal/domain"
)

// AssigneeReports builds the per-assignee drill-down for one sprint,
// alphabetical with the unassigned bucket last. Unknown sprints yield an
// empty list.
func AssigneeReports(ix *SprintIndex, sprintName string, today time.Time) []domain.AssigneeReport {
    groups := map[string][]domain.Issue{}
    for _, iss := range ix.Issues(sprintName) {
        a := assigneeOf(iss)
        groups[a] = append(groups[a], iss)
    }

    names := make([]string, 0, len(groups))
    for a := range groups {
        names = append(names, a)
    }
    sort.Slice(names, func(i, j int) bool {
        if (names[i] == unassignedBucket) != (names[j] == unassignedBucket) {
            return names[j] == unassignedBucket
        }
        return names[i] < names[j]
    })

    out := make([]domain.AssigneeReport, 0, len(names))
    for _, a := range names {
        issues := groups[a]
        r := domain.AssigneeReport{
            Name:              a,
            TotalTasks:        len(issues),
            CategoryBreakdown: map[domain.Category]float64{},
            StatusCounts:      map[string]int{},
        }
        for _, c := range domain.Categories() {
            r.CategoryBreakdown[c] = 0
        }
        for _, iss := range issues {
            r.TotalPoints += iss.EstimateHours
            r.CategoryBreakdown[iss.Category] += iss.EstimateHours
            r.StatusCounts[iss.Status]++
            if StatusDone(iss.Status) {
                r.CompletedPoints += iss.EstimateHours
            }
        }
        if r.TotalPoints > 0 {
            r.CompletionPercentage = r.CompletedPoints / r.TotalPoints * 100
        }
        r.Blockers = DetectBlockers(issues, today)
        out = append(out, r)
    }
    return out
}

// ProjectReports builds the per-project drill-down for one sprint,
// alphabetical by project name.
func ProjectReports(ix *SprintIndex, sprintName string, today time.Time) []domain.ProjectReport {
    groups := map[string][]domain.Issue{}
    for _, iss := range ix.Issues(sprintName) {
        p := ProjectOf(iss)
        groups[p] = append(groups[p], iss)
    }

    names := make([]string, 0, len(groups))
    for p := range groups {
        names = append(names, p)
    }
    sort.Strings(names)

    out := make([]domain.ProjectReport, 0, len(names))
    for _, p := range names {
        issues := groups[p]
        r := domain.ProjectReport{
            Name:                 p,
            TotalTasks:           len(issues),
            StatusCounts:         map[string]int{},
            AssigneeDistribution: map[string]float64{},
        }
        members := map[string]struct{}{}
        for _, iss := range issues {
            r.TotalPoints += iss.EstimateHours
            r.StatusCounts[iss.Status]++
            a := assigneeOf(iss)
            r.AssigneeDistribution[a] += iss.EstimateHours
            members[a] = struct{}{}
            if StatusDone(iss.Status) {
                r.CompletedPoints += iss.EstimateHours
            }
        }
        if r.TotalPoints > 0 {
            r.CompletionPercentage = r.CompletedPoints / r.TotalPoints * 100
        }
        r.TeamMembers = make([]string, 0, len(members))
        for a := range members {
            r.TeamMembers = append(r.TeamMembers, a)
        }
        sort.Strings(r.TeamMembers)
        r.Blockers = DetectBlockers(issues, today)
        out = append(out, r)
    }
    return out
}
