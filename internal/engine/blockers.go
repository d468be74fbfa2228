/* Copyright (c) 2025 beNovelty
 * SPDX-License-Identifier: BSD-3-Clause */
package engine

import (
    "time"

    "github.com/franklincheung-dev/jira-report/internal/domain"
)

// DetectBlockers flags issues that need attention: unfinished issues
// whose due date has passed, then unfinished high-priority issues not
// already flagged as overdue. Each issue appears at most once, overdue
// taking precedence. Output keeps input order within each group, so the
// same dataset always yields the same list. Dates compare at UTC day
// granularity.
func DetectBlockers(issues []domain.Issue, today time.Time) []domain.Blocker {
    day := today.UTC().Truncate(24 * time.Hour)
    blockers := []domain.Blocker{}
    flagged := map[string]struct{}{}

    for _, iss := range issues {
        if StatusDone(iss.Status) || iss.DueDate == nil { continue }
        if iss.DueDate.UTC().Truncate(24 * time.Hour).Before(day) {
            blockers = append(blockers, toBlocker(iss, domain.BlockerOverdue))
            flagged[iss.Key] = struct{}{}
        }
    }
    for _, iss := range issues {
        if StatusDone(iss.Status) || !highPriority(iss.Priority) { continue }
        if _, ok := flagged[iss.Key]; ok { continue }
        blockers = append(blockers, toBlocker(iss, domain.BlockerIncomplete))
        flagged[iss.Key] = struct{}{}
    }
    return blockers
}

func toBlocker(iss domain.Issue, t domain.BlockerType) domain.Blocker {
    return domain.Blocker{
        IssueKey: iss.Key,
        Summary:  iss.Summary,
        Assignee: assigneeOf(iss),
        Status:   iss.Status,
        Priority: iss.Priority,
        DueDate:  iss.DueDate,
        Type:     t,
    }
}
