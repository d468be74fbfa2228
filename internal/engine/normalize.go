/* Copyright (c) 2025 beNovelty
 * SPDX-License-Identifier: BSD-3-Clause */
package engine

import (
    "regexp"
    "strconv"
    "strings"
    "time"

    "github.com/franklincheung-dev/jira-report/internal/domain"
)

// sprintColRe matches the suffixed duplicates ("Sprint.1", "Sprint.2")
// that tabular readers generate for repeated Sprint columns.
var sprintColRe = regexp.MustCompile(`^Sprint\.\d+$`)

// Jira export timestamp layouts, most common first.
var dateLayouts = []string{
    "02/Jan/06 3:04 PM",
    "02/Jan/06 15:04",
    "02/Jan/2006 3:04 PM",
    "02/Jan/2006",
    "02/01/2006 15:04:05",
    "02/01/2006",
    "2006-01-02 15:04:05",
    "2006-01-02",
}

// Normalize turns raw tabular rows into typed issue records. Every
// sprint-membership column collapses into one ordered, deduplicated set
// per issue; the estimate converts from the export's seconds into hours,
// defaulting to 0 when absent. Rows without an issue key are skipped and
// counted as malformed; the rest of the batch still succeeds.
func Normalize(header []string, records [][]string) ([]domain.Issue, int) {
    cols := indexColumns(header)
    issues := make([]domain.Issue, 0, len(records))
    malformed := 0

    for _, rec := range records {
        at := func(i int) string {
            if i < 0 || i >= len(rec) { return "" }
            return strings.TrimSpace(rec[i])
        }
        key := at(cols.key)
        if key == "" { malformed++; continue }

        iss := domain.Issue{
            Key:           key,
            Summary:       at(cols.summary),
            WorkType:      at(cols.workType),
            Assignee:      at(cols.assignee),
            Reporter:      at(cols.reporter),
            Priority:      at(cols.priority),
            Status:        at(cols.status),
            Resolution:    at(cols.resolution),
            CreatedAt:     parseDate(at(cols.created)),
            UpdatedAt:     parseDate(at(cols.updated)),
            DueDate:       parseDate(at(cols.dueDate)),
            EstimateHours: parseEstimateHours(at(cols.estimate)),
            ParentKey:     at(cols.parent),
            ParentSummary: at(cols.parentSummary),
            Description:   at(cols.description),
            Sprints:       collectSprints(rec, cols.sprints),
        }
        iss.Category = Categorize(iss.ParentSummary)
        issues = append(issues, iss)
    }
    return issues, malformed
}

type columnIndex struct {
    key, summary, workType, assignee, reporter, priority   int
    status, resolution, created, updated, dueDate          int
    estimate, parent, parentSummary, description           int
    sprints                                                []int
}

func indexColumns(header []string) columnIndex {
    cols := columnIndex{
        key: -1, summary: -1, workType: -1, assignee: -1, reporter: -1,
        priority: -1, status: -1, resolution: -1, created: -1, updated: -1,
        dueDate: -1, estimate: -1, parent: -1, parentSummary: -1, description: -1,
    }
    set := func(dst *int, i int) { if *dst < 0 { *dst = i } }
    for i, raw := range header {
        name := strings.TrimSpace(raw)
        switch name {
        case "Issue key":
            set(&cols.key, i)
        case "Summary":
            set(&cols.summary, i)
        case "Work type", "Issue Type":
            set(&cols.workType, i)
        case "Assignee":
            set(&cols.assignee, i)
        case "Reporter":
            set(&cols.reporter, i)
        case "Priority":
            set(&cols.priority, i)
        case "Status":
            set(&cols.status, i)
        case "Resolution":
            set(&cols.resolution, i)
        case "Created":
            set(&cols.created, i)
        case "Updated":
            set(&cols.updated, i)
        case "Due date":
            set(&cols.dueDate, i)
        case "Original estimate":
            set(&cols.estimate, i)
        case "Parent":
            set(&cols.parent, i)
        case "Parent summary":
            set(&cols.parentSummary, i)
        case "Description":
            set(&cols.description, i)
        case "Sprint":
            cols.sprints = append(cols.sprints, i)
        default:
            if sprintColRe.MatchString(name) { cols.sprints = append(cols.sprints, i) }
        }
    }
    return cols
}

// collectSprints gathers non-empty values across every sprint column,
// keeping first-occurrence order and dropping duplicates.
func collectSprints(rec []string, sprintCols []int) []string {
    var out []string
    seen := map[string]struct{}{}
    for _, i := range sprintCols {
        if i >= len(rec) { continue }
        v := strings.TrimSpace(rec[i])
        if v == "" { continue }
        if _, ok := seen[v]; ok { continue }
        seen[v] = struct{}{}
        out = append(out, v)
    }
    return out
}

func parseDate(s string) *time.Time {
    if s == "" { return nil }
    for _, l := range dateLayouts {
        if t, err := time.Parse(l, s); err == nil {
            tt := t.UTC()
            return &tt
        }
    }
    return nil
}

// parseEstimateHours converts the export's estimate (seconds) to hours.
// Anything unparseable or negative reads as 0.
func parseEstimateHours(s string) float64 {
    if s == "" { return 0 }
    v, err := strconv.ParseFloat(s, 64)
    if err != nil || v < 0 { return 0 }
    return v / 3600.0
}
