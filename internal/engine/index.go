/* Copyright (c) 2025 beNovelty
 * SPDX-License-Identifier: BSD-3-Clause */
package engine

import (
    "regexp"
    "sort"
    "strconv"
    "time"

    "github.com/franklincheung-dev/jira-report/internal/domain"
)

var (
    yearSprintRe = regexp.MustCompile(`^(\d{4})\s+Sprint\s+(\d+)`)
    bareSprintRe = regexp.MustCompile(`^Sprint\s+(\d+)`)
)

// sortKey orders sprint names in three tiers: year-tagged sprints by
// (year, number), bare "Sprint N" names by number after every year-tagged
// one, and everything else lexically at the end.
type sortKey struct {
    tier int
    year int
    num  int
    name string
}

func keyFor(name string) sortKey {
    if m := yearSprintRe.FindStringSubmatch(name); m != nil {
        y, _ := strconv.Atoi(m[1])
        n, _ := strconv.Atoi(m[2])
        return sortKey{tier: 1, year: y, num: n, name: name}
    }
    if m := bareSprintRe.FindStringSubmatch(name); m != nil {
        n, _ := strconv.Atoi(m[1])
        return sortKey{tier: 2, num: n, name: name}
    }
    return sortKey{tier: 3, name: name}
}

func (a sortKey) less(b sortKey) bool {
    if a.tier != b.tier { return a.tier < b.tier }
    if a.year != b.year { return a.year < b.year }
    if a.num != b.num { return a.num < b.num }
    return a.name < b.name
}

// SprintIndex groups issues by sprint and keeps the sprint names in
// chronological display order. Built once per dataset; read-only after.
type SprintIndex struct {
    order  []string
    byName map[string][]domain.Issue
}

// BuildIndex indexes every issue under each sprint it belongs to. An
// issue in several sprints appears in each subset.
func BuildIndex(issues []domain.Issue) *SprintIndex {
    ix := &SprintIndex{byName: map[string][]domain.Issue{}}
    for _, iss := range issues {
        for _, s := range iss.Sprints {
            if _, ok := ix.byName[s]; !ok {
                ix.order = append(ix.order, s)
            }
            ix.byName[s] = append(ix.byName[s], iss)
        }
    }
    sort.SliceStable(ix.order, func(i, j int) bool {
        return keyFor(ix.order[i]).less(keyFor(ix.order[j]))
    })
    return ix
}

// Names returns the sprint names in display order.
func (ix *SprintIndex) Names() []string {
    out := make([]string, len(ix.order))
    copy(out, ix.order)
    return out
}

// Issues returns the issue subset for a sprint, nil when unknown.
func (ix *SprintIndex) Issues(name string) []domain.Issue {
    return ix.byName[name]
}

// Position returns a sprint's index in display order, or -1.
func (ix *SprintIndex) Position(name string) int {
    for i, n := range ix.order {
        if n == name { return i }
    }
    return -1
}

// ListSprints produces the ordered summary used by the sprint selector:
// per-sprint counts, point totals, utilization, and per-category stats.
func ListSprints(ix *SprintIndex) []domain.SprintSummary {
    out := make([]domain.SprintSummary, 0, len(ix.order))
    for _, name := range ix.order {
        issues := ix.byName[name]
        sum := domain.SprintSummary{
            Name:       name,
            IssueCount: len(issues),
            Categories: map[domain.Category]domain.CategoryStats{},
        }
        for _, c := range domain.Categories() {
            sum.Categories[c] = domain.CategoryStats{}
        }
        for _, iss := range issues {
            sum.TotalPoints += iss.EstimateHours
            cs := sum.Categories[iss.Category]
            cs.Total += iss.EstimateHours
            if StatusDone(iss.Status) {
                sum.CompletedPoints += iss.EstimateHours
                cs.Completed += iss.EstimateHours
            }
            sum.Categories[iss.Category] = cs
        }
        if sum.TotalPoints > 0 {
            sum.Utilization = sum.CompletedPoints / sum.TotalPoints * 100
        }
        for c, cs := range sum.Categories {
            if cs.Total > 0 {
                cs.Utilization = cs.Completed / cs.Total * 100
                sum.Categories[c] = cs
            }
        }
        sum.EndDate = modalDueDate(issues)
        out = append(out, sum)
    }
    return out
}

// modalDueDate picks the most common due date in a sprint as its
// apparent end date, latest date winning ties. Nil when no issue
// carries a due date.
func modalDueDate(issues []domain.Issue) *time.Time {
    counts := map[time.Time]int{}
    for _, iss := range issues {
        if iss.DueDate == nil { continue }
        counts[iss.DueDate.Truncate(24*time.Hour)]++
    }
    var best *time.Time
    bestN := 0
    for d, n := range counts {
        d := d
        if n > bestN || (n == bestN && best != nil && d.After(*best)) {
            best, bestN = &d, n
        }
    }
    return best
}
