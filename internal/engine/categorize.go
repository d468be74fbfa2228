/* Copyright (c) 2025 beNovelty
 * SPDX-License-Identifier: BSD-3-Clause */
package engine

import (
    "strings"

    "github.com/franklincheung-dev/jira-report/internal/domain"
)

// Categorize derives the work category from an issue's parent summary.
//
// Parent summaries come in two shapes. The preferred form is
// "{Category} | {Project}", matched case-insensitively on the left
// segment. Older epics use embedded "[Billable]"/"(Billable)" style tags,
// matched case-sensitively in fixed precedence: Billable, then Product,
// then Internal. A summary carrying several tags resolves to the first
// match. Anything else is Other.
func Categorize(parentSummary string) domain.Category {
    s := strings.TrimSpace(parentSummary)
    if s == "" { return domain.CategoryOther }

    if i := strings.Index(s, "|"); i >= 0 {
        left := strings.ToLower(strings.TrimSpace(s[:i]))
        switch {
        case strings.Contains(left, "billable"):
            return domain.CategoryBillable
        case strings.Contains(left, "product"):
            return domain.CategoryProduct
        case strings.Contains(left, "internal"):
            return domain.CategoryInternal
        }
        return domain.CategoryOther
    }

    switch {
    case strings.Contains(s, "[Billable]") || strings.Contains(s, "(Billable)"):
        return domain.CategoryBillable
    case strings.Contains(s, "[Product]") || strings.Contains(s, "(Product)"):
        return domain.CategoryProduct
    case strings.Contains(s, "[Internal]") || strings.Contains(s, "(Internal)"):
        return domain.CategoryInternal
    }
    return domain.CategoryOther
}

// ProjectOf extracts the project grouping key for an issue: the right
// segment of a "{Category} | {Project}" parent summary, falling back to
// the issue key's project prefix, then to an explicit no-project bucket.
func ProjectOf(iss domain.Issue) string {
    if i := strings.Index(iss.ParentSummary, "|"); i >= 0 {
        if p := strings.TrimSpace(iss.ParentSummary[i+1:]); p != "" { return p }
    }
    if i := strings.Index(iss.Key, "-"); i > 0 {
        return iss.Key[:i]
    }
    return "No Project"
}
