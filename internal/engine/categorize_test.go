package engine

import (
    "testing"

    "github.com/stretchr/testify/assert"

    "github.com/franklincheung-dev/jira-report/internal/domain"
)

func TestCategorizePipeFormat(t *testing.T) {
    cases := []struct {
        parent string
        want   domain.Category
    }{
        {"Billable | Acme Portal", domain.CategoryBillable},
        {"billable work | Acme Portal", domain.CategoryBillable},
        {"Product | Core Platform", domain.CategoryProduct},
        {"INTERNAL | Tooling", domain.CategoryInternal},
        {"Maintenance | Ops", domain.CategoryOther},
    }
    for _, c := range cases {
        assert.Equal(t, c.want, Categorize(c.parent), c.parent)
    }
}

func TestCategorizeBracketFallback(t *testing.T) {
    cases := []struct {
        parent string
        want   domain.Category
    }{
        {"[Billable] Client rollout", domain.CategoryBillable},
        {"(Billable) Client rollout", domain.CategoryBillable},
        {"[Product] Roadmap epic", domain.CategoryProduct},
        {"(Internal) Infra cleanup", domain.CategoryInternal},
        {"Plain epic name", domain.CategoryOther},
        {"", domain.CategoryOther},
        // tag matching is case-sensitive in the bracket form
        {"[billable] lower-case tag", domain.CategoryOther},
    }
    for _, c := range cases {
        assert.Equal(t, c.want, Categorize(c.parent), c.parent)
    }
}

func TestCategorizeMultiTagPrecedence(t *testing.T) {
    assert.Equal(t, domain.CategoryBillable, Categorize("[Internal] and [Billable] mixed"))
    assert.Equal(t, domain.CategoryProduct, Categorize("[Product] then [Internal]"))
}

func TestProjectOf(t *testing.T) {
    iss := domain.Issue{Key: "ACME-42", ParentSummary: "Billable | Acme Portal"}
    assert.Equal(t, "Acme Portal", ProjectOf(iss))

    iss = domain.Issue{Key: "ACME-42", ParentSummary: "[Billable] no pipe"}
    assert.Equal(t, "ACME", ProjectOf(iss))

    iss = domain.Issue{Key: "noprefix"}
    assert.Equal(t, "No Project", ProjectOf(iss))
}
