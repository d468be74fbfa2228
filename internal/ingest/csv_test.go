package ingest

import (
    "strings"
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestReadCSVStripsBOM(t *testing.T) {
    in := "\uFEFFIssue key,Summary\nA-1,hello\n"
    header, records, err := ReadCSV(strings.NewReader(in))
    assert.NoError(t, err)
    assert.Equal(t, []string{"Issue key", "Summary"}, header)
    if assert.Len(t, records, 1) {
        assert.Equal(t, []string{"A-1", "hello"}, records[0])
    }
}

func TestReadCSVRaggedRows(t *testing.T) {
    in := "Issue key,Summary,Sprint\nA-1,short\nA-2,full,Sprint 1\n"
    _, records, err := ReadCSV(strings.NewReader(in))
    assert.NoError(t, err)
    assert.Len(t, records, 2)
}

func TestReadCSVEmpty(t *testing.T) {
    _, _, err := ReadCSV(strings.NewReader(""))
    assert.Error(t, err)
}

func TestValidateColumns(t *testing.T) {
    full := []string{
        "Issue key", "Summary", "Assignee", "Reporter", "Priority", "Status",
        "Created", "Updated", "Due date", "Original estimate",
        "Parent summary", "Sprint", "Work type",
    }
    assert.NoError(t, ValidateColumns(full))

    // "Issue Type" is accepted in place of "Work type"
    alias := append([]string{}, full[:len(full)-1]...)
    alias = append(alias, "Issue Type")
    assert.NoError(t, ValidateColumns(alias))

    err := ValidateColumns([]string{"Issue key", "Summary"})
    if assert.Error(t, err) {
        assert.Contains(t, err.Error(), "Sprint")
    }
}
