/* Copyright (c) 2025 beNovelty
 * SPDX-License-Identifier: BSD-3-Clause */

// Package ingest decodes uploaded issue exports into raw header+record
// form for the analytics engine.
package ingest

import (
    "bufio"
    "encoding/csv"
    "fmt"
    "io"
    "strings"
)

// requiredColumns are the columns the engine consumes. The work-type
// column has two spellings across export versions, handled separately.
var requiredColumns = []string{
    "Issue key", "Summary", "Assignee", "Reporter", "Priority", "Status",
    "Created", "Updated", "Due date", "Original estimate",
    "Parent summary", "Sprint",
}

// ReadCSV decodes an export into a header row and data records. Exports
// saved on Windows carry a UTF-8 BOM, stripped here; rows with ragged
// field counts are accepted and padded downstream.
func ReadCSV(r io.Reader) (header []string, records [][]string, err error) {
    br := bufio.NewReader(r)
    if b, _ := br.Peek(3); len(b) == 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
        br.Discard(3)
    }

    cr := csv.NewReader(br)
    cr.FieldsPerRecord = -1

    header, err = cr.Read()
    if err == io.EOF {
        return nil, nil, fmt.Errorf("empty upload")
    }
    if err != nil {
        return nil, nil, fmt.Errorf("read header: %w", err)
    }
    for i := range header {
        header[i] = strings.TrimSpace(header[i])
    }

    for {
        rec, err := cr.Read()
        if err == io.EOF { break }
        if err != nil {
            return nil, nil, fmt.Errorf("read row: %w", err)
        }
        records = append(records, rec)
    }
    return header, records, nil
}

// ValidateColumns checks that every column the engine consumes is
// present, naming the missing ones.
func ValidateColumns(header []string) error {
    present := map[string]bool{}
    for _, h := range header {
        present[h] = true
    }
    var missing []string
    for _, c := range requiredColumns {
        if !present[c] { missing = append(missing, c) }
    }
    if !present["Work type"] && !present["Issue Type"] {
        missing = append(missing, "Work type")
    }
    if len(missing) > 0 {
        return fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
    }
    return nil
}
