/* Copyright (c) 2025 beNovelty
 * SPDX-License-Identifier: BSD-3-Clause */
package engine

import "strings"

func normalizeStatus(s string) string {
    return strings.ToLower(strings.TrimSpace(s))
}

// StatusDone reports whether a status denotes a terminal state. Exports
// from different workflows spell completion differently, so the check is
// case-insensitive over the usual terminal names.
func StatusDone(status string) bool {
    switch normalizeStatus(status) {
    case "done", "closed", "resolved":
        return true
    }
    return false
}

// highPriority reports whether a priority sits in the escalation tier
// that makes an unfinished issue a blocker.
func highPriority(priority string) bool {
    switch normalizeStatus(priority) {
    case "highest", "high", "critical", "blocker":
        return true
    }
    return false
}
