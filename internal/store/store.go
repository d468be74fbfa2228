/* Copyright (c) 2025 beNovelty
 * SPDX-License-Identifier: BSD-3-Clause */

// Package store holds each session's uploaded dataset in memory. A new
// upload replaces the session's dataset as a whole, so concurrent
// readers always see either the previous complete set or the new one.
package store

import (
    "sync"
    "time"

    "github.com/franklincheung-dev/jira-report/internal/domain"
    "github.com/franklincheung-dev/jira-report/internal/engine"
)

// Dataset is one session's working set: the normalized issues, the
// prebuilt sprint index over them, and upload bookkeeping.
type Dataset struct {
    Issues     []domain.Issue
    Index      *engine.SprintIndex
    Malformed  int
    UploadedAt time.Time
}

type Store struct {
    mu   sync.RWMutex
    sets map[string]*Dataset
}

func New() *Store {
    return &Store{sets: map[string]*Dataset{}}
}

// Replace swaps in a complete dataset for a session.
func (s *Store) Replace(sessionID string, ds *Dataset) {
    s.mu.Lock()
    defer s.mu.Unlock()
    s.sets[sessionID] = ds
}

// Get returns the session's current dataset, nil when none exists.
func (s *Store) Get(sessionID string) *Dataset {
    s.mu.RLock()
    defer s.mu.RUnlock()
    return s.sets[sessionID]
}

func (s *Store) Delete(sessionID string) {
    s.mu.Lock()
    defer s.mu.Unlock()
    delete(s.sets, sessionID)
}

// Sweep evicts datasets uploaded longer than ttl before now and returns
// how many were removed.
func (s *Store) Sweep(ttl time.Duration, now time.Time) int {
    s.mu.Lock()
    defer s.mu.Unlock()
    n := 0
    for id, ds := range s.sets {
        if now.Sub(ds.UploadedAt) > ttl {
            delete(s.sets, id)
            n++
        }
    }
    return n
}

// Len reports how many sessions currently hold a dataset.
func (s *Store) Len() int {
    s.mu.RLock()
    defer s.mu.RUnlock()
    return len(s.sets)
}
