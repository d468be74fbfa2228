/* Copyright (c) 2025 beNovelty
 * SPDX-License-Identifier: BSD-3-Clause */
package repo

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "time"

    "github.com/jackc/pgx/v5"
    "github.com/jackc/pgx/v5/pgxpool"
    "github.com/rs/zerolog"

    "github.com/franklincheung-dev/jira-report/internal/config"
    "github.com/franklincheung-dev/jira-report/internal/domain"
)

// ErrNotFound is returned when an archive id does not exist.
var ErrNotFound = errors.New("archived report not found")

type DB struct {
    Pool *pgxpool.Pool
    log  zerolog.Logger
}

func MustOpen(ctx context.Context, cfg config.Config, log zerolog.Logger) *DB {
    pool, err := pgxpool.New(ctx, cfg.DBDSN)
    if err != nil { log.Fatal().Err(err).Msg("db connect failed") }
    ctx2, cancel := context.WithTimeout(ctx, 10*time.Second); defer cancel()
    if err := pool.Ping(ctx2); err != nil { log.Fatal().Err(err).Msg("db ping failed") }
    return &DB{Pool: pool, log: log}
}

func (d *DB) Close() { d.Pool.Close() }

// Repository persists archived report snapshots. Snapshots are stored
// verbatim as jsonb and returned without recomputation.
type Repository struct {
    db  *DB
    log zerolog.Logger
}

func NewRepository(d *DB, log zerolog.Logger) *Repository { return &Repository{db: d, log: log} }

func (r *Repository) SaveReport(ctx context.Context, rep domain.ArchivedReport) error {
    payload, err := json.Marshal(rep)
    if err != nil { return fmt.Errorf("marshal report: %w", err) }
    const q = `
        INSERT INTO reports(id, session_id, sprint_name, archived_at, payload)
        VALUES($1,$2,$3,$4,$5)`
    _, err = r.db.Pool.Exec(ctx, q, rep.ID, rep.SessionID, rep.SprintName, rep.ArchivedAt, payload)
    if err != nil { return fmt.Errorf("insert report: %w", err) }
    return nil
}

func (r *Repository) GetReport(ctx context.Context, id string) (domain.ArchivedReport, error) {
    var payload []byte
    err := r.db.Pool.QueryRow(ctx, `SELECT payload FROM reports WHERE id=$1`, id).Scan(&payload)
    if errors.Is(err, pgx.ErrNoRows) { return domain.ArchivedReport{}, ErrNotFound }
    if err != nil { return domain.ArchivedReport{}, fmt.Errorf("select report: %w", err) }
    var rep domain.ArchivedReport
    if err := json.Unmarshal(payload, &rep); err != nil {
        return domain.ArchivedReport{}, fmt.Errorf("unmarshal report: %w", err)
    }
    return rep, nil
}

// ListReports returns a session's archived reports, newest first.
func (r *Repository) ListReports(ctx context.Context, sessionID string) ([]domain.ArchivedReport, error) {
    const q = `SELECT payload FROM reports WHERE session_id=$1 ORDER BY archived_at DESC`
    rows, err := r.db.Pool.Query(ctx, q, sessionID)
    if err != nil { return nil, fmt.Errorf("list reports: %w", err) }
    defer rows.Close()

    out := []domain.ArchivedReport{}
    for rows.Next() {
        var payload []byte
        if err := rows.Scan(&payload); err != nil { return nil, err }
        var rep domain.ArchivedReport
        if err := json.Unmarshal(payload, &rep); err != nil {
            return nil, fmt.Errorf("unmarshal report: %w", err)
        }
        out = append(out, rep)
    }
    return out, rows.Err()
}

func (r *Repository) DeleteReport(ctx context.Context, id string) error {
    tag, err := r.db.Pool.Exec(ctx, `DELETE FROM reports WHERE id=$1`, id)
    if err != nil { return fmt.Errorf("delete report: %w", err) }
    if tag.RowsAffected() == 0 { return ErrNotFound }
    return nil
}
