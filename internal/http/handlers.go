/* Copyright (c) 2025 beNovelty
 * SPDX-License-Identifier: BSD-3-Clause */
package http

import (
    "context"
    "errors"
    "io"
    "net/http"

    "github.com/gin-gonic/gin"
    "github.com/google/uuid"
    "github.com/rs/zerolog"

    "github.com/franklincheung-dev/jira-report/internal/config"
    "github.com/franklincheung-dev/jira-report/internal/domain"
    "github.com/franklincheung-dev/jira-report/internal/repo"
    "github.com/franklincheung-dev/jira-report/internal/services"
)

const sessionCookie = "session_id"

type service interface {
    Upload(sessionID string, r io.Reader) (services.UploadResult, error)
    Sprints(sessionID string) ([]domain.SprintSummary, error)
    Dashboard(ctx context.Context, sessionID, sprintName string, teamCapacityHours float64) (services.Dashboard, error)
    Assignees(sessionID, sprintName string) ([]domain.AssigneeReport, error)
    Projects(sessionID, sprintName string) ([]domain.ProjectReport, error)
    Archive(ctx context.Context, sessionID, sprintName string, teamCapacityHours float64) (domain.ArchivedReport, error)
    ArchivedReports(ctx context.Context, sessionID string) ([]domain.ArchivedReport, error)
    ArchivedReport(ctx context.Context, id string) (domain.ArchivedReport, error)
    DeleteArchived(ctx context.Context, id string) error
}

type Handlers struct {
    cfg config.Config
    log zerolog.Logger
    svc service
}

func NewHandlers(cfg config.Config, log zerolog.Logger, svc any) *Handlers {
    return &Handlers{cfg: cfg, log: log, svc: svc.(service)}
}

// session returns the caller's session id, minting a cookie on first
// contact.
func (h *Handlers) session(c *gin.Context) string {
    if id, err := c.Cookie(sessionCookie); err == nil && id != "" {
        return id
    }
    id := uuid.NewString()
    c.SetCookie(sessionCookie, id, 0, "/", "", false, true)
    return id
}

func ok(c *gin.Context, data gin.H) {
    data["status"] = "success"
    c.JSON(http.StatusOK, data)
}

func fail(c *gin.Context, code int, msg string) {
    c.JSON(code, gin.H{"status": "error", "message": msg})
}

func (h *Handlers) failFrom(c *gin.Context, err error) {
    switch {
    case errors.Is(err, services.ErrNoDataset):
        fail(c, http.StatusBadRequest, "no data uploaded for this session")
    case errors.Is(err, repo.ErrNotFound):
        fail(c, http.StatusNotFound, "archived report not found")
    default:
        h.log.Error().Err(err).Str("p", c.FullPath()).Msg("request failed")
        fail(c, http.StatusInternalServerError, err.Error())
    }
}

func (h *Handlers) Healthz(c *gin.Context) {
    c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handlers) Upload(c *gin.Context) {
    file, err := c.FormFile("file")
    if err != nil {
        fail(c, http.StatusBadRequest, "missing file field")
        return
    }
    if file.Size > h.cfg.MaxUploadBytes {
        fail(c, http.StatusRequestEntityTooLarge, "upload too large")
        return
    }
    f, err := file.Open()
    if err != nil {
        h.failFrom(c, err)
        return
    }
    defer f.Close()

    res, err := h.svc.Upload(h.session(c), f)
    if err != nil {
        fail(c, http.StatusBadRequest, err.Error())
        return
    }
    ok(c, gin.H{
        "issue_count":    res.IssueCount,
        "malformed_rows": res.MalformedRows,
        "sprints":        res.Sprints,
    })
}

func (h *Handlers) Sprints(c *gin.Context) {
    sprints, err := h.svc.Sprints(h.session(c))
    if err != nil {
        h.failFrom(c, err)
        return
    }
    ok(c, gin.H{"sprints": sprints})
}

type dashboardRequest struct {
    Sprint            string  `json:"sprint" binding:"required"`
    TeamCapacityHours float64 `json:"team_capacity_hours"`
}

func (h *Handlers) Dashboard(c *gin.Context) {
    var req dashboardRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        fail(c, http.StatusBadRequest, "sprint is required")
        return
    }
    d, err := h.svc.Dashboard(c.Request.Context(), h.session(c), req.Sprint, req.TeamCapacityHours)
    if err != nil {
        h.failFrom(c, err)
        return
    }
    ok(c, gin.H{"metrics": d.Metrics, "trend": d.Trend, "forecast": d.Forecast})
}

type sprintRequest struct {
    Sprint string `json:"sprint" binding:"required"`
}

func (h *Handlers) Assignees(c *gin.Context) {
    var req sprintRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        fail(c, http.StatusBadRequest, "sprint is required")
        return
    }
    reports, err := h.svc.Assignees(h.session(c), req.Sprint)
    if err != nil {
        h.failFrom(c, err)
        return
    }
    ok(c, gin.H{"assignees": reports})
}

func (h *Handlers) Projects(c *gin.Context) {
    var req sprintRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        fail(c, http.StatusBadRequest, "sprint is required")
        return
    }
    reports, err := h.svc.Projects(h.session(c), req.Sprint)
    if err != nil {
        h.failFrom(c, err)
        return
    }
    ok(c, gin.H{"projects": reports})
}

func (h *Handlers) Archive(c *gin.Context) {
    var req dashboardRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        fail(c, http.StatusBadRequest, "sprint is required")
        return
    }
    rep, err := h.svc.Archive(c.Request.Context(), h.session(c), req.Sprint, req.TeamCapacityHours)
    if err != nil {
        h.failFrom(c, err)
        return
    }
    ok(c, gin.H{"archive_id": rep.ID, "archived_at": rep.ArchivedAt})
}

func (h *Handlers) Archives(c *gin.Context) {
    reports, err := h.svc.ArchivedReports(c.Request.Context(), h.session(c))
    if err != nil {
        h.failFrom(c, err)
        return
    }
    ok(c, gin.H{"archives": reports})
}

func (h *Handlers) ArchiveByID(c *gin.Context) {
    rep, err := h.svc.ArchivedReport(c.Request.Context(), c.Param("id"))
    if err != nil {
        h.failFrom(c, err)
        return
    }
    ok(c, gin.H{"archive": rep})
}

func (h *Handlers) DeleteArchive(c *gin.Context) {
    if err := h.svc.DeleteArchived(c.Request.Context(), c.Param("id")); err != nil {
        h.failFrom(c, err)
        return
    }
    ok(c, gin.H{"deleted": c.Param("id")})
}
