/* Copyright (c) 2025 beNovelty
 * SPDX-License-Identifier: BSD-3-Clause */
package http

import (
    "github.com/gin-gonic/gin"
    "github.com/rs/zerolog"

    "github.com/franklincheung-dev/jira-report/internal/config"
)

func NewRouter(cfg config.Config, log zerolog.Logger, svc any) *gin.Engine {
    if cfg.AppEnv != "dev" { gin.SetMode(gin.ReleaseMode) }
    r := gin.New()
    r.Use(gin.Recovery())
    r.Use(func(c *gin.Context){
        c.Next()
        log.Info().Str("m", c.Request.Method).Str("p", c.FullPath()).Int("s", c.Writer.Status()).Msg("http")
    })
    r.MaxMultipartMemory = cfg.MaxUploadBytes

    h := NewHandlers(cfg, log, svc)

    r.GET("/healthz", h.Healthz)
    r.POST("/upload", h.Upload)
    r.GET("/sprints", h.Sprints)
    r.POST("/dashboard", h.Dashboard)
    r.POST("/assignees", h.Assignees)
    r.POST("/projects", h.Projects)
    r.POST("/archive", h.Archive)
    r.GET("/archives", h.Archives)
    r.GET("/archives/:id", h.ArchiveByID)
    r.DELETE("/archives/:id", h.DeleteArchive)

    return r
}
