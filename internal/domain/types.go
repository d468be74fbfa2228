/* Copyright (c) 2025 beNovelty
 * SPDX-License-Identifier: BSD-3-Clause */
package domain

import "time"

// Category is the work classification derived from an issue's parent summary.
type Category string

const (
    CategoryBillable Category = "Billable"
    CategoryProduct  Category = "Product"
    CategoryInternal Category = "Internal"
    CategoryOther    Category = "Other"
)

// Categories lists every category in display order. Breakdown maps are
// zero-filled over this set so a missing category always reads as 0.
func Categories() []Category {
    return []Category{CategoryBillable, CategoryProduct, CategoryInternal, CategoryOther}
}

// Issue is one normalized row of the uploaded export. Sprints holds every
// sprint the issue belongs to, first-occurrence ordered, deduplicated.
type Issue struct {
    Key           string     `json:"key"`
    Summary       string     `json:"summary"`
    WorkType      string     `json:"work_type"`
    Assignee      string     `json:"assignee"`
    Reporter      string     `json:"reporter"`
    Priority      string     `json:"priority"`
    Status        string     `json:"status"`
    Resolution    string     `json:"resolution"`
    CreatedAt     *time.Time `json:"created_at"`
    UpdatedAt     *time.Time `json:"updated_at"`
    DueDate       *time.Time `json:"due_date"`
    EstimateHours float64    `json:"original_estimate_hours"`
    ParentKey     string     `json:"parent_key"`
    ParentSummary string     `json:"parent_summary"`
    Description   string     `json:"description"`
    Sprints       []string   `json:"sprints"`
    Category      Category   `json:"category"`
}

type BlockerType string

const (
    BlockerOverdue    BlockerType = "overdue"
    BlockerIncomplete BlockerType = "incomplete"
)

// Blocker references an issue needing attention within a sprint. It is
// recomputed per request, never stored on its own.
type Blocker struct {
    IssueKey string      `json:"issue_key"`
    Summary  string      `json:"summary"`
    Assignee string      `json:"assignee"`
    Status   string      `json:"status"`
    Priority string      `json:"priority"`
    DueDate  *time.Time  `json:"due_date"`
    Type     BlockerType `json:"blocker_type"`
}

// ResourceUtilization is one assignee's share of a sprint.
type ResourceUtilization struct {
    Assignee        string  `json:"assignee"`
    TotalPoints     float64 `json:"total_points"`
    CompletedPoints float64 `json:"completed_points"`
    CompletionRate  float64 `json:"completion_rate"`
}

// ScopeChange compares a sprint's membership against a prior snapshot of
// the same sprint. Informational only, never a validation failure.
type ScopeChange struct {
    IssuesAdded   int     `json:"issues_added"`
    IssuesRemoved int     `json:"issues_removed"`
    PointsAdded   float64 `json:"points_added"`
    PointsRemoved float64 `json:"points_removed"`
}

// SprintMetrics is the immutable computed snapshot for one sprint.
// IssuePoints records each member issue's estimate so a later run can
// diff membership against this snapshot.
type SprintMetrics struct {
    SprintName           string                `json:"sprint_name"`
    SprintStatus         string                `json:"sprint_status"`
    TotalIssues          int                   `json:"total_issues"`
    TotalPoints          float64               `json:"total_points"`
    CompletedPoints      float64               `json:"completed_points"`
    CompletionPercentage float64               `json:"completion_percentage"`
    CategoryBreakdown    map[Category]float64  `json:"category_breakdown"`
    ResourceUtilization  []ResourceUtilization `json:"resource_utilization"`
    ProjectBreakdown     map[string]float64    `json:"project_breakdown"`
    Blockers             []Blocker             `json:"blockers"`
    BlockerCounts        map[BlockerType]int   `json:"blocker_counts"`
    IssuePoints          map[string]float64    `json:"issue_points"`
    ScopeChange          *ScopeChange          `json:"scope_change,omitempty"`
}

// CategoryStats carries per-category totals inside a sprint summary.
type CategoryStats struct {
    Total       float64 `json:"total"`
    Completed   float64 `json:"completed"`
    Utilization float64 `json:"utilization"`
}

// SprintSummary is one entry of the ordered sprint list shown in the
// selector and the velocity trend.
type SprintSummary struct {
    Name            string                     `json:"name"`
    IssueCount      int                        `json:"issue_count"`
    TotalPoints     float64                    `json:"total_points"`
    CompletedPoints float64                    `json:"completed_points"`
    Utilization     float64                    `json:"utilization"`
    Categories      map[Category]CategoryStats `json:"categories"`
    EndDate         *time.Time                 `json:"end_date,omitempty"`
}

// VelocityTrend is the multi-sprint series behind the trend chart and the
// forecast input. Only sprints with a non-zero velocity are recorded.
type VelocityTrend struct {
    SprintNames []string               `json:"sprint_names"`
    Velocities  []float64              `json:"velocities"`
    Categories  map[Category][]float64 `json:"categories,omitempty"`
}

// SprintForecast is the projection for one sprint slot.
// HistoricalUtilization is only set when a team capacity was supplied.
type SprintForecast struct {
    SprintName            string               `json:"sprint_name"`
    ForecastHours         float64              `json:"forecast_hours"`
    AllocatedHours        float64              `json:"allocated_hours"`
    UnallocatedHours      float64              `json:"unallocated_hours"`
    RemainingPercentage   float64              `json:"remaining_percentage"`
    CategoryBreakdown     map[Category]float64 `json:"category_breakdown"`
    HistoricalUtilization *float64             `json:"historical_utilization,omitempty"`
}

// ForecastHistory summarizes the velocity record the forecast was built
// from. DataQualityWarning is non-empty whenever history is too thin for
// the moving-average model.
type ForecastHistory struct {
    AvgVelocity        float64   `json:"avg_velocity"`
    Velocities         []float64 `json:"velocities"`
    SprintCount        int       `json:"sprint_count"`
    MovingAvgs         []float64 `json:"moving_avgs"`
    LatestMovingAvg    float64   `json:"latest_moving_avg"`
    DataQualityWarning string    `json:"data_quality_warning,omitempty"`
}

type Forecast struct {
    CurrentSprint  SprintForecast  `json:"current_sprint"`
    NextSprint     SprintForecast  `json:"next_sprint"`
    NextNextSprint SprintForecast  `json:"next_next_sprint"`
    Historical     ForecastHistory `json:"historical"`
    Notes          string          `json:"notes"`
}

// AssigneeReport is the per-assignee drill-down for one sprint.
type AssigneeReport struct {
    Name                 string               `json:"name"`
    TotalTasks           int                  `json:"total_tasks"`
    TotalPoints          float64              `json:"total_points"`
    CompletedPoints      float64              `json:"completed_points"`
    CompletionPercentage float64              `json:"completion_percentage"`
    CategoryBreakdown    map[Category]float64 `json:"category_breakdown"`
    StatusCounts         map[string]int       `json:"status_counts"`
    Blockers             []Blocker            `json:"blockers"`
}

// ProjectReport is the per-project drill-down for one sprint.
type ProjectReport struct {
    Name                 string             `json:"name"`
    TotalTasks           int                `json:"total_tasks"`
    TotalPoints          float64            `json:"total_points"`
    CompletionPercentage float64            `json:"completion_percentage"`
    CompletedPoints      float64            `json:"completed_points"`
    StatusCounts         map[string]int     `json:"status_counts"`
    TeamMembers          []string           `json:"team_members"`
    Blockers             []Blocker          `json:"blockers"`
    AssigneeDistribution map[string]float64 `json:"assignee_distribution"`
}

// ArchivedReport is a full computed snapshot persisted for later exact
// retrieval; reads never recompute.
type ArchivedReport struct {
    ID         string           `json:"archive_id"`
    SessionID  string           `json:"session_id"`
    SprintName string           `json:"sprint_name"`
    ArchivedAt time.Time        `json:"date_archived"`
    Metrics    SprintMetrics    `json:"metrics"`
    Forecast   Forecast         `json:"forecast"`
    Assignees  []AssigneeReport `json:"assignees"`
    Projects   []ProjectReport  `json:"projects"`
}
