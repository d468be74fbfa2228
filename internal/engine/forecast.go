/* Copyright (c) 2025 beNovelty
 * SPDX-License-Identifier: BSD-3-Clause */
package engine

import (
    "fmt"

    "github.com/franklincheung-dev/jira-report/internal/domain"
)

// DefaultForecastWindow is the moving-average span when none is
// configured.
const DefaultForecastWindow = 4

// defaultCategoryMix splits a forecast when no historical mix exists.
var defaultCategoryMix = map[domain.Category]float64{
    domain.CategoryBillable: 0.60,
    domain.CategoryProduct:  0.20,
    domain.CategoryInternal: 0.15,
    domain.CategoryOther:    0.05,
}

// Trend builds the velocity series across sprints in display order.
// Velocity is the completed points of a sprint; sprints with zero
// velocity are skipped so the trend reflects sprints that delivered.
func Trend(ix *SprintIndex) domain.VelocityTrend {
    t := domain.VelocityTrend{
        SprintNames: []string{},
        Velocities:  []float64{},
        Categories:  map[domain.Category][]float64{},
    }
    for _, name := range ix.Names() {
        v := 0.0
        perCat := map[domain.Category]float64{}
        for _, iss := range ix.Issues(name) {
            if StatusDone(iss.Status) {
                v += iss.EstimateHours
                perCat[iss.Category] += iss.EstimateHours
            }
        }
        if v <= 0 { continue }
        t.SprintNames = append(t.SprintNames, name)
        t.Velocities = append(t.Velocities, v)
        for _, c := range domain.Categories() {
            t.Categories[c] = append(t.Categories[c], perCat[c])
        }
    }
    return t
}

// ForecastCapacity projects the current and next two sprints from the
// moving average of completed-sprint velocity. The selected sprint is
// treated as open and excluded from history. Thin history degrades
// gracefully: a single completed sprint becomes the projection with a
// data-quality warning, and no history at all falls back to the supplied
// team capacity. A negative capacity reads as 0.
func ForecastCapacity(ix *SprintIndex, currentSprint string, teamCapacityHours float64, window int) domain.Forecast {
    if teamCapacityHours < 0 { teamCapacityHours = 0 }
    if window < 1 { window = DefaultForecastWindow }

    pos := ix.Position(currentSprint)
    names := ix.Names()
    if pos < 0 { pos = len(names) }

    var sprints []string
    var velocities []float64
    for i := 0; i < pos; i++ {
        v := completedPoints(ix.Issues(names[i]))
        if v <= 0 { continue }
        sprints = append(sprints, names[i])
        velocities = append(velocities, v)
    }

    hist := domain.ForecastHistory{
        Velocities:  append([]float64{}, velocities...),
        SprintCount: len(velocities),
        MovingAvgs:  []float64{},
    }
    forecastHours := 0.0
    switch {
    case len(velocities) == 0:
        hist.DataQualityWarning = "No historical sprint data available for forecasting."
        forecastHours = teamCapacityHours
    case len(velocities) == 1:
        hist.AvgVelocity = velocities[0]
        hist.LatestMovingAvg = velocities[0]
        hist.MovingAvgs = []float64{velocities[0]}
        hist.DataQualityWarning = fmt.Sprintf("Only %d completed sprint available; forecast uses a simple average.", len(velocities))
        forecastHours = velocities[0]
    default:
        hist.AvgVelocity = mean(velocities)
        w := window
        if w > len(velocities) { w = len(velocities) }
        for i := w - 1; i < len(velocities); i++ {
            hist.MovingAvgs = append(hist.MovingAvgs, mean(velocities[i-w+1:i+1]))
        }
        hist.LatestMovingAvg = hist.MovingAvgs[len(hist.MovingAvgs)-1]
        forecastHours = hist.LatestMovingAvg
    }

    // the category split follows the same window as the moving average,
    // not the still-open current sprint
    mixSprints := sprints
    if len(mixSprints) > window {
        mixSprints = mixSprints[len(mixSprints)-window:]
    }
    mix := historicalMix(ix, mixSprints)
    slots := [3]string{currentSprint, "Future Sprint 1", "Future Sprint 2"}
    for i := 1; i <= 2; i++ {
        if pos+i < len(names) { slots[i] = names[pos+i] }
    }

    f := domain.Forecast{
        Historical: hist,
        Notes:      fmt.Sprintf("Projection uses a %d-sprint moving average of completed velocity.", window),
    }
    f.CurrentSprint = forecastSlot(ix, slots[0], forecastHours, mix)
    f.NextSprint = forecastSlot(ix, slots[1], forecastHours, mix)
    f.NextNextSprint = forecastSlot(ix, slots[2], forecastHours, mix)

    if teamCapacityHours > 0 {
        u := hist.AvgVelocity / teamCapacityHours * 100
        f.CurrentSprint.HistoricalUtilization = &u
    }
    return f
}

func forecastSlot(ix *SprintIndex, name string, forecastHours float64, mix map[domain.Category]float64) domain.SprintForecast {
    allocated := 0.0
    for _, iss := range ix.Issues(name) {
        allocated += iss.EstimateHours
    }
    sf := domain.SprintForecast{
        SprintName:        name,
        ForecastHours:     forecastHours,
        AllocatedHours:    allocated,
        CategoryBreakdown: map[domain.Category]float64{},
    }
    if forecastHours > allocated {
        sf.UnallocatedHours = forecastHours - allocated
    }
    if forecastHours > 0 {
        sf.RemainingPercentage = sf.UnallocatedHours / forecastHours * 100
    }
    for _, c := range domain.Categories() {
        sf.CategoryBreakdown[c] = forecastHours * mix[c]
    }
    return sf
}

// historicalMix normalizes the category share of points across completed
// sprints, falling back to a fixed split when no history exists.
func historicalMix(ix *SprintIndex, sprints []string) map[domain.Category]float64 {
    totals := map[domain.Category]float64{}
    sum := 0.0
    for _, name := range sprints {
        for _, iss := range ix.Issues(name) {
            totals[iss.Category] += iss.EstimateHours
            sum += iss.EstimateHours
        }
    }
    if sum <= 0 { return defaultCategoryMix }
    mix := map[domain.Category]float64{}
    for _, c := range domain.Categories() {
        mix[c] = totals[c] / sum
    }
    return mix
}

func completedPoints(issues []domain.Issue) float64 {
    v := 0.0
    for _, iss := range issues {
        if StatusDone(iss.Status) { v += iss.EstimateHours }
    }
    return v
}

func mean(v []float64) float64 {
    if len(v) == 0 { return 0 }
    s := 0.0
    for _, x := range v { s += x }
    return s / float64(len(v))
}
