package services

import (
	"math"

	"github.com/terraincognita07/calibra/internal/models"
)

const (
	minAdjustmentDays          = 3
	adjustmentDeviationLimit   = 200.0
	adjustmentStep             = 100
	weeklyDeviationTolerance   = 500
	ReasonConsistentOvereating = "consistent_overeating"
	ReasonRoomForMoreCalories  = "room_for_more_calories"
)

// DayTotals is one day of planned versus consumed calories.
type DayTotals struct {
	Target   int
	Consumed int
}

type Adjustment struct {
	DailyTarget  int     `json:"daily_target"`
	BaseTarget   int     `json:"base_target"`
	Delta        int     `json:"delta"`
	AvgDeviation float64 `json:"avg_deviation"`
	Reason       string  `json:"reason,omitempty"`
}

func (adjustment Adjustment) Adjusted() bool {
	return adjustment.Delta != 0
}

type WeeklySummary struct {
	Days            int  `json:"days"`
	TotalTarget     int  `json:"total_target"`
	TotalConsumed   int  `json:"total_consumed"`
	WeeklyDeviation int  `json:"weekly_deviation"`
	OnTrack         bool `json:"on_track"`
}

// ComputeAdjustment shifts baseTarget when recent consumption consistently
// diverges from plan. Fewer than three days of history leave it unchanged.
//
// Overeating only lowers the target while cutting. A bulking user eating above
// target is goal-aligned and is deliberately left alone.
func ComputeAdjustment(days []DayTotals, baseTarget int, goalType models.GoalType) Adjustment {
	adjustment := Adjustment{DailyTarget: baseTarget, BaseTarget: baseTarget}
	if len(days) < minAdjustmentDays {
		return adjustment
	}

	var totalDeviation int
	for _, day := range days {
		totalDeviation += day.Consumed - day.Target
	}
	avgDeviation := float64(totalDeviation) / float64(len(days))
	adjustment.AvgDeviation = math.Round(avgDeviation*10) / 10

	switch {
	case avgDeviation > adjustmentDeviationLimit && goalType == models.GoalCutting:
		adjustment.Delta = -adjustmentStep
		adjustment.Reason = ReasonConsistentOvereating
	case avgDeviation < -adjustmentDeviationLimit:
		adjustment.Delta = adjustmentStep
		adjustment.Reason = ReasonRoomForMoreCalories
	}

	adjustment.DailyTarget = baseTarget + adjustment.Delta
	return adjustment
}

// BuildWeeklySummary aggregates tracked days. The weekly tolerance is looser
// than the daily adjustment threshold so day-to-day noise does not flag a week.
func BuildWeeklySummary(days []DayTotals) WeeklySummary {
	summary := WeeklySummary{Days: len(days)}
	for _, day := range days {
		summary.TotalTarget += day.Target
		summary.TotalConsumed += day.Consumed
	}
	summary.WeeklyDeviation = summary.TotalConsumed - summary.TotalTarget
	summary.OnTrack = absInt(summary.WeeklyDeviation) <= weeklyDeviationTolerance
	return summary
}

func DayTotalsFromTracking(entries []models.DailyTracking) []DayTotals {
	days := make([]DayTotals, 0, len(entries))
	for _, entry := range entries {
		days = append(days, DayTotals{Target: entry.TargetCalories, Consumed: entry.ConsumedCalories})
	}
	return days
}

func absInt(value int) int {
	if value < 0 {
		return -value
	}
	return value
}
