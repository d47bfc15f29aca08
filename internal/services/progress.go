package services

import (
	"math"
	"time"

	"github.com/terraincognita07/calibra/internal/models"
)

// onTrackTolerance is the share of the expected change a user must reach to be
// considered on track.
const onTrackTolerance = 0.8

type GoalProgress struct {
	GoalID          string            `json:"goal_id"`
	GoalType        models.GoalType   `json:"goal_type"`
	Unit            models.WeightUnit `json:"unit"`
	StartWeight     float64           `json:"start_weight"`
	TargetWeight    float64           `json:"target_weight"`
	CurrentWeight   float64           `json:"current_weight"`
	TotalChange     float64           `json:"total_change"`
	CurrentChange   float64           `json:"current_change"`
	RemainingChange float64           `json:"remaining_change"`
	PercentComplete float64           `json:"percent_complete"`
	ElapsedWeeks    float64           `json:"elapsed_weeks"`
	ExpectedChange  *float64          `json:"expected_change,omitempty"`
	OnTrack         bool              `json:"on_track"`
	LatestLoggedAt  time.Time         `json:"latest_logged_at"`
}

// BuildGoalProgress measures the latest weight against a goal. The latest
// weight is converted into the goal's unit first.
func BuildGoalProgress(goal models.WeightGoal, latest models.WeightLog, now time.Time) (GoalProgress, error) {
	current, err := ConvertWeight(latest.Weight, latest.Unit, goal.Unit)
	if err != nil {
		return GoalProgress{}, err
	}

	totalChange := goal.TargetWeight - goal.StartWeight
	currentChange := current - goal.StartWeight

	percent := 0.0
	if totalChange != 0 {
		percent = currentChange / totalChange * 100
	}

	elapsedWeeks := math.Max(1, now.Sub(goal.CreatedAt).Hours()/24/7)

	progress := GoalProgress{
		GoalID:          goal.ID,
		GoalType:        goal.GoalType,
		Unit:            goal.Unit,
		StartWeight:     goal.StartWeight,
		TargetWeight:    goal.TargetWeight,
		CurrentWeight:   round2(current),
		TotalChange:     round2(totalChange),
		CurrentChange:   round2(currentChange),
		RemainingChange: round2(goal.TargetWeight - current),
		PercentComplete: round2(percent),
		ElapsedWeeks:    round2(elapsedWeeks),
		OnTrack:         true,
		LatestLoggedAt:  latest.LoggedAt,
	}

	// WeeklyRate is lbs/week regardless of the goal's unit.
	if goal.WeeklyRate != nil {
		expected, err := FromPounds(*goal.WeeklyRate*elapsedWeeks, goal.Unit)
		if err != nil {
			return GoalProgress{}, err
		}
		progress.OnTrack = math.Abs(currentChange) >= onTrackTolerance*expected
		rounded := round2(expected)
		progress.ExpectedChange = &rounded
	}

	return progress, nil
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
