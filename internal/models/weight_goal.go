package models

import "time"

type GoalType string

const (
	GoalCutting     GoalType = "cutting"
	GoalBulking     GoalType = "bulking"
	GoalMaintaining GoalType = "maintaining"
)

type GoalStatus string

const (
	GoalStatusActive     GoalStatus = "active"
	GoalStatusCompleted  GoalStatus = "completed"
	GoalStatusAbandoned  GoalStatus = "abandoned"
	GoalStatusSuperseded GoalStatus = "superseded"
)

// WeightGoal is one goal attempt. Only Status and ClosedAt change after
// creation; a correction is a new goal that supersedes this one.
type WeightGoal struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	UserID       string     `gorm:"not null;index;size:64" json:"user_id"`
	GoalType     GoalType   `gorm:"not null" json:"goal_type"`
	StartWeight  float64    `gorm:"not null" json:"start_weight"`
	TargetWeight float64    `gorm:"not null" json:"target_weight"`
	Unit         WeightUnit `gorm:"not null" json:"unit"`
	WeeklyRate   *float64   `json:"weekly_rate,omitempty"`
	Status       GoalStatus `gorm:"not null;default:active" json:"status"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	ClosedAt     *time.Time `json:"closed_at,omitempty"`
}

func (goal WeightGoal) Active() bool {
	return goal.Status == GoalStatusActive
}
