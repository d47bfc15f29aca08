package models

import (
	"encoding/json"
	"time"
)

type DailyTracking struct {
	ID               string     `gorm:"primaryKey;size:36" json:"id"`
	UserID           string     `gorm:"not null;uniqueIndex:uidx_tracking_user_date;size:64" json:"user_id"`
	Date             time.Time  `gorm:"type:date;not null;uniqueIndex:uidx_tracking_user_date" json:"date"`
	TargetCalories   int        `gorm:"not null" json:"target_calories"`
	ConsumedCalories int        `gorm:"not null;default:0" json:"consumed_calories"`
	Adjusted         bool       `gorm:"not null;default:false" json:"adjusted"`
	AdjustmentReason string     `json:"adjustment_reason,omitempty"`
	OriginalTarget   *int       `json:"original_target,omitempty"`
	CyclePhase       CyclePhase `json:"cycle_phase,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (DailyTracking) TableName() string {
	return "daily_tracking"
}

func (entry DailyTracking) RemainingCalories() int {
	return entry.TargetCalories - entry.ConsumedCalories
}

func (entry DailyTracking) MarshalJSON() ([]byte, error) {
	type plain DailyTracking
	return json.Marshal(struct {
		plain
		Date              string `json:"date"`
		RemainingCalories int    `json:"remaining_calories"`
	}{
		plain:             plain(entry),
		Date:              entry.Date.Format("2006-01-02"),
		RemainingCalories: entry.RemainingCalories(),
	})
}
