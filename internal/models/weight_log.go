package models

import "time"

type WeightLog struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	UserID    string     `gorm:"not null;index:idx_weight_logs_user_logged,priority:1;size:64" json:"user_id"`
	Weight    float64    `gorm:"not null" json:"weight"`
	Unit      WeightUnit `gorm:"not null" json:"unit"`
	LoggedAt  time.Time  `gorm:"not null;index:idx_weight_logs_user_logged,priority:2" json:"logged_at"`
	Note      string     `json:"note,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
