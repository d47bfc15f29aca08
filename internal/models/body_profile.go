package models

import "time"

// BodyProfile holds the body metrics of one user. There is exactly one row per
// user; every save replaces the previous values.
type BodyProfile struct {
	UserID        string        `gorm:"primaryKey;size:64" json:"user_id"`
	Age           int           `gorm:"not null" json:"age"`
	Sex           Sex           `gorm:"not null" json:"sex"`
	HeightValue   float64       `gorm:"not null" json:"height"`
	HeightUnit    HeightUnit    `gorm:"not null" json:"height_unit"`
	WeightValue   float64       `gorm:"not null" json:"weight"`
	WeightUnit    WeightUnit    `gorm:"not null" json:"weight_unit"`
	ActivityLevel ActivityLevel `gorm:"not null" json:"activity_level"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
