package db

import "gorm.io/gorm"

type Repositories struct {
	Profiles    *BodyProfileRepository
	WeightLogs  *WeightLogRepository
	WeightGoals *WeightGoalRepository
	Tracking    *DailyTrackingRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Profiles:    NewBodyProfileRepository(database),
		WeightLogs:  NewWeightLogRepository(database),
		WeightGoals: NewWeightGoalRepository(database),
		Tracking:    NewDailyTrackingRepository(database),
	}
}
