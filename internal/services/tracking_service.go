package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/calibra/internal/models"
)

const adjustmentWindowDays = 7

var (
	ErrInvalidConsumed    = errors.New("invalid consumed calories")
	ErrInvalidRange       = errors.New("invalid date range")
	ErrTrackingLoadFailed = errors.New("load daily tracking failed")
	ErrTrackingSaveFailed = errors.New("save daily tracking failed")
)

type DailyTrackingRepository interface {
	FindByUserAndDay(userID string, dayStart time.Time, dayEnd time.Time) (models.DailyTracking, bool, error)
	ListByUserRange(userID string, fromStart *time.Time, toEnd *time.Time) ([]models.DailyTracking, error)
	Create(entry *models.DailyTracking) error
	Save(entry *models.DailyTracking) error
}

type TrackingProfileReader interface {
	FindByUser(userID string) (models.BodyProfile, bool, error)
}

type TrackingGoalReader interface {
	FindActiveByUser(userID string) (models.WeightGoal, bool, error)
}

// TargetOptions carries the optional caller context for a daily target.
type TargetOptions struct {
	CyclePhase          *models.CyclePhase
	CustomDailyCalories *int
}

type TrackingService struct {
	days     DailyTrackingRepository
	profiles TrackingProfileReader
	goals    TrackingGoalReader
	location *time.Location
}

func NewTrackingService(days DailyTrackingRepository, profiles TrackingProfileReader, goals TrackingGoalReader, location *time.Location) *TrackingService {
	if location == nil {
		location = time.UTC
	}
	return &TrackingService{
		days:     days,
		profiles: profiles,
		goals:    goals,
		location: location,
	}
}

// Recommendation resolves the baseline target from the stored profile and the
// active goal. Without an active goal the user is treated as maintaining.
func (service *TrackingService) Recommendation(userID string, options TargetOptions) (CalorieRecommendation, models.GoalType, error) {
	profile, found, err := service.profiles.FindByUser(userID)
	if err != nil {
		return CalorieRecommendation{}, "", ErrProfileLoadFailed
	}
	if !found {
		return CalorieRecommendation{}, "", ErrProfileNotFound
	}

	request := TargetRequest{
		GoalType:            models.GoalMaintaining,
		CustomDailyCalories: options.CustomDailyCalories,
		CyclePhase:          options.CyclePhase,
	}
	goal, found, err := service.goals.FindActiveByUser(userID)
	if err != nil {
		return CalorieRecommendation{}, "", ErrGoalLoadFailed
	}
	if found {
		request.GoalType = goal.GoalType
		request.WeeklyRate = goal.WeeklyRate
	}

	recommendation, err := ResolveDailyTarget(profile, request)
	if err != nil {
		return CalorieRecommendation{}, "", err
	}
	return recommendation, request.GoalType, nil
}

// RecordDay stores the consumed calories for a calendar day together with the
// target that applies to it. The target starts from the recommendation and is
// adapted from the tracked days of the preceding week.
func (service *TrackingService) RecordDay(userID string, day time.Time, consumed int, options TargetOptions) (models.DailyTracking, Adjustment, error) {
	if consumed < 0 {
		return models.DailyTracking{}, Adjustment{}, ErrInvalidConsumed
	}

	recommendation, goalType, err := service.Recommendation(userID, options)
	if err != nil {
		return models.DailyTracking{}, Adjustment{}, err
	}

	dayStart, dayEnd := DayRange(day, service.location)
	windowStart := dayStart.AddDate(0, 0, -adjustmentWindowDays)
	history, err := service.days.ListByUserRange(userID, &windowStart, &dayStart)
	if err != nil {
		return models.DailyTracking{}, Adjustment{}, ErrTrackingLoadFailed
	}

	adjustment := ComputeAdjustment(DayTotalsFromTracking(history), recommendation.DailyTarget, goalType)
	if !recommendation.Custom && adjustment.DailyTarget < recommendation.MinCalories {
		adjustment.DailyTarget = recommendation.MinCalories
		adjustment.Delta = adjustment.DailyTarget - adjustment.BaseTarget
		if adjustment.Delta == 0 {
			adjustment.Reason = ""
		}
	}

	entry, found, err := service.days.FindByUserAndDay(userID, dayStart, dayEnd)
	if err != nil {
		return models.DailyTracking{}, Adjustment{}, ErrTrackingLoadFailed
	}

	entry.UserID = userID
	entry.Date = dayStart
	entry.TargetCalories = adjustment.DailyTarget
	entry.ConsumedCalories = consumed
	entry.Adjusted = adjustment.Adjusted()
	entry.AdjustmentReason = adjustment.Reason
	entry.OriginalTarget = nil
	entry.CyclePhase = ""
	if options.CyclePhase != nil {
		entry.CyclePhase = *options.CyclePhase
	}
	if entry.Adjusted {
		original := adjustment.BaseTarget
		entry.OriginalTarget = &original
	}

	if found {
		err = service.days.Save(&entry)
	} else {
		entry.ID = uuid.NewString()
		err = service.days.Create(&entry)
	}
	if err != nil {
		return models.DailyTracking{}, Adjustment{}, ErrTrackingSaveFailed
	}
	return entry, adjustment, nil
}

// ListDays returns tracked days between from and to, both inclusive.
func (service *TrackingService) ListDays(userID string, from time.Time, to time.Time) ([]models.DailyTracking, error) {
	fromStart := DateAtLocation(from, service.location)
	_, toEnd := DayRange(to, service.location)
	if !fromStart.Before(toEnd) {
		return nil, ErrInvalidRange
	}
	entries, err := service.days.ListByUserRange(userID, &fromStart, &toEnd)
	if err != nil {
		return nil, ErrTrackingLoadFailed
	}
	return entries, nil
}

// WeeklySummary aggregates the seven calendar days ending on end.
func (service *TrackingService) WeeklySummary(userID string, end time.Time) (WeeklySummary, []models.DailyTracking, error) {
	from := DateAtLocation(end, service.location).AddDate(0, 0, -(adjustmentWindowDays - 1))
	entries, err := service.ListDays(userID, from, end)
	if err != nil {
		return WeeklySummary{}, nil, err
	}
	return BuildWeeklySummary(DayTotalsFromTracking(entries)), entries, nil
}
