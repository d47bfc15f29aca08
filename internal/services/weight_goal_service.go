package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/terraincognita07/calibra/internal/models"
)

const maxWeightNoteLength = 500

var (
	ErrInvalidWeight           = errors.New("invalid weight")
	ErrInvalidWeeklyRate       = errors.New("invalid weekly rate")
	ErrStartWeightRequired     = errors.New("start weight required")
	ErrNoActiveGoal            = errors.New("no active goal")
	ErrWeightLogNotFound       = errors.New("weight log not found")
	ErrWeightLogCreateFailed   = errors.New("create weight log failed")
	ErrWeightLogLoadFailed     = errors.New("load weight log failed")
	ErrGoalActivateFailed      = errors.New("activate goal failed")
	ErrGoalLoadFailed          = errors.New("load goal failed")
	ErrProfileWeightSyncFailed = errors.New("sync profile weight failed")
)

type WeightLogRepository interface {
	Create(entry *models.WeightLog) error
	DeleteByUserAndID(userID string, id string) (bool, error)
	ListByUser(userID string, limit int) ([]models.WeightLog, error)
	ListByUserRange(userID string, fromStart *time.Time, toEnd *time.Time) ([]models.WeightLog, error)
	FindLatestByUser(userID string) (models.WeightLog, bool, error)
}

type WeightGoalRepository interface {
	// Activate closes any active goal of goal.UserID as superseded and stores
	// goal as the only active one, atomically.
	Activate(goal *models.WeightGoal, supersededAt time.Time) error
	FindActiveByUser(userID string) (models.WeightGoal, bool, error)
	ListByUser(userID string) ([]models.WeightGoal, error)
	CloseActive(userID string, status models.GoalStatus, closedAt time.Time) (models.WeightGoal, bool, error)
}

// ProfileWeightWriter updates the current weight of an existing body profile.
// It reports false when the user has no profile yet.
type ProfileWeightWriter interface {
	UpdateWeight(userID string, weight float64, unit models.WeightUnit) (bool, error)
}

type WeightLogInput struct {
	Weight   float64
	Unit     models.WeightUnit
	Note     string
	LoggedAt time.Time
}

type GoalInput struct {
	GoalType     models.GoalType
	StartWeight  *float64
	TargetWeight float64
	Unit         models.WeightUnit
	WeeklyRate   *float64
}

type WeightGoalService struct {
	logs     WeightLogRepository
	goals    WeightGoalRepository
	profiles ProfileWeightWriter
	locks    *userLocks
}

func NewWeightGoalService(logs WeightLogRepository, goals WeightGoalRepository, profiles ProfileWeightWriter) *WeightGoalService {
	return &WeightGoalService{
		logs:     logs,
		goals:    goals,
		profiles: profiles,
		locks:    newUserLocks(),
	}
}

// LogWeight appends a weight entry. Logging the same weight twice creates two
// entries; the log is history, not state.
func (service *WeightGoalService) LogWeight(userID string, input WeightLogInput, now time.Time) (models.WeightLog, error) {
	if !isPositiveMeasurement(input.Weight) {
		return models.WeightLog{}, ErrInvalidWeight
	}
	if _, err := ToPounds(input.Weight, input.Unit); err != nil {
		return models.WeightLog{}, err
	}

	loggedAt := input.LoggedAt
	if loggedAt.IsZero() {
		loggedAt = now
	}

	entry := models.WeightLog{
		ID:       uuid.NewString(),
		UserID:   userID,
		Weight:   input.Weight,
		Unit:     input.Unit,
		LoggedAt: loggedAt,
		Note:     truncateNote(input.Note),
	}
	if err := service.logs.Create(&entry); err != nil {
		return models.WeightLog{}, ErrWeightLogCreateFailed
	}

	// entry is stored from here on: a sync failure still returns it.
	if err := service.syncProfileWeight(userID, entry); err != nil {
		return entry, fmt.Errorf("%w: %w", ErrProfileWeightSyncFailed, err)
	}
	return entry, nil
}

// syncProfileWeight copies entry onto the body profile when it is the newest
// weight the user has logged.
func (service *WeightGoalService) syncProfileWeight(userID string, entry models.WeightLog) error {
	if service.profiles == nil {
		return nil
	}
	latest, found, err := service.logs.FindLatestByUser(userID)
	if err != nil {
		return err
	}
	if !found || latest.ID != entry.ID {
		return nil
	}
	_, err = service.profiles.UpdateWeight(userID, entry.Weight, entry.Unit)
	return err
}

func (service *WeightGoalService) DeleteWeightLog(userID string, id string) error {
	deleted, err := service.logs.DeleteByUserAndID(userID, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if !deleted {
		return ErrWeightLogNotFound
	}
	return nil
}

func (service *WeightGoalService) ListWeightLogs(userID string, limit int) ([]models.WeightLog, error) {
	return service.logs.ListByUser(userID, limit)
}

func (service *WeightGoalService) LatestWeight(userID string) (models.WeightLog, bool, error) {
	return service.logs.FindLatestByUser(userID)
}

// SetUserGoal retires the current active goal, if any, and activates a new one
// as a single transition.
func (service *WeightGoalService) SetUserGoal(userID string, input GoalInput, now time.Time) (models.WeightGoal, error) {
	if !IsValidGoalType(input.GoalType) {
		return models.WeightGoal{}, ErrUnknownGoalType
	}
	if _, err := ToPounds(1, input.Unit); err != nil {
		return models.WeightGoal{}, err
	}
	if !isPositiveMeasurement(input.TargetWeight) {
		return models.WeightGoal{}, ErrInvalidWeight
	}
	if input.WeeklyRate != nil && (*input.WeeklyRate < 0 || math.IsNaN(*input.WeeklyRate) || math.IsInf(*input.WeeklyRate, 0)) {
		return models.WeightGoal{}, ErrInvalidWeeklyRate
	}

	unlock := service.locks.lock(userID)
	defer unlock()

	startWeight, err := service.resolveStartWeight(userID, input)
	if err != nil {
		return models.WeightGoal{}, err
	}

	var weeklyRate *float64
	if input.WeeklyRate != nil {
		rate := *input.WeeklyRate
		weeklyRate = &rate
	}

	goal := models.WeightGoal{
		ID:           uuid.NewString(),
		UserID:       userID,
		GoalType:     input.GoalType,
		StartWeight:  startWeight,
		TargetWeight: input.TargetWeight,
		Unit:         input.Unit,
		WeeklyRate:   weeklyRate,
		Status:       models.GoalStatusActive,
		CreatedAt:    now,
	}
	if err := service.goals.Activate(&goal, now); err != nil {
		return models.WeightGoal{}, ErrGoalActivateFailed
	}
	return goal, nil
}

func (service *WeightGoalService) ActiveGoal(userID string) (models.WeightGoal, bool, error) {
	return service.goals.FindActiveByUser(userID)
}

func (service *WeightGoalService) GoalHistory(userID string) ([]models.WeightGoal, error) {
	return service.goals.ListByUser(userID)
}

func (service *WeightGoalService) CompleteGoal(userID string, now time.Time) (models.WeightGoal, error) {
	return service.closeActiveGoal(userID, models.GoalStatusCompleted, now)
}

func (service *WeightGoalService) AbandonGoal(userID string, now time.Time) (models.WeightGoal, error) {
	return service.closeActiveGoal(userID, models.GoalStatusAbandoned, now)
}

// ComputeProgress returns nil when there is no active goal or no logged
// weight; progress cannot be measured without both.
func (service *WeightGoalService) ComputeProgress(userID string, now time.Time) (*GoalProgress, error) {
	goal, found, err := service.goals.FindActiveByUser(userID)
	if err != nil {
		return nil, ErrGoalLoadFailed
	}
	if !found {
		return nil, nil
	}

	latest, found, err := service.logs.FindLatestByUser(userID)
	if err != nil {
		return nil, ErrWeightLogLoadFailed
	}
	if !found {
		return nil, nil
	}

	progress, err := BuildGoalProgress(goal, latest, now)
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (service *WeightGoalService) closeActiveGoal(userID string, status models.GoalStatus, now time.Time) (models.WeightGoal, error) {
	unlock := service.locks.lock(userID)
	defer unlock()

	goal, found, err := service.goals.CloseActive(userID, status, now)
	if err != nil {
		return models.WeightGoal{}, ErrGoalLoadFailed
	}
	if !found {
		return models.WeightGoal{}, ErrNoActiveGoal
	}
	return goal, nil
}

func (service *WeightGoalService) resolveStartWeight(userID string, input GoalInput) (float64, error) {
	if input.StartWeight != nil {
		if !isPositiveMeasurement(*input.StartWeight) {
			return 0, ErrInvalidWeight
		}
		return *input.StartWeight, nil
	}

	latest, found, err := service.logs.FindLatestByUser(userID)
	if err != nil {
		return 0, ErrWeightLogLoadFailed
	}
	if !found {
		return 0, ErrStartWeightRequired
	}
	start, err := ConvertWeight(latest.Weight, latest.Unit, input.Unit)
	if err != nil {
		return 0, err
	}
	return round2(start), nil
}

func truncateNote(raw string) string {
	note := strings.TrimSpace(raw)
	if utf8.RuneCountInString(note) <= maxWeightNoteLength {
		return note
	}
	return string([]rune(note)[:maxWeightNoteLength])
}
