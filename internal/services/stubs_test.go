package services

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/terraincognita07/calibra/internal/models"
)

var errStubFailure = errors.New("stub failure")

type weightLogRepositoryStub struct {
	mu        sync.Mutex
	entries   []models.WeightLog
	createErr error
	latestErr error
}

func (stub *weightLogRepositoryStub) Create(entry *models.WeightLog) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	if stub.createErr != nil {
		return stub.createErr
	}
	stub.entries = append(stub.entries, *entry)
	return nil
}

func (stub *weightLogRepositoryStub) DeleteByUserAndID(userID string, id string) (bool, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	for index, entry := range stub.entries {
		if entry.UserID == userID && entry.ID == id {
			stub.entries = append(stub.entries[:index], stub.entries[index+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (stub *weightLogRepositoryStub) ListByUser(userID string, limit int) ([]models.WeightLog, error) {
	logs, _ := stub.ListByUserRange(userID, nil, nil)
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].LoggedAt.After(logs[j].LoggedAt)
	})
	if limit > 0 && len(logs) > limit {
		logs = logs[:limit]
	}
	return logs, nil
}

func (stub *weightLogRepositoryStub) ListByUserRange(userID string, fromStart *time.Time, toEnd *time.Time) ([]models.WeightLog, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	logs := make([]models.WeightLog, 0)
	for _, entry := range stub.entries {
		if entry.UserID != userID {
			continue
		}
		if fromStart != nil && entry.LoggedAt.Before(*fromStart) {
			continue
		}
		if toEnd != nil && !entry.LoggedAt.Before(*toEnd) {
			continue
		}
		logs = append(logs, entry)
	}
	return logs, nil
}

func (stub *weightLogRepositoryStub) FindLatestByUser(userID string) (models.WeightLog, bool, error) {
	if stub.latestErr != nil {
		return models.WeightLog{}, false, stub.latestErr
	}
	logs, _ := stub.ListByUser(userID, 1)
	if len(logs) == 0 {
		return models.WeightLog{}, false, nil
	}
	return logs[0], true, nil
}

type weightGoalRepositoryStub struct {
	mu          sync.Mutex
	goals       []models.WeightGoal
	activateErr error
}

func (stub *weightGoalRepositoryStub) Activate(goal *models.WeightGoal, supersededAt time.Time) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	if stub.activateErr != nil {
		return stub.activateErr
	}
	for index := range stub.goals {
		if stub.goals[index].UserID == goal.UserID && stub.goals[index].Active() {
			closedAt := supersededAt
			stub.goals[index].Status = models.GoalStatusSuperseded
			stub.goals[index].ClosedAt = &closedAt
		}
	}
	stub.goals = append(stub.goals, *goal)
	return nil
}

func (stub *weightGoalRepositoryStub) FindActiveByUser(userID string) (models.WeightGoal, bool, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	for _, goal := range stub.goals {
		if goal.UserID == userID && goal.Active() {
			return goal, true, nil
		}
	}
	return models.WeightGoal{}, false, nil
}

func (stub *weightGoalRepositoryStub) ListByUser(userID string) ([]models.WeightGoal, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	goals := make([]models.WeightGoal, 0)
	for index := len(stub.goals) - 1; index >= 0; index-- {
		if stub.goals[index].UserID == userID {
			goals = append(goals, stub.goals[index])
		}
	}
	return goals, nil
}

func (stub *weightGoalRepositoryStub) CloseActive(userID string, status models.GoalStatus, closedAt time.Time) (models.WeightGoal, bool, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	for index := range stub.goals {
		if stub.goals[index].UserID == userID && stub.goals[index].Active() {
			closed := closedAt
			stub.goals[index].Status = status
			stub.goals[index].ClosedAt = &closed
			return stub.goals[index], true, nil
		}
	}
	return models.WeightGoal{}, false, nil
}

func (stub *weightGoalRepositoryStub) activeCount(userID string) int {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	count := 0
	for _, goal := range stub.goals {
		if goal.UserID == userID && goal.Active() {
			count++
		}
	}
	return count
}

type bodyProfileRepositoryStub struct {
	profiles  map[string]models.BodyProfile
	findErr   error
	upsertErr error
	updateErr error
}

func newBodyProfileRepositoryStub(profiles ...models.BodyProfile) *bodyProfileRepositoryStub {
	stub := &bodyProfileRepositoryStub{profiles: make(map[string]models.BodyProfile)}
	for _, profile := range profiles {
		stub.profiles[profile.UserID] = profile
	}
	return stub
}

func (stub *bodyProfileRepositoryStub) FindByUser(userID string) (models.BodyProfile, bool, error) {
	if stub.findErr != nil {
		return models.BodyProfile{}, false, stub.findErr
	}
	profile, ok := stub.profiles[userID]
	return profile, ok, nil
}

func (stub *bodyProfileRepositoryStub) Upsert(profile *models.BodyProfile) error {
	if stub.upsertErr != nil {
		return stub.upsertErr
	}
	stub.profiles[profile.UserID] = *profile
	return nil
}

func (stub *bodyProfileRepositoryStub) UpdateWeight(userID string, weight float64, unit models.WeightUnit) (bool, error) {
	if stub.updateErr != nil {
		return false, stub.updateErr
	}
	profile, ok := stub.profiles[userID]
	if !ok {
		return false, nil
	}
	profile.WeightValue = weight
	profile.WeightUnit = unit
	stub.profiles[userID] = profile
	return true, nil
}

type dailyTrackingRepositoryStub struct {
	entries     map[string]models.DailyTracking
	createCalls int
	saveCalls   int
	saveErr     error
}

func newDailyTrackingRepositoryStub() *dailyTrackingRepositoryStub {
	return &dailyTrackingRepositoryStub{entries: make(map[string]models.DailyTracking)}
}

func (stub *dailyTrackingRepositoryStub) key(userID string, day time.Time) string {
	return userID + "|" + day.Format(dayLayout)
}

func (stub *dailyTrackingRepositoryStub) seed(userID string, day time.Time, target int, consumed int) {
	stub.entries[stub.key(userID, day)] = models.DailyTracking{
		ID:               stub.key(userID, day),
		UserID:           userID,
		Date:             day,
		TargetCalories:   target,
		ConsumedCalories: consumed,
	}
}

func (stub *dailyTrackingRepositoryStub) FindByUserAndDay(userID string, dayStart time.Time, dayEnd time.Time) (models.DailyTracking, bool, error) {
	entry, ok := stub.entries[stub.key(userID, dayStart)]
	return entry, ok, nil
}

func (stub *dailyTrackingRepositoryStub) ListByUserRange(userID string, fromStart *time.Time, toEnd *time.Time) ([]models.DailyTracking, error) {
	entries := make([]models.DailyTracking, 0)
	for _, entry := range stub.entries {
		if entry.UserID != userID {
			continue
		}
		if fromStart != nil && entry.Date.Before(*fromStart) {
			continue
		}
		if toEnd != nil && !entry.Date.Before(*toEnd) {
			continue
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
	return entries, nil
}

func (stub *dailyTrackingRepositoryStub) Create(entry *models.DailyTracking) error {
	stub.createCalls++
	stub.entries[stub.key(entry.UserID, entry.Date)] = *entry
	return nil
}

func (stub *dailyTrackingRepositoryStub) Save(entry *models.DailyTracking) error {
	if stub.saveErr != nil {
		return stub.saveErr
	}
	stub.saveCalls++
	stub.entries[stub.key(entry.UserID, entry.Date)] = *entry
	return nil
}

// referenceProfile is a 150 lb, 65 in, 30 year old moderately active woman.
func referenceProfile(userID string) models.BodyProfile {
	return models.BodyProfile{
		UserID:        userID,
		Age:           30,
		Sex:           models.SexFemale,
		HeightValue:   65,
		HeightUnit:    models.HeightInches,
		WeightValue:   150,
		WeightUnit:    models.WeightPounds,
		ActivityLevel: models.ActivityModerate,
	}
}

func floatPtr(value float64) *float64 {
	return &value
}

func intPtr(value int) *int {
	return &value
}

func phasePtr(phase models.CyclePhase) *models.CyclePhase {
	return &phase
}
