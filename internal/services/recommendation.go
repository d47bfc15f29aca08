package services

import (
	"errors"
	"math"

	"github.com/terraincognita07/calibra/internal/models"
)

// caloriesPerPound approximates the energy content of one pound of body mass.
// It is a simplification, not exact physiology.
const caloriesPerPound = 3500.0

const (
	minCaloriesFemale = 1200
	minCaloriesMale   = 1500
	maxWeeklyBulkRate = 1.0
)

var (
	ErrInvalidCustomTarget = errors.New("invalid custom calorie target")
	ErrUnknownGoalType     = errors.New("unknown goal type")
)

type weeklyRateBand struct {
	defaultRate float64
	min         float64
	max         float64
	sign        float64
}

var weeklyRateBands = map[models.GoalType]weeklyRateBand{
	models.GoalCutting:     {defaultRate: 1.0, min: 0.5, max: 2.0, sign: -1},
	models.GoalBulking:     {defaultRate: 0.5, min: 0.25, max: maxWeeklyBulkRate, sign: 1},
	models.GoalMaintaining: {},
}

// TargetRequest describes how a daily target should be derived from a profile.
// CustomDailyCalories bypasses the goal math and the minimum-calorie floor; it
// is trusted as an explicit user choice.
type TargetRequest struct {
	GoalType            models.GoalType
	WeeklyRate          *float64
	CustomDailyCalories *int
	CyclePhase          *models.CyclePhase
}

type CalorieRecommendation struct {
	DailyTarget     int     `json:"daily_target"`
	WeeklyTarget    int     `json:"weekly_target"`
	BMR             int     `json:"bmr"`
	TDEE            int     `json:"tdee"`
	GoalAdjustment  int     `json:"goal_adjustment"`
	WeeklyRate      float64 `json:"weekly_rate"`
	CycleMultiplier float64 `json:"cycle_multiplier"`
	Macros          Macros  `json:"macros"`
	MinCalories     int     `json:"min_calories"`
	MaxCalories     int     `json:"max_calories"`
	FloorApplied    bool    `json:"floor_applied"`
	Custom          bool    `json:"custom"`
}

func IsValidGoalType(goalType models.GoalType) bool {
	_, ok := weeklyRateBands[goalType]
	return ok
}

// MinimumCalories is the health-safety floor for a daily target.
func MinimumCalories(sex models.Sex) int {
	if sex == models.SexMale {
		return minCaloriesMale
	}
	return minCaloriesFemale
}

// SafeWeeklyRate resolves the weekly weight-change magnitude for a goal type,
// falling back to the goal default and clamping into the safe band.
func SafeWeeklyRate(goalType models.GoalType, requested *float64) (float64, error) {
	band, ok := weeklyRateBands[goalType]
	if !ok {
		return 0, ErrUnknownGoalType
	}
	if requested != nil && (math.IsNaN(*requested) || math.IsInf(*requested, 0)) {
		return 0, ErrInvalidWeeklyRate
	}
	if band.sign == 0 {
		return 0, nil
	}

	rate := band.defaultRate
	if requested != nil {
		rate = math.Abs(*requested)
	}
	return math.Min(math.Max(rate, band.min), band.max), nil
}

// ResolveDailyTarget turns body metrics and a goal into a calorie
// recommendation. Intermediate values keep full precision; rounding happens
// once when the result is assembled.
func ResolveDailyTarget(profile models.BodyProfile, request TargetRequest) (CalorieRecommendation, error) {
	weightLbs, heightInches, err := profileMetrics(profile)
	if err != nil {
		return CalorieRecommendation{}, err
	}
	band, ok := weeklyRateBands[request.GoalType]
	if !ok {
		return CalorieRecommendation{}, ErrUnknownGoalType
	}

	bmr, err := ComputeBMR(weightLbs, heightInches, profile.Age, profile.Sex)
	if err != nil {
		return CalorieRecommendation{}, err
	}
	tdee, err := ComputeTDEE(bmr, profile.ActivityLevel)
	if err != nil {
		return CalorieRecommendation{}, err
	}
	cycleMultiplier, err := CyclePhaseMultiplier(request.CyclePhase)
	if err != nil {
		return CalorieRecommendation{}, err
	}
	tdee *= cycleMultiplier

	minCalories := MinimumCalories(profile.Sex)
	recommendation := CalorieRecommendation{
		BMR:             roundCalories(bmr),
		TDEE:            roundCalories(tdee),
		CycleMultiplier: cycleMultiplier,
		MinCalories:     minCalories,
		MaxCalories:     roundCalories(tdee + maxWeeklyBulkRate*caloriesPerPound/7),
	}

	if request.CustomDailyCalories != nil {
		if *request.CustomDailyCalories <= 0 {
			return CalorieRecommendation{}, ErrInvalidCustomTarget
		}
		recommendation.Custom = true
		recommendation.DailyTarget = *request.CustomDailyCalories
	} else {
		weeklyRate, err := SafeWeeklyRate(request.GoalType, request.WeeklyRate)
		if err != nil {
			return CalorieRecommendation{}, err
		}
		dailyDelta := weeklyRate * caloriesPerPound / 7 * band.sign
		target := tdee + dailyDelta
		if target < float64(minCalories) {
			target = float64(minCalories)
			recommendation.FloorApplied = true
		}

		recommendation.WeeklyRate = weeklyRate
		recommendation.GoalAdjustment = roundCalories(dailyDelta)
		recommendation.DailyTarget = roundCalories(target)
	}

	recommendation.WeeklyTarget = recommendation.DailyTarget * 7
	macros, err := SplitMacros(recommendation.DailyTarget, weightLbs, request.GoalType)
	if err != nil {
		return CalorieRecommendation{}, err
	}
	recommendation.Macros = macros
	return recommendation, nil
}

func roundCalories(value float64) int {
	return int(math.Round(value))
}
