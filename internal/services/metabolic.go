package services

import (
	"errors"

	"github.com/terraincognita07/calibra/internal/models"
)

const (
	kilogramsPerPound = 0.453592
	maxProfileAge     = 130
)

var (
	ErrInvalidBodyMetric    = errors.New("invalid body metric")
	ErrUnknownSex           = errors.New("unknown sex")
	ErrUnknownActivityLevel = errors.New("unknown activity level")
)

// activityMultipliers is the single source of truth for valid activity levels.
var activityMultipliers = map[models.ActivityLevel]float64{
	models.ActivitySedentary:  1.2,
	models.ActivityLight:      1.375,
	models.ActivityModerate:   1.55,
	models.ActivityActive:     1.725,
	models.ActivityVeryActive: 1.9,
}

// ComputeBMR returns the Mifflin-St Jeor basal metabolic rate in kcal/day.
// Weight and height must be positive finite numbers and age non-negative;
// anything else is rejected rather than clamped.
func ComputeBMR(weightLbs float64, heightInches float64, age int, sex models.Sex) (float64, error) {
	if !isPositiveMeasurement(weightLbs) || !isPositiveMeasurement(heightInches) || age < 0 {
		return 0, ErrInvalidBodyMetric
	}

	weightKg := weightLbs * kilogramsPerPound
	heightCm := heightInches * centimetersPerInch
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)

	switch sex {
	case models.SexMale:
		return bmr + 5, nil
	case models.SexFemale:
		return bmr - 161, nil
	default:
		return 0, ErrUnknownSex
	}
}

func ComputeTDEE(bmr float64, level models.ActivityLevel) (float64, error) {
	multiplier, ok := activityMultipliers[level]
	if !ok {
		return 0, ErrUnknownActivityLevel
	}
	return bmr * multiplier, nil
}

func IsValidActivityLevel(level models.ActivityLevel) bool {
	_, ok := activityMultipliers[level]
	return ok
}

func IsValidSex(sex models.Sex) bool {
	return sex == models.SexMale || sex == models.SexFemale
}

// profileMetrics converts a stored profile into the imperial inputs of
// ComputeBMR after validating every field.
func profileMetrics(profile models.BodyProfile) (weightLbs float64, heightInches float64, err error) {
	if profile.Age < 0 || profile.Age > maxProfileAge || !isPositiveMeasurement(profile.WeightValue) || !isPositiveMeasurement(profile.HeightValue) {
		return 0, 0, ErrInvalidBodyMetric
	}
	if !IsValidSex(profile.Sex) {
		return 0, 0, ErrUnknownSex
	}
	if !IsValidActivityLevel(profile.ActivityLevel) {
		return 0, 0, ErrUnknownActivityLevel
	}

	weightLbs, err = ToPounds(profile.WeightValue, profile.WeightUnit)
	if err != nil {
		return 0, 0, err
	}
	heightInches, err = ToInches(profile.HeightValue, profile.HeightUnit)
	if err != nil {
		return 0, 0, err
	}
	return weightLbs, heightInches, nil
}
