package services

import (
	"errors"
	"math"
	"strings"

	"github.com/terraincognita07/calibra/internal/models"
)

const (
	poundsPerKilogram  = 2.20462
	centimetersPerInch = 2.54
)

var ErrUnknownUnit = errors.New("unknown unit")

// isPositiveMeasurement rejects zero, negatives, NaN and infinities.
func isPositiveMeasurement(value float64) bool {
	return value > 0 && !math.IsInf(value, 0)
}

func ParseWeightUnit(raw string) (models.WeightUnit, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "lb", "lbs", "pound", "pounds":
		return models.WeightPounds, nil
	case "kg", "kgs", "kilogram", "kilograms":
		return models.WeightKilograms, nil
	default:
		return "", ErrUnknownUnit
	}
}

func ParseHeightUnit(raw string) (models.HeightUnit, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "in", "inch", "inches":
		return models.HeightInches, nil
	case "cm", "centimeter", "centimeters":
		return models.HeightCentimeters, nil
	default:
		return "", ErrUnknownUnit
	}
}

func ToPounds(value float64, unit models.WeightUnit) (float64, error) {
	switch unit {
	case models.WeightPounds:
		return value, nil
	case models.WeightKilograms:
		return value * poundsPerKilogram, nil
	default:
		return 0, ErrUnknownUnit
	}
}

func FromPounds(pounds float64, unit models.WeightUnit) (float64, error) {
	switch unit {
	case models.WeightPounds:
		return pounds, nil
	case models.WeightKilograms:
		return pounds / poundsPerKilogram, nil
	default:
		return 0, ErrUnknownUnit
	}
}

// ConvertWeight converts value between weight units without rounding.
func ConvertWeight(value float64, from models.WeightUnit, to models.WeightUnit) (float64, error) {
	pounds, err := ToPounds(value, from)
	if err != nil {
		return 0, err
	}
	return FromPounds(pounds, to)
}

func ToInches(value float64, unit models.HeightUnit) (float64, error) {
	switch unit {
	case models.HeightInches:
		return value, nil
	case models.HeightCentimeters:
		return value / centimetersPerInch, nil
	default:
		return 0, ErrUnknownUnit
	}
}
