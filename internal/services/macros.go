package services

import (
	"math"

	"github.com/terraincognita07/calibra/internal/models"
)

const (
	caloriesPerGramProtein = 4
	caloriesPerGramCarbs   = 4
	caloriesPerGramFat     = 9
)

type Macros struct {
	ProteinG int `json:"protein_g"`
	CarbsG   int `json:"carbs_g"`
	FatG     int `json:"fat_g"`
}

func (macros Macros) Calories() int {
	return macros.ProteinG*caloriesPerGramProtein + macros.CarbsG*caloriesPerGramCarbs + macros.FatG*caloriesPerGramFat
}

var proteinPerPound = map[models.GoalType]float64{
	models.GoalCutting:     1.0,
	models.GoalBulking:     0.9,
	models.GoalMaintaining: 0.8,
}

func fatShare(goalType models.GoalType) float64 {
	if goalType == models.GoalCutting {
		return 0.25
	}
	return 0.30
}

// SplitMacros divides a daily target into protein, carbohydrate and fat grams.
// Carbs take whatever protein and fat leave and are never negative, so the
// macro calories match the target to within one carb-gram of rounding unless
// protein and fat alone exceed it.
func SplitMacros(dailyTarget int, bodyWeightLbs float64, goalType models.GoalType) (Macros, error) {
	factor, ok := proteinPerPound[goalType]
	if !ok {
		return Macros{}, ErrUnknownGoalType
	}

	proteinG := int(math.Round(bodyWeightLbs * factor))
	fatG := int(math.Round(float64(dailyTarget) * fatShare(goalType) / caloriesPerGramFat))

	remaining := dailyTarget - proteinG*caloriesPerGramProtein - fatG*caloriesPerGramFat
	carbsG := 0
	if remaining > 0 {
		carbsG = int(math.Round(float64(remaining) / caloriesPerGramCarbs))
	}

	return Macros{ProteinG: proteinG, CarbsG: carbsG, FatG: fatG}, nil
}
