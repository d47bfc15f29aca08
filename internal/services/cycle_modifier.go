package services

import (
	"errors"
	"strings"

	"github.com/terraincognita07/calibra/internal/models"
)

var ErrUnknownCyclePhase = errors.New("unknown cycle phase")

var cyclePhaseMultipliers = map[models.CyclePhase]float64{
	models.PhaseMenstrual:  1.00,
	models.PhaseFollicular: 0.98,
	models.PhaseOvulation:  1.02,
	models.PhaseLuteal:     1.05,
}

// CyclePhaseMultiplier returns the TDEE multiplier for a caller-supplied
// menstrual-cycle phase. A nil phase means no cycle context and yields 1.0.
func CyclePhaseMultiplier(phase *models.CyclePhase) (float64, error) {
	if phase == nil {
		return 1.0, nil
	}
	multiplier, ok := cyclePhaseMultipliers[*phase]
	if !ok {
		return 0, ErrUnknownCyclePhase
	}
	return multiplier, nil
}

// ParseCyclePhase returns nil for an empty value.
func ParseCyclePhase(raw string) (*models.CyclePhase, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return nil, nil
	}
	phase := models.CyclePhase(value)
	if _, ok := cyclePhaseMultipliers[phase]; !ok {
		return nil, ErrUnknownCyclePhase
	}
	return &phase, nil
}
