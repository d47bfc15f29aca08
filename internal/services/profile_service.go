package services

import (
	"errors"
	"time"

	"github.com/terraincognita07/calibra/internal/models"
)

var (
	ErrProfileNotFound   = errors.New("body profile not found")
	ErrProfileLoadFailed = errors.New("load body profile failed")
	ErrProfileSaveFailed = errors.New("save body profile failed")
)

type BodyProfileRepository interface {
	FindByUser(userID string) (models.BodyProfile, bool, error)
	Upsert(profile *models.BodyProfile) error
	UpdateWeight(userID string, weight float64, unit models.WeightUnit) (bool, error)
}

type ProfileInput struct {
	Age           int
	Sex           models.Sex
	HeightValue   float64
	HeightUnit    models.HeightUnit
	WeightValue   float64
	WeightUnit    models.WeightUnit
	ActivityLevel models.ActivityLevel
}

type ProfileService struct {
	profiles BodyProfileRepository
}

func NewProfileService(profiles BodyProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// SaveProfile replaces the stored body metrics. Every field is validated; an
// invalid metric is rejected, never corrected.
func (service *ProfileService) SaveProfile(userID string, input ProfileInput, now time.Time) (models.BodyProfile, error) {
	profile := models.BodyProfile{
		UserID:        userID,
		Age:           input.Age,
		Sex:           input.Sex,
		HeightValue:   input.HeightValue,
		HeightUnit:    input.HeightUnit,
		WeightValue:   input.WeightValue,
		WeightUnit:    input.WeightUnit,
		ActivityLevel: input.ActivityLevel,
		UpdatedAt:     now,
	}
	if _, _, err := profileMetrics(profile); err != nil {
		return models.BodyProfile{}, err
	}
	if err := service.profiles.Upsert(&profile); err != nil {
		return models.BodyProfile{}, ErrProfileSaveFailed
	}
	return profile, nil
}

func (service *ProfileService) LoadProfile(userID string) (models.BodyProfile, bool, error) {
	profile, found, err := service.profiles.FindByUser(userID)
	if err != nil {
		return models.BodyProfile{}, false, ErrProfileLoadFailed
	}
	return profile, found, nil
}
