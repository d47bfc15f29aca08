package db

import (
	"github.com/terraincognita07/calibra/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BodyProfileRepository struct {
	database *gorm.DB
}

func NewBodyProfileRepository(database *gorm.DB) *BodyProfileRepository {
	return &BodyProfileRepository{database: database}
}

func (repo *BodyProfileRepository) FindByUser(userID string) (models.BodyProfile, bool, error) {
	profile := models.BodyProfile{}
	result := repo.database.Where("user_id = ?", userID).Limit(1).Find(&profile)
	if result.Error != nil {
		return models.BodyProfile{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.BodyProfile{}, false, nil
	}
	return profile, true, nil
}

func (repo *BodyProfileRepository) Upsert(profile *models.BodyProfile) error {
	return repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(profile).Error
}

func (repo *BodyProfileRepository) UpdateWeight(userID string, weight float64, unit models.WeightUnit) (bool, error) {
	result := repo.database.Model(&models.BodyProfile{}).Where("user_id = ?", userID).Updates(map[string]any{
		"weight_value": weight,
		"weight_unit":  unit,
	})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
