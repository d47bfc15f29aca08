package db

import (
	"time"

	"github.com/terraincognita07/calibra/internal/models"
	"gorm.io/gorm"
)

type WeightLogRepository struct {
	database *gorm.DB
}

func NewWeightLogRepository(database *gorm.DB) *WeightLogRepository {
	return &WeightLogRepository{database: database}
}

func (repo *WeightLogRepository) Create(entry *models.WeightLog) error {
	return repo.database.Create(entry).Error
}

func (repo *WeightLogRepository) DeleteByUserAndID(userID string, id string) (bool, error) {
	result := repo.database.Where("user_id = ? AND id = ?", userID, id).Delete(&models.WeightLog{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListByUser returns the newest entries first. A non-positive limit returns
// every entry.
func (repo *WeightLogRepository) ListByUser(userID string, limit int) ([]models.WeightLog, error) {
	query := repo.database.Where("user_id = ?", userID).Order("logged_at DESC, created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	logs := make([]models.WeightLog, 0)
	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *WeightLogRepository) ListByUserRange(userID string, fromStart *time.Time, toEnd *time.Time) ([]models.WeightLog, error) {
	query := repo.database.Model(&models.WeightLog{}).Where("user_id = ?", userID)
	if fromStart != nil {
		query = query.Where("logged_at >= ?", *fromStart)
	}
	if toEnd != nil {
		query = query.Where("logged_at < ?", *toEnd)
	}

	logs := make([]models.WeightLog, 0)
	if err := query.Order("logged_at ASC, created_at ASC, id ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *WeightLogRepository) FindLatestByUser(userID string) (models.WeightLog, bool, error) {
	entry := models.WeightLog{}
	result := repo.database.
		Where("user_id = ?", userID).
		Order("logged_at DESC, created_at DESC, id DESC").
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.WeightLog{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.WeightLog{}, false, nil
	}
	return entry, true, nil
}
