package db

import (
	"time"

	"github.com/terraincognita07/calibra/internal/models"
	"gorm.io/gorm"
)

type DailyTrackingRepository struct {
	database *gorm.DB
}

func NewDailyTrackingRepository(database *gorm.DB) *DailyTrackingRepository {
	return &DailyTrackingRepository{database: database}
}

func (repo *DailyTrackingRepository) FindByUserAndDay(userID string, dayStart time.Time, dayEnd time.Time) (models.DailyTracking, bool, error) {
	entry := models.DailyTracking{}
	result := repo.database.
		Where("user_id = ? AND date >= ? AND date < ?", userID, dayStart, dayEnd).
		Order("date DESC").
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.DailyTracking{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.DailyTracking{}, false, nil
	}
	return entry, true, nil
}

func (repo *DailyTrackingRepository) ListByUserRange(userID string, fromStart *time.Time, toEnd *time.Time) ([]models.DailyTracking, error) {
	query := repo.database.Model(&models.DailyTracking{}).Where("user_id = ?", userID)
	if fromStart != nil {
		query = query.Where("date >= ?", *fromStart)
	}
	if toEnd != nil {
		query = query.Where("date < ?", *toEnd)
	}

	entries := make([]models.DailyTracking, 0)
	if err := query.Order("date ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *DailyTrackingRepository) Create(entry *models.DailyTracking) error {
	return repo.database.Create(entry).Error
}

func (repo *DailyTrackingRepository) Save(entry *models.DailyTracking) error {
	return repo.database.Save(entry).Error
}
