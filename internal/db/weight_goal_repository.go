package db

import (
	"time"

	"github.com/terraincognita07/calibra/internal/models"
	"gorm.io/gorm"
)

type WeightGoalRepository struct {
	database *gorm.DB
}

func NewWeightGoalRepository(database *gorm.DB) *WeightGoalRepository {
	return &WeightGoalRepository{database: database}
}

// Activate supersedes every active goal of the user and inserts goal as the
// active one inside a single transaction. The partial unique index on
// (user_id) WHERE status = 'active' rejects any interleaving that would leave
// two active goals.
func (repo *WeightGoalRepository) Activate(goal *models.WeightGoal, supersededAt time.Time) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.WeightGoal{}).
			Where("user_id = ? AND status = ?", goal.UserID, models.GoalStatusActive).
			Updates(map[string]any{
				"status":    models.GoalStatusSuperseded,
				"closed_at": supersededAt,
			}).Error; err != nil {
			return err
		}

		goal.Status = models.GoalStatusActive
		goal.ClosedAt = nil
		return tx.Create(goal).Error
	})
}

func (repo *WeightGoalRepository) FindActiveByUser(userID string) (models.WeightGoal, bool, error) {
	goal := models.WeightGoal{}
	result := repo.database.
		Where("user_id = ? AND status = ?", userID, models.GoalStatusActive).
		Limit(1).
		Find(&goal)
	if result.Error != nil {
		return models.WeightGoal{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.WeightGoal{}, false, nil
	}
	return goal, true, nil
}

func (repo *WeightGoalRepository) ListByUser(userID string) ([]models.WeightGoal, error) {
	goals := make([]models.WeightGoal, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

func (repo *WeightGoalRepository) CloseActive(userID string, status models.GoalStatus, closedAt time.Time) (models.WeightGoal, bool, error) {
	var closed models.WeightGoal
	found := false
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		result := tx.
			Where("user_id = ? AND status = ?", userID, models.GoalStatusActive).
			Limit(1).
			Find(&closed)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		found = true
		closed.Status = status
		closed.ClosedAt = &closedAt
		return tx.Model(&models.WeightGoal{}).Where("id = ?", closed.ID).Updates(map[string]any{
			"status":    status,
			"closed_at": closedAt,
		}).Error
	})
	if err != nil {
		return models.WeightGoal{}, false, err
	}
	return closed, found, nil
}
