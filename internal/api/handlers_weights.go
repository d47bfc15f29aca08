package api

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/calibra/internal/models"
	"github.com/terraincognita07/calibra/internal/services"
)

const (
	defaultWeightListLimit = 100
	maxWeightListLimit     = 1000
)

type weightPayload struct {
	Weight   float64    `json:"weight"`
	Unit     string     `json:"unit"`
	Note     string     `json:"note"`
	LoggedAt *time.Time `json:"logged_at"`
}

func (handler *Handler) ListWeights(c *fiber.Ctx) error {
	userID, _ := currentUserID(c)

	limit := defaultWeightListLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return apiError(c, fiber.StatusBadRequest, "invalid limit")
		}
		limit = min(parsed, maxWeightListLimit)
	}

	entries, err := handler.weightService.ListWeightLogs(userID, limit)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"weights": entries})
}

func (handler *Handler) LogWeight(c *fiber.Ctx) error {
	userID, _ := currentUserID(c)

	payload := weightPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	unit, err := services.ParseWeightUnit(payload.Unit)
	if err != nil {
		return handler.serviceError(c, err)
	}

	input := services.WeightLogInput{
		Weight: payload.Weight,
		Unit:   unit,
		Note:   payload.Note,
	}
	if payload.LoggedAt != nil {
		input.LoggedAt = *payload.LoggedAt
	}

	entry, err := handler.weightService.LogWeight(userID, input, handler.currentTime())
	if errors.Is(err, services.ErrProfileWeightSyncFailed) {
		handler.logger.Warn("weight logged without profile sync",
			"weight_log_id", entry.ID,
			"error", err,
		)
		err = nil
	}
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (handler *Handler) DeleteWeight(c *fiber.Ctx) error {
	userID, _ := currentUserID(c)
	if err := handler.weightService.DeleteWeightLog(userID, c.Params("id")); err != nil {
		return handler.serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type goalPayload struct {
	GoalType     string   `json:"goal_type"`
	StartWeight  *float64 `json:"start_weight"`
	TargetWeight float64  `json:"target_weight"`
	Unit         string   `json:"unit"`
	WeeklyRate   *float64 `json:"weekly_rate"`
}

func (handler *Handler) ListGoals(c *fiber.Ctx) error {
	userID, _ := currentUserID(c)
	goals, err := handler.weightService.GoalHistory(userID)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"goals": goals})
}

func (handler *Handler) SetGoal(c *fiber.Ctx) error {
	userID, _ := currentUserID(c)

	payload := goalPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	unit, err := services.ParseWeightUnit(payload.Unit)
	if err != nil {
		return handler.serviceError(c, err)
	}

	goal, err := handler.weightService.SetUserGoal(userID, services.GoalInput{
		GoalType:     models.GoalType(payload.GoalType),
		StartWeight:  payload.StartWeight,
		TargetWeight: payload.TargetWeight,
		Unit:         unit,
		WeeklyRate:   payload.WeeklyRate,
	}, handler.currentTime())
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(goal)
}

func (handler *Handler) GetActiveGoal(c *fiber.Ctx) error {
	userID, _ := currentUserID(c)
	goal, found, err := handler.weightService.ActiveGoal(userID)
	if err != nil {
		return handler.serviceError(c, err)
	}
	if !found {
		return c.JSON(fiber.Map{"goal": nil})
	}
	return c.JSON(fiber.Map{"goal": goal})
}

func (handler *Handler) CompleteGoal(c *fiber.Ctx) error {
	userID, _ := currentUserID(c)
	goal, err := handler.weightService.CompleteGoal(userID, handler.currentTime())
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(goal)
}

func (handler *Handler) AbandonGoal(c *fiber.Ctx) error {
	userID, _ := currentUserID(c)
	goal, err := handler.weightService.AbandonGoal(userID, handler.currentTime())
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(goal)
}

func (handler *Handler) GetProgress(c *fiber.Ctx) error {
	userID, _ := currentUserID(c)

	_, found, err := handler.weightService.ActiveGoal(userID)
	if err != nil {
		return handler.serviceError(c, err)
	}
	if !found {
		return c.JSON(fiber.Map{
			"progress": nil,
			"message":  handler.translate(c, "progress.no_goal"),
		})
	}

	progress, err := handler.weightService.ComputeProgress(userID, handler.currentTime())
	if err != nil {
		return handler.serviceError(c, err)
	}
	if progress == nil {
		return c.JSON(fiber.Map{
			"progress": nil,
			"message":  handler.translate(c, "progress.no_weight"),
		})
	}

	messageKey := "progress.on_track"
	if !progress.OnTrack {
		messageKey = "progress.behind"
	}
	return c.JSON(fiber.Map{
		"progress": progress,
		"message":  handler.translate(c, messageKey),
	})
}
