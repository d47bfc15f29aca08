package api

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/calibra/internal/services"
)

var badRequestErrors = []error{
	services.ErrInvalidBodyMetric,
	services.ErrUnknownSex,
	services.ErrUnknownActivityLevel,
	services.ErrUnknownUnit,
	services.ErrUnknownGoalType,
	services.ErrInvalidCustomTarget,
	services.ErrUnknownCyclePhase,
	services.ErrInvalidWeight,
	services.ErrInvalidWeeklyRate,
	services.ErrStartWeightRequired,
	services.ErrInvalidConsumed,
	services.ErrInvalidRange,
}

var notFoundErrors = []error{
	services.ErrProfileNotFound,
	services.ErrNoActiveGoal,
	services.ErrWeightLogNotFound,
}

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// serviceError maps a service failure to a response. Unexpected failures are
// logged and reported without detail.
func (handler *Handler) serviceError(c *fiber.Ctx, err error) error {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return apiError(c, fiber.StatusBadRequest, err.Error())
		}
	}
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return apiError(c, fiber.StatusNotFound, err.Error())
		}
	}

	handler.logger.Error("request failed",
		"method", c.Method(),
		"path", c.Path(),
		"error", err,
	)
	return apiError(c, fiber.StatusInternalServerError, "internal error")
}

func parseTargetOptions(rawPhase string, rawCalories string) (services.TargetOptions, error) {
	options := services.TargetOptions{}

	phase, err := services.ParseCyclePhase(rawPhase)
	if err != nil {
		return services.TargetOptions{}, err
	}
	options.CyclePhase = phase

	if rawCalories = strings.TrimSpace(rawCalories); rawCalories != "" {
		calories, err := strconv.Atoi(rawCalories)
		if err != nil {
			return services.TargetOptions{}, services.ErrInvalidCustomTarget
		}
		options.CustomDailyCalories = &calories
	}
	return options, nil
}

func (handler *Handler) parseOptionalDay(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	day, err := services.ParseDay(raw, handler.location)
	if err != nil {
		return nil, services.ErrInvalidRange
	}
	return &day, nil
}

// parseDayRange resolves ?from=&to= and rejects a reversed range.
func (handler *Handler) parseDayRange(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	from, err := handler.parseOptionalDay(c.Query("from"))
	if err != nil {
		return nil, nil, err
	}
	to, err := handler.parseOptionalDay(c.Query("to"))
	if err != nil {
		return nil, nil, err
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, services.ErrInvalidRange
	}
	return from, to, nil
}

func (handler *Handler) reasonText(c *fiber.Ctx, reason string) string {
	if reason == "" {
		return ""
	}
	return handler.translate(c, "adjustment."+reason)
}
