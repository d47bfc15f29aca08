package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/calibra/internal/models"
	"github.com/terraincognita07/calibra/internal/services"
)

const defaultTrackingWindowDays = 7

type trackingPayload struct {
	Consumed       *int   `json:"consumed"`
	CyclePhase     string `json:"cycle_phase"`
	CustomCalories *int   `json:"custom_calories"`
}

func (handler *Handler) RecordDay(c *fiber.Ctx) error {
	userID, _ := currentUserID(c)

	day, err := services.ParseDay(c.Params("date"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	payload := trackingPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if payload.Consumed == nil {
		return apiError(c, fiber.StatusBadRequest, "consumed is required")
	}

	options, err := parseTargetOptions(payload.CyclePhase, "")
	if err != nil {
		return handler.serviceError(c, err)
	}
	options.CustomDailyCalories = payload.CustomCalories

	entry, adjustment, err := handler.trackingService.RecordDay(userID, day, *payload.Consumed, options)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"day":         entry,
		"adjustment":  adjustment,
		"reason_text": handler.reasonText(c, adjustment.Reason),
	})
}

// ListTracking defaults to the seven days ending today.
func (handler *Handler) ListTracking(c *fiber.Ctx) error {
	userID, _ := currentUserID(c)

	from, to, err := handler.parseDayRange(c)
	if err != nil {
		return handler.serviceError(c, err)
	}
	end := services.DateAtLocation(handler.currentTime(), handler.location)
	if to != nil {
		end = *to
	}
	start := end.AddDate(0, 0, -(defaultTrackingWindowDays - 1))
	if from != nil {
		start = *from
	}

	entries, err := handler.trackingService.ListDays(userID, start, end)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"days":         entries,
		"reason_texts": handler.reasonTexts(c, entries),
	})
}

func (handler *Handler) GetWeeklySummary(c *fiber.Ctx) error {
	userID, _ := currentUserID(c)

	end := handler.currentTime()
	if raw := c.Query("end"); raw != "" {
		parsed, err := services.ParseDay(raw, handler.location)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid date")
		}
		end = parsed
	}

	summary, entries, err := handler.trackingService.WeeklySummary(userID, end)
	if err != nil {
		return handler.serviceError(c, err)
	}

	messageKey := "summary.on_track"
	if !summary.OnTrack {
		messageKey = "summary.off_track"
	}
	return c.JSON(fiber.Map{
		"summary": summary,
		"days":    entries,
		"message": handler.translate(c, messageKey),
	})
}

func (handler *Handler) reasonTexts(c *fiber.Ctx, entries []models.DailyTracking) map[string]string {
	texts := make(map[string]string)
	for _, entry := range entries {
		if entry.AdjustmentReason == "" {
			continue
		}
		if _, ok := texts[entry.AdjustmentReason]; !ok {
			texts[entry.AdjustmentReason] = handler.reasonText(c, entry.AdjustmentReason)
		}
	}
	return texts
}
