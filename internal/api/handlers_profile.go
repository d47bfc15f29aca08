package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/calibra/internal/models"
	"github.com/terraincognita07/calibra/internal/services"
)

type profilePayload struct {
	Age           int     `json:"age"`
	Sex           string  `json:"sex"`
	Height        float64 `json:"height"`
	HeightUnit    string  `json:"height_unit"`
	Weight        float64 `json:"weight"`
	WeightUnit    string  `json:"weight_unit"`
	ActivityLevel string  `json:"activity_level"`
}

func (payload profilePayload) toInput() (services.ProfileInput, error) {
	heightUnit, err := services.ParseHeightUnit(payload.HeightUnit)
	if err != nil {
		return services.ProfileInput{}, err
	}
	weightUnit, err := services.ParseWeightUnit(payload.WeightUnit)
	if err != nil {
		return services.ProfileInput{}, err
	}
	return services.ProfileInput{
		Age:           payload.Age,
		Sex:           models.Sex(payload.Sex),
		HeightValue:   payload.Height,
		HeightUnit:    heightUnit,
		WeightValue:   payload.Weight,
		WeightUnit:    weightUnit,
		ActivityLevel: models.ActivityLevel(payload.ActivityLevel),
	}, nil
}

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	userID, _ := currentUserID(c)
	profile, found, err := handler.profileService.LoadProfile(userID)
	if err != nil {
		return handler.serviceError(c, err)
	}
	if !found {
		return handler.serviceError(c, services.ErrProfileNotFound)
	}
	return c.JSON(profile)
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	userID, _ := currentUserID(c)

	payload := profilePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	input, err := payload.toInput()
	if err != nil {
		return handler.serviceError(c, err)
	}

	profile, err := handler.profileService.SaveProfile(userID, input, handler.currentTime())
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(profile)
}

func (handler *Handler) GetRecommendation(c *fiber.Ctx) error {
	userID, _ := currentUserID(c)

	options, err := parseTargetOptions(c.Query("cycle_phase"), c.Query("calories"))
	if err != nil {
		return handler.serviceError(c, err)
	}
	recommendation, goalType, err := handler.trackingService.Recommendation(userID, options)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"goal_type":      goalType,
		"recommendation": recommendation,
	})
}
