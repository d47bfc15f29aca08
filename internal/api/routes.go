package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api", handler.LanguageMiddleware, handler.AuthRequired)

	api.Get("/profile", handler.GetProfile)
	api.Put("/profile", handler.UpdateProfile)
	api.Get("/recommendation", handler.GetRecommendation)

	weights := api.Group("/weights")
	weights.Get("", handler.ListWeights)
	weights.Post("", handler.LogWeight)
	weights.Delete("/:id", handler.DeleteWeight)

	goals := api.Group("/goals")
	goals.Get("", handler.ListGoals)
	goals.Post("", handler.SetGoal)
	goals.Get("/active", handler.GetActiveGoal)
	goals.Post("/active/complete", handler.CompleteGoal)
	goals.Post("/active/abandon", handler.AbandonGoal)

	api.Get("/progress", handler.GetProgress)

	tracking := api.Group("/tracking")
	tracking.Get("", handler.ListTracking)
	tracking.Get("/summary", handler.GetWeeklySummary)
	tracking.Put("/:date", handler.RecordDay)

	export := api.Group("/export")
	export.Get("/summary", handler.ExportSummary)
	export.Get("/csv", handler.ExportCSV)
	export.Get("/json", handler.ExportJSON)
}
