package api

import (
	"github.com/gofiber/fiber/v2"
)

const (
	contextUserIDKey   = "current_user_id"
	contextLanguageKey = "current_language"
)

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	tokenValue, err := bearerToken(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	userID, err := handler.parseToken(tokenValue)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	c.Locals(contextUserIDKey, userID)
	return c.Next()
}

// LanguageMiddleware picks the response language from ?lang first, then
// Accept-Language.
func (handler *Handler) LanguageMiddleware(c *fiber.Ctx) error {
	language := handler.i18n.DetectFromAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage))
	if queryLanguage := c.Query("lang"); queryLanguage != "" {
		language = handler.i18n.NormalizeLanguage(queryLanguage)
	}

	c.Locals(contextLanguageKey, language)
	return c.Next()
}

func currentUserID(c *fiber.Ctx) (string, bool) {
	userID, ok := c.Locals(contextUserIDKey).(string)
	return userID, ok && userID != ""
}

func (handler *Handler) currentLanguage(c *fiber.Ctx) string {
	if language, ok := c.Locals(contextLanguageKey).(string); ok && language != "" {
		return language
	}
	return handler.i18n.DefaultLanguage()
}

func (handler *Handler) translate(c *fiber.Ctx, key string) string {
	return handler.i18n.Translate(handler.currentLanguage(c), key)
}
