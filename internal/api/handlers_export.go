package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/calibra/internal/services"
)

func (handler *Handler) ExportSummary(c *fiber.Ctx) error {
	userID, _ := currentUserID(c)
	from, to, err := handler.parseDayRange(c)
	if err != nil {
		return handler.serviceError(c, err)
	}

	summary, err := handler.exportService.BuildSummary(userID, from, to)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(summary)
}

func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	userID, _ := currentUserID(c)
	from, to, err := handler.parseDayRange(c)
	if err != nil {
		return handler.serviceError(c, err)
	}

	entries, err := handler.exportService.BuildEntries(userID, from, to)
	if err != nil {
		return handler.serviceError(c, err)
	}
	now := handler.currentTime()

	setExportAttachmentHeaders(c, fiber.MIMEApplicationJSON, buildExportFilename(now, "json"))
	return c.JSON(fiber.Map{
		"exported_at": now.Format(time.RFC3339),
		"entries":     entries,
	})
}

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	userID, _ := currentUserID(c)
	from, to, err := handler.parseDayRange(c)
	if err != nil {
		return handler.serviceError(c, err)
	}

	entries, err := handler.exportService.BuildEntries(userID, from, to)
	if err != nil {
		return handler.serviceError(c, err)
	}

	var output bytes.Buffer
	writer := csv.NewWriter(&output)
	if err := writer.Write(services.ExportCSVHeaders); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}
	for _, entry := range entries {
		if err := writer.Write(entry.Columns()); err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to build export")
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	setExportAttachmentHeaders(c, "text/csv", buildExportFilename(handler.currentTime(), "csv"))
	return c.Send(output.Bytes())
}

func buildExportFilename(now time.Time, extension string) string {
	return fmt.Sprintf("calibra-export-%s.%s", now.Format("2006-01-02"), extension)
}

func setExportAttachmentHeaders(c *fiber.Ctx, contentType string, filename string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
}
