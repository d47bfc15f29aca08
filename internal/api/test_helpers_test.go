package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/calibra/internal/db"
	"github.com/terraincognita07/calibra/internal/i18n"
	"gorm.io/gorm"
)

const testSecretKey = "test-secret-key-0123456789abcdef"

var testNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	app, _ := newTestAppWithDatabase(t)
	return app
}

func newTestAppWithDatabase(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "calibra-api-test.db"))
	require.NoError(t, err)
	sqlDB, err := database.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	i18nManager, err := i18n.NewManager("en", i18n.LocalesFS())
	require.NoError(t, err)

	handler, err := NewHandler(database, testSecretKey, time.UTC, i18nManager, nil)
	require.NoError(t, err)
	handler.now = func() time.Time { return testNow }

	app := fiber.New()
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app, database
}

func testToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := IssueToken(testSecretKey, userID, time.Hour, testNow)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, method string, path string, token string, body any, headers ...string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		request.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	for index := 0; index+1 < len(headers); index += 2 {
		request.Header.Set(headers[index], headers[index+1])
	}

	response, err := app.Test(request, -1)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func decodeBody(t *testing.T, response *http.Response, target any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(response.Body).Decode(target))
}

func readAPIError(t *testing.T, response *http.Response) string {
	t.Helper()
	payload := map[string]string{}
	decodeBody(t, response, &payload)
	return payload["error"]
}

func referenceProfilePayload() map[string]any {
	return map[string]any{
		"age":            30,
		"sex":            "female",
		"height":         65,
		"height_unit":    "in",
		"weight":         150,
		"weight_unit":    "lb",
		"activity_level": "moderate",
	}
}

func saveReferenceProfile(t *testing.T, app *fiber.App, token string) {
	t.Helper()
	response := doRequest(t, app, http.MethodPut, "/api/profile", token, referenceProfilePayload())
	require.Equal(t, http.StatusOK, response.StatusCode)
}
