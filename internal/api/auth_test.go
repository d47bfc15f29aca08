package api

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthDoesNotRequireAuth(t *testing.T) {
	app := newTestApp(t)

	response := doRequest(t, app, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, response.StatusCode)
}

func TestAPIRejectsMissingOrInvalidTokens(t *testing.T) {
	app := newTestApp(t)

	expired, err := IssueToken(testSecretKey, "u1", time.Hour, testNow.Add(-3*time.Hour))
	require.NoError(t, err)
	foreign, err := IssueToken("another-secret-key-0123456789abcdef", "u1", time.Hour, testNow)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header"},
		{name: "wrong scheme", header: "Basic dTE6cGFzcw=="},
		{name: "garbage token", header: "Bearer not-a-jwt"},
		{name: "expired token", header: "Bearer " + expired},
		{name: "foreign secret", header: "Bearer " + foreign},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var headers []string
			if tt.header != "" {
				headers = []string{"Authorization", tt.header}
			}
			response := doRequest(t, app, http.MethodGet, "/api/profile", "", nil, headers...)
			assert.Equal(t, http.StatusUnauthorized, response.StatusCode)
			assert.Equal(t, "unauthorized", readAPIError(t, response))
		})
	}
}

func TestIssueTokenValidatesUserID(t *testing.T) {
	_, err := IssueToken(testSecretKey, "  ", time.Hour, testNow)
	assert.ErrorIs(t, err, errInvalidUserID)

	_, err = IssueToken(testSecretKey, strings.Repeat("x", 65), time.Hour, testNow)
	assert.ErrorIs(t, err, errInvalidUserID)

	_, err = IssueToken(testSecretKey, "u1", 0, testNow)
	assert.Error(t, err)
}

func TestUsersAreIsolated(t *testing.T) {
	app := newTestApp(t)
	saveReferenceProfile(t, app, testToken(t, "alice"))

	response := doRequest(t, app, http.MethodGet, "/api/profile", testToken(t, "bob"), nil)
	assert.Equal(t, http.StatusNotFound, response.StatusCode)
}

func TestUnknownRouteReturnsJSONNotFound(t *testing.T) {
	app := newTestApp(t)

	response := doRequest(t, app, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, response.StatusCode)
	assert.Equal(t, "not found", readAPIError(t, response))
}
