package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recommendationResponse struct {
	GoalType       string `json:"goal_type"`
	Recommendation struct {
		DailyTarget     int     `json:"daily_target"`
		WeeklyTarget    int     `json:"weekly_target"`
		BMR             int     `json:"bmr"`
		TDEE            int     `json:"tdee"`
		CycleMultiplier float64 `json:"cycle_multiplier"`
		FloorApplied    bool    `json:"floor_applied"`
		Custom          bool    `json:"custom"`
		Macros          struct {
			ProteinG int `json:"protein_g"`
			CarbsG   int `json:"carbs_g"`
			FatG     int `json:"fat_g"`
		} `json:"macros"`
	} `json:"recommendation"`
}

func TestProfileRoundTrip(t *testing.T) {
	app := newTestApp(t)
	token := testToken(t, "u1")

	response := doRequest(t, app, http.MethodGet, "/api/profile", token, nil)
	assert.Equal(t, http.StatusNotFound, response.StatusCode)

	saveReferenceProfile(t, app, token)

	response = doRequest(t, app, http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, response.StatusCode)

	profile := map[string]any{}
	decodeBody(t, response, &profile)
	assert.Equal(t, "u1", profile["user_id"])
	assert.Equal(t, 150.0, profile["weight"])
	assert.Equal(t, "lb", profile["weight_unit"])
	assert.Equal(t, "moderate", profile["activity_level"])
}

func TestUpdateProfileRejectsInvalidInput(t *testing.T) {
	app := newTestApp(t)
	token := testToken(t, "u1")

	tests := []struct {
		name    string
		field   string
		value   any
		message string
	}{
		{name: "unknown sex", field: "sex", value: "other", message: "unknown sex"},
		{name: "age out of range", field: "age", value: 140, message: "invalid body metric"},
		{name: "unknown activity", field: "activity_level", value: "couch", message: "unknown activity level"},
		{name: "unknown unit", field: "weight_unit", value: "stone", message: "unknown unit"},
		{name: "zero height", field: "height", value: 0, message: "invalid body metric"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := referenceProfilePayload()
			payload[tt.field] = tt.value
			response := doRequest(t, app, http.MethodPut, "/api/profile", token, payload)
			assert.Equal(t, http.StatusBadRequest, response.StatusCode)
			assert.Equal(t, tt.message, readAPIError(t, response))
		})
	}
}

func TestRecommendationFollowsActiveGoal(t *testing.T) {
	app := newTestApp(t)
	token := testToken(t, "u1")

	response := doRequest(t, app, http.MethodGet, "/api/recommendation", token, nil)
	assert.Equal(t, http.StatusNotFound, response.StatusCode)

	saveReferenceProfile(t, app, token)

	response = doRequest(t, app, http.MethodGet, "/api/recommendation", token, nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
	maintaining := recommendationResponse{}
	decodeBody(t, response, &maintaining)
	assert.Equal(t, "maintaining", maintaining.GoalType)
	assert.Equal(t, 2172, maintaining.Recommendation.DailyTarget)
	assert.Equal(t, 1401, maintaining.Recommendation.BMR)

	response = doRequest(t, app, http.MethodPost, "/api/goals", token, map[string]any{
		"goal_type":     "cutting",
		"start_weight":  150,
		"target_weight": 140,
		"unit":          "lb",
		"weekly_rate":   1.5,
	})
	require.Equal(t, http.StatusCreated, response.StatusCode)

	response = doRequest(t, app, http.MethodGet, "/api/recommendation", token, nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
	cutting := recommendationResponse{}
	decodeBody(t, response, &cutting)
	assert.Equal(t, "cutting", cutting.GoalType)
	assert.Equal(t, 1422, cutting.Recommendation.DailyTarget)
	assert.Equal(t, 150, cutting.Recommendation.Macros.ProteinG)
	assert.Equal(t, 116, cutting.Recommendation.Macros.CarbsG)
	assert.Equal(t, 40, cutting.Recommendation.Macros.FatG)

	response = doRequest(t, app, http.MethodGet, "/api/recommendation?cycle_phase=luteal", token, nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
	luteal := recommendationResponse{}
	decodeBody(t, response, &luteal)
	assert.Equal(t, 1.05, luteal.Recommendation.CycleMultiplier)
	assert.Equal(t, 1531, luteal.Recommendation.DailyTarget)

	response = doRequest(t, app, http.MethodGet, "/api/recommendation?calories=1000", token, nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
	custom := recommendationResponse{}
	decodeBody(t, response, &custom)
	assert.True(t, custom.Recommendation.Custom)
	assert.Equal(t, 1000, custom.Recommendation.DailyTarget)
}

func TestRecommendationRejectsInvalidQuery(t *testing.T) {
	app := newTestApp(t)
	token := testToken(t, "u1")
	saveReferenceProfile(t, app, token)

	response := doRequest(t, app, http.MethodGet, "/api/recommendation?cycle_phase=winter", token, nil)
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	assert.Equal(t, "unknown cycle phase", readAPIError(t, response))

	response = doRequest(t, app, http.MethodGet, "/api/recommendation?calories=lots", token, nil)
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)

	response = doRequest(t, app, http.MethodGet, "/api/recommendation?calories=-5", token, nil)
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	assert.Equal(t, "invalid custom calorie target", readAPIError(t, response))
}
