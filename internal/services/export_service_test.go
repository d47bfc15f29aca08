package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/calibra/internal/models"
)

func TestExportBuildEntriesMergesTrackingAndWeights(t *testing.T) {
	days := newDailyTrackingRepositoryStub()
	weights := &weightLogRepositoryStub{}
	service := NewExportService(days, weights, time.UTC)

	first := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	days.seed("u1", first, 2000, 1800)
	days.seed("u2", first, 2500, 2500)
	require.NoError(t, weights.Create(&models.WeightLog{ID: "w2", UserID: "u1", Weight: 149.5, Unit: models.WeightPounds, LoggedAt: first.Add(20 * time.Hour)}))
	require.NoError(t, weights.Create(&models.WeightLog{ID: "w1", UserID: "u1", Weight: 150, Unit: models.WeightPounds, LoggedAt: first.Add(8 * time.Hour)}))
	require.NoError(t, weights.Create(&models.WeightLog{ID: "w3", UserID: "u1", Weight: 149, Unit: models.WeightPounds, LoggedAt: first.AddDate(0, 0, 1)}))

	entries, err := service.BuildEntries("u1", nil, nil)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, []string{"2026-03-01", "2000", "1800", "200", "No", "", "", "149.5", "lb"}, entries[0].Columns())
	assert.Equal(t, []string{"2026-03-02", "", "", "", "No", "", "", "149", "lb"}, entries[1].Columns())
	assert.Len(t, ExportCSVHeaders, len(entries[0].Columns()))
}

func TestExportBuildEntriesRespectsRange(t *testing.T) {
	days := newDailyTrackingRepositoryStub()
	service := NewExportService(days, &weightLogRepositoryStub{}, time.UTC)

	start := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	for offset := 0; offset < 5; offset++ {
		days.seed("u1", start.AddDate(0, 0, offset), 2000, 2000)
	}

	from := start.AddDate(0, 0, 1)
	to := start.AddDate(0, 0, 3).Add(12 * time.Hour)
	entries, err := service.BuildEntries("u1", &from, &to)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "2026-03-02", entries[0].Date)
	assert.Equal(t, "2026-03-04", entries[2].Date)
}

func TestExportBuildSummary(t *testing.T) {
	days := newDailyTrackingRepositoryStub()
	weights := &weightLogRepositoryStub{}
	service := NewExportService(days, weights, time.UTC)

	summary, err := service.BuildSummary("u1", nil, nil)
	require.NoError(t, err)
	assert.False(t, summary.HasData)

	day := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	days.seed("u1", day, 2000, 1800)
	require.NoError(t, weights.Create(&models.WeightLog{ID: "w1", UserID: "u1", Weight: 68, Unit: models.WeightKilograms, LoggedAt: day.AddDate(0, 0, 2)}))

	summary, err = service.BuildSummary("u1", nil, nil)
	require.NoError(t, err)
	assert.True(t, summary.HasData)
	assert.Equal(t, 1, summary.TotalDays)
	assert.Equal(t, 1, summary.TotalWeights)
	assert.Equal(t, "2026-03-01", summary.DateFrom)
	assert.Equal(t, "2026-03-03", summary.DateTo)
}

func TestAdjustedExportRow(t *testing.T) {
	target := 1322
	consumed := 1500
	remaining := target - consumed
	original := 1422
	entry := ExportEntry{
		Date:             "2026-03-05",
		TargetCalories:   &target,
		ConsumedCalories: &consumed,
		Remaining:        &remaining,
		Adjusted:         true,
		Reason:           ReasonConsistentOvereating,
		OriginalTarget:   &original,
	}
	assert.Equal(t, []string{"2026-03-05", "1322", "1500", "-178", "Yes", "consistent_overeating", "1422", "", ""}, entry.Columns())
}
