package services

import (
	"sort"
	"strconv"
	"time"

	"github.com/terraincognita07/calibra/internal/models"
)

var ExportCSVHeaders = []string{
	"Date",
	"Target",
	"Consumed",
	"Remaining",
	"Adjusted",
	"Reason",
	"Original target",
	"Weight",
	"Weight unit",
}

type ExportTrackingReader interface {
	ListByUserRange(userID string, fromStart *time.Time, toEnd *time.Time) ([]models.DailyTracking, error)
}

type ExportWeightReader interface {
	ListByUserRange(userID string, fromStart *time.Time, toEnd *time.Time) ([]models.WeightLog, error)
}

type ExportService struct {
	days     ExportTrackingReader
	weights  ExportWeightReader
	location *time.Location
}

type ExportSummary struct {
	TotalDays    int    `json:"total_days"`
	TotalWeights int    `json:"total_weights"`
	HasData      bool   `json:"has_data"`
	DateFrom     string `json:"date_from,omitempty"`
	DateTo       string `json:"date_to,omitempty"`
}

// ExportEntry is one calendar day that has either tracking data or a weight.
type ExportEntry struct {
	Date             string            `json:"date"`
	TargetCalories   *int              `json:"target_calories"`
	ConsumedCalories *int              `json:"consumed_calories"`
	Remaining        *int              `json:"remaining_calories"`
	Adjusted         bool              `json:"adjusted"`
	Reason           string            `json:"adjustment_reason,omitempty"`
	OriginalTarget   *int              `json:"original_target,omitempty"`
	Weight           *float64          `json:"weight"`
	WeightUnit       models.WeightUnit `json:"weight_unit,omitempty"`
}

func NewExportService(days ExportTrackingReader, weights ExportWeightReader, location *time.Location) *ExportService {
	if location == nil {
		location = time.UTC
	}
	return &ExportService{
		days:     days,
		weights:  weights,
		location: location,
	}
}

func (service *ExportService) BuildEntries(userID string, from *time.Time, to *time.Time) ([]ExportEntry, error) {
	var fromStart *time.Time
	var toEnd *time.Time
	if from != nil {
		start := DateAtLocation(*from, service.location)
		fromStart = &start
	}
	if to != nil {
		_, end := DayRange(*to, service.location)
		toEnd = &end
	}

	days, err := service.days.ListByUserRange(userID, fromStart, toEnd)
	if err != nil {
		return nil, err
	}
	weights, err := service.weights.ListByUserRange(userID, fromStart, toEnd)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]*ExportEntry, len(days)+len(weights))
	entryFor := func(day time.Time) *ExportEntry {
		key := DateAtLocation(day, service.location).Format(dayLayout)
		entry, ok := byDate[key]
		if !ok {
			entry = &ExportEntry{Date: key}
			byDate[key] = entry
		}
		return entry
	}

	for _, day := range days {
		entry := entryFor(day.Date)
		target := day.TargetCalories
		consumed := day.ConsumedCalories
		remaining := day.RemainingCalories()
		entry.TargetCalories = &target
		entry.ConsumedCalories = &consumed
		entry.Remaining = &remaining
		entry.Adjusted = day.Adjusted
		entry.Reason = day.AdjustmentReason
		if day.OriginalTarget != nil {
			original := *day.OriginalTarget
			entry.OriginalTarget = &original
		}
	}

	// The last weight logged on a day wins.
	sort.SliceStable(weights, func(i, j int) bool {
		return weights[i].LoggedAt.Before(weights[j].LoggedAt)
	})
	for _, weight := range weights {
		entry := entryFor(weight.LoggedAt)
		value := weight.Weight
		entry.Weight = &value
		entry.WeightUnit = weight.Unit
	}

	entries := make([]ExportEntry, 0, len(byDate))
	for _, entry := range byDate {
		entries = append(entries, *entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})
	return entries, nil
}

func (service *ExportService) BuildSummary(userID string, from *time.Time, to *time.Time) (ExportSummary, error) {
	entries, err := service.BuildEntries(userID, from, to)
	if err != nil {
		return ExportSummary{}, err
	}
	if len(entries) == 0 {
		return ExportSummary{}, nil
	}

	summary := ExportSummary{
		HasData:  true,
		DateFrom: entries[0].Date,
		DateTo:   entries[len(entries)-1].Date,
	}
	for _, entry := range entries {
		if entry.TargetCalories != nil {
			summary.TotalDays++
		}
		if entry.Weight != nil {
			summary.TotalWeights++
		}
	}
	return summary, nil
}

func (entry ExportEntry) Columns() []string {
	return []string{
		entry.Date,
		csvInt(entry.TargetCalories),
		csvInt(entry.ConsumedCalories),
		csvInt(entry.Remaining),
		csvYesNo(entry.Adjusted),
		entry.Reason,
		csvInt(entry.OriginalTarget),
		csvFloat(entry.Weight),
		string(entry.WeightUnit),
	}
}

func csvInt(value *int) string {
	if value == nil {
		return ""
	}
	return strconv.Itoa(*value)
}

func csvFloat(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}

func csvYesNo(value bool) string {
	if value {
		return "Yes"
	}
	return "No"
}
