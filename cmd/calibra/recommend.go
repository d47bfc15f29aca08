package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/calibra/internal/models"
	"github.com/terraincognita07/calibra/internal/services"
)

type recommendOptions struct {
	age        int
	sex        string
	height     float64
	heightUnit string
	weight     float64
	weightUnit string
	activity   string
	goal       string
	rate       float64
	calories   int
	cyclePhase string
}

func newRecommendCommand() *cobra.Command {
	options := recommendOptions{}

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Print a calorie recommendation for the given body metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			request, profile, err := options.build(cmd)
			if err != nil {
				return err
			}
			recommendation, err := services.ResolveDailyTarget(profile, request)
			if err != nil {
				return err
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(recommendation)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&options.age, "age", 0, "Age in years")
	flags.StringVar(&options.sex, "sex", "", "male or female")
	flags.Float64Var(&options.height, "height", 0, "Height")
	flags.StringVar(&options.heightUnit, "height-unit", "in", "in or cm")
	flags.Float64Var(&options.weight, "weight", 0, "Body weight")
	flags.StringVar(&options.weightUnit, "weight-unit", "lb", "lb or kg")
	flags.StringVar(&options.activity, "activity", string(models.ActivityModerate), "sedentary, light, moderate, active or very_active")
	flags.StringVar(&options.goal, "goal", string(models.GoalMaintaining), "cutting, bulking or maintaining")
	flags.Float64Var(&options.rate, "rate", 0, "Weekly weight change in lb (goal default when omitted)")
	flags.IntVar(&options.calories, "calories", 0, "Custom daily calories, bypasses the goal math")
	flags.StringVar(&options.cyclePhase, "cycle-phase", "", "menstrual, follicular, ovulation or luteal")
	for _, name := range []string{"age", "sex", "height", "weight"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func (options recommendOptions) build(cmd *cobra.Command) (services.TargetRequest, models.BodyProfile, error) {
	heightUnit, err := services.ParseHeightUnit(options.heightUnit)
	if err != nil {
		return services.TargetRequest{}, models.BodyProfile{}, err
	}
	weightUnit, err := services.ParseWeightUnit(options.weightUnit)
	if err != nil {
		return services.TargetRequest{}, models.BodyProfile{}, err
	}
	phase, err := services.ParseCyclePhase(options.cyclePhase)
	if err != nil {
		return services.TargetRequest{}, models.BodyProfile{}, err
	}

	profile := models.BodyProfile{
		Age:           options.age,
		Sex:           models.Sex(options.sex),
		HeightValue:   options.height,
		HeightUnit:    heightUnit,
		WeightValue:   options.weight,
		WeightUnit:    weightUnit,
		ActivityLevel: models.ActivityLevel(options.activity),
	}
	request := services.TargetRequest{
		GoalType:   models.GoalType(options.goal),
		CyclePhase: phase,
	}
	if cmd.Flags().Changed("rate") {
		rate := options.rate
		request.WeeklyRate = &rate
	}
	if cmd.Flags().Changed("calories") {
		calories := options.calories
		request.CustomDailyCalories = &calories
	}
	return request, profile, nil
}
