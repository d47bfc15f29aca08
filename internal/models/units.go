package models

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

type HeightUnit string

const (
	HeightInches      HeightUnit = "in"
	HeightCentimeters HeightUnit = "cm"
)

type WeightUnit string

const (
	WeightPounds    WeightUnit = "lb"
	WeightKilograms WeightUnit = "kg"
)

type CyclePhase string

const (
	PhaseMenstrual  CyclePhase = "menstrual"
	PhaseFollicular CyclePhase = "follicular"
	PhaseOvulation  CyclePhase = "ovulation"
	PhaseLuteal     CyclePhase = "luteal"
)
