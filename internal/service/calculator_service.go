package service

import (
	"errors"
	"strings"

	apperrors "fitbuddy/backend/internal/errors"
	"fitbuddy/backend/internal/formula"
)

// CalculatorService backs the tools screen. Incomplete input is not an
// error: the result is simply absent, as when the form is submitted empty.
type CalculatorService struct{}

func NewCalculatorService() *CalculatorService {
	return &CalculatorService{}
}

type CaloriesInput struct {
	Activity        string   `json:"activity"`
	DurationMinutes *float64 `json:"durationMinutes"`
	WeightLbs       *float64 `json:"weightLbs"`
}

type CaloriesResult struct {
	Calories        int     `json:"calories"`
	MET             float64 `json:"met"`
	MatchedActivity string  `json:"matchedActivity,omitempty"`
	WeightLbs       float64 `json:"weightLbs"`
}

type BMIInput struct {
	HeightCm *float64 `json:"heightCm"`
	WeightKg *float64 `json:"weightKg"`
}

func (s *CalculatorService) Calories(in CaloriesInput) (*CaloriesResult, *apperrors.APIError) {
	if strings.TrimSpace(in.Activity) == "" || in.DurationMinutes == nil || *in.DurationMinutes == 0 {
		return nil, nil
	}

	weight := formula.DefaultWeightLbs
	if in.WeightLbs != nil && *in.WeightLbs != 0 {
		weight = *in.WeightLbs
	}

	calories, err := formula.CaloriesBurned(in.Activity, *in.DurationMinutes, weight)
	if errors.Is(err, formula.ErrInvalidInput) {
		return nil, apperrors.InvalidInput("duration and weight must be finite, non-negative numbers")
	}
	if err != nil {
		return nil, apperrors.Internal("")
	}

	met, pattern, _ := formula.LookupMET(in.Activity)
	return &CaloriesResult{
		Calories:        calories,
		MET:             met,
		MatchedActivity: pattern,
		WeightLbs:       weight,
	}, nil
}

func (s *CalculatorService) BMI(in BMIInput) (*formula.BMIResult, *apperrors.APIError) {
	if in.HeightCm == nil || in.WeightKg == nil || *in.HeightCm == 0 || *in.WeightKg == 0 {
		return nil, nil
	}

	result, err := formula.BMI(*in.HeightCm, *in.WeightKg)
	if errors.Is(err, formula.ErrInvalidInput) {
		return nil, apperrors.InvalidInput("height must be positive and weight non-negative")
	}
	if err != nil {
		return nil, apperrors.Internal("")
	}
	return &result, nil
}
