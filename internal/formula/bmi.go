package formula

import "math"

const (
	BMIUnderweight = "Underweight"
	BMINormal      = "Normal weight"
	BMIOverweight  = "Overweight"
	BMIObese       = "Obese"
)

type BMIResult struct {
	Value    float64 `json:"bmi"`
	Category string  `json:"category"`
}

// BMI computes weight / height^2 rounded half-up to one decimal. The category
// is taken before the one-decimal rounding, so 24.96 reports 25.0 with
// "Normal weight".
func BMI(heightCm, weightKg float64) (BMIResult, error) {
	if !validMeasure(heightCm) || heightCm == 0 || !validMeasure(weightKg) {
		return BMIResult{}, ErrInvalidInput
	}

	heightM := heightCm / 100
	// snap away binary noise first: 80 / 1.6^2 must land on 31.25, not 31.2499...
	raw := math.Round(weightKg/(heightM*heightM)*1e9) / 1e9
	return BMIResult{
		Value:    math.Round(raw*10) / 10,
		Category: BMICategory(raw),
	}, nil
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 25:
		return BMINormal
	case bmi < 30:
		return BMIOverweight
	default:
		return BMIObese
	}
}
