package formula

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaloriesBurned_Running(t *testing.T) {
	calories, err := CaloriesBurned("Running", 30, 160)
	require.NoError(t, err)
	assert.Equal(t, 356, calories)
}

func TestCaloriesBurned_DefaultMET(t *testing.T) {
	calories, err := CaloriesBurned("Rowing", 60, 100)
	require.NoError(t, err)
	// 5.0 * 45.3592 * 1
	assert.Equal(t, 227, calories)
}

func TestCaloriesBurned_ZeroInputs(t *testing.T) {
	calories, err := CaloriesBurned("yoga", 0, 160)
	require.NoError(t, err)
	assert.Equal(t, 0, calories)

	calories, err = CaloriesBurned("yoga", 30, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, calories)
}

func TestCaloriesBurned_RejectsInvalid(t *testing.T) {
	for _, tc := range []struct {
		name     string
		duration float64
		weight   float64
	}{
		{"negative duration", -1, 160},
		{"negative weight", 30, -160},
		{"nan duration", math.NaN(), 160},
		{"inf weight", 30, math.Inf(1)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CaloriesBurned("running", tc.duration, tc.weight)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestLookupMET_FirstMatchWins(t *testing.T) {
	met, pattern, ok := LookupMET("Cycling then running")
	assert.True(t, ok)
	assert.Equal(t, "running", pattern)
	assert.Equal(t, 9.8, met)

	met, pattern, ok = LookupMET("Power LIFTING + HIIT")
	assert.True(t, ok)
	assert.Equal(t, "lifting", pattern)
	assert.Equal(t, 4.0, met)
}

func TestLookupMET_CaseInsensitiveSubstring(t *testing.T) {
	met, _, ok := LookupMET("Morning Yoga Flow")
	assert.True(t, ok)
	assert.Equal(t, 2.5, met)

	met, _, ok = LookupMET("")
	assert.False(t, ok)
	assert.Equal(t, DefaultMET, met)
}

func TestBMI(t *testing.T) {
	result, err := BMI(175, 70)
	require.NoError(t, err)
	assert.Equal(t, 22.9, result.Value)
	assert.Equal(t, BMINormal, result.Category)

	result, err = BMI(160, 80)
	require.NoError(t, err)
	assert.Equal(t, 31.3, result.Value)
	assert.Equal(t, BMIObese, result.Category)
}

func TestBMI_RejectsInvalid(t *testing.T) {
	_, err := BMI(0, 70)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = BMI(-170, 70)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = BMI(170, -1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBMICategory_Boundaries(t *testing.T) {
	assert.Equal(t, BMIUnderweight, BMICategory(18.49))
	assert.Equal(t, BMINormal, BMICategory(18.5))
	assert.Equal(t, BMINormal, BMICategory(24.99))
	assert.Equal(t, BMIOverweight, BMICategory(25))
	assert.Equal(t, BMIOverweight, BMICategory(29.99))
	assert.Equal(t, BMIObese, BMICategory(30))
}

func TestBMI_ExactBoundaryFromMeasurements(t *testing.T) {
	// 100 / 2^2 == 25
	result, err := BMI(200, 100)
	require.NoError(t, err)
	assert.Equal(t, 25.0, result.Value)
	assert.Equal(t, BMIOverweight, result.Category)
}
