// Package formula holds the calculators behind the tools screen: calories
// burned from a MET table and body mass index.
package formula

import (
	"errors"
	"math"
	"strings"
)

const (
	// DefaultMET is used when no activity pattern matches.
	DefaultMET = 5.0
	// DefaultWeightLbs is the body weight assumed when the caller has none.
	DefaultWeightLbs = 160.0

	kgPerLb = 0.453592
)

var ErrInvalidInput = errors.New("invalid input")

// METEntry maps an activity pattern to its metabolic equivalent.
type METEntry struct {
	Pattern string
	MET     float64
}

// METTable is matched top to bottom; the first pattern contained in the
// lower-cased activity wins.
var METTable = []METEntry{
	{Pattern: "running", MET: 9.8},
	{Pattern: "cycling", MET: 7.5},
	{Pattern: "walking", MET: 3.8},
	{Pattern: "swimming", MET: 8.0},
	{Pattern: "yoga", MET: 2.5},
	{Pattern: "lifting", MET: 4.0},
	{Pattern: "hiit", MET: 11.0},
}

// LookupMET returns the MET for activity and the pattern that matched.
func LookupMET(activity string) (float64, string, bool) {
	lower := strings.ToLower(activity)
	for _, entry := range METTable {
		if strings.Contains(lower, entry.Pattern) {
			return entry.MET, entry.Pattern, true
		}
	}
	return DefaultMET, "", false
}

// CaloriesBurned returns round(MET * weight_kg * hours).
func CaloriesBurned(activity string, durationMinutes, weightLbs float64) (int, error) {
	if !validMeasure(durationMinutes) || !validMeasure(weightLbs) {
		return 0, ErrInvalidInput
	}

	met, _, _ := LookupMET(activity)
	weightKg := weightLbs * kgPerLb
	hours := durationMinutes / 60
	return int(roundHalfUp(met * weightKg * hours)), nil
}

func validMeasure(v float64) bool {
	return v >= 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

// roundHalfUp matches Math.round for the non-negative values used here.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
