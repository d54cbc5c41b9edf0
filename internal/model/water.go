package model

const DefaultDailyWaterGoal = 2500

type WaterState struct {
	Date          string `json:"date"`
	CurrentIntake int    `json:"currentIntake"`
	DailyGoal     int    `json:"dailyGoal"`
}

// Progress is the share of the daily goal reached, capped at 1.
func (w WaterState) Progress() float64 {
	if w.DailyGoal <= 0 {
		return 0
	}
	p := float64(w.CurrentIntake) / float64(w.DailyGoal)
	if p > 1 {
		return 1
	}
	return p
}
