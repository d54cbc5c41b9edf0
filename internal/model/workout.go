package model

// WorkoutRecord is one completed workout. Timestamp is epoch milliseconds.
type WorkoutRecord struct {
	ID         string `json:"id"`
	ExerciseID string `json:"exerciseId"`
	Title      string `json:"title"`
	Timestamp  int64  `json:"timestamp"`
	Duration   string `json:"duration"`
	Calories   int    `json:"calories"`
}

type HistoryStats struct {
	TotalWorkouts        int `json:"totalWorkouts"`
	TotalCalories        int `json:"totalCalories"`
	TotalDurationMinutes int `json:"totalDurationMinutes"`
}
