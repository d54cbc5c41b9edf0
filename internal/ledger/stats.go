package ledger

import "fitbuddy/backend/internal/model"

// Stats aggregates the whole log on every call, so it can never drift from the
// log's contents.
func Stats(history []model.WorkoutRecord) model.HistoryStats {
	stats := model.HistoryStats{TotalWorkouts: len(history)}
	for _, record := range history {
		stats.TotalCalories += record.Calories
		stats.TotalDurationMinutes += ParseDurationMinutes(record.Duration)
	}
	return stats
}

// ParseDurationMinutes reads the leading integer of a duration label such as
// "15 min", the way JavaScript's parseInt does. Labels without one count as 0.
func ParseDurationMinutes(duration string) int {
	i := 0
	for i < len(duration) && isSpace(duration[i]) {
		i++
	}

	sign := 1
	if i < len(duration) && (duration[i] == '+' || duration[i] == '-') {
		if duration[i] == '-' {
			sign = -1
		}
		i++
	}

	n, digits := 0, 0
	for ; i < len(duration) && duration[i] >= '0' && duration[i] <= '9'; i++ {
		n = n*10 + int(duration[i]-'0')
		digits++
		if n > 1<<31 {
			break
		}
	}
	if digits == 0 {
		return 0
	}
	return sign * n
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}
