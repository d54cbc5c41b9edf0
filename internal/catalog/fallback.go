package catalog

import "fitbuddy/backend/internal/model"

var fallbackExercises = []model.Exercise{
	{
		ID:          "1",
		Title:       "Push Up",
		Image:       "https://images.unsplash.com/photo-1571019614242-c5c5dee9f50b?w=800",
		Description: "A classic upper body exercise that targets the chest, shoulders, and triceps.",
		Category:    model.CategoryStrength,
		Duration:    "10 min",
	},
	{
		ID:          "2",
		Title:       "Squat",
		Image:       "https://images.unsplash.com/photo-1574680096145-d05b474e2155?w=800",
		Description: "A fundamental lower body exercise that works the quadriceps, hamstrings, and glutes.",
		Category:    model.CategoryStrength,
		Duration:    "15 min",
	},
	{
		ID:          "3",
		Title:       "Running",
		Image:       "https://images.unsplash.com/photo-1552674605-4696c0465d6d?w=800",
		Description: "A great cardiovascular exercise to improve heart health and burn calories.",
		Category:    model.CategoryCardio,
		Duration:    "30 min",
	},
	{
		ID:          "4",
		Title:       "Plank",
		Image:       "https://images.unsplash.com/photo-1566241440091-ec10de8db2e1?w=800",
		Description: "An isometric core strength exercise that involves maintaining a position similar to a push-up.",
		Category:    model.CategoryStrength,
		Duration:    "5 min",
	},
	{
		ID:          "5",
		Title:       "Yoga Flow",
		Image:       "https://images.unsplash.com/photo-1544367563-12123d8965cd?w=800",
		Description: "A series of yoga poses to improve flexibility, balance, and mental focus.",
		Category:    model.CategoryFlexibility,
		Duration:    "20 min",
	},
}

// Fallback returns a copy of the built-in exercise list.
func Fallback() []model.Exercise {
	out := make([]model.Exercise, len(fallbackExercises))
	copy(out, fallbackExercises)
	return out
}

func fallbackByID(id string) (model.Exercise, bool) {
	for _, item := range fallbackExercises {
		if item.ID == id {
			return item, true
		}
	}
	return model.Exercise{}, false
}
