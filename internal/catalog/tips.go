package catalog

import (
	"math/rand"

	"fitbuddy/backend/internal/model"
)

var tips = []model.Tip{
	{Icon: "water", Title: "Stay Hydrated", Text: "Drink at least 8 glasses of water a day to keep your energy up."},
	{Icon: "bed", Title: "Sleep Well", Text: "Aim for 7-9 hours of sleep to help your muscles recover."},
	{Icon: "nutrition", Title: "Eat Protein", Text: "Protein is essential for muscle repair and growth after workouts."},
	{Icon: "walk", Title: "Keep Moving", Text: "Take short walks during breaks to improve circulation."},
	{Icon: "sunny", Title: "Get Sunlight", Text: "Morning sunlight helps regulate your sleep-wake cycle."},
}

func Tips() []model.Tip {
	out := make([]model.Tip, len(tips))
	copy(out, tips)
	return out
}

// RandomTip picks one tip uniformly.
func RandomTip() model.Tip {
	return tips[rand.Intn(len(tips))]
}
