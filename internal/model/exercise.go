package model

const (
	CategoryAll         = "All"
	CategoryCardio      = "Cardio"
	CategoryStrength    = "Strength"
	CategoryFlexibility = "Flexibility"
	CategoryHIIT        = "HIIT"
)

// Categories lists the catalog facets in display order.
var Categories = []string{
	CategoryAll,
	CategoryCardio,
	CategoryStrength,
	CategoryFlexibility,
	CategoryHIIT,
}

// Exercise is a catalog entry. Identity is ID; favorites keep copies of it.
type Exercise struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Duration    string `json:"duration"`
}
