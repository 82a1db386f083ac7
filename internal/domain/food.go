package domain

import "time"

// Food is one row of the reference table. Nutrient values are per 100 grams.
type Food struct {
	ID       int               `json:"ID"`
	Name     string            `json:"Name"`
	Calories float64           `json:"Calories"`
	Iron     float64           `json:"Iron"` // milligrams, already normalized
	Extra    map[string]string `json:"Extra,omitempty"`
}

// Query asks for the nutrients of a food scaled to a weight in grams.
type Query struct {
	FoodName string  `json:"food_name"`
	Weight   float64 `json:"weight"`
}

// Result is the scaled nutrition for a single query.
type Result struct {
	ID       int     `json:"ID"`
	Name     string  `json:"Name"`
	Weight   float64 `json:"Weight"`
	Calories float64 `json:"Calories"` // kcal
	Iron     float64 `json:"Iron"`     // grams
}

// Calculation is a computed result stamped with the time it was produced.
// It is the payload sent to the results topic.
type Calculation struct {
	Result
	CalculatedAt time.Time `json:"calculated_at"`
}
