package models

// Coordinates is a geographic point.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LocationSelection is the resolved delivery location of a draft. DisplayText
// is always present before the draft may advance past step 1; coordinates are
// absent on the manual-text-only path.
type LocationSelection struct {
	DisplayText string
	Coordinates *Coordinates
}

// PlaceSuggestion is one autocomplete prediction from the places service.
type PlaceSuggestion struct {
	Description string `json:"description"`
	PlaceID     string `json:"place_id"`
}
