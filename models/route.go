package models

// Week is one selectable route week.
type Week struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// RouteStop is one visit on a weekly route.
type RouteStop struct {
	Day     string `json:"day"`
	Client  string `json:"client"`
	Purpose string `json:"purpose"`
}

// NewRoute is the POST /weekly_routes/add payload. Client carries the client
// name, matching what the backend expects from the app.
type NewRoute struct {
	WeekID  int    `json:"week_id"`
	Day     string `json:"day"`
	Client  string `json:"client"`
	Purpose string `json:"purpose"`
}
