package location

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/kirovest/sales-app/models"
	"github.com/kirovest/sales-app/utils"
)

// Debounce delays matching the app's map-region and search-input handling.
const (
	RegionChangeDelay = 300 * time.Millisecond
	SearchInputDelay  = 500 * time.Millisecond
)

// Geocoder is the slice of the geocoding service the resolver needs.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (string, error)
	Autocomplete(ctx context.Context, input string) ([]models.PlaceSuggestion, error)
	PlaceDetails(ctx context.Context, placeID string) (*models.Coordinates, error)
}

// Resolver produces the draft's LocationSelection through one of four modes:
// map tap, place search, manual text or manual coordinates. Switching modes
// never clears a previously resolved display text. Map availability is a
// capability injected at startup; without it the resolver is manual-only.
type Resolver struct {
	geocoder      Geocoder
	mapsAvailable bool

	manualMode bool
	selection  models.LocationSelection

	regionDebounce Cell
	searchDebounce Cell
}

func NewResolver(geocoder Geocoder, mapsAvailable bool) *Resolver {
	return &Resolver{
		geocoder:      geocoder,
		mapsAvailable: mapsAvailable,
		manualMode:    !mapsAvailable,
	}
}

func (r *Resolver) MapsAvailable() bool { return r.mapsAvailable }

func (r *Resolver) ManualMode() bool { return r.manualMode }

// UseManualEntry switches to manual entry, keeping the current selection as a
// starting point.
func (r *Resolver) UseManualEntry() {
	r.manualMode = true
}

// UseMap switches back to the map, which needs the map capability.
func (r *Resolver) UseMap() error {
	if !r.mapsAvailable {
		return utils.NewValidationError("map is not available")
	}
	r.manualMode = false
	return nil
}

func (r *Resolver) Selection() models.LocationSelection { return r.selection }

// MapTap resolves a tapped point. Reverse geocoding failures (network error
// or no results) fall back to the "lat, lon" text with six decimals; the
// coordinates are kept either way.
func (r *Resolver) MapTap(ctx context.Context, lat, lng float64) (models.LocationSelection, error) {
	if !r.mapsAvailable {
		return r.selection, utils.NewValidationError("map is not available")
	}

	r.selection = r.resolveCoordinates(ctx, lat, lng)
	return r.selection, nil
}

// Search returns place suggestions for the typed query. Queries shorter than
// two characters return nothing, as the search box always behaved.
func (r *Resolver) Search(ctx context.Context, query string) ([]models.PlaceSuggestion, error) {
	if len([]rune(query)) < 2 {
		return nil, nil
	}
	return r.geocoder.Autocomplete(ctx, query)
}

// SelectSuggestion resolves one suggestion into the selection: the display
// text is the suggestion's description, the coordinates come from the place
// details lookup. On failure the prior selection is untouched.
func (r *Resolver) SelectSuggestion(ctx context.Context, suggestion models.PlaceSuggestion) (models.LocationSelection, error) {
	coords, err := r.geocoder.PlaceDetails(ctx, suggestion.PlaceID)
	if err != nil {
		return r.selection, err
	}

	r.selection = models.LocationSelection{
		DisplayText: suggestion.Description,
		Coordinates: coords,
	}
	return r.selection, nil
}

// SetManualText takes typed free text as the display text. Coordinates stay
// whatever they were.
func (r *Resolver) SetManualText(text string) models.LocationSelection {
	r.manualMode = true
	r.selection.DisplayText = text
	return r.selection
}

// SetManualCoordinates parses a "lat,lon" string: split on the first comma,
// trim, parse both halves. A half that is not a finite number fails with
// "invalid coordinates" and mutates nothing. On success a reverse-geocode
// attempt fills the display text, with the map-tap fallback.
func (r *Resolver) SetManualCoordinates(ctx context.Context, input string) (models.LocationSelection, error) {
	idx := strings.Index(input, ",")
	if idx < 0 {
		return r.selection, utils.NewValidationError("invalid coordinates")
	}

	lat, errLat := strconv.ParseFloat(strings.TrimSpace(input[:idx]), 64)
	lng, errLng := strconv.ParseFloat(strings.TrimSpace(input[idx+1:]), 64)
	if errLat != nil || errLng != nil || !isFinite(lat) || !isFinite(lng) {
		return r.selection, utils.NewValidationError("invalid coordinates")
	}

	r.selection = r.resolveCoordinates(ctx, lat, lng)
	return r.selection, nil
}

// ScheduleRegionChange coalesces rapid map-region updates into one run.
func (r *Resolver) ScheduleRegionChange(fn func()) {
	r.regionDebounce.Schedule(RegionChangeDelay, fn)
}

// ScheduleSearch coalesces rapid search keystrokes into one run.
func (r *Resolver) ScheduleSearch(fn func()) {
	r.searchDebounce.Schedule(SearchInputDelay, fn)
}

// Stop drops any pending debounced task.
func (r *Resolver) Stop() {
	r.regionDebounce.Stop()
	r.searchDebounce.Stop()
}

func (r *Resolver) resolveCoordinates(ctx context.Context, lat, lng float64) models.LocationSelection {
	displayText, err := r.geocoder.ReverseGeocode(ctx, lat, lng)
	if err != nil || displayText == "" {
		displayText = fmt.Sprintf("%.6f, %.6f", lat, lng)
	}
	return models.LocationSelection{
		DisplayText: displayText,
		Coordinates: &models.Coordinates{Latitude: lat, Longitude: lng},
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
