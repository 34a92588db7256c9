package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/kirovest/sales-app/config"
	"github.com/kirovest/sales-app/models"
	"github.com/kirovest/sales-app/utils"
)

// GeocodeService wraps the Google geocoding and places endpoints. All queries
// are keyed and scoped to the configured language and country. The endpoint
// URLs are fields so tests can point them at a local server.
type GeocodeService struct {
	APIKey          string
	Language        string
	Country         string
	GeocodeURL      string
	AutocompleteURL string
	DetailsURL      string
	HTTPClient      *http.Client
}

func NewGeocodeService(cfg *config.Config) *GeocodeService {
	return &GeocodeService{
		APIKey:          cfg.GoogleAPIKey,
		Language:        cfg.PlacesLanguage,
		Country:         cfg.PlacesCountry,
		GeocodeURL:      "https://maps.googleapis.com/maps/api/geocode/json",
		AutocompleteURL: "https://maps.googleapis.com/maps/api/place/autocomplete/json",
		DetailsURL:      "https://maps.googleapis.com/maps/api/place/details/json",
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ReverseGeocode resolves coordinates into the first formatted address. An
// empty result set is an error; the caller decides how to fall back.
func (g *GeocodeService) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	params := url.Values{}
	params.Set("latlng", fmt.Sprintf("%f,%f", lat, lng))
	params.Set("language", g.Language)
	params.Set("key", g.APIKey)

	var payload struct {
		Results []struct {
			FormattedAddress string `json:"formatted_address"`
		} `json:"results"`
	}
	if err := g.fetch(ctx, g.GeocodeURL, params, &payload); err != nil {
		return "", err
	}
	if len(payload.Results) == 0 {
		return "", fmt.Errorf("no address found for %f,%f", lat, lng)
	}
	return payload.Results[0].FormattedAddress, nil
}

// Autocomplete returns place predictions for a typed query, restricted to
// addresses in the configured country.
func (g *GeocodeService) Autocomplete(ctx context.Context, input string) ([]models.PlaceSuggestion, error) {
	params := url.Values{}
	params.Set("input", input)
	params.Set("language", g.Language)
	params.Set("components", "country:"+g.Country)
	params.Set("types", "address")
	params.Set("key", g.APIKey)

	var payload struct {
		Predictions []models.PlaceSuggestion `json:"predictions"`
		Status      string                   `json:"status"`
	}
	if err := g.fetch(ctx, g.AutocompleteURL, params, &payload); err != nil {
		return nil, err
	}
	if payload.Status != "OK" && payload.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("places API error: %s", payload.Status)
	}
	return payload.Predictions, nil
}

// PlaceDetails resolves a suggestion's place ID into coordinates.
func (g *GeocodeService) PlaceDetails(ctx context.Context, placeID string) (*models.Coordinates, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("language", g.Language)
	params.Set("key", g.APIKey)

	var payload struct {
		Result struct {
			Geometry struct {
				Location struct {
					Lat float64 `json:"lat"`
					Lng float64 `json:"lng"`
				} `json:"location"`
			} `json:"geometry"`
		} `json:"result"`
		Status string `json:"status"`
	}
	if err := g.fetch(ctx, g.DetailsURL, params, &payload); err != nil {
		return nil, err
	}
	if payload.Status != "OK" {
		return nil, fmt.Errorf("places API error: %s", payload.Status)
	}
	return &models.Coordinates{
		Latitude:  payload.Result.Geometry.Location.Lat,
		Longitude: payload.Result.Geometry.Location.Lng,
	}, nil
}

func (g *GeocodeService) fetch(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		return &utils.NetworkError{Op: "GET " + endpoint, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &utils.NetworkError{Op: "GET " + endpoint, Err: err}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return utils.NewProtocolError(err)
	}
	return nil
}
