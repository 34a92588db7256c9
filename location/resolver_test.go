package location

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kirovest/sales-app/models"
	"github.com/kirovest/sales-app/utils"
)

type fakeGeocoder struct {
	address     string
	reverseErr  error
	suggestions []models.PlaceSuggestion
	searchErr   error
	coords      *models.Coordinates
	detailsErr  error
}

func (f *fakeGeocoder) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	return f.address, f.reverseErr
}

func (f *fakeGeocoder) Autocomplete(ctx context.Context, input string) ([]models.PlaceSuggestion, error) {
	return f.suggestions, f.searchErr
}

func (f *fakeGeocoder) PlaceDetails(ctx context.Context, placeID string) (*models.Coordinates, error) {
	return f.coords, f.detailsErr
}

func TestMapTapResolvesAddress(t *testing.T) {
	r := NewResolver(&fakeGeocoder{address: "شارع التحرير، القاهرة"}, true)

	sel, err := r.MapTap(context.Background(), 30.044420, 31.235712)
	assert.NoError(t, err)
	assert.Equal(t, "شارع التحرير، القاهرة", sel.DisplayText)
	assert.Equal(t, 30.044420, sel.Coordinates.Latitude)
	assert.Equal(t, 31.235712, sel.Coordinates.Longitude)
}

func TestMapTapFallsBackToCoordinateText(t *testing.T) {
	r := NewResolver(&fakeGeocoder{reverseErr: errors.New("timeout")}, true)

	sel, err := r.MapTap(context.Background(), 30.0333333, 31.2333339)
	assert.NoError(t, err)
	assert.Equal(t, "30.033333, 31.233334", sel.DisplayText)
	assert.NotNil(t, sel.Coordinates)
}

func TestMapTapWithoutMapCapability(t *testing.T) {
	r := NewResolver(&fakeGeocoder{}, false)
	assert.True(t, r.ManualMode(), "no map means manual entry from the start")

	_, err := r.MapTap(context.Background(), 30, 31)
	assert.True(t, utils.IsValidation(err))

	err = r.UseMap()
	assert.True(t, utils.IsValidation(err))
	assert.True(t, r.ManualMode())
}

func TestSearchSkipsShortQueries(t *testing.T) {
	geo := &fakeGeocoder{suggestions: []models.PlaceSuggestion{{Description: "مدينة نصر", PlaceID: "p1"}}}
	r := NewResolver(geo, true)

	got, err := r.Search(context.Background(), "م")
	assert.NoError(t, err)
	assert.Nil(t, got)

	got, err = r.Search(context.Background(), "مد")
	assert.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSelectSuggestion(t *testing.T) {
	geo := &fakeGeocoder{coords: &models.Coordinates{Latitude: 30.05, Longitude: 31.23}}
	r := NewResolver(geo, true)

	sel, err := r.SelectSuggestion(context.Background(), models.PlaceSuggestion{Description: "مدينة نصر", PlaceID: "p1"})
	assert.NoError(t, err)
	assert.Equal(t, "مدينة نصر", sel.DisplayText)
	assert.Equal(t, 30.05, sel.Coordinates.Latitude)
}

func TestSelectSuggestionKeepsPriorOnFailure(t *testing.T) {
	geo := &fakeGeocoder{address: "العنوان القديم"}
	r := NewResolver(geo, true)
	prior, err := r.MapTap(context.Background(), 30, 31)
	assert.NoError(t, err)

	geo.detailsErr = errors.New("details unavailable")
	sel, err := r.SelectSuggestion(context.Background(), models.PlaceSuggestion{Description: "مكان آخر", PlaceID: "p2"})
	assert.Error(t, err)
	assert.Equal(t, prior, sel)
	assert.Equal(t, prior, r.Selection())
}

func TestSetManualTextKeepsCoordinates(t *testing.T) {
	geo := &fakeGeocoder{address: "العنوان"}
	r := NewResolver(geo, true)
	_, err := r.MapTap(context.Background(), 30, 31)
	assert.NoError(t, err)

	sel := r.SetManualText("بجوار المدرسة")
	assert.True(t, r.ManualMode())
	assert.Equal(t, "بجوار المدرسة", sel.DisplayText)
	assert.NotNil(t, sel.Coordinates, "typed text does not discard resolved coordinates")
}

func TestSetManualCoordinates(t *testing.T) {
	r := NewResolver(&fakeGeocoder{reverseErr: errors.New("offline")}, true)

	sel, err := r.SetManualCoordinates(context.Background(), " 30.033333 , 31.233334 ")
	assert.NoError(t, err)
	assert.Equal(t, 30.033333, sel.Coordinates.Latitude)
	assert.Equal(t, 31.233334, sel.Coordinates.Longitude)
	assert.Equal(t, "30.033333, 31.233334", sel.DisplayText)
}

func TestSetManualCoordinatesRejectsBadInput(t *testing.T) {
	geo := &fakeGeocoder{address: "العنوان"}
	r := NewResolver(geo, true)
	prior, err := r.MapTap(context.Background(), 30, 31)
	assert.NoError(t, err)

	for _, input := range []string{"", "30.03", "abc,def", "30.03,", "NaN,31.2", "Inf,31.2"} {
		sel, err := r.SetManualCoordinates(context.Background(), input)
		assert.True(t, utils.IsValidation(err), "input %q", input)
		assert.Equal(t, prior, sel, "input %q must not change the selection", input)
	}
}

func TestModeSwitchKeepsDisplayText(t *testing.T) {
	r := NewResolver(&fakeGeocoder{address: "العنوان"}, true)
	_, err := r.MapTap(context.Background(), 30, 31)
	assert.NoError(t, err)

	r.UseManualEntry()
	assert.Equal(t, "العنوان", r.Selection().DisplayText)

	assert.NoError(t, r.UseMap())
	assert.Equal(t, "العنوان", r.Selection().DisplayText)
}

func TestDebounceCoalescesRapidCalls(t *testing.T) {
	var runs atomic.Int32
	var cell Cell

	for i := 0; i < 5; i++ {
		cell.Schedule(20*time.Millisecond, func() { runs.Add(1) })
	}
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), runs.Load())
}

func TestDebounceStopCancelsPending(t *testing.T) {
	var runs atomic.Int32
	var cell Cell

	cell.Schedule(20*time.Millisecond, func() { runs.Add(1) })
	cell.Stop()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), runs.Load())
}
