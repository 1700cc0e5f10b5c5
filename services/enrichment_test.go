package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"eatery-scraper/models"
	"eatery-scraper/scraper/geocode"
	"eatery-scraper/scraper/search"
)

type stubGeocoder map[string]models.Coordinate

func (s stubGeocoder) Lookup(_ context.Context, address string) (models.Coordinate, error) {
	if c, ok := s[address]; ok {
		return c, nil
	}
	if address == "unreachable" {
		return models.Coordinate{}, errors.New("connection refused")
	}
	return models.Coordinate{}, geocode.ErrNotFound
}

func TestGeocodeEnricher(t *testing.T) {
	geo := stubGeocoder{
		"60 E Green St, Champaign, Illinois":     {Lat: 40.11, Lng: -88.24},
		"100 N Chestnut St, Champaign, Illinois": {Lat: 40.12, Lng: -88.25},
		"603 S Wright St, Champaign, Illinois":   {Lat: 40.10, Lng: -88.23},
	}
	records := []*models.Eatery{
		reconciledWith("Maize", "60 E Green St, Champaign, Illinois", "100 N Chestnut St, Champaign, Illinois"),
		// only the first location resolves, so nothing is written
		reconciledWith("Two Spot", "603 S Wright St, Champaign, Illinois", "nowhere"),
		reconciledWith("Offline", "603 S Wright St, Champaign, Illinois", "unreachable"),
		{Name: "Draft only"},
	}

	out, report, err := NewGeocodeEnricher(geo, 0, newTestLogger()).Enrich(context.Background(), records)
	require.NoError(t, err)

	maize := out[0].LocationList()
	require.Equal(t, &models.Coordinate{Lat: 40.11, Lng: -88.24}, maize[0].Coordinate)
	require.Equal(t, &models.Coordinate{Lat: 40.12, Lng: -88.25}, maize[1].Coordinate)

	for _, rec := range out[1:3] {
		locs := rec.LocationList()
		require.Len(t, locs, 2, "locations are never dropped")
		for _, l := range locs {
			require.Nil(t, l.Coordinate, "%s: partial batch discarded", rec.Name)
		}
	}

	diags := report.ForField(FieldCoordinate)
	require.Len(t, diags, 2)
	require.Equal(t, "Two Spot", diags[0].Name)
	require.Equal(t, "Offline", diags[1].Name)
	require.Nil(t, records[0].LocationList()[0].Coordinate, "input untouched")
}

func TestGeocodeEnricherCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewGeocodeEnricher(stubGeocoder{}, 0, newTestLogger()).
		Enrich(ctx, []*models.Eatery{reconciledWith("Maize", "a")})
	require.ErrorIs(t, err, context.Canceled)
}

type stubRatings struct {
	ratings map[string]search.Rating
	calls   int
}

func (s *stubRatings) LookupRating(_ context.Context, name, locality string) (search.Rating, error) {
	s.calls++
	if r, ok := s.ratings[name+"|"+locality]; ok {
		return r, nil
	}
	return search.Rating{Rating: search.NoRating, Reviews: search.NoReviews}, nil
}

func TestRatingEnricher(t *testing.T) {
	s := &stubRatings{ratings: map[string]search.Rating{
		"Maize|Champaign":   {Rating: 4.6, Reviews: 812},
		"El Toro|Champaign": {Rating: 4.2, Reviews: 300},
	}}
	records := []*models.Eatery{
		reconciledWith("Maize", "60 E Green St, Champaign, Illinois"),
		// second location has no rating, so the whole batch is discarded
		reconciledWith("El Toro", "723 S Neil St, Champaign, Illinois", "2 E Main St, Urbana, Illinois", "x, Savoy, Illinois"),
		reconciledWith("No Locality", "Somewhere"),
	}

	out, report, err := NewRatingEnricher(s, 0, newTestLogger()).Enrich(context.Background(), records)
	require.NoError(t, err)

	maize := out[0].LocationList()[0]
	require.Equal(t, ptr(4.6), maize.Rating)
	require.Equal(t, ptr(812), maize.Reviews)

	for _, l := range out[1].LocationList() {
		require.Nil(t, l.Rating)
		require.Nil(t, l.Reviews)
	}
	require.Nil(t, out[2].LocationList()[0].Rating)

	diags := report.ForField(FieldRating)
	require.Len(t, diags, 2)
	require.Equal(t, "El Toro", diags[0].Name)
	require.Equal(t, "No Locality", diags[1].Name)
	require.Equal(t, 3, s.calls, "stops at the first unrated location")
}

type stubPrices map[string]int

func (s stubPrices) LookupPrice(_ context.Context, name, address string) (int, bool, error) {
	if address == "boom" {
		return 0, false, errors.New("timeout")
	}
	p, ok := s[name+"|"+address]
	return p, ok, nil
}

func TestPriceEnricher(t *testing.T) {
	s := stubPrices{
		"Maize|a":   1,
		"Maize|b":   2,
		"El Toro|a": 2,
	}
	records := []*models.Eatery{
		reconciledWith("Maize", "a", "b"),
		reconciledWith("El Toro", "a", "b"),
		reconciledWith("Broken", "boom"),
		{Name: "Draft only"},
	}

	out, report, err := NewPriceEnricher(s, 0, newTestLogger()).Enrich(context.Background(), records)
	require.NoError(t, err)

	require.Equal(t, ptr(1), out[0].LocationList()[0].Price)
	require.Equal(t, ptr(2), out[0].LocationList()[1].Price)
	require.Nil(t, out[1].LocationList()[0].Price, "partial batch discarded")
	require.Nil(t, out[2].LocationList()[0].Price)

	diags := report.ForField(FieldPrice)
	require.Len(t, diags, 2)
	require.Equal(t, "El Toro", diags[0].Name)
	require.Equal(t, "Broken", diags[1].Name)
}
