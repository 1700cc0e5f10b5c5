package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"eatery-scraper/models"
)

func sampleEateries() []*models.Eatery {
	loc := func(addr, area string, rating float64, reviews, price int) models.Location {
		l := models.Location{Address: addr, Area: area, Coordinate: &models.Coordinate{Lat: 40, Lng: -88}}
		if rating > 0 {
			l.Rating = ptr(rating)
			l.Reviews = ptr(reviews)
		}
		if price > 0 {
			l.Price = ptr(price)
		}
		return l
	}
	return []*models.Eatery{
		{Name: "Maize", Cuisine: "Mexican", Locations: &[]models.Location{
			loc("60 E Green St", "Campustown", 4.6, 800, 1),
			loc("100 N Chestnut St", "Downtown Champaign", 4.6, 900, 2),
		}},
		{Name: "El Toro", Cuisine: "Mexican", Locations: &[]models.Location{
			loc("723 S Neil St", "Champaign", 4.1, 300, 2),
		}},
		{Name: "Cravings", Cuisine: "Chinese", PhoneNumber: &[]string{"a", "b", "c"}, Locations: &[]models.Location{
			{Address: "603 S Wright St", Area: "Campustown"},
		}},
		{Name: "Kopi", Cuisine: "Cafe", Locations: &[]models.Location{
			loc("109 N Walnut St", "Downtown Champaign", 4.5, 200, 0),
		}},
		{Name: "Sakanaya", Cuisine: "Japanese", Locations: &[]models.Location{
			loc("403 E Green St", "Campustown", 4.7, 50, 3),
		}},
		{Name: "Siam", Cuisine: "Thai", Locations: &[]models.Location{
			loc("1 Main St", "Urbana", 3.9, 20, 1),
		}},
	}
}

func TestInsightCounts(t *testing.T) {
	r := NewInsightService(newTestLogger()).Generate(sampleEateries())

	require.Equal(t, 6, r.Eateries)
	require.Equal(t, 7, r.Locations)
	require.Equal(t, 6, r.Geocoded)
	require.Equal(t, 6, r.Rated)
	require.Equal(t, 5, r.Priced)
	require.Equal(t, map[string]int{"Campustown": 3, "Downtown Champaign": 2, "Champaign": 1, "Urbana": 1}, r.LocationsByArea)
	require.Equal(t, map[string]int{"Mexican": 2, "Chinese": 1, "Cafe": 1, "Japanese": 1, "Thai": 1}, r.EateriesByCuisine)
	require.Equal(t, map[string]int{FieldPhone: 1}, r.Unresolved)
}

func TestInsightAverages(t *testing.T) {
	r := NewInsightService(newTestLogger()).Generate(sampleEateries())

	// (4.6+4.6+4.1+4.5+4.7+3.9)/6 = 4.4
	if r.AverageRating != 4.4 {
		t.Errorf("AverageRating: got %.2f, want 4.40", r.AverageRating)
	}
	// (1+2+2+3+1)/5 = 1.8
	if r.AveragePrice != 1.8 {
		t.Errorf("AveragePrice: got %.2f, want 1.80", r.AveragePrice)
	}
}

func TestInsightTopRated(t *testing.T) {
	r := NewInsightService(newTestLogger()).Generate(sampleEateries())

	require.Len(t, r.TopRated, 5)
	var got []string
	for _, rl := range r.TopRated {
		got = append(got, rl.Location.Address)
	}
	require.Equal(t, []string{"403 E Green St", "100 N Chestnut St", "60 E Green St", "109 N Walnut St", "723 S Neil St"}, got)
}

func TestInsightEmpty(t *testing.T) {
	r := NewInsightService(newTestLogger()).Generate(nil)
	require.Zero(t, r.Eateries)
	require.Empty(t, r.TopRated)
	require.NotNil(t, r.LocationsByArea)
}

func TestInsightPrint(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	var buf bytes.Buffer
	svc.Print(&buf, svc.Generate(sampleEateries()))

	out := buf.String()
	for _, want := range []string{"Overview", "Top 5 Highest Rated", "Sakanaya", "Locations by Area", "Campustown", "Unresolved Fields", FieldPhone} {
		require.Contains(t, out, want)
	}
}
