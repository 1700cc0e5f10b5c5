package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"eatery-scraper/models"
)

func TestLocationInsertPlaceholders(t *testing.T) {
	price := 3
	batch := []locationRow{
		{eateryID: 7, position: 0, loc: models.Location{Address: "a", MatchedPhone: "217-000-0000", Price: &price}},
		{eateryID: 7, position: 1, loc: models.Location{Address: "b", Coordinate: &models.Coordinate{Lat: 1, Lng: 2}}},
	}

	query, args := locationInsert(batch)

	require.Contains(t, query, "($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)")
	require.Contains(t, query, "($12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)")
	require.Equal(t, 2, strings.Count(query, "($"))
	require.Len(t, args, 2*locationColumns)

	require.Equal(t, "217-000-0000", args[4])
	require.Nil(t, args[6])
	require.Equal(t, 3, args[10])
	require.Equal(t, 1.0, args[locationColumns+6])
	require.Nil(t, args[locationColumns+10])
}

func TestExportLocationsKeepsDraftAddresses(t *testing.T) {
	draft := models.NewDraft("Draft Only")
	*draft.Address = []string{"1 A St, Champaign", "2 B St, Urbana"}

	require.Equal(t, []models.Location{
		{Address: "1 A St, Champaign"},
		{Address: "2 B St, Urbana"},
	}, exportLocations(draft))

	reconciled := &models.Eatery{Name: "Kopi", Locations: &[]models.Location{{Address: "109 N Walnut St", Area: "Downtown Champaign"}}}
	require.Equal(t, *reconciled.Locations, exportLocations(reconciled))

	require.Empty(t, exportLocations(&models.Eatery{Name: "Nothing"}))
}
