package services

import (
	"eatery-scraper/models"
	"eatery-scraper/utils"
)

func newTestLogger() *utils.Logger { return utils.NewDiscardLogger() }

func draftWith(name string, addresses, phones, websites, areas []string) *models.Eatery {
	d := models.NewDraft(name)
	*d.Address = addresses
	*d.PhoneNumber = phones
	*d.Website = websites
	*d.LocationAreas = areas
	return d
}

func reconciledWith(name string, addresses ...string) *models.Eatery {
	locs := make([]models.Location, len(addresses))
	for i, a := range addresses {
		locs[i] = models.Location{Address: a}
	}
	return &models.Eatery{Name: name, Locations: &locs}
}

func ptr[T any](v T) *T { return &v }
