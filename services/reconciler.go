package services

import (
	"fmt"

	"eatery-scraper/models"
	"eatery-scraper/utils"
)

// Fields named in reconciliation diagnostics.
const (
	FieldPhone   = "phone_number"
	FieldWebsite = "website"
	FieldArea    = "location_area"
)

// ReconcileOptions selects optional passes run alongside reconciliation.
type ReconcileOptions struct {
	// StripImages drops image_url from every record.
	StripImages bool
}

// Reconciler moves business level multi-valued fields onto per-location
// sub-records. It only assigns when the list lengths agree on a safe merge;
// anything else is reported and left on the business record for a human.
type Reconciler struct {
	logger *utils.Logger
}

// NewReconciler creates a Reconciler with the given logger.
func NewReconciler(logger *utils.Logger) *Reconciler {
	return &Reconciler{logger: logger}
}

// Reconcile returns a reconciled copy of records; the input is not modified.
func (r *Reconciler) Reconcile(records []*models.Eatery, opts ReconcileOptions) ([]*models.Eatery, *models.Report) {
	report := &models.Report{Records: len(records)}
	out := models.CloneAll(records)

	for _, rec := range out {
		if opts.StripImages {
			rec.ImageURL = nil
		}
		materializeLocations(rec)

		for _, match := range []func(*models.Eatery) (string, string, bool){matchPhones, matchWebsites, matchAreas} {
			if field, reason, ok := match(rec); !ok {
				d := report.Add(rec.Name, field, reason)
				r.logger.Warn("[reconciler] %s", d)
			}
		}

		renamePhones(rec)
	}

	r.logger.Info("[reconciler] Reconciled %d records (%d unmatched fields)",
		len(out), len(report.Diagnostics))
	return out, report
}

// materializeLocations creates one location per draft address. Records that
// already carry locations are left alone.
func materializeLocations(rec *models.Eatery) {
	if rec.Locations != nil || rec.Address == nil {
		return
	}
	locs := make([]models.Location, len(*rec.Address))
	for i, addr := range *rec.Address {
		locs[i] = models.Location{Address: addr}
	}
	rec.Locations = &locs
	rec.Address = nil
}

// matchPhones assigns phones positionally when the counts agree, or
// broadcasts a single phone to several locations. ok is false when the
// combination is unmatchable and the phones were kept on the record.
func matchPhones(rec *models.Eatery) (field, reason string, ok bool) {
	if rec.PhoneNumber == nil {
		return "", "", true
	}
	phones := *rec.PhoneNumber
	locs := rec.LocationList()

	switch {
	case len(phones) == len(locs):
		for i := range locs {
			locs[i].MatchedPhone = phones[i]
		}
	case len(locs) > 1 && len(phones) == 1:
		for i := range locs {
			locs[i].MatchedPhone = phones[0]
		}
	case len(phones) == 0:
	default:
		return FieldPhone, fmt.Sprintf("%d phone numbers for %d locations", len(phones), len(locs)), false
	}
	rec.PhoneNumber = nil
	return "", "", true
}

// matchWebsites broadcasts a single website to every location.
func matchWebsites(rec *models.Eatery) (field, reason string, ok bool) {
	if rec.Website == nil {
		return "", "", true
	}
	sites := *rec.Website
	if len(sites) > 1 {
		return FieldWebsite, fmt.Sprintf("%d websites", len(sites)), false
	}
	locs := rec.LocationList()
	if len(sites) == 1 {
		for i := range locs {
			locs[i].Website = sites[0]
		}
	}
	rec.Website = nil
	return "", "", true
}

// matchAreas assigns the area tag only for exactly one location and exactly
// one tag.
func matchAreas(rec *models.Eatery) (field, reason string, ok bool) {
	if rec.LocationAreas == nil {
		return "", "", true
	}
	areas := *rec.LocationAreas
	locs := rec.LocationList()
	if len(locs) != 1 || len(areas) != 1 {
		return FieldArea, fmt.Sprintf("%d areas for %d locations", len(areas), len(locs)), false
	}
	locs[0].Area = areas[0]
	rec.LocationAreas = nil
	return "", "", true
}

// renamePhones moves matched phones to the key downstream consumers read.
// Running it again is a no-op since the source key is then empty.
func renamePhones(rec *models.Eatery) {
	locs := rec.LocationList()
	for i := range locs {
		if locs[i].MatchedPhone == "" {
			continue
		}
		locs[i].PhoneNumber = locs[i].MatchedPhone
		locs[i].MatchedPhone = ""
	}
}
