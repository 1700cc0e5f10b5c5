package services

import (
	"context"
	"errors"
	"fmt"

	"eatery-scraper/models"
	"eatery-scraper/scraper/geocode"
	"eatery-scraper/scraper/search"
	"eatery-scraper/utils"
)

// Fields named in enrichment diagnostics.
const (
	FieldCoordinate = "coordinate"
	FieldRating     = "rating"
	FieldPrice      = "price"
)

// CoordinateLookup geocodes one address.
type CoordinateLookup interface {
	Lookup(ctx context.Context, address string) (models.Coordinate, error)
}

// RatingLookup finds the rating for a business in a locality.
type RatingLookup interface {
	LookupRating(ctx context.Context, name, locality string) (search.Rating, error)
}

// PriceLookup finds the price tier for a business at an address.
type PriceLookup interface {
	LookupPrice(ctx context.Context, name, address string) (int, bool, error)
}

// pacer runs lookups one at a time on a single-worker pool so consecutive
// requests start at least delayMs apart.
type pacer struct {
	pool *utils.WorkerPool
}

func newPacer(delayMs int) *pacer {
	return &pacer{pool: utils.NewWorkerPool(1, delayMs)}
}

func (p *pacer) Do(fn func()) {
	p.pool.Submit(fn)
	p.pool.Wait()
}

// GeocodeEnricher writes coordinates onto a record's locations. A record is
// updated only when every one of its locations resolved; otherwise its
// batch is discarded and no location gets a coordinate.
type GeocodeEnricher struct {
	geo    CoordinateLookup
	pace   *pacer
	logger *utils.Logger
}

func NewGeocodeEnricher(geo CoordinateLookup, delayMs int, logger *utils.Logger) *GeocodeEnricher {
	return &GeocodeEnricher{geo: geo, pace: newPacer(delayMs), logger: logger}
}

// Enrich returns a geocoded copy of records. The error is non-nil only when
// ctx is cancelled.
func (g *GeocodeEnricher) Enrich(ctx context.Context, records []*models.Eatery) ([]*models.Eatery, *models.Report, error) {
	report := &models.Report{Records: len(records)}
	out := models.CloneAll(records)
	found := 0

	for _, rec := range out {
		if err := ctx.Err(); err != nil {
			return out, report, err
		}
		locs := rec.LocationList()
		coords := g.resolve(ctx, rec.Name, locs)
		if err := ctx.Err(); err != nil {
			return out, report, err
		}

		if len(coords) != len(locs) {
			d := report.Add(rec.Name, FieldCoordinate, fmt.Sprintf("incorrect info count: %d of %d", len(coords), len(locs)))
			g.logger.Warn("[geocoder] %s", d)
			continue
		}
		for i := range coords {
			c := coords[i]
			locs[i].Coordinate = &c
		}
		found += len(coords)
	}

	g.logger.Info("[geocoder] Geocoded %d locations (%d records discarded)", found, len(report.Diagnostics))
	return out, report, nil
}

// resolve geocodes every location in order and stops at the first address
// that cannot be resolved, since the batch is then discarded anyway.
func (g *GeocodeEnricher) resolve(ctx context.Context, name string, locs []models.Location) []models.Coordinate {
	var coords []models.Coordinate
	for _, loc := range locs {
		var (
			coord models.Coordinate
			err   error
		)
		g.pace.Do(func() { coord, err = g.geo.Lookup(ctx, loc.Address) })

		switch {
		case errors.Is(err, geocode.ErrNotFound):
			g.logger.Warn("[geocoder] Could not geocode address: %s", loc.Address)
			return coords
		case err != nil:
			g.logger.Error("[geocoder] %s: %v", name, err)
			return coords
		}
		coords = append(coords, coord)
	}
	return coords
}

// RatingEnricher writes rating and review counts. A record is updated only
// when every one of its locations was rated.
type RatingEnricher struct {
	search RatingLookup
	pace   *pacer
	logger *utils.Logger
}

func NewRatingEnricher(s RatingLookup, delayMs int, logger *utils.Logger) *RatingEnricher {
	return &RatingEnricher{search: s, pace: newPacer(delayMs), logger: logger}
}

func (e *RatingEnricher) Enrich(ctx context.Context, records []*models.Eatery) ([]*models.Eatery, *models.Report, error) {
	report := &models.Report{Records: len(records)}
	out := models.CloneAll(records)

	for _, rec := range out {
		if err := ctx.Err(); err != nil {
			return out, report, err
		}
		locs := rec.LocationList()
		ratings := e.rate(ctx, rec.Name, locs)

		if len(ratings) != len(locs) {
			d := report.Add(rec.Name, FieldRating, fmt.Sprintf("incorrect info count: %d of %d", len(ratings), len(locs)))
			e.logger.Warn("[rating] %s", d)
			continue
		}
		for i, r := range ratings {
			rating, reviews := r.Rating, r.Reviews
			locs[i].Rating = &rating
			locs[i].Reviews = &reviews
		}
	}

	e.logger.Info("[rating] Rated %d records (%d discarded)",
		len(out)-len(report.Diagnostics), len(report.Diagnostics))
	return out, report, nil
}

// rate looks up every location in order and stops at the first one that
// cannot be rated, since the batch is then discarded anyway.
func (e *RatingEnricher) rate(ctx context.Context, name string, locs []models.Location) []search.Rating {
	var ratings []search.Rating
	for _, loc := range locs {
		locality, ok := search.LocalityFromAddress(loc.Address)
		if !ok {
			e.logger.Debug("[rating] %s: no locality in %q", name, loc.Address)
			return ratings
		}

		var (
			r   search.Rating
			err error
		)
		e.pace.Do(func() { r, err = e.search.LookupRating(ctx, name, locality) })
		if err != nil {
			e.logger.Error("[rating] %s: %v", name, err)
			return ratings
		}
		if !r.Found() {
			return ratings
		}
		ratings = append(ratings, r)
	}
	return ratings
}

// PriceEnricher writes price tiers. A record is updated only when every one
// of its locations carried a price.
type PriceEnricher struct {
	search PriceLookup
	pace   *pacer
	logger *utils.Logger
}

func NewPriceEnricher(s PriceLookup, delayMs int, logger *utils.Logger) *PriceEnricher {
	return &PriceEnricher{search: s, pace: newPacer(delayMs), logger: logger}
}

func (e *PriceEnricher) Enrich(ctx context.Context, records []*models.Eatery) ([]*models.Eatery, *models.Report, error) {
	report := &models.Report{Records: len(records)}
	out := models.CloneAll(records)

	for _, rec := range out {
		if err := ctx.Err(); err != nil {
			return out, report, err
		}
		locs := rec.LocationList()

		var prices []int
		for _, loc := range locs {
			var (
				tier int
				ok   bool
				err  error
			)
			e.pace.Do(func() { tier, ok, err = e.search.LookupPrice(ctx, rec.Name, loc.Address) })
			if err != nil {
				e.logger.Error("[price] %s: %v", rec.Name, err)
				continue
			}
			if ok {
				prices = append(prices, tier)
			}
		}

		if len(prices) != len(locs) {
			d := report.Add(rec.Name, FieldPrice, fmt.Sprintf("incorrect info count: %d of %d", len(prices), len(locs)))
			e.logger.Warn("[price] %s", d)
			continue
		}
		for i := range prices {
			p := prices[i]
			locs[i].Price = &p
		}
	}

	e.logger.Info("[price] Priced %d records (%d discarded)",
		len(out)-len(report.Diagnostics), len(report.Diagnostics))
	return out, report, nil
}
