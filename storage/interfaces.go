package storage

import "eatery-scraper/models"

// EateryWriter is the interface any export backend must satisfy.
type EateryWriter interface {
	Write(records []*models.Eatery) error
	Close() error
}

// Collection loads and fully rewrites a persisted collection. Every stage
// reads the whole collection, transforms it, and writes it back.
type Collection interface {
	Load(path string) ([]*models.Eatery, error)
	Save(path string, records []*models.Eatery) error
}
