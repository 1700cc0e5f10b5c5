package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"eatery-scraper/models"
	"eatery-scraper/utils"
)

const locationColumns = 11

// PostgresWriter exports an enriched collection to PostgreSQL.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, waits for it to accept
// pings, runs schema migrations, and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string, retry *utils.RetryConfig) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if retry == nil {
		retry = &utils.RetryConfig{MaxAttempts: 10, BaseDelay: 2 * time.Second}
	}
	if err := retry.Do("postgres-ping", db.Ping); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS eateries (
			id         SERIAL PRIMARY KEY,
			name       TEXT NOT NULL,
			cuisine    TEXT NOT NULL DEFAULT '',
			image_url  TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS eatery_locations (
			id           SERIAL PRIMARY KEY,
			eatery_id    INTEGER NOT NULL REFERENCES eateries(id) ON DELETE CASCADE,
			position     INTEGER NOT NULL,
			address      TEXT NOT NULL,
			area         TEXT NOT NULL DEFAULT '',
			phone_number TEXT NOT NULL DEFAULT '',
			website      TEXT NOT NULL DEFAULT '',
			lat          DOUBLE PRECISION,
			lng          DOUBLE PRECISION,
			rating       NUMERIC(3,1),
			reviews      INTEGER,
			price        SMALLINT,
			UNIQUE (eatery_id, position)
		);

		CREATE INDEX IF NOT EXISTS idx_eateries_cuisine       ON eateries(cuisine);
		CREATE INDEX IF NOT EXISTS idx_eatery_locations_area  ON eatery_locations(area);
		CREATE INDEX IF NOT EXISTS idx_eatery_locations_rating ON eatery_locations(rating);
	`)
	return err
}

// Write replaces the exported dataset with records in a single transaction.
func (pw *PostgresWriter) Write(records []*models.Eatery) error {
	tx, err := pw.db.Begin()
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM eateries"); err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}

	var pending []locationRow
	for _, r := range records {
		img := ""
		if r.ImageURL != nil {
			img = *r.ImageURL
		}

		var id int64
		err := tx.QueryRow(
			"INSERT INTO eateries (name, cuisine, image_url) VALUES ($1, $2, $3) RETURNING id",
			r.Name, r.Cuisine, img,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("postgres: insert eatery %q: %w", r.Name, err)
		}

		for i, l := range exportLocations(r) {
			pending = append(pending, locationRow{eateryID: id, position: i, loc: l})
		}
	}

	const batchSize = 50
	for i := 0; i < len(pending); i += batchSize {
		end := i + batchSize
		if end > len(pending) {
			end = len(pending)
		}
		query, args := locationInsert(pending[i:end])
		if _, err := tx.Exec(query, args...); err != nil {
			return fmt.Errorf("postgres: insert locations: %w", err)
		}
	}

	return tx.Commit()
}

// exportLocations returns the reconciled locations, or one address-only
// location per draft address for records that were never reconciled.
func exportLocations(r *models.Eatery) []models.Location {
	if r.Locations != nil {
		return *r.Locations
	}
	locs := make([]models.Location, 0, len(r.Addresses()))
	for _, addr := range r.Addresses() {
		locs = append(locs, models.Location{Address: addr})
	}
	return locs
}

type locationRow struct {
	eateryID int64
	position int
	loc      models.Location
}

func locationInsert(batch []locationRow) (string, []interface{}) {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*locationColumns)

	for idx, row := range batch {
		base := idx * locationColumns
		placeholders := make([]string, locationColumns)
		for c := range placeholders {
			placeholders[c] = fmt.Sprintf("$%d", base+c+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")

		l := row.loc
		phone := l.PhoneNumber
		if phone == "" {
			phone = l.MatchedPhone
		}
		var lat, lng interface{}
		if l.Coordinate != nil {
			lat, lng = l.Coordinate.Lat, l.Coordinate.Lng
		}
		valueArgs = append(valueArgs,
			row.eateryID, row.position, l.Address, l.Area, phone, l.Website,
			lat, lng, nullable(l.Rating), nullable(l.Reviews), nullable(l.Price))
	}

	query := fmt.Sprintf(`
		INSERT INTO eatery_locations
			(eatery_id, position, address, area, phone_number, website, lat, lng, rating, reviews, price)
		VALUES %s
	`, strings.Join(valueStrings, ","))
	return query, valueArgs
}

func nullable[T any](v *T) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// FetchAll reads the exported dataset back, locations in their stored order.
func (pw *PostgresWriter) FetchAll() ([]*models.Eatery, error) {
	rows, err := pw.db.Query(`
		SELECT e.id, e.name, e.cuisine, e.image_url,
		       l.address, l.area, l.phone_number, l.website, l.lat, l.lng, l.rating, l.reviews, l.price
		FROM eateries e
		LEFT JOIN eatery_locations l ON l.eatery_id = e.id
		ORDER BY e.id, l.position
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var records []*models.Eatery
	byID := make(map[int64]*models.Eatery)
	for rows.Next() {
		var (
			id                         int64
			name, cuisine, img         string
			addr, area, phone, website sql.NullString
			lat, lng, rating           sql.NullFloat64
			reviews, price             sql.NullInt64
		)
		if err := rows.Scan(&id, &name, &cuisine, &img,
			&addr, &area, &phone, &website, &lat, &lng, &rating, &reviews, &price); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}

		r, ok := byID[id]
		if !ok {
			imgURL := img
			r = &models.Eatery{Name: name, Cuisine: cuisine, ImageURL: &imgURL, Locations: &[]models.Location{}}
			byID[id] = r
			records = append(records, r)
		}
		if !addr.Valid {
			continue
		}

		l := models.Location{Address: addr.String, Area: area.String, PhoneNumber: phone.String, Website: website.String}
		if lat.Valid && lng.Valid {
			l.Coordinate = &models.Coordinate{Lat: lat.Float64, Lng: lng.Float64}
		}
		if rating.Valid {
			v := rating.Float64
			l.Rating = &v
		}
		if reviews.Valid {
			v := int(reviews.Int64)
			l.Reviews = &v
		}
		if price.Valid {
			v := int(price.Int64)
			l.Price = &v
		}
		*r.Locations = append(*r.Locations, l)
	}
	return records, rows.Err()
}
