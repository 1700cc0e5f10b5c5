package models

import "fmt"

// Diagnostic names a business whose field could not be reconciled or
// enriched. The record is still persisted; the field stays where it was.
type Diagnostic struct {
	Name   string
	Field  string
	Reason string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("could not match %s for: %s (%s)", d.Field, d.Name, d.Reason)
}

// Report collects the diagnostics produced by one pass over a collection.
type Report struct {
	Records     int
	Diagnostics []Diagnostic
}

func (r *Report) Add(name, field, reason string) Diagnostic {
	d := Diagnostic{Name: name, Field: field, Reason: reason}
	r.Diagnostics = append(r.Diagnostics, d)
	return d
}

// ForField returns the diagnostics reported for a single field.
func (r *Report) ForField(field string) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Field == field {
			out = append(out, d)
		}
	}
	return out
}

// InsightReport holds the computed summary over an enriched collection.
type InsightReport struct {
	Eateries          int
	Locations         int
	Geocoded          int
	Rated             int
	Priced            int
	AverageRating     float64
	AveragePrice      float64
	TopRated          []RatedLocation
	LocationsByArea   map[string]int
	EateriesByCuisine map[string]int
	Unresolved        map[string]int
}

// RatedLocation pairs a location with the business it belongs to.
type RatedLocation struct {
	Name     string
	Location Location
}
