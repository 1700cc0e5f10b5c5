package models

// Eatery is one business in a persisted collection. The same shape is used
// for every pipeline stage: a draft record carries the multi-valued business
// level fields (address, phone_number, website, location_areas), and each
// reconciliation step moves them onto Locations and drops the business level
// key once it has been consumed.
//
// Pointer-to-slice fields distinguish an absent key (nil) from an empty list,
// since the persisted collection format keys off key presence.
type Eatery struct {
	Address       *[]string   `json:"address,omitempty"`
	Cuisine       string      `json:"cuisine"`
	ImageURL      *string     `json:"image_url,omitempty"`
	Locations     *[]Location `json:"locations,omitempty"`
	LocationAreas *[]string   `json:"location_areas,omitempty"`
	Name          string      `json:"name"`
	PhoneNumber   *[]string   `json:"phone_number,omitempty"`
	Website       *[]string   `json:"website,omitempty"`
}

// Location is one physical address belonging to an Eatery.
//
// MatchedPhone holds a phone number assigned during reconciliation under the
// intermediate snake_case key; the rename step moves it to PhoneNumber, the
// camelCase key downstream consumers read.
type Location struct {
	Address      string      `json:"address"`
	Area         string      `json:"area,omitempty"`
	Coordinate   *Coordinate `json:"coordinate,omitempty"`
	PhoneNumber  string      `json:"phoneNumber,omitempty"`
	MatchedPhone string      `json:"phone_number,omitempty"`
	Price        *int        `json:"price,omitempty"`
	Rating       *float64    `json:"rating,omitempty"`
	Reviews      *int        `json:"reviews,omitempty"`
	Website      string      `json:"website,omitempty"`
}

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// NewDraft returns a draft record with every multi-valued field present and
// empty, matching the shape the ingestion stage persists.
func NewDraft(name string) *Eatery {
	img := ""
	return &Eatery{
		Name:          name,
		ImageURL:      &img,
		Address:       &[]string{},
		PhoneNumber:   &[]string{},
		Website:       &[]string{},
		LocationAreas: &[]string{},
	}
}

// Addresses returns the draft addresses, or nil once they were materialized.
func (e *Eatery) Addresses() []string { return deref(e.Address) }

// Phones returns the business level phone numbers still awaiting a match.
func (e *Eatery) Phones() []string { return deref(e.PhoneNumber) }

// Websites returns the business level websites still awaiting a match.
func (e *Eatery) Websites() []string { return deref(e.Website) }

// Areas returns the business level area tags still awaiting a match.
func (e *Eatery) Areas() []string { return deref(e.LocationAreas) }

// LocationList returns the reconciled locations, or nil before materialization.
func (e *Eatery) LocationList() []Location {
	if e.Locations == nil {
		return nil
	}
	return *e.Locations
}

// Clone returns a deep copy so a stage can transform a collection without
// mutating the snapshot it loaded.
func (e *Eatery) Clone() *Eatery {
	if e == nil {
		return nil
	}
	out := &Eatery{
		Name:          e.Name,
		Cuisine:       e.Cuisine,
		Address:       cloneStrings(e.Address),
		PhoneNumber:   cloneStrings(e.PhoneNumber),
		Website:       cloneStrings(e.Website),
		LocationAreas: cloneStrings(e.LocationAreas),
	}
	if e.ImageURL != nil {
		img := *e.ImageURL
		out.ImageURL = &img
	}
	if e.Locations != nil {
		locs := make([]Location, len(*e.Locations))
		for i, l := range *e.Locations {
			locs[i] = l.clone()
		}
		out.Locations = &locs
	}
	return out
}

func (l Location) clone() Location {
	out := l
	if l.Coordinate != nil {
		c := *l.Coordinate
		out.Coordinate = &c
	}
	if l.Price != nil {
		p := *l.Price
		out.Price = &p
	}
	if l.Rating != nil {
		r := *l.Rating
		out.Rating = &r
	}
	if l.Reviews != nil {
		r := *l.Reviews
		out.Reviews = &r
	}
	return out
}

// CloneAll deep copies a collection.
func CloneAll(records []*Eatery) []*Eatery {
	out := make([]*Eatery, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}

func deref(s *[]string) []string {
	if s == nil {
		return nil
	}
	return *s
}

func cloneStrings(s *[]string) *[]string {
	if s == nil {
		return nil
	}
	c := make([]string, len(*s))
	copy(c, *s)
	return &c
}
