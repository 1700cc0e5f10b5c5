package services

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"

	"eatery-scraper/models"
	"eatery-scraper/utils"
)

const topRatedCount = 5

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

func (s *InsightService) Generate(records []*models.Eatery) *models.InsightReport {
	report := &models.InsightReport{
		LocationsByArea:   make(map[string]int),
		EateriesByCuisine: make(map[string]int),
		Unresolved:        make(map[string]int),
	}

	if len(records) == 0 {
		return report
	}

	report.Eateries = len(records)

	var (
		rated       []models.RatedLocation
		ratingTotal float64
		priceTotal  int
	)

	for _, r := range records {
		if r.Cuisine != "" {
			report.EateriesByCuisine[r.Cuisine]++
		}
		if r.Address != nil {
			report.Unresolved["address"]++
		}
		if r.PhoneNumber != nil {
			report.Unresolved[FieldPhone]++
		}
		if r.Website != nil {
			report.Unresolved[FieldWebsite]++
		}
		if r.LocationAreas != nil {
			report.Unresolved[FieldArea]++
		}

		for _, l := range r.LocationList() {
			report.Locations++
			if l.Area != "" {
				report.LocationsByArea[l.Area]++
			}
			if l.Coordinate != nil {
				report.Geocoded++
			}
			if l.Price != nil {
				report.Priced++
				priceTotal += *l.Price
			}
			if l.Rating != nil {
				report.Rated++
				ratingTotal += *l.Rating
				rated = append(rated, models.RatedLocation{Name: r.Name, Location: l})
			}
		}
	}

	if report.Rated > 0 {
		report.AverageRating = round2(ratingTotal / float64(report.Rated))
	}
	if report.Priced > 0 {
		report.AveragePrice = round2(float64(priceTotal) / float64(report.Priced))
	}

	// Top 5 by rating, more reviews first on ties
	sort.SliceStable(rated, func(i, j int) bool {
		a, b := rated[i].Location, rated[j].Location
		if *a.Rating != *b.Rating {
			return *a.Rating > *b.Rating
		}
		return reviewsOf(a) > reviewsOf(b)
	})
	if len(rated) > topRatedCount {
		report.TopRated = rated[:topRatedCount]
	} else {
		report.TopRated = rated
	}

	s.logger.Debug("[insights] %d eateries, %d locations, %d rated", report.Eateries, report.Locations, report.Rated)
	return report
}

// Print renders the report as tables on w.
func (s *InsightService) Print(w io.Writer, r *models.InsightReport) {
	overview := newTable(w, "Overview")
	overview.AppendHeader(table.Row{"Metric", "Value"})
	overview.AppendRows([]table.Row{
		{"Eateries", r.Eateries},
		{"Locations", r.Locations},
		{"Geocoded locations", r.Geocoded},
		{"Rated locations", r.Rated},
		{"Priced locations", r.Priced},
		{"Average rating", fmt.Sprintf("%.2f", r.AverageRating)},
		{"Average price tier", fmt.Sprintf("%.2f", r.AveragePrice)},
	})
	overview.Render()

	top := newTable(w, fmt.Sprintf("Top %d Highest Rated", topRatedCount))
	top.AppendHeader(table.Row{"#", "Name", "Address", "Rating", "Reviews"})
	for i, rl := range r.TopRated {
		top.AppendRow(table.Row{i + 1, truncate(rl.Name, 38), truncate(rl.Location.Address, 48),
			fmt.Sprintf("%.1f", *rl.Location.Rating), reviewsOf(rl.Location)})
	}
	top.Render()

	printCounts(w, "Locations by Area", "Area", r.LocationsByArea)
	printCounts(w, "Eateries by Cuisine", "Cuisine", r.EateriesByCuisine)
	printCounts(w, "Unresolved Fields", "Field", r.Unresolved)
}

func printCounts(w io.Writer, title, label string, counts map[string]int) {
	type keyCount struct {
		key   string
		count int
	}
	var rows []keyCount
	for k, c := range counts {
		rows = append(rows, keyCount{k, c})
	}
	// Sort by count descending, then name
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].key < rows[j].key
	})

	t := newTable(w, title)
	t.AppendHeader(table.Row{label, "Count"})
	for _, kc := range rows {
		t.AppendRow(table.Row{kc.key, kc.count})
	}
	t.Render()
}

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.SetTitle(title)
	return t
}

func reviewsOf(l models.Location) int {
	if l.Reviews == nil {
		return 0
	}
	return *l.Reviews
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
