package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"

	"github.com/go-resty/resty/v2"

	"eatery-scraper/utils"
)

// Form fields understood by the listing endpoint's "show more" action.
const (
	actionParam      = "idss_action"
	actionShowMore   = "showMore"
	startAtParam     = "idss_startAt"
	filterNameParam  = "idss_filters[0][name]"
	filterValueParam = "idss_filters[0][value]"
	locationFilter   = "idss_filter_location"
)

const (
	// unknownRemaining marks a walk that has not seen the declared total yet.
	unknownRemaining = -1
	firstCursor      = 1
)

// WalkState is the walker's position in its fetch loop.
type WalkState int

const (
	StateStarting WalkState = iota
	StateFetching
	StateDone
)

func (s WalkState) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateFetching:
		return "fetching"
	case StateDone:
		return "done"
	}
	return "unknown"
}

// Page is one decoded response from the listing endpoint.
type Page struct {
	TotalListings int      `json:"total_listings"`
	NextStartAt   int      `json:"nextStartAt"`
	Listings      []string `json:"listings"`
}

// WalkStats summarizes one completed walk.
type WalkStats struct {
	Requests  int
	Declared  int
	Remaining int
	Fragments int
}

// Walker pages through the listing endpoint for one area filter until the
// declared total is consumed. It never retries: an empty body, a failed
// request, or an undecodable page ends the walk with whatever was collected.
type Walker struct {
	client *resty.Client
	url    string
	logger *utils.Logger
}

// NewWalker creates a Walker posting to listingURL with client.
func NewWalker(client *resty.Client, listingURL string, logger *utils.Logger) *Walker {
	return &Walker{client: client, url: listingURL, logger: logger}
}

// FetchAll returns every listing fragment for area, in server order.
func (w *Walker) FetchAll(ctx context.Context, area string) ([]string, WalkStats) {
	var (
		fragments []string
		stats     WalkStats
	)
	state := StateStarting
	remaining := unknownRemaining
	cursor := firstCursor
	visited := utils.NewStringSet()

	for state != StateDone {
		switch state {
		case StateStarting:
			w.logger.Info("[walker] %s: starting walk", area)
			state = StateFetching

		case StateFetching:
			if !visited.Add(strconv.Itoa(cursor)) {
				w.logger.Warn("[walker] %s: server repeated cursor %d, stopping with %d remaining", area, cursor, remaining)
				state = StateDone
				continue
			}

			stats.Requests++
			page, ok := w.fetchPage(ctx, area, cursor)
			if !ok {
				state = StateDone
				continue
			}

			if remaining == unknownRemaining {
				remaining = page.TotalListings
				stats.Declared = page.TotalListings
				w.logger.Info("[walker] %s: server declares %d listings", area, remaining)
			}

			fragments = append(fragments, page.Listings...)
			remaining -= len(page.Listings)
			cursor = page.NextStartAt

			w.logger.Debug("[walker] %s: got %d listings, %d remaining, next cursor %d",
				area, len(page.Listings), remaining, cursor)

			if remaining <= 0 {
				state = StateDone
			} else if len(page.Listings) == 0 {
				w.logger.Warn("[walker] %s: empty page with %d remaining, stopping", area, remaining)
				state = StateDone
			}
		}
	}

	stats.Remaining = remaining
	stats.Fragments = len(fragments)
	w.logger.Info("[walker] %s: walk complete, %d fragments in %d requests", area, stats.Fragments, stats.Requests)
	return fragments, stats
}

// fetchPage issues one request. ok is false when the walk should stop.
func (w *Walker) fetchPage(ctx context.Context, area string, cursor int) (Page, bool) {
	var page Page

	res, err := w.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			actionParam:      actionShowMore,
			startAtParam:     strconv.Itoa(cursor),
			filterNameParam:  locationFilter,
			filterValueParam: area,
		}).
		Post(w.url)
	if err != nil {
		w.logger.Error("[walker] %s: request at cursor %d failed: %v", area, cursor, err)
		return page, false
	}
	if res.IsError() {
		w.logger.Error("[walker] %s: request at cursor %d returned status %d", area, cursor, res.StatusCode())
		return page, false
	}

	body := bytes.TrimSpace(res.Body())
	if len(body) == 0 {
		w.logger.Warn("[walker] %s: empty response at cursor %d, stopping", area, cursor)
		return page, false
	}

	if err := json.Unmarshal(body, &page); err != nil {
		w.logger.Error("[walker] %s: malformed page at cursor %d: %v", area, cursor, err)
		return page, false
	}
	return page, true
}
