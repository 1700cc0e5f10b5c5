package commands

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"eatery-scraper/scraper/search"
)

// Snapshot backends for rating and price lookups.
const (
	backendHTTP    = "http"
	backendBrowser = "browser"
)

func newHTTPClient() *resty.Client {
	return resty.New().
		SetTimeout(time.Duration(cfg.HTTPTimeoutSec)*time.Second).
		SetHeader("User-Agent", cfg.UserAgent)
}

// newSearchClient builds the search client for the configured backend. The
// returned close func releases the browser, if one was started.
func newSearchClient() (*search.Client, func(), error) {
	switch cfg.SnapshotBackend {
	case backendHTTP, "":
		f := search.NewHTTPFetcher(newHTTPClient(), cfg.SearchURL, cfg.UserAgent)
		return search.NewClient(f, cfg.StateAbbrev), func() {}, nil
	case backendBrowser:
		f := search.NewBrowserFetcher(cfg.SearchURL, cfg.UserAgent, cfg.ChromeBin, logger)
		return search.NewClient(f, cfg.StateAbbrev), func() { _ = f.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown SNAPSHOT_BACKEND %q (want %q or %q)",
		cfg.SnapshotBackend, backendHTTP, backendBrowser)
}
