package search

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
)

// Fetcher returns the raw result page for a free-text query.
type Fetcher interface {
	Fetch(ctx context.Context, query string) (string, error)
}

// BuildURL appends query to base as both the q and oq parameters, spaces
// encoded as '+'.
func BuildURL(base, query string) string {
	enc := url.QueryEscape(query)
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + "q=" + enc + "&oq=" + enc
}

// HTTPFetcher requests result pages with a plain GET.
type HTTPFetcher struct {
	client    *resty.Client
	base      string
	userAgent string
}

func NewHTTPFetcher(client *resty.Client, base, userAgent string) *HTTPFetcher {
	return &HTTPFetcher{client: client, base: base, userAgent: userAgent}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, query string) (string, error) {
	req := f.client.R().SetContext(ctx)
	if f.userAgent != "" {
		req.SetHeader("User-Agent", f.userAgent)
	}
	res, err := req.Get(BuildURL(f.base, query))
	if err != nil {
		return "", fmt.Errorf("search: fetch %q: %w", query, err)
	}
	if res.IsError() {
		return "", fmt.Errorf("search: fetch %q: status %d", query, res.StatusCode())
	}
	return res.String(), nil
}
