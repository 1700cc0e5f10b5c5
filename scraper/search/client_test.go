package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	pages   map[string]string
	err     error
	queries []string
}

func (s *stubFetcher) Fetch(_ context.Context, query string) (string, error) {
	s.queries = append(s.queries, query)
	if s.err != nil {
		return "", s.err
	}
	return s.pages[query], nil
}

const ratedPage = `<div><span class="Aq14fc" aria-hidden="true">4.4</span>` +
	`<a><span>312 Google reviews</span></a><span class="YhemCb">$$</span></div>`

func TestLookupRating(t *testing.T) {
	f := &stubFetcher{pages: map[string]string{"Cafe Kopi Champaign, IL": ratedPage}}
	c := NewClient(f, "IL")

	got, err := c.LookupRating(context.Background(), "Cafe Kopi", "Champaign")
	require.NoError(t, err)
	require.Equal(t, Rating{Rating: 4.4, Reviews: 312}, got)
	require.True(t, got.Found())

	missing, err := c.LookupRating(context.Background(), "Nowhere", "Urbana")
	require.NoError(t, err)
	require.Equal(t, Rating{Rating: NoRating, Reviews: NoReviews}, missing)
	require.False(t, missing.Found())
}

func TestLookupPrice(t *testing.T) {
	f := &stubFetcher{pages: map[string]string{"Cafe Kopi 109 N Walnut St, Champaign": ratedPage}}
	c := NewClient(f, "IL")

	tier, ok, err := c.LookupPrice(context.Background(), "Cafe Kopi", "109 N Walnut St, Champaign")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 2, tier)

	_, ok, err = c.LookupPrice(context.Background(), "Cafe Kopi", "elsewhere")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestLookupFetchError(t *testing.T) {
	boom := errors.New("boom")
	c := NewClient(&stubFetcher{err: boom}, "IL")

	_, err := c.LookupRating(context.Background(), "a", "b")
	require.ErrorIs(t, err, boom)
	_, _, err = c.LookupPrice(context.Background(), "a", "b")
	require.ErrorIs(t, err, boom)
}

func TestHTTPFetcher(t *testing.T) {
	var gotQ, gotOQ, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQ = r.URL.Query().Get("q")
		gotOQ = r.URL.Query().Get("oq")
		gotUA = r.UserAgent()
		_, _ = w.Write([]byte(ratedPage))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(resty.New(), srv.URL+"/search", "test-agent/1.0")
	page, err := f.Fetch(context.Background(), "Cafe Kopi Champaign, IL")

	require.NoError(t, err)
	require.Equal(t, ratedPage, page)
	require.Equal(t, "Cafe Kopi Champaign, IL", gotQ)
	require.Equal(t, gotQ, gotOQ)
	require.Equal(t, "test-agent/1.0", gotUA)
}

func TestHTTPFetcherStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewHTTPFetcher(resty.New(), srv.URL, "").Fetch(context.Background(), "x")
	require.Error(t, err)
}
