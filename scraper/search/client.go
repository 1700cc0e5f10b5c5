package search

import (
	"context"
)

// Rating is the star rating and review count shown for a business. Either
// field holds its sentinel when the page did not carry it.
type Rating struct {
	Rating  float64
	Reviews int
}

// Found reports whether both rating and review count were extracted.
func (r Rating) Found() bool {
	return r.Rating != NoRating && r.Reviews != NoReviews
}

// Client mines search result pages for ratings and price tiers.
type Client struct {
	fetcher Fetcher
	state   string
}

// NewClient creates a Client whose rating queries are qualified with state,
// e.g. "IL".
func NewClient(fetcher Fetcher, state string) *Client {
	return &Client{fetcher: fetcher, state: state}
}

// RatingQuery is the query used to find a business's rating in locality.
func (c *Client) RatingQuery(name, locality string) string {
	return name + " " + locality + ", " + c.state
}

// PriceQuery is the query used to find the price tier for one address.
func PriceQuery(name, address string) string {
	return name + " " + address
}

// LookupRating fetches the rating for name in locality. A page without the
// markers yields the sentinel Rating; only fetch failures are errors.
func (c *Client) LookupRating(ctx context.Context, name, locality string) (Rating, error) {
	page, err := c.fetcher.Fetch(ctx, c.RatingQuery(name, locality))
	if err != nil {
		return Rating{Rating: NoRating, Reviews: NoReviews}, err
	}
	return Rating{Rating: ParseRating(page), Reviews: ParseReviewCount(page)}, nil
}

// LookupPrice fetches the price tier for name at address. ok is false when
// the page carries no price.
func (c *Client) LookupPrice(ctx context.Context, name, address string) (tier int, ok bool, err error) {
	page, err := c.fetcher.Fetch(ctx, PriceQuery(name, address))
	if err != nil {
		return 0, false, err
	}
	tier, ok = ParsePrice(page)
	return tier, ok, nil
}
