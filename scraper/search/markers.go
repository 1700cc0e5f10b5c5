package search

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Marker substrings in the rendered search result page. Any upstream markup
// change breaks extraction, which then degrades to the sentinels below.
const (
	ratingMarker      = `class="Aq14fc" aria-hidden="true">`
	reviewsMarker     = ` Google reviews</span>`
	reviewMarker      = ` Google review</span>`
	priceMarker       = `class="YhemCb"`
	ratingWidth       = 3
	reviewCountWindow = 20
	localityFromEnd   = 2
	addressSep        = ", "
)

// NoRating and NoReviews are returned when the page carries no parsable
// rating or review count.
const (
	NoRating  = -1.0
	NoReviews = -1
)

// ParseRating reads the three character rating that follows the rating
// marker, e.g. "4.5".
func ParseRating(page string) float64 {
	idx := strings.Index(page, ratingMarker)
	if idx < 0 {
		return NoRating
	}
	start := idx + len(ratingMarker)
	end := start + ratingWidth
	if end > len(page) {
		end = len(page)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(page[start:end]), 64)
	if err != nil {
		return NoRating
	}
	return v
}

// ParseReviewCount reads the review count printed just before the review
// marker, e.g. ">1,234 Google reviews</span>".
func ParseReviewCount(page string) int {
	marker := reviewsMarker
	if !strings.Contains(page, marker) {
		marker = reviewMarker
	}
	idx := strings.Index(page, marker)
	if idx < 0 {
		return NoReviews
	}
	start := idx - reviewCountWindow
	if start < 0 {
		start = 0
	}
	window := page[start:idx]
	window = window[strings.LastIndex(window, ">")+1:]
	n, err := strconv.Atoi(strings.TrimSpace(strings.ReplaceAll(window, ",", "")))
	if err != nil {
		return NoReviews
	}
	return n
}

// ParsePrice returns the price tier as the length of the text following the
// price marker, so "$$" is tier 2. ok is false when the marker is missing or
// carries no text.
func ParsePrice(page string) (tier int, ok bool) {
	idx := strings.Index(page, priceMarker)
	if idx < 0 {
		return 0, false
	}
	after := page[idx+len(priceMarker):]
	if next := strings.Index(after, priceMarker); next >= 0 {
		after = after[:next]
	}
	parts := strings.SplitN(after, ">", 3)
	if len(parts) < 2 {
		return 0, false
	}
	text := parts[1]
	if lt := strings.IndexByte(text, '<'); lt >= 0 {
		text = text[:lt]
	}
	if text == "" {
		return 0, false
	}
	return utf8.RuneCountInString(text), true
}

// LocalityFromAddress returns the city component of an address written as
// "<street>, <city>, <state>".
func LocalityFromAddress(address string) (string, bool) {
	parts := strings.Split(address, addressSep)
	if len(parts) < localityFromEnd {
		return "", false
	}
	return parts[len(parts)-localityFromEnd], true
}
