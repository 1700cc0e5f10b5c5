package geocode

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"

	"eatery-scraper/models"
)

// ErrNotFound is returned when the service has no usable coordinate for an
// address.
var ErrNotFound = errors.New("geocode: coordinate not found")

// minEchoedLen is the size the echoed address must exceed before a result
// is trusted. Partial matches such as a bare city come back shorter.
const minEchoedLen = 4

// Client looks up coordinates for free-text addresses.
type Client struct {
	http *resty.Client
	url  string
}

func NewClient(client *resty.Client, geocodeURL string) *Client {
	return &Client{http: client, url: geocodeURL}
}

type response struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

type result struct {
	Lat     flexFloat       `json:"lat"`
	Lng     flexFloat       `json:"lng"`
	Address json.RawMessage `json:"address"`
}

// Lookup geocodes address. Unknown or implausible matches return
// ErrNotFound; transport and decode failures are wrapped.
func (c *Client) Lookup(ctx context.Context, address string) (models.Coordinate, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{"address": address}).
		Post(c.url)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("geocode: request %q: %w", address, err)
	}
	if res.IsError() {
		return models.Coordinate{}, fmt.Errorf("geocode: request %q: status %d", address, res.StatusCode())
	}
	return Decode(res.Body())
}

// Decode interprets one geocoder response body.
func Decode(body []byte) (models.Coordinate, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return models.Coordinate{}, ErrNotFound
	}

	var resp response
	if err := json.Unmarshal(body, &resp); err != nil {
		return models.Coordinate{}, fmt.Errorf("geocode: decode response: %w", err)
	}
	if resp.Error != "" || !isObject(resp.Data) {
		return models.Coordinate{}, ErrNotFound
	}

	var r result
	if err := json.Unmarshal(resp.Data, &r); err != nil {
		return models.Coordinate{}, fmt.Errorf("geocode: decode data: %w", err)
	}
	if echoedLen(r.Address) <= minEchoedLen {
		return models.Coordinate{}, ErrNotFound
	}
	return models.Coordinate{Lat: float64(r.Lat), Lng: float64(r.Lng)}, nil
}

func isObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

// echoedLen counts list elements when the service echoes address components,
// or characters when it echoes a formatted string.
func echoedLen(raw json.RawMessage) int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}
	switch raw[0] {
	case '"':
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return 0
		}
		return utf8.RuneCountInString(s)
	case '[':
		var parts []json.RawMessage
		if json.Unmarshal(raw, &parts) != nil {
			return 0
		}
		return len(parts)
	}
	return 0
}

// flexFloat accepts a JSON number or a numeric string.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*f = flexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}
