package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"

	"eatery-scraper/models"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    models.Coordinate
		wantErr error
	}{
		{
			name: "street address",
			body: `{"data":{"lat":40.1106,"lng":-88.2073,"address":"505 E Green St, Champaign, IL 61820, USA"}}`,
			want: models.Coordinate{Lat: 40.1106, Lng: -88.2073},
		},
		{
			name: "string coordinates",
			body: `{"data":{"lat":"40.5","lng":"-88.25","address":"1 Main St, Urbana"}}`,
			want: models.Coordinate{Lat: 40.5, Lng: -88.25},
		},
		{
			name: "component list",
			body: `{"data":{"lat":1,"lng":2,"address":["1","Main St","Urbana","IL","61801"]}}`,
			want: models.Coordinate{Lat: 1, Lng: 2},
		},
		{name: "short component list", body: `{"data":{"lat":1,"lng":2,"address":["Urbana","IL","US","x"]}}`, wantErr: ErrNotFound},
		{name: "short string", body: `{"data":{"lat":1,"lng":2,"address":"IL"}}`, wantErr: ErrNotFound},
		{name: "empty data list", body: `{"data":[]}`, wantErr: ErrNotFound},
		{name: "error field", body: `{"error":"Could not find coordinate."}`, wantErr: ErrNotFound},
		{name: "empty body", body: "  ", wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.body))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeMalformed(t *testing.T) {
	_, err := Decode([]byte(`{"data":`))
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrNotFound))
}

func TestClientLookup(t *testing.T) {
	var gotAddress string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		gotAddress = r.FormValue("address")
		_, _ = w.Write([]byte(`{"data":{"lat":40.1,"lng":-88.2,"address":"60 E Green St, Champaign, IL"}}`))
	}))
	defer srv.Close()

	c := NewClient(resty.New(), srv.URL)
	coord, err := c.Lookup(context.Background(), "60 E Green St, Champaign, Illinois")

	require.NoError(t, err)
	require.Equal(t, "60 E Green St, Champaign, Illinois", gotAddress)
	require.Equal(t, models.Coordinate{Lat: 40.1, Lng: -88.2}, coord)
}

func TestClientLookupStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(resty.New(), srv.URL).Lookup(context.Background(), "x")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
}
