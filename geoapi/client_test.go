package geoapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0ultr4d3r/yamapview/geo"
	"github.com/s0ultr4d3r/yamapview/geoapi"
)

const geocoderBody = `{
  "response": {"GeoObjectCollection": {"featureMember": [
    {"GeoObject": {
      "Point": {"pos": "37.617698 55.755864"},
      "metaDataProperty": {"GeocoderMetaData": {
        "text": "Россия, Москва, Кремль",
        "Address": {"postal_code": "103132"}
      }}
    }}
  ]}}
}`

const emptyGeocoderBody = `{"response": {"GeoObjectCollection": {"featureMember": []}}}`

func testClient(srvURL string) *geoapi.Client {
	c := geoapi.New("geo-key", "places-key")
	c.GeocoderURL = srvURL
	c.StaticMapURL = srvURL
	c.PlacesURL = srvURL
	return c
}

func TestGeocode(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query().Get("geocode")
		assert.Equal(t, "geo-key", r.URL.Query().Get("apikey"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		w.Write([]byte(geocoderBody))
	}))
	defer srv.Close()

	res, err := testClient(srv.URL).Geocode(context.Background(), "Кремль", false)
	require.NoError(t, err)
	assert.Equal(t, "Кремль", query)
	assert.InDelta(t, 37.617698, res.Position.Lon, 1e-9)
	assert.InDelta(t, 55.755864, res.Position.Lat, 1e-9)
	assert.Equal(t, "Россия, Москва, Кремль", res.Address)
}

func TestGeocodePostalCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(geocoderBody))
	}))
	defer srv.Close()

	res, err := testClient(srv.URL).Geocode(context.Background(), "Кремль", true)
	require.NoError(t, err)
	assert.Equal(t, "Россия, Москва, Кремль, 103132", res.Address)
}

func TestGeocodeNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(emptyGeocoderBody))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Geocode(context.Background(), "nowhere at all", false)
	require.Error(t, err)
	assert.Equal(t, geoapi.KindNotFound, geoapi.KindOf(err))
}

func TestGeocodeAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid key", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Geocode(context.Background(), "Кремль", false)
	require.Error(t, err)
	assert.Equal(t, geoapi.KindAPI, geoapi.KindOf(err))

	var apiErr *geoapi.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
}

func TestGeocodeNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	_, err := testClient(srv.URL).Geocode(context.Background(), "Кремль", false)
	require.Error(t, err)
	assert.Equal(t, geoapi.KindNetwork, geoapi.KindOf(err))
}

func TestFetchMapImage(t *testing.T) {
	image := []byte("\x89PNG fake bytes")
	var q map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q = r.URL.Query()
		w.Write(image)
	}))
	defer srv.Close()

	markers := []geo.Marker{
		{Position: geo.Coordinate{Lon: 37.5, Lat: 55.25}, Color: geo.ColorHighlighted},
		{Position: geo.Coordinate{Lon: 38.0, Lat: 55.5}},
	}
	got, err := testClient(srv.URL).FetchMapImage(context.Background(),
		geo.Coordinate{Lon: 37.62007, Lat: 55.75363}, 12, geo.LayerHybrid, markers)
	require.NoError(t, err)
	assert.Equal(t, image, got)

	assert.Equal(t, []string{"37.620070,55.753630"}, q["ll"])
	assert.Equal(t, []string{"12"}, q["z"])
	assert.Equal(t, []string{"sat,skl"}, q["l"])
	assert.Equal(t, []string{"650,450"}, q["size"])
	assert.Equal(t, []string{"37.500000,55.250000,pm2dbm~38.000000,55.500000,pm2blm"}, q["pt"])
}

func TestFetchMapImageNoMarkers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("pt"))
		w.Write([]byte("img"))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).FetchMapImage(context.Background(),
		geo.Coordinate{Lon: 0, Lat: 0}, 5, geo.LayerScheme, nil)
	require.NoError(t, err)
}

func TestSearchPlaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "places-key", r.URL.Query().Get("apikey"))
		assert.Equal(t, "biz", r.URL.Query().Get("type"))
		assert.Equal(t, "1", r.URL.Query().Get("results"))
		w.Write([]byte(`{"features":[{"properties":{"name":"Кафе Пушкинъ","description":"Тверской бульвар, 26А"}}]}`))
	}))
	defer srv.Close()

	place, err := testClient(srv.URL).SearchPlaces(context.Background(),
		geo.Coordinate{Lon: 37.62007, Lat: 55.75363}, "кафе")
	require.NoError(t, err)
	require.NotNil(t, place)
	assert.Equal(t, "Кафе Пушкинъ", place.Name)
	assert.Equal(t, "Тверской бульвар, 26А", place.Description)
}

func TestSearchPlacesEmptyIsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"features":[]}`))
	}))
	defer srv.Close()

	place, err := testClient(srv.URL).SearchPlaces(context.Background(),
		geo.Coordinate{Lon: 0, Lat: 0}, "nothing here")
	require.NoError(t, err)
	assert.Nil(t, place)
}
