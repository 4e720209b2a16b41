// Package geoapi is the client for the three Yandex Maps REST endpoints:
// the geocoder, the static map renderer and the organization search.
// Every operation issues exactly one GET and blocks until it completes.
package geoapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/s0ultr4d3r/yamapview/geo"
)

const (
	geocoderURL  = "https://geocode-maps.yandex.ru/1.x"
	staticMapURL = "https://static-maps.yandex.ru/1.x"
	placesURL    = "https://search-maps.yandex.ru/v1"

	// The static API caps the raster at 650x450; the view scales it up.
	imageSize = "650,450"

	lang      = "ru_RU"
	userAgent = "yamapview/1.0"
)

// Client talks to the Yandex Maps APIs. It is stateless beyond the keys
// and safe for reuse across requests.
type Client struct {
	GeocoderKey string
	PlacesKey   string

	// endpoints, overridable in tests; New fills in the production URLs
	GeocoderURL  string
	StaticMapURL string
	PlacesURL    string

	httpc   *http.Client
	limiter *rate.Limiter
}

// New builds a client with a bounded request timeout and a gentle
// client-side throttle so bursts of key repeats don't hammer the API.
func New(geocoderKey, placesKey string) *Client {
	return &Client{
		GeocoderKey:  geocoderKey,
		PlacesKey:    placesKey,
		GeocoderURL:  geocoderURL,
		StaticMapURL: staticMapURL,
		PlacesURL:    placesURL,
		httpc:        &http.Client{Timeout: 15 * time.Second},
		limiter:      rate.NewLimiter(rate.Limit(5), 2),
	}
}

// GeocodeResult is the transient outcome of one geocoder call.
type GeocodeResult struct {
	Position geo.Coordinate
	Address  string
}

// Place is the top organization match, nil when nothing matched.
type Place struct {
	Name        string
	Description string
}

// geocoder 1.x response, the parts we read
type geocoderResponse struct {
	Response struct {
		GeoObjectCollection struct {
			FeatureMember []struct {
				GeoObject struct {
					Point struct {
						Pos string `json:"pos"`
					} `json:"Point"`
					MetaDataProperty struct {
						GeocoderMetaData struct {
							Text    string `json:"text"`
							Address struct {
								PostalCode string `json:"postal_code"`
							} `json:"Address"`
						} `json:"GeocoderMetaData"`
					} `json:"metaDataProperty"`
				} `json:"GeoObject"`
			} `json:"featureMember"`
		} `json:"GeoObjectCollection"`
	} `json:"response"`
}

type placesResponse struct {
	Features []struct {
		Properties struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		} `json:"properties"`
	} `json:"features"`
}

// Geocode resolves free text (or a "lon,lat" pair for reverse lookup)
// to a coordinate and a formatted address. When includePostalCode is set
// and the provider knows the postal code, it is appended to the address.
func (c *Client) Geocode(ctx context.Context, query string, includePostalCode bool) (GeocodeResult, error) {
	const op = "geocode"
	params := url.Values{
		"geocode": {query},
		"apikey":  {c.GeocoderKey},
		"format":  {"json"},
		"lang":    {lang},
	}
	body, err := c.get(ctx, op, c.GeocoderURL, params)
	if err != nil {
		return GeocodeResult{}, err
	}

	var resp geocoderResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return GeocodeResult{}, &Error{Kind: KindAPI, Op: op, Message: "bad response body", Err: err}
	}
	members := resp.Response.GeoObjectCollection.FeatureMember
	if len(members) == 0 {
		return GeocodeResult{}, notFoundErr(op, query)
	}
	obj := members[0].GeoObject

	var lon, lat float64
	if _, err := fmt.Sscanf(obj.Point.Pos, "%f %f", &lon, &lat); err != nil {
		return GeocodeResult{}, &Error{Kind: KindAPI, Op: op, Message: "bad point format " + obj.Point.Pos, Err: err}
	}
	pos, err := geo.NewCoordinate(lon, lat)
	if err != nil {
		return GeocodeResult{}, &Error{Kind: KindAPI, Op: op, Message: "bad point", Err: err}
	}

	meta := obj.MetaDataProperty.GeocoderMetaData
	address := meta.Text
	if includePostalCode && meta.Address.PostalCode != "" {
		address += ", " + meta.Address.PostalCode
	}
	return GeocodeResult{Position: pos, Address: address}, nil
}

// FetchMapImage renders one static raster centered on the viewport.
// Markers are serialized into the pt param as "lon,lat,style" tuples
// joined by "~".
func (c *Client) FetchMapImage(ctx context.Context, center geo.Coordinate, zoom int, layer geo.Layer, markers []geo.Marker) ([]byte, error) {
	const op = "map"
	params := url.Values{
		"ll":   {center.LL()},
		"z":    {fmt.Sprintf("%d", zoom)},
		"l":    {string(layer)},
		"size": {imageSize},
	}
	if len(markers) > 0 {
		pts := make([]string, 0, len(markers))
		for _, m := range markers {
			pts = append(pts, m.Style())
		}
		params.Set("pt", strings.Join(pts, "~"))
	}
	return c.get(ctx, op, c.StaticMapURL, params)
}

// SearchPlaces looks up the top organization near center matching the
// query text. An empty result set is a nil Place, not an error.
func (c *Client) SearchPlaces(ctx context.Context, center geo.Coordinate, text string) (*Place, error) {
	const op = "places"
	params := url.Values{
		"apikey":  {c.PlacesKey},
		"text":    {text},
		"lang":    {lang},
		"ll":      {center.LL()},
		"type":    {"biz"},
		"results": {"1"},
	}
	body, err := c.get(ctx, op, c.PlacesURL, params)
	if err != nil {
		return nil, err
	}

	var resp placesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &Error{Kind: KindAPI, Op: op, Message: "bad response body", Err: err}
	}
	if len(resp.Features) == 0 {
		return nil, nil
	}
	props := resp.Features[0].Properties
	return &Place{Name: props.Name, Description: props.Description}, nil
}

func (c *Client) get(ctx context.Context, op, base string, params url.Values) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, netErr(op, err)
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+params.Encode(), nil)
	if err != nil {
		return nil, netErr(op, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, netErr(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, apiErr(op, resp.StatusCode, strings.TrimSpace(string(b)))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, netErr(op, err)
	}
	return body, nil
}
