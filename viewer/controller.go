// Package viewer wires input events to viewport mutations and API
// calls. The controller is the only error-recovery boundary: every
// client failure becomes a user-visible message and aborts just the
// current interaction.
package viewer

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/s0ultr4d3r/yamapview/geo"
	"github.com/s0ultr4d3r/yamapview/geoapi"
	"github.com/s0ultr4d3r/yamapview/viewport"
)

// GeoAPI is the outbound surface the controller needs; satisfied by
// *geoapi.Client and by test fakes.
type GeoAPI interface {
	Geocode(ctx context.Context, query string, includePostalCode bool) (geoapi.GeocodeResult, error)
	FetchMapImage(ctx context.Context, center geo.Coordinate, zoom int, layer geo.Layer, markers []geo.Marker) ([]byte, error)
	SearchPlaces(ctx context.Context, center geo.Coordinate, text string) (*geoapi.Place, error)
}

// Display is the render sink: the GUI window in the real app, a
// recorder in tests. Implementations just show what they are given.
type Display interface {
	ShowMap(img image.Image)
	SetAddress(text string)
	SetStatus(text string)
	ShowPlace(name, description string)
	ShowError(title, message string)
}

// Direction is a pan direction from an arrow key.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

const noAddress = "Address not specified"

// Controller owns the viewport state for one session. All methods run
// on the UI event loop; there is no internal locking.
type Controller struct {
	api     GeoAPI
	disp    Display
	log     *slog.Logger
	scratch *Scratch
	timeout time.Duration

	state   viewport.State
	address string
}

// New builds a controller around the default viewport. scratch may be
// nil when no on-disk copy of the image is wanted.
func New(api GeoAPI, disp Display, log *slog.Logger, scratch *Scratch) *Controller {
	return &Controller{
		api:     api,
		disp:    disp,
		log:     log,
		scratch: scratch,
		timeout: 20 * time.Second,
		state:   viewport.Default(),
		address: noAddress,
	}
}

// State exposes the committed viewport snapshot.
func (c *Controller) State() viewport.State { return c.state }

// Start shows the initial address label and fetches the first map.
func (c *Controller) Start() {
	c.disp.SetAddress(c.address)
	c.apply(c.state)
}

// Search geocodes free text, recenters on the hit at zoom 15 and
// replaces the marker set with a single highlighted marker.
func (c *Controller) Search(query string) {
	if query == "" {
		return
	}
	ctx, cancel := c.ctx()
	defer cancel()

	res, err := c.api.Geocode(ctx, query, c.state.PostalCode)
	if err != nil {
		c.fail("Search error", err)
		return
	}
	next := c.state.
		WithCenter(res.Position).
		WithZoom(15).
		SetMarker(geo.Marker{Position: res.Position, Color: geo.ColorHighlighted})
	if c.apply(next) {
		c.setAddress(res.Address)
	}
}

// Pan shifts the center one step (0.2/zoom degrees) and refetches.
func (c *Controller) Pan(dir Direction) {
	step := c.state.PanStep()
	var next viewport.State
	switch dir {
	case Left:
		next = c.state.Pan(-step, 0)
	case Right:
		next = c.state.Pan(step, 0)
	case Up:
		next = c.state.Pan(0, step)
	case Down:
		next = c.state.Pan(0, -step)
	default:
		return
	}
	c.apply(next)
}

// ZoomIn steps the zoom up and refetches. A no-op at max zoom still
// refetches, matching the one-interaction-one-request contract.
func (c *Controller) ZoomIn() { c.apply(c.state.ZoomIn()) }

// ZoomOut steps the zoom down and refetches.
func (c *Controller) ZoomOut() { c.apply(c.state.ZoomOut()) }

// Scroll maps wheel movement to zoom.
func (c *Controller) Scroll(up bool) {
	if up {
		c.ZoomIn()
	} else {
		c.ZoomOut()
	}
}

// SetLayerLabel switches the map style from a UI label and refetches.
func (c *Controller) SetLayerLabel(label string) {
	c.apply(c.state.WithLayer(geo.ParseLayerLabel(label)))
}

// SetPostalCode toggles postal-code display. The map is refetched only
// when markers exist; otherwise the flag is committed directly.
func (c *Controller) SetPostalCode(show bool) {
	next := c.state.WithPostalCode(show)
	if len(c.state.Markers) == 0 {
		c.state = next
		return
	}
	c.apply(next)
}

// ClickAt reverse-geocodes the clicked point and appends a marker
// there. Clicks outside the map area are ignored.
func (c *Controller) ClickAt(x, y float64) {
	if x < 0 || x > viewport.MapWidth || y < 0 || y > viewport.MapHeight {
		return
	}
	pos := c.state.PixelToCoordinate(x, y)
	ctx, cancel := c.ctx()
	defer cancel()

	res, err := c.api.Geocode(ctx, pos.LL(), c.state.PostalCode)
	if err != nil {
		c.fail("Geocoding error", err)
		return
	}
	next := c.state.AddMarker(geo.Marker{Position: res.Position, Color: geo.ColorHighlighted})
	if c.apply(next) {
		c.setAddress(res.Address)
	}
}

// SearchNearby looks the current address up in the organization search
// and shows the top hit. It never refetches the map.
func (c *Controller) SearchNearby() {
	if len(c.state.Markers) == 0 {
		return
	}
	ctx, cancel := c.ctx()
	defer cancel()

	place, err := c.api.SearchPlaces(ctx, c.state.Center, c.address)
	if err != nil {
		c.fail("Search error", err)
		return
	}
	if place == nil {
		return
	}
	c.disp.ShowPlace(place.Name, place.Description)
}

// ClearMarkers drops every marker and refetches a clean map.
func (c *Controller) ClearMarkers() {
	if len(c.state.Markers) == 0 {
		return
	}
	if c.apply(c.state.ClearMarkers()) {
		c.setAddress(noAddress)
	}
}

// apply fetches the map for the candidate state and commits it only on
// success, so a failed fetch leaves both state and display untouched.
func (c *Controller) apply(next viewport.State) bool {
	ctx, cancel := c.ctx()
	defer cancel()

	start := time.Now()
	raw, err := c.api.FetchMapImage(ctx, next.Center, next.Zoom, next.Layer, next.Markers)
	if err != nil {
		c.fail("Map error", err)
		return false
	}
	if c.scratch != nil {
		if err := c.scratch.Write(raw); err != nil {
			c.fail("Map error", err)
			return false
		}
	}
	img, err := RenderView(raw)
	if err != nil {
		c.fail("Map error", err)
		return false
	}

	c.state = next
	c.disp.ShowMap(img)
	c.disp.SetStatus(next.StatusLine())
	c.log.Info("map updated",
		slog.String("ll", next.Center.LL()),
		slog.Int("zoom", next.Zoom),
		slog.String("layer", string(next.Layer)),
		slog.Int("markers", len(next.Markers)),
		slog.Duration("took", time.Since(start)),
	)
	return true
}

func (c *Controller) setAddress(text string) {
	c.address = text
	c.disp.SetAddress(text)
}

func (c *Controller) fail(title string, err error) {
	c.log.Warn("interaction failed", slog.String("title", title), slog.Any("err", err))
	c.disp.ShowError(title, userMessage(err))
}

func (c *Controller) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), c.timeout)
}

func userMessage(err error) string {
	if geoapi.KindOf(err) == geoapi.KindNotFound {
		return "Nothing matched the query."
	}
	return fmt.Sprintf("%v\nCheck your network connection and retry.", err)
}
