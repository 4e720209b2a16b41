// Package viewport models the displayed map region: center, zoom,
// layer, postal-code flag and markers. State is a value; every
// transform returns the next state so the controller can commit it
// only after the matching fetch succeeds.
package viewport

import (
	"fmt"

	"github.com/s0ultr4d3r/yamapview/geo"
)

const (
	MinZoom = 1
	MaxZoom = 23

	// Map display area in the window, in pixels.
	MapWidth  = 780
	MapHeight = 450

	// MaxMarkers bounds click-appended markers; the oldest is evicted.
	MaxMarkers = 50

	// PanFactor divided by zoom gives the pan step in degrees, so
	// panning gets finer as you zoom in.
	PanFactor = 0.2
)

// State is one immutable snapshot of the viewport.
type State struct {
	Center     geo.Coordinate
	Zoom       int
	Layer      geo.Layer
	PostalCode bool
	Markers    []geo.Marker
}

// Default is the startup viewport: Moscow at zoom 12 on the scheme layer.
func Default() State {
	return State{
		Center: geo.Coordinate{Lon: 37.620070, Lat: 55.753630},
		Zoom:   12,
		Layer:  geo.LayerScheme,
	}
}

// PanStep is the per-key-press pan distance in degrees at the current zoom.
func (s State) PanStep() float64 {
	return PanFactor / float64(s.Zoom)
}

// Pan shifts the center, clamping back into valid coordinate ranges.
func (s State) Pan(dLon, dLat float64) State {
	s.Center = geo.Coordinate{Lon: s.Center.Lon + dLon, Lat: s.Center.Lat + dLat}.Clamp()
	return s
}

// ZoomIn steps the zoom up, clamped at MaxZoom.
func (s State) ZoomIn() State {
	if s.Zoom < MaxZoom {
		s.Zoom++
	}
	return s
}

// ZoomOut steps the zoom down, clamped at MinZoom.
func (s State) ZoomOut() State {
	if s.Zoom > MinZoom {
		s.Zoom--
	}
	return s
}

// WithZoom sets an absolute zoom, clamped into [MinZoom, MaxZoom].
func (s State) WithZoom(z int) State {
	if z < MinZoom {
		z = MinZoom
	}
	if z > MaxZoom {
		z = MaxZoom
	}
	s.Zoom = z
	return s
}

// WithCenter recenters the viewport.
func (s State) WithCenter(c geo.Coordinate) State {
	s.Center = c
	return s
}

// WithLayer switches the map style.
func (s State) WithLayer(l geo.Layer) State {
	s.Layer = l
	return s
}

// WithPostalCode toggles postal-code display in geocoded addresses.
func (s State) WithPostalCode(show bool) State {
	s.PostalCode = show
	return s
}

// AddMarker appends a marker, evicting the oldest past MaxMarkers.
// The markers slice is copied: states never share backing arrays.
func (s State) AddMarker(m geo.Marker) State {
	markers := make([]geo.Marker, 0, len(s.Markers)+1)
	markers = append(markers, s.Markers...)
	markers = append(markers, m)
	if len(markers) > MaxMarkers {
		markers = markers[len(markers)-MaxMarkers:]
	}
	s.Markers = markers
	return s
}

// SetMarker replaces the whole marker set with a single marker, the
// search-result semantics.
func (s State) SetMarker(m geo.Marker) State {
	s.Markers = []geo.Marker{m}
	return s
}

// ClearMarkers drops all markers.
func (s State) ClearMarkers() State {
	s.Markers = nil
	return s
}

// PixelToCoordinate converts a click position inside the map area to a
// geocoordinate. This is a flat linear approximation around the center,
// good enough near the viewport and away from the poles.
func (s State) PixelToCoordinate(x, y float64) geo.Coordinate {
	k := float64(19 - s.Zoom)
	return geo.Coordinate{
		Lon: s.Center.Lon + (x-MapWidth/2)*0.002*k,
		Lat: s.Center.Lat - (y-MapHeight/2)*0.001*k,
	}.Clamp()
}

// StatusLine formats the footer text shown under the map.
func (s State) StatusLine() string {
	return fmt.Sprintf("Coordinates: %.5f, %.5f | Zoom: %d", s.Center.Lon, s.Center.Lat, s.Zoom)
}
