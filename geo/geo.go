// Package geo holds the small geographic value types shared by the
// viewport and the API client.
package geo

import (
	"errors"
	"fmt"
)

var ErrCoordinateRange = errors.New("coordinate out of range")

// Coordinate is a WGS 84 point, longitude first (the order the static
// maps API speaks).
type Coordinate struct {
	Lon float64
	Lat float64
}

// NewCoordinate validates the ranges: lon in [-180,180], lat in [-90,90].
func NewCoordinate(lon, lat float64) (Coordinate, error) {
	if lon < -180 || lon > 180 || lat < -90 || lat > 90 {
		return Coordinate{}, fmt.Errorf("%w: %f,%f", ErrCoordinateRange, lon, lat)
	}
	return Coordinate{Lon: lon, Lat: lat}, nil
}

// LL renders the coordinate as the "lon,lat" pair used in ll/geocode params.
func (c Coordinate) LL() string {
	return fmt.Sprintf("%f,%f", c.Lon, c.Lat)
}

// Clamp pulls an out-of-range coordinate back to the nearest valid one.
func (c Coordinate) Clamp() Coordinate {
	return Coordinate{
		Lon: clamp(c.Lon, -180, 180),
		Lat: clamp(c.Lat, -90, 90),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MarkerColor selects the placemark style drawn by the static maps API.
type MarkerColor string

const (
	ColorDefault     MarkerColor = "bl" // blue
	ColorHighlighted MarkerColor = "db" // dark blue, used for search hits
)

// Marker is a point annotation drawn on the fetched image.
type Marker struct {
	Position Coordinate
	Color    MarkerColor
}

// Style renders the marker as a "lon,lat,pm2{color}m" request tuple.
func (m Marker) Style() string {
	col := m.Color
	if col == "" {
		col = ColorDefault
	}
	return fmt.Sprintf("%f,%f,pm2%sm", m.Position.Lon, m.Position.Lat, col)
}

// Layer is the visual map style.
type Layer string

const (
	LayerScheme    Layer = "map"
	LayerSatellite Layer = "sat"
	LayerHybrid    Layer = "sat,skl"
)

// ParseLayerLabel maps a UI label to a layer, defaulting to the scheme.
func ParseLayerLabel(label string) Layer {
	switch label {
	case "Satellite":
		return LayerSatellite
	case "Hybrid":
		return LayerHybrid
	default:
		return LayerScheme
	}
}
