package geo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0ultr4d3r/yamapview/geo"
)

func TestNewCoordinate(t *testing.T) {
	c, err := geo.NewCoordinate(37.62007, 55.75363)
	require.NoError(t, err)
	assert.Equal(t, 37.62007, c.Lon)
	assert.Equal(t, 55.75363, c.Lat)

	for _, bad := range [][2]float64{
		{-180.01, 0}, {180.01, 0}, {0, -90.01}, {0, 90.01},
	} {
		_, err := geo.NewCoordinate(bad[0], bad[1])
		assert.ErrorIs(t, err, geo.ErrCoordinateRange, "lon=%f lat=%f", bad[0], bad[1])
	}

	// the extremes themselves are valid
	_, err = geo.NewCoordinate(180, 90)
	assert.NoError(t, err)
	_, err = geo.NewCoordinate(-180, -90)
	assert.NoError(t, err)
}

func TestCoordinateClamp(t *testing.T) {
	c := geo.Coordinate{Lon: 185, Lat: -95}.Clamp()
	assert.Equal(t, geo.Coordinate{Lon: 180, Lat: -90}, c)

	in := geo.Coordinate{Lon: 37.62007, Lat: 55.75363}
	assert.Equal(t, in, in.Clamp())
}

func TestMarkerStyle(t *testing.T) {
	m := geo.Marker{Position: geo.Coordinate{Lon: 37.5, Lat: 55.25}, Color: geo.ColorHighlighted}
	assert.Equal(t, "37.500000,55.250000,pm2dbm", m.Style())

	// empty color falls back to the default placemark
	m = geo.Marker{Position: geo.Coordinate{Lon: 1, Lat: 2}}
	assert.Equal(t, "1.000000,2.000000,pm2blm", m.Style())
}

func TestParseLayerLabel(t *testing.T) {
	assert.Equal(t, geo.LayerScheme, geo.ParseLayerLabel("Scheme"))
	assert.Equal(t, geo.LayerSatellite, geo.ParseLayerLabel("Satellite"))
	assert.Equal(t, geo.LayerHybrid, geo.ParseLayerLabel("Hybrid"))
	assert.Equal(t, geo.LayerScheme, geo.ParseLayerLabel("whatever"))
	assert.Equal(t, geo.Layer("sat,skl"), geo.LayerHybrid)
}
