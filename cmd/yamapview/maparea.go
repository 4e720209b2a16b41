package main

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/s0ultr4d3r/yamapview/viewport"
)

// mapArea is the 780x450 widget showing the fetched raster. It owns the
// mouse interactions; the window owns the keyboard.
type mapArea struct {
	widget.BaseWidget
	img *canvas.Image

	onTap          func(x, y float64)
	onTapSecondary func()
	onScroll       func(up bool)
}

func newMapArea() *mapArea {
	blank := image.NewRGBA(image.Rect(0, 0, viewport.MapWidth, viewport.MapHeight))
	m := &mapArea{img: canvas.NewImageFromImage(blank)}
	m.img.FillMode = canvas.ImageFillContain
	m.img.SetMinSize(fyne.NewSize(viewport.MapWidth, viewport.MapHeight))
	m.ExtendBaseWidget(m)
	return m
}

func (m *mapArea) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(m.img)
}

func (m *mapArea) MinSize() fyne.Size {
	return fyne.NewSize(viewport.MapWidth, viewport.MapHeight)
}

// Tapped delivers widget-local pixel coordinates.
func (m *mapArea) Tapped(e *fyne.PointEvent) {
	if m.onTap != nil {
		m.onTap(float64(e.Position.X), float64(e.Position.Y))
	}
}

func (m *mapArea) TappedSecondary(*fyne.PointEvent) {
	if m.onTapSecondary != nil {
		m.onTapSecondary()
	}
}

func (m *mapArea) Scrolled(e *fyne.ScrollEvent) {
	if m.onScroll != nil {
		m.onScroll(e.Scrolled.DY > 0)
	}
}
