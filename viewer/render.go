package viewer

import (
	"bytes"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"

	xdraw "golang.org/x/image/draw"

	"github.com/s0ultr4d3r/yamapview/viewport"
)

// Decode parses the fetched raster; the static API answers PNG or JPEG
// depending on the layer.
func Decode(b []byte) (image.Image, error) {
	if img, err := png.Decode(bytes.NewReader(b)); err == nil {
		return img, nil
	}
	return jpeg.Decode(bytes.NewReader(b))
}

// FitView scales the raster to the 780x450 map area. The provider caps
// the image at 650x450, so this is almost always an upscale.
func FitView(src image.Image) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, viewport.MapWidth, viewport.MapHeight))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// RenderView turns fetched bytes into the image shown in the map area.
func RenderView(b []byte) (image.Image, error) {
	img, err := Decode(b)
	if err != nil {
		return nil, err
	}
	return FitView(img), nil
}
