// Minimal viewer variant: reads "<lon> <lat>" and "<zoom>" from stdin,
// fetches one static map image and shows it in a window.
package main

import (
	"bufio"
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/schollz/progressbar/v3"

	"github.com/s0ultr4d3r/yamapview/config"
	"github.com/s0ultr4d3r/yamapview/geo"
	"github.com/s0ultr4d3r/yamapview/geoapi"
	"github.com/s0ultr4d3r/yamapview/logging"
	"github.com/s0ultr4d3r/yamapview/viewer"
	"github.com/s0ultr4d3r/yamapview/viewport"
)

var configPath = flag.String("config", "config.ini", "путь к INI с ключами API")

func main() {
	flag.Parse()
	log := logging.New(os.Getenv("YAMAPVIEW_ENV"))

	center, zoom, err := readInput(os.Stdin)
	if err != nil {
		log.Error("bad input", "err", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("startup failed", "err", err)
		os.Exit(1)
	}
	client := geoapi.New(cfg.GeocoderKey, cfg.PlacesKey)

	raw, err := client.FetchMapImage(context.Background(), center, zoom, geo.LayerScheme, nil)
	if err != nil {
		log.Error("fetch map", "err", err)
		os.Exit(1)
	}

	scratch, err := viewer.NewScratch()
	if err != nil {
		log.Error("scratch file", "err", err)
		os.Exit(1)
	}
	defer scratch.Remove()

	if err := saveWithProgress(scratch.Path(), raw); err != nil {
		scratch.Remove()
		log.Error("save map", "err", err)
		os.Exit(1)
	}

	img, err := viewer.RenderView(raw)
	if err != nil {
		scratch.Remove()
		log.Error("decode map", "err", err)
		os.Exit(1)
	}

	state := viewport.Default().WithCenter(center).WithZoom(zoom)

	a := app.New()
	w := a.NewWindow("Yandex Maps — static")
	view := canvas.NewImageFromImage(img)
	view.FillMode = canvas.ImageFillContain
	view.SetMinSize(fyne.NewSize(viewport.MapWidth, viewport.MapHeight))
	w.SetContent(container.NewVBox(view, widget.NewLabel(state.StatusLine())))
	w.SetFixedSize(true)
	w.SetOnClosed(scratch.Remove)
	w.ShowAndRun()
}

// readInput parses the two console lines: "<lon> <lat>" then "<zoom>".
func readInput(r io.Reader) (geo.Coordinate, int, error) {
	sc := bufio.NewScanner(r)

	fmt.Print("lon lat: ")
	if !sc.Scan() {
		return geo.Coordinate{}, 0, fmt.Errorf("no coordinate line")
	}
	fields := strings.Fields(sc.Text())
	if len(fields) != 2 {
		return geo.Coordinate{}, 0, fmt.Errorf("expected \"<lon> <lat>\", got %q", sc.Text())
	}
	lon, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return geo.Coordinate{}, 0, fmt.Errorf("lon: %w", err)
	}
	lat, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return geo.Coordinate{}, 0, fmt.Errorf("lat: %w", err)
	}
	center, err := geo.NewCoordinate(lon, lat)
	if err != nil {
		return geo.Coordinate{}, 0, err
	}

	fmt.Print("zoom: ")
	if !sc.Scan() {
		return geo.Coordinate{}, 0, fmt.Errorf("no zoom line")
	}
	zoom, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil {
		return geo.Coordinate{}, 0, fmt.Errorf("zoom: %w", err)
	}
	if zoom < viewport.MinZoom || zoom > viewport.MaxZoom {
		return geo.Coordinate{}, 0, fmt.Errorf("zoom %d out of range [%d..%d]", zoom, viewport.MinZoom, viewport.MaxZoom)
	}
	return center, zoom, nil
}

func saveWithProgress(path string, raw []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	bar := progressbar.DefaultBytes(int64(len(raw)), "saving map")
	if _, err := io.Copy(io.MultiWriter(f, bar), bytes.NewReader(raw)); err != nil {
		return err
	}
	return f.Sync()
}
