// Interactive Yandex Maps viewer: search, pan, zoom, markers and
// organization lookup in a fixed 800x600 window.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"
	"syscall"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/s0ultr4d3r/yamapview/config"
	"github.com/s0ultr4d3r/yamapview/geoapi"
	"github.com/s0ultr4d3r/yamapview/logging"
	"github.com/s0ultr4d3r/yamapview/viewer"
)

var (
	configPath = flag.String("config", "config.ini", "путь к INI с ключами API")
	pprofAddr  = flag.String("pprof", "", "включить pprof на адресе (например 127.0.0.1:6060), пусто = выключено")
)

func main() {
	flag.Parse()
	log := logging.New(os.Getenv("YAMAPVIEW_ENV"))

	if *pprofAddr != "" {
		enablePPROF(*pprofAddr, log)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("startup failed", "err", err)
		os.Exit(1)
	}

	scratch, err := viewer.NewScratch()
	if err != nil {
		log.Error("scratch file", "err", err)
		os.Exit(1)
	}
	defer scratch.Remove()

	// remove the scratch image on forced termination too
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		scratch.Remove()
		os.Exit(1)
	}()

	a := app.New()
	w := a.NewWindow("Yandex Maps")

	area := newMapArea()
	layerSelect := widget.NewSelect([]string{"Scheme", "Satellite", "Hybrid"}, nil)
	layerSelect.Selected = "Scheme"
	postalSelect := widget.NewSelect([]string{"Hide postal code", "Show postal code"}, nil)
	postalSelect.Selected = "Hide postal code"
	searchEntry := widget.NewEntry()
	searchEntry.SetPlaceHolder("Address or place")
	addressLabel := widget.NewLabel("")
	statusLabel := widget.NewLabel("")

	disp := &fyneDisplay{win: w, area: area, address: addressLabel, status: statusLabel}
	ctrl := viewer.New(geoapi.New(cfg.GeocoderKey, cfg.PlacesKey), disp, log, scratch)

	layerSelect.OnChanged = func(label string) { ctrl.SetLayerLabel(label) }
	postalSelect.OnChanged = func(label string) { ctrl.SetPostalCode(label == "Show postal code") }
	searchEntry.OnSubmitted = func(q string) { ctrl.Search(q) }
	searchBtn := widget.NewButton("Search", func() { ctrl.Search(searchEntry.Text) })

	area.onTap = func(x, y float64) { ctrl.ClickAt(x, y) }
	area.onTapSecondary = func() { ctrl.SearchNearby() }
	area.onScroll = func(up bool) { ctrl.Scroll(up) }

	// event dispatch table: one key, one viewport mutation + refetch
	keys := map[fyne.KeyName]func(){
		fyne.KeyLeft:     func() { ctrl.Pan(viewer.Left) },
		fyne.KeyRight:    func() { ctrl.Pan(viewer.Right) },
		fyne.KeyUp:       func() { ctrl.Pan(viewer.Up) },
		fyne.KeyDown:     func() { ctrl.Pan(viewer.Down) },
		fyne.KeyPageUp:   ctrl.ZoomIn,
		fyne.KeyPageDown: ctrl.ZoomOut,
		fyne.KeyEscape:   ctrl.ClearMarkers,
	}
	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if h, ok := keys[ev.Name]; ok {
			h()
		}
	})
	w.Canvas().SetOnTypedRune(func(r rune) {
		switch r {
		case '+', '=':
			ctrl.ZoomIn()
		case '-':
			ctrl.ZoomOut()
		}
	})

	controls := container.NewBorder(nil, nil, layerSelect,
		container.NewHBox(searchBtn, postalSelect), searchEntry)
	w.SetContent(container.NewVBox(area, controls, addressLabel, statusLabel))
	w.Resize(fyne.NewSize(800, 600))
	w.SetFixedSize(true)
	w.SetOnClosed(scratch.Remove)

	ctrl.Start()
	w.ShowAndRun()
}

// fyneDisplay is the toolkit side of viewer.Display.
type fyneDisplay struct {
	win     fyne.Window
	area    *mapArea
	address *widget.Label
	status  *widget.Label
}

func (d *fyneDisplay) ShowMap(img image.Image) {
	d.area.img.Image = img
	d.area.img.Refresh()
}

func (d *fyneDisplay) SetAddress(text string) { d.address.SetText(text) }
func (d *fyneDisplay) SetStatus(text string)  { d.status.SetText(text) }

func (d *fyneDisplay) ShowPlace(name, description string) {
	dialog.ShowInformation("Organization found",
		fmt.Sprintf("Name: %s\nAddress: %s", name, description), d.win)
}

func (d *fyneDisplay) ShowError(title, message string) {
	dialog.ShowInformation(title, message, d.win)
}
