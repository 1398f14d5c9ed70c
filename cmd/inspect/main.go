package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"sync/atomic"
	"time"

	"golang.org/x/image/draw"

	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rivo/tview"
	iidc "github.com/y3nr1ng/go-iidc"
	"github.com/y3nr1ng/go-iidc/pkg/formats"
)

type Display struct {
	frame atomic.Value
}

func (g *Display) Update() error {
	return nil
}

func (g *Display) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.frame.Load().(*ebiten.Image), &ebiten.DrawImageOptions{})
}

func (g *Display) Layout(outsideWidth, outsideHeight int) (int, int) {
	frame := g.frame.Load().(*ebiten.Image)
	return frame.Bounds().Dx(), frame.Bounds().Dy()
}

// renderSink feeds the capture worker's frames into an ebiten window,
// spawning the window on the first frame.
type renderSink struct {
	g *Display
}

func (s *renderSink) ShowImage(img *formats.BGR) {
	if s.g.frame.Swap(ebiten.NewImageFromImage(img.RGBA())) == nil {
		go func() {
			if err := ebiten.RunGame(s.g); err != nil {
				log.Printf("ebiten error: %s", err)
			}
		}()
	}
}

func (s *renderSink) CaptureError(err error) {
	log.Printf("capture stopped: %s", err)
}

// previewSink scales frames down into the tview preview pane, throttled so
// terminal redraws do not drown the UI.
type previewSink struct {
	app     *tview.Application
	preview *tview.Image
	last    time.Time
}

func (s *previewSink) ShowImage(img *formats.BGR) {
	now := time.Now()
	if now.Sub(s.last) < 50*time.Millisecond {
		return
	}
	s.last = now
	w := 64
	h := img.Bounds().Dy() * w / img.Bounds().Dx()
	s.preview.SetImage(resize(img, w, h))
	s.app.ForceDraw()
}

func (s *previewSink) CaptureError(err error) {
	log.Printf("capture stopped: %s", err)
}

func main() {
	render := flag.Bool("render", false, "render the frames to an ebiten window (requires a display)")
	flag.Parse()

	ctx, err := iidc.NewContext()
	if err != nil {
		panic(err)
	}
	defer ctx.Close()

	guids, err := ctx.ListDevices()
	if err != nil {
		panic(err)
	}

	app := tview.NewApplication()

	cameras := tview.NewList()
	cameras.SetBorder(true).SetTitle("Cameras")

	modes := tview.NewList().ShowSecondaryText(false)
	modes.SetBorder(true).SetTitle("Video Modes")

	actions := tview.NewList().ShowSecondaryText(false)
	actions.SetBorder(true).SetTitle("Actions")

	preview := tview.NewImage()
	preview.SetColors(256).SetDithering(tview.DitheringNone).SetBorder(true).SetTitle("Preview")

	logText := tview.NewTextView()
	logText.SetMaxLines(10).SetBorder(true).SetTitle("Log")

	log.SetOutput(logText)

	secondColumn := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(modes, 0, 1, false).
		AddItem(actions, 0, 1, false)

	var cam *iidc.Camera
	roi := iidc.Resolution{Width: 640, Height: 480}

	stopPreview := func() {
		if cam == nil || !cam.IsTransmitting() {
			return
		}
		cam.StopCaptureVideo()
		if !cam.IsOpen() {
			cam = nil
			return
		}
		if err := cam.StopAcquisition(); err != nil {
			log.Printf("error stopping acquisition: %s", err)
		}
	}

	startPreview := func(sink iidc.FrameSink) {
		if cam == nil {
			log.Print("no camera selected")
			return
		}
		stopPreview()
		if cam == nil {
			log.Print("camera handle was lost; reselect it")
			return
		}
		err := cam.ApplyParameters(iidc.BusSpeed(iidc.Speed400), roi)
		if err != nil {
			log.Printf("error configuring camera: %s", err)
			if cam != nil && !cam.IsOpen() {
				cam = nil
			}
			return
		}
		if err := cam.StartAcquisition(); err != nil {
			log.Printf("error starting acquisition: %s", err)
			cam = nil
			return
		}
		cam.StartCaptureVideo(sink)
	}

	for _, guid := range guids {
		cameras.AddItem(guid.String(), "", 0, func() {
			stopPreview()
			if cam != nil {
				cam.Close()
			}
			c, err := ctx.OpenCamera(guid)
			if err != nil {
				log.Printf("error opening camera: %s", err)
				return
			}
			cam = c
			log.Printf("opened %s %s", cam.Vendor(), cam.Model())

			modes.Clear()
			supported, err := cam.SupportedModes()
			if err != nil {
				log.Printf("error listing modes: %s", err)
				return
			}
			for _, mode := range supported {
				title := mode.String()
				if !mode.IsFormat7() {
					if rates, err := cam.SupportedRates(mode); err == nil {
						title = fmt.Sprintf("%s (%d rates)", mode, len(rates))
					}
				}
				modes.AddItem(title, "", 0, nil)
			}
			app.SetFocus(actions)
		})
	}
	if len(guids) == 0 {
		cameras.AddItem("(no cameras found)", "", 0, nil)
	}

	actions.AddItem("Preview", "", 0, func() {
		if *render {
			startPreview(&renderSink{g: &Display{}})
		} else {
			startPreview(&previewSink{app: app, preview: preview})
		}
	})
	actions.AddItem("Stop", "", 0, func() {
		stopPreview()
	})
	actions.AddItem("Set region", "", 0, func() {
		input := tview.NewInputField()
		input.SetLabel("Region WxH: ").
			SetFieldWidth(12).
			SetDoneFunc(func(key tcell.Key) {
				var w, h int
				if _, err := fmt.Sscanf(input.GetText(), "%dx%d", &w, &h); err != nil {
					log.Printf("failed parsing region %q", input.GetText())
				} else {
					roi = iidc.Resolution{Width: w, Height: h}
					log.Printf("region set to %dx%d", w, h)
				}
				secondColumn.RemoveItem(input)
				app.SetFocus(actions)
			})
		secondColumn.AddItem(input, 1, 0, false)
		app.SetFocus(input)
	})

	flex := tview.NewFlex().
		AddItem(cameras, 0, 1, true).
		AddItem(secondColumn, 0, 1, false)

	if !*render {
		flex.AddItem(preview, 0, 3, false)
	}

	defer func() {
		stopPreview()
		if cam != nil {
			cam.Close()
		}
	}()

	if err := app.SetRoot(tview.NewFlex().SetDirection(tview.FlexRow).AddItem(flex, 0, 1, true).AddItem(logText, 10, 0, false), true).Run(); err != nil {
		panic(err)
	}
}

func resize(img image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}
