package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"runtime"
	"sync"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"
	iidc "github.com/y3nr1ng/go-iidc"
	"github.com/y3nr1ng/go-iidc/pkg/formats"
)

// latestSink keeps only the most recent frame; the render loop drains it at
// its own pace so a slow redraw never backs up the capture worker.
type latestSink struct {
	mu    sync.Mutex
	frame *formats.BGR
	err   error
}

func (s *latestSink) ShowImage(img *formats.BGR) {
	s.mu.Lock()
	s.frame = img
	s.mu.Unlock()
}

func (s *latestSink) CaptureError(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func (s *latestSink) take() (*formats.BGR, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	frame, err := s.frame, s.err
	s.frame, s.err = nil, nil
	return frame, err
}

type viewer struct {
	ctx  *iidc.Context
	cam  *iidc.Camera
	sink *latestSink

	width, height int
	capturing     bool

	last *formats.BGR // most recently rendered frame, for saving
}

// open enumerates the bus, opens the first camera and configures it. Used
// both at startup and by the refresh action.
func (v *viewer) open() error {
	guids, err := v.ctx.ListDevices()
	if err != nil {
		return err
	}
	if len(guids) == 0 {
		return fmt.Errorf("no IIDC cameras found")
	}

	cam, err := v.ctx.OpenCamera(guids[0])
	if err != nil {
		return err
	}
	log.Printf("Opened %s %s (%s)", cam.Vendor(), cam.Model(), cam.GUID())

	err = cam.ApplyParameters(
		iidc.BusSpeed(iidc.Speed400),
		iidc.Resolution{Width: v.width, Height: v.height},
	)
	if err != nil {
		// A rejected region or rate already forfeited the handle.
		if cam.IsOpen() {
			cam.Close()
		}
		return err
	}

	v.cam = cam
	return nil
}

func (v *viewer) start() error {
	if v.capturing || v.cam == nil {
		return nil
	}
	if err := v.cam.StartAcquisition(); err != nil {
		v.cam = nil
		return err
	}
	v.cam.StartCaptureVideo(v.sink)
	v.capturing = true
	log.Print("Acquisition started")
	return nil
}

func (v *viewer) stop() error {
	if !v.capturing {
		return nil
	}
	v.cam.StopCaptureVideo()
	v.capturing = false
	if !v.cam.IsOpen() {
		// The worker died and forfeited the handle.
		v.cam = nil
		return nil
	}
	if err := v.cam.StopAcquisition(); err != nil {
		return err
	}
	log.Print("Acquisition stopped")
	return nil
}

// refresh tears the current camera down and reopens from a fresh
// enumeration.
func (v *viewer) refresh() error {
	if err := v.stop(); err != nil {
		log.Printf("Stop during refresh: %v", err)
	}
	if v.cam != nil {
		v.cam.Close()
		v.cam = nil
	}
	return v.open()
}

// shutdown guarantees acquisition is stopped and the camera closed before
// the process exits.
func (v *viewer) shutdown() {
	if v.capturing {
		v.cam.StopCaptureVideo()
		v.capturing = false
	}
	if v.cam != nil {
		v.cam.Close()
		v.cam = nil
	}
}

func (v *viewer) save(path string) error {
	if v.last == nil {
		return fmt.Errorf("no frame captured yet")
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, v.last.RGBA())
}

func main() {
	runtime.LockOSThread() // SDL requires main thread

	width := flag.Int("width", 640, "region of interest width")
	height := flag.Int("height", 480, "region of interest height")
	output := flag.String("output", "frame.png", "filename for saved frames")
	flag.Parse()

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		log.Fatalf("Failed to init SDL: %v", err)
	}
	defer sdl.Quit()

	ctx, err := iidc.NewContext()
	if err != nil {
		log.Fatalf("Failed to initialize IIDC: %v", err)
	}
	defer ctx.Close()

	v := &viewer{ctx: ctx, sink: &latestSink{}, width: *width, height: *height}
	if err := v.open(); err != nil {
		log.Fatalf("Failed to open camera: %v", err)
	}
	defer v.shutdown()

	window, err := sdl.CreateWindow("go-iidc viewer",
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(*width), int32(*height), sdl.WINDOW_SHOWN)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	defer renderer.Destroy()

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_BGR24,
		sdl.TEXTUREACCESS_STREAMING, int32(*width), int32(*height))
	if err != nil {
		log.Fatalf("Failed to create texture: %v", err)
	}
	defer texture.Destroy()

	if err := v.start(); err != nil {
		log.Fatalf("Failed to start acquisition: %v", err)
	}

	log.Print("Keys: [space] start/stop  [r] refresh  [s] save frame  [q] quit")

	running := true
	for running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				running = false
			case *sdl.KeyboardEvent:
				if e.Type != sdl.KEYDOWN {
					continue
				}
				switch e.Keysym.Sym {
				case sdl.K_q, sdl.K_ESCAPE:
					running = false
				case sdl.K_SPACE:
					if v.capturing {
						if err := v.stop(); err != nil {
							log.Printf("Stop failed: %v", err)
						}
					} else {
						if v.cam == nil {
							if err := v.open(); err != nil {
								log.Printf("Reopen failed: %v", err)
								continue
							}
						}
						if err := v.start(); err != nil {
							log.Printf("Start failed: %v", err)
						}
					}
				case sdl.K_r:
					if err := v.refresh(); err != nil {
						log.Printf("Refresh failed: %v", err)
					} else if err := v.start(); err != nil {
						log.Printf("Start failed: %v", err)
					}
				case sdl.K_s:
					if err := v.save(*output); err != nil {
						log.Printf("Save failed: %v", err)
					} else {
						log.Printf("Saved frame to %s", *output)
					}
				}
			}
		}

		frame, captureErr := v.sink.take()
		if captureErr != nil {
			// The worker died and released the camera; press space or r
			// to reopen.
			log.Printf("Capture stopped: %v", captureErr)
			v.capturing = false
			v.cam = nil
		}
		if frame != nil {
			v.last = frame
			texture.Update(nil, unsafe.Pointer(&frame.Pix[0]), frame.Stride)
		}

		renderer.Clear()
		renderer.Copy(texture, nil, nil)
		renderer.Present()

		sdl.Delay(16)
	}
}
