package iidc

import (
	"fmt"
	"time"

	"github.com/y3nr1ng/go-iidc/pkg/formats"
)

// FrameSink consumes converted frames. ShowImage runs on the capture
// worker goroutine, once per frame in dequeue order; a slow sink throttles
// the whole pipeline.
type FrameSink interface {
	ShowImage(*formats.BGR)
}

// CaptureErrorHandler may additionally be implemented by a FrameSink to
// receive the error that killed the capture worker. StartCaptureVideo
// returns before the worker runs, so a grab failure inside the loop cannot
// surface synchronously; this is the out-of-band path.
type CaptureErrorHandler interface {
	CaptureError(error)
}

// captureInterval caps the capture worker at roughly 30 fps.
const captureInterval = 33 * time.Millisecond

// GrabFrame blocks until the DMA ring hands over a frame, converts it to
// BGR and returns the freshly allocated result. The borrowed driver buffer
// is back on the ring before GrabFrame returns. If the dequeue or enqueue
// fails, the session is torn down and the camera released; the caller must
// treat the handle as closed.
func (c *Camera) GrabFrame() (*formats.BGR, error) {
	c.mustBeOpen()

	nf, err := c.drv.dequeue()
	if err != nil {
		c.teardown()
		return nil, fmt.Errorf("%w: dequeue: %v", ErrFrameGrab, err)
	}

	img := formats.BGRFromRGB(nf.data, nf.width, nf.height)

	if err := c.drv.enqueue(nf); err != nil {
		c.teardown()
		return nil, fmt.Errorf("%w: enqueue: %v", ErrFrameGrab, err)
	}
	return img, nil
}

// teardown is the frame pipeline's failure path: stop the session, stop
// transmission, forfeit the handle. The driver reclaims any buffer still
// borrowed when the session goes away.
func (c *Camera) teardown() {
	_ = c.drv.captureStop()
	_ = c.drv.setTransmission(false)
	c.release()
}

// StartCaptureVideo spawns the capture worker: GrabFrame, hand the result
// to sink, sleep, repeat until StopCaptureVideo. Exactly one worker may
// exist per camera; starting a second one is a caller bug and panics.
//
// A grab failure terminates the worker and, if sink implements
// CaptureErrorHandler, reports the error there.
func (c *Camera) StartCaptureVideo(sink FrameSink) {
	c.mustBeOpen()
	if !c.capturing.CompareAndSwap(false, true) {
		panic("iidc: capture worker already running")
	}
	c.captureDone = make(chan struct{})
	go c.captureLoop(sink)
}

func (c *Camera) captureLoop(sink FrameSink) {
	defer close(c.captureDone)
	for c.capturing.Load() {
		img, err := c.GrabFrame()
		if err != nil {
			c.capturing.Store(false)
			if h, ok := sink.(CaptureErrorHandler); ok {
				h.CaptureError(err)
			}
			return
		}
		sink.ShowImage(img)
		// TODO: Limit the refresh rate by probing the camera configuration first.
		time.Sleep(captureInterval)
	}
}

// StopCaptureVideo clears the running flag and waits for the worker to
// exit. No sink call happens after it returns. Shutdown latency is bounded
// by one frame wait: the worker may be blocked inside GrabFrame and only
// observes the flag once per iteration.
func (c *Camera) StopCaptureVideo() {
	c.capturing.Store(false)
	if c.captureDone != nil {
		<-c.captureDone
		c.captureDone = nil
	}
}
