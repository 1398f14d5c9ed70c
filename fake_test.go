package iidc

import (
	"errors"
	"sync"

	"github.com/y3nr1ng/go-iidc/pkg/formats"
)

// fakeDriver stands in for libdc1394 so the state machine can be exercised
// without a FireWire adapter.
type fakeDriver struct {
	guids   []GUID
	enumErr error
	cameras map[GUID]*fakeCamera
	freed   bool
}

func (d *fakeDriver) enumerate() ([]GUID, error) {
	if d.enumErr != nil {
		return nil, d.enumErr
	}
	return d.guids, nil
}

func (d *fakeDriver) open(guid GUID) (driverCamera, error) {
	cam, ok := d.cameras[guid]
	if !ok {
		return nil, errors.New("node not found on bus")
	}
	return cam, nil
}

func (d *fakeDriver) free() { d.freed = true }

// fakeCamera is a scripted driverCamera. Error fields inject failures for
// individual driver calls; counters and the op log record what the state
// machine actually did.
type fakeCamera struct {
	mu sync.Mutex

	speedErr   error
	roiErr     error
	rateErr    error
	setupErr   error
	stopErr    error
	txOnErr    error
	txOffErr   error
	dequeueErr error
	enqueueErr error

	// maxFrames > 0 makes dequeue fail once that many frames were
	// produced, emulating a ring that died mid-stream.
	maxFrames int

	width, height int

	transmission bool
	sessionUp    bool
	freed        bool

	dequeued, enqueued int
	captureStops       int

	ops []string
}

func newFakeCamera() *fakeCamera {
	return &fakeCamera{width: 4, height: 2}
}

// newFakeContext wires a Context around fake hardware with the given
// cameras attached.
func newFakeContext(cams map[GUID]*fakeCamera) (*Context, *fakeDriver) {
	drv := &fakeDriver{cameras: cams}
	for guid := range cams {
		drv.guids = append(drv.guids, guid)
	}
	return &Context{drv: drv}, drv
}

func (f *fakeCamera) record(op string) {
	f.ops = append(f.ops, op)
}

func (f *fakeCamera) opLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.ops...)
}

func (f *fakeCamera) vendor() string { return "ACME" }
func (f *fakeCamera) model() string  { return "Looker 1394" }

func (f *fakeCamera) supportedModes() ([]VideoMode, error) {
	return []VideoMode{VideoMode640x480RGB8, VideoModeFormat7_4}, nil
}

func (f *fakeCamera) supportedRates(mode VideoMode) ([]Rate, error) {
	return []Rate{Rate15, Rate30}, nil
}

func (f *fakeCamera) setISOSpeed(speed Speed) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("iso_speed")
	return f.speedErr
}

func (f *fakeCamera) setROI(mode VideoMode, coding ColorCoding, left, top, width, height int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("roi")
	if f.roiErr != nil {
		return f.roiErr
	}
	f.width, f.height = width, height
	return nil
}

func (f *fakeCamera) setRate(rate Rate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("framerate")
	return f.rateErr
}

func (f *fakeCamera) captureSetup(bufferCount int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("capture_setup")
	if f.setupErr != nil {
		return f.setupErr
	}
	f.sessionUp = true
	return nil
}

func (f *fakeCamera) captureStop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("capture_stop")
	f.captureStops++
	if f.stopErr != nil {
		return f.stopErr
	}
	f.sessionUp = false
	return nil
}

func (f *fakeCamera) setTransmission(on bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if on {
		f.record("transmission_on")
		if f.txOnErr != nil {
			return f.txOnErr
		}
	} else {
		f.record("transmission_off")
		if f.txOffErr != nil {
			return f.txOffErr
		}
	}
	f.transmission = on
	return nil
}

func (f *fakeCamera) dequeue() (*nativeFrame, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.dequeueErr != nil {
		return nil, f.dequeueErr
	}
	if f.maxFrames > 0 && f.dequeued >= f.maxFrames {
		return nil, errors.New("ring drained")
	}
	f.dequeued++
	data := make([]byte, f.width*f.height*3)
	// Sequence number in the red channel of the first pixel, so the
	// converted frame carries it at RGBAAt(0, 0).R.
	data[0] = byte(f.dequeued)
	return &nativeFrame{width: f.width, height: f.height, data: data}, nil
}

func (f *fakeCamera) enqueue(*nativeFrame) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.enqueueErr != nil {
		return f.enqueueErr
	}
	f.enqueued++
	return nil
}

func (f *fakeCamera) free() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.freed = true
}

func (f *fakeCamera) counts() (dequeued, enqueued int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dequeued, f.enqueued
}

func (f *fakeCamera) isFreed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.freed
}

// recordingSink collects everything the capture worker delivers.
type recordingSink struct {
	mu     sync.Mutex
	frames []*formats.BGR
	errs   []error

	// delivered gets one tick per ShowImage call; failed closes on the
	// first CaptureError.
	delivered chan struct{}
	failed    chan struct{}
}

func newRecordingSink() *recordingSink {
	return &recordingSink{
		delivered: make(chan struct{}, 1024),
		failed:    make(chan struct{}),
	}
}

func (s *recordingSink) ShowImage(img *formats.BGR) {
	s.mu.Lock()
	s.frames = append(s.frames, img)
	s.mu.Unlock()
	s.delivered <- struct{}{}
}

func (s *recordingSink) CaptureError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.errs) == 0 {
		close(s.failed)
	}
	s.errs = append(s.errs, err)
}

func (s *recordingSink) snapshot() ([]*formats.BGR, []error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*formats.BGR(nil), s.frames...), append([]error(nil), s.errs...)
}
