package iidc

import "unsafe"

// driver is the boundary between this package and the dc1394 library. The
// cgo implementation lives in dc1394.go; unit tests substitute their own.
type driver interface {
	// enumerate returns the GUIDs of attached cameras in bus order. An
	// empty bus yields an empty slice, not an error.
	enumerate() ([]GUID, error)

	// open binds a camera handle to the given GUID.
	open(guid GUID) (driverCamera, error)

	// free releases the subsystem handle. Must be the last call on the
	// driver, after all cameras have been freed.
	free()
}

// driverCamera is one bound camera handle. Calls map one-to-one onto the
// dc1394 camera API.
type driverCamera interface {
	vendor() string
	model() string

	supportedModes() ([]VideoMode, error)
	supportedRates(mode VideoMode) ([]Rate, error)

	setISOSpeed(speed Speed) error
	setROI(mode VideoMode, coding ColorCoding, left, top, width, height int) error
	setRate(rate Rate) error

	captureSetup(bufferCount int) error
	captureStop() error
	setTransmission(on bool) error

	// dequeue blocks until the DMA ring hands over a filled buffer. The
	// buffer stays owned by the driver and must be returned with enqueue.
	dequeue() (*nativeFrame, error)
	enqueue(*nativeFrame) error

	// free releases the camera handle unconditionally.
	free()
}

// nativeFrame is one borrowed DMA buffer. data aliases driver memory and is
// only valid until the frame is enqueued again.
type nativeFrame struct {
	width, height int
	data          []byte // packed RGB8

	// ref is the driver's own frame record, handed back on enqueue.
	ref unsafe.Pointer
}
