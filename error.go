package iidc

import "errors"

// Every failure returned by this package wraps one of these sentinels, so
// callers can classify with errors.Is without parsing messages.
var (
	// ErrInitialization means the dc1394 subsystem could not be reached,
	// e.g. no supported host adapter.
	ErrInitialization = errors.New("failed to initialize the IIDC subsystem")

	// ErrEnumeration means the bus enumeration query itself failed. Zero
	// attached cameras is not an error.
	ErrEnumeration = errors.New("failed to enumerate cameras")

	// ErrDeviceOpen means the driver could not bind a camera handle to the
	// requested GUID, e.g. the device was unplugged after enumeration.
	ErrDeviceOpen = errors.New("failed to open camera")

	// ErrInvalidParameter is returned for a nil or out-of-range
	// configuration parameter, before any driver call is made.
	ErrInvalidParameter = errors.New("invalid camera parameter")

	ErrUnsupportedSpeed     = errors.New("failed to switch bus speed")
	ErrUnsupportedRegion    = errors.New("failed to set region of interest")
	ErrUnsupportedFrameRate = errors.New("failed to update frame rate")

	ErrCaptureSetup      = errors.New("failed to start the acquisition session")
	ErrTransmissionStart = errors.New("failed to start isochronous transmission")
	ErrCaptureStop       = errors.New("failed to stop the acquisition session")
	ErrTransmissionStop  = errors.New("failed to stop isochronous transmission")

	// ErrFrameGrab means a dequeue or enqueue on the DMA ring failed. The
	// session has been torn down and the camera released; reopen to recover.
	ErrFrameGrab = errors.New("failed to grab a frame")
)
