package iidc

import "sync/atomic"

// Camera is one bound IIDC camera handle. The zero value is unusable;
// handles come from Context.OpenCamera.
//
// A Camera is not internally locked. Configuration and acquisition calls
// are synchronous and must not race the capture worker: stop the worker
// (StopCaptureVideo) before reconfiguring or closing.
type Camera struct {
	guid GUID
	drv  driverCamera

	open         bool
	transmitting bool
	session      bool

	capturing   atomic.Bool
	captureDone chan struct{}
}

func (c *Camera) GUID() GUID { return c.guid }

func (c *Camera) Vendor() string {
	c.mustBeOpen()
	return c.drv.vendor()
}

func (c *Camera) Model() string {
	c.mustBeOpen()
	return c.drv.model()
}

func (c *Camera) IsOpen() bool { return c.open }

// IsTransmitting reports whether isochronous transmission is on, i.e.
// frames are being produced onto the bus.
func (c *Camera) IsTransmitting() bool { return c.transmitting }

// SupportedModes returns the video modes the camera reports.
func (c *Camera) SupportedModes() ([]VideoMode, error) {
	c.mustBeOpen()
	return c.drv.supportedModes()
}

// SupportedRates returns the fixed frame rates the camera reports for the
// given mode. Format7 modes have no fixed rates.
func (c *Camera) SupportedRates(mode VideoMode) ([]Rate, error) {
	c.mustBeOpen()
	return c.drv.supportedRates(mode)
}

// Close releases the camera handle. If transmission is still on, the full
// acquisition stop sequence runs first; its errors do not prevent the
// release, so the handle is never left in limbo. Closing a closed camera
// is a no-op.
func (c *Camera) Close() error {
	if !c.open {
		return nil
	}
	if c.transmitting {
		// Best effort: a failed stop must not leak the handle.
		_ = c.StopAcquisition()
	}
	if c.open {
		c.release()
	}
	return nil
}

// release frees the driver handle and resets every state flag. Called on
// Close and on the failure paths that forfeit the handle.
func (c *Camera) release() {
	c.drv.free()
	c.open = false
	c.transmitting = false
	c.session = false
}

func (c *Camera) mustBeOpen() {
	if !c.open {
		panic("iidc: operation on a closed camera")
	}
}
