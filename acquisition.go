package iidc

import "fmt"

// dmaBufferCount is the fixed size of the capture buffer ring. It bounds
// how far the hardware can run ahead before a dequeue blocks.
const dmaBufferCount = 4

// StartAcquisition allocates the DMA buffer ring and starts isochronous
// transmission. Any failure on the way funnels through the teardown
// appropriate to how far setup had progressed, so no ring or transmission
// state is left dangling; a failure forfeits the camera handle.
func (c *Camera) StartAcquisition() error {
	c.mustBeOpen()
	if err := c.drv.captureSetup(dmaBufferCount); err != nil {
		c.release()
		return fmt.Errorf("%w: %v", ErrCaptureSetup, err)
	}
	c.session = true
	return c.StartTransmission()
}

// StartTransmission turns isochronous transmission on. It is invoked as
// the second half of StartAcquisition and may be called on its own to
// resume a stopped session. On failure the capture session is torn down
// and the camera handle released.
func (c *Camera) StartTransmission() error {
	c.mustBeOpen()
	if err := c.drv.setTransmission(true); err != nil {
		_ = c.drv.captureStop()
		c.session = false
		c.release()
		return fmt.Errorf("%w: %v", ErrTransmissionStart, err)
	}
	c.transmitting = true
	return nil
}

// StopAcquisition releases the buffer ring, then stops transmission. The
// camera stays open either way: a session-stop failure is reported without
// touching transmission, and a transmission-stop failure after a successful
// session-stop does not re-attempt the session teardown.
func (c *Camera) StopAcquisition() error {
	c.mustBeOpen()
	if err := c.drv.captureStop(); err != nil {
		return fmt.Errorf("%w: %v", ErrCaptureStop, err)
	}
	c.session = false
	return c.StopTransmission()
}

// StopTransmission turns isochronous transmission off. On failure the
// handle is kept; the caller may retry or escalate to Close.
func (c *Camera) StopTransmission() error {
	c.mustBeOpen()
	if err := c.drv.setTransmission(false); err != nil {
		return fmt.Errorf("%w: %v", ErrTransmissionStop, err)
	}
	c.transmitting = false
	return nil
}
