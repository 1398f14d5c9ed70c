package iidc

import "fmt"

// Parameter is one camera setting applied by ApplyParameters. The concrete
// types are BusSpeed, Resolution and FrameRate; the interface is sealed.
type Parameter interface {
	validate() error
	apply(c *Camera) error
}

// BusSpeed selects the isochronous transmission speed.
type BusSpeed Speed

func (p BusSpeed) validate() error {
	if Speed(p) < Speed100 || Speed(p) > Speed3200 {
		return fmt.Errorf("%w: bus speed %d", ErrInvalidParameter, int(p))
	}
	return nil
}

func (p BusSpeed) apply(c *Camera) error {
	if err := c.drv.setISOSpeed(Speed(p)); err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedSpeed, err)
	}
	return nil
}

// Resolution selects a region of interest in Format7 mode 4 with RGB8
// coding and the maximum available packet size. A rejected region forfeits
// the camera handle; the caller must reopen.
type Resolution struct {
	Left, Top     int
	Width, Height int
}

func (p Resolution) validate() error {
	if p.Left < 0 || p.Top < 0 || p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: region %dx%d+%d+%d", ErrInvalidParameter, p.Width, p.Height, p.Left, p.Top)
	}
	return nil
}

func (p Resolution) apply(c *Camera) error {
	err := c.drv.setROI(VideoModeFormat7_4, ColorCodingRGB8, p.Left, p.Top, p.Width, p.Height)
	if err != nil {
		c.release()
		return fmt.Errorf("%w: %v", ErrUnsupportedRegion, err)
	}
	return nil
}

// FrameRate selects one of the fixed transfer rates. A rejected rate
// forfeits the camera handle; the caller must reopen.
type FrameRate Rate

func (p FrameRate) validate() error {
	if Rate(p) < Rate1_875 || Rate(p) > Rate240 {
		return fmt.Errorf("%w: frame rate %d", ErrInvalidParameter, int(p))
	}
	return nil
}

func (p FrameRate) apply(c *Camera) error {
	if err := c.drv.setRate(Rate(p)); err != nil {
		c.release()
		return fmt.Errorf("%w: %v", ErrUnsupportedFrameRate, err)
	}
	return nil
}

// ApplyParameters forces the camera into a configurable state and applies
// the parameters in order, stopping at the first failure. Transmission and
// any capture session are halted unconditionally first, so the camera is
// always left non-transmitting, whatever it was doing on entry.
func (c *Camera) ApplyParameters(params ...Parameter) error {
	c.mustBeOpen()

	// Not a precondition check: halting is the defined behavior, and a
	// camera that was already stopped reports a harmless error here.
	_ = c.drv.setTransmission(false)
	_ = c.drv.captureStop()
	c.transmitting = false
	c.session = false

	for _, p := range params {
		if p == nil {
			return fmt.Errorf("%w: nil parameter", ErrInvalidParameter)
		}
		if err := p.validate(); err != nil {
			return err
		}
		if err := p.apply(c); err != nil {
			return err
		}
	}
	return nil
}
