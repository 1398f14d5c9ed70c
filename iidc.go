package iidc

import "fmt"

// GUID is the 64-bit EUI-64 identifier of an IIDC camera. It stays valid
// across enumerations as long as the device remains on the bus.
type GUID uint64

func (g GUID) String() string {
	return fmt.Sprintf("%016x", uint64(g))
}

// Context owns the process-wide connection to the IIDC subsystem. Create
// one per process, close it after every camera has been closed.
type Context struct {
	drv driver
}

func NewContext() (*Context, error) {
	drv, err := newPlatformDriver()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInitialization, err)
	}
	return &Context{drv: drv}, nil
}

// ListDevices enumerates attached cameras in bus order. An empty bus is a
// valid empty result.
func (c *Context) ListDevices() ([]GUID, error) {
	guids, err := c.drv.enumerate()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnumeration, err)
	}
	return guids, nil
}

// OpenCamera binds a handle to the camera with the given GUID. The handle
// is exclusively owned by the caller until Close.
func (c *Context) OpenCamera(guid GUID) (*Camera, error) {
	drv, err := c.drv.open(guid)
	if err != nil {
		return nil, fmt.Errorf("%w: guid %s: %v", ErrDeviceOpen, guid, err)
	}
	return &Camera{guid: guid, drv: drv, open: true}, nil
}

// Close releases the subsystem handle. It must be the last operation on the
// context; every camera opened through it has to be closed first.
func (c *Context) Close() error {
	c.drv.free()
	return nil
}
