package iidc

/*
#cgo LDFLAGS: -ldc1394
#include <dc1394/dc1394.h>
#include <stdlib.h>
*/
import "C"
import (
	"fmt"
	"unsafe"
)

func newPlatformDriver() (driver, error) {
	h := C.dc1394_new()
	if h == nil {
		return nil, fmt.Errorf("dc1394_new failed")
	}
	return &dc1394Driver{handle: h}, nil
}

func dc1394error(code C.dc1394error_t) error {
	return fmt.Errorf("%s", C.GoString(C.dc1394_error_get_string(code)))
}

type dc1394Driver struct {
	handle *C.dc1394_t
}

func (d *dc1394Driver) enumerate() ([]GUID, error) {
	var list *C.dc1394camera_list_t
	if ret := C.dc1394_camera_enumerate(d.handle, &list); ret != C.DC1394_SUCCESS {
		return nil, dc1394error(ret)
	}
	defer C.dc1394_camera_free_list(list)

	guids := make([]GUID, 0, int(list.num))
	if list.num > 0 {
		ids := (*[1 << 20]C.dc1394camera_id_t)(unsafe.Pointer(list.ids))[:list.num]
		for _, id := range ids {
			guids = append(guids, GUID(id.guid))
		}
	}
	return guids, nil
}

func (d *dc1394Driver) open(guid GUID) (driverCamera, error) {
	cam := C.dc1394_camera_new(d.handle, C.uint64_t(guid))
	if cam == nil {
		return nil, fmt.Errorf("dc1394_camera_new failed")
	}
	return &dc1394Camera{cam: cam}, nil
}

func (d *dc1394Driver) free() {
	C.dc1394_free(d.handle)
}

type dc1394Camera struct {
	cam *C.dc1394camera_t
}

func (c *dc1394Camera) vendor() string { return C.GoString(c.cam.vendor) }
func (c *dc1394Camera) model() string  { return C.GoString(c.cam.model) }

func (c *dc1394Camera) supportedModes() ([]VideoMode, error) {
	var modes C.dc1394video_modes_t
	if ret := C.dc1394_video_get_supported_modes(c.cam, &modes); ret != C.DC1394_SUCCESS {
		return nil, dc1394error(ret)
	}
	out := make([]VideoMode, 0, int(modes.num))
	for i := 0; i < int(modes.num); i++ {
		out = append(out, VideoMode(modes.modes[i]))
	}
	return out, nil
}

func (c *dc1394Camera) supportedRates(mode VideoMode) ([]Rate, error) {
	var rates C.dc1394framerates_t
	if ret := C.dc1394_video_get_supported_framerates(c.cam, C.dc1394video_mode_t(mode), &rates); ret != C.DC1394_SUCCESS {
		return nil, dc1394error(ret)
	}
	out := make([]Rate, 0, int(rates.num))
	for i := 0; i < int(rates.num); i++ {
		out = append(out, Rate(rates.framerates[i]))
	}
	return out, nil
}

func (c *dc1394Camera) setISOSpeed(speed Speed) error {
	if ret := C.dc1394_video_set_iso_speed(c.cam, C.dc1394speed_t(speed)); ret != C.DC1394_SUCCESS {
		return dc1394error(ret)
	}
	return nil
}

func (c *dc1394Camera) setROI(mode VideoMode, coding ColorCoding, left, top, width, height int) error {
	if ret := C.dc1394_format7_set_roi(
		c.cam,
		C.dc1394video_mode_t(mode),
		C.dc1394color_coding_t(coding),
		C.int32_t(C.DC1394_USE_MAX_AVAIL), /* packet_size */
		C.int32_t(left), C.int32_t(top),
		C.int32_t(width), C.int32_t(height),
	); ret != C.DC1394_SUCCESS {
		return dc1394error(ret)
	}
	return nil
}

func (c *dc1394Camera) setRate(rate Rate) error {
	if ret := C.dc1394_video_set_framerate(c.cam, C.dc1394framerate_t(rate)); ret != C.DC1394_SUCCESS {
		return dc1394error(ret)
	}
	return nil
}

func (c *dc1394Camera) captureSetup(bufferCount int) error {
	if ret := C.dc1394_capture_setup(c.cam, C.uint32_t(bufferCount), C.DC1394_CAPTURE_FLAGS_DEFAULT); ret != C.DC1394_SUCCESS {
		return dc1394error(ret)
	}
	return nil
}

func (c *dc1394Camera) captureStop() error {
	if ret := C.dc1394_capture_stop(c.cam); ret != C.DC1394_SUCCESS {
		return dc1394error(ret)
	}
	return nil
}

func (c *dc1394Camera) setTransmission(on bool) error {
	pwr := C.dc1394switch_t(C.DC1394_OFF)
	if on {
		pwr = C.dc1394switch_t(C.DC1394_ON)
	}
	if ret := C.dc1394_video_set_transmission(c.cam, pwr); ret != C.DC1394_SUCCESS {
		return dc1394error(ret)
	}
	return nil
}

func (c *dc1394Camera) dequeue() (*nativeFrame, error) {
	var fr *C.dc1394video_frame_t
	if ret := C.dc1394_capture_dequeue(c.cam, C.DC1394_CAPTURE_POLICY_WAIT, &fr); ret != C.DC1394_SUCCESS {
		return nil, dc1394error(ret)
	}
	w, h := int(fr.size[0]), int(fr.size[1])
	n := w * h * 3 // packed RGB8
	return &nativeFrame{
		width:  w,
		height: h,
		data:   (*[1 << 30]byte)(unsafe.Pointer(fr.image))[:n:n],
		ref:    unsafe.Pointer(fr),
	}, nil
}

func (c *dc1394Camera) enqueue(f *nativeFrame) error {
	if ret := C.dc1394_capture_enqueue(c.cam, (*C.dc1394video_frame_t)(f.ref)); ret != C.DC1394_SUCCESS {
		return dc1394error(ret)
	}
	return nil
}

func (c *dc1394Camera) free() {
	C.dc1394_camera_free(c.cam)
}
