package iidc

import "fmt"

// Speed is an isochronous transmission speed. Values match dc1394speed_t.
type Speed int

const (
	Speed100 Speed = iota
	Speed200
	Speed400
	Speed800
	Speed1600
	Speed3200
)

func (s Speed) String() string {
	switch s {
	case Speed100:
		return "100 Mbps"
	case Speed200:
		return "200 Mbps"
	case Speed400:
		return "400 Mbps"
	case Speed800:
		return "800 Mbps"
	case Speed1600:
		return "1600 Mbps"
	case Speed3200:
		return "3200 Mbps"
	default:
		return fmt.Sprintf("Speed(%d)", int(s))
	}
}

// Rate is a fixed transfer rate. Values match dc1394framerate_t, which
// starts at 32 to stay disjoint from the other IIDC enumerations.
type Rate int

const (
	Rate1_875 Rate = iota + 32
	Rate3_75
	Rate7_5
	Rate15
	Rate30
	Rate60
	Rate120
	Rate240
)

// FPS returns the nominal frames per second for the rate.
func (r Rate) FPS() float64 {
	switch r {
	case Rate1_875:
		return 1.875
	case Rate3_75:
		return 3.75
	case Rate7_5:
		return 7.5
	case Rate15:
		return 15
	case Rate30:
		return 30
	case Rate60:
		return 60
	case Rate120:
		return 120
	case Rate240:
		return 240
	default:
		return 0
	}
}

func (r Rate) String() string {
	if fps := r.FPS(); fps > 0 {
		return fmt.Sprintf("%g fps", fps)
	}
	return fmt.Sprintf("Rate(%d)", int(r))
}

// VideoMode is an IIDC video mode. Values match dc1394video_mode_t: the
// fixed format 0-2 modes start at 64, the scalable Format7 modes at 88.
type VideoMode int

const (
	VideoMode160x120YUV444 VideoMode = iota + 64
	VideoMode320x240YUV422
	VideoMode640x480YUV411
	VideoMode640x480YUV422
	VideoMode640x480RGB8
	VideoMode640x480Mono8
	VideoMode640x480Mono16
	VideoMode800x600YUV422
	VideoMode800x600RGB8
	VideoMode800x600Mono8
	VideoMode1024x768YUV422
	VideoMode1024x768RGB8
	VideoMode1024x768Mono8
	VideoMode800x600Mono16
	VideoMode1024x768Mono16
	VideoMode1280x960YUV422
	VideoMode1280x960RGB8
	VideoMode1280x960Mono8
	VideoMode1600x1200YUV422
	VideoMode1600x1200RGB8
	VideoMode1600x1200Mono8
	VideoMode1280x960Mono16
	VideoMode1600x1200Mono16
	VideoModeEXIF
	VideoModeFormat7_0
	VideoModeFormat7_1
	VideoModeFormat7_2
	VideoModeFormat7_3
	VideoModeFormat7_4
	VideoModeFormat7_5
	VideoModeFormat7_6
	VideoModeFormat7_7
)

// IsFormat7 reports whether the mode is a scalable (region-of-interest)
// mode.
func (m VideoMode) IsFormat7() bool {
	return m >= VideoModeFormat7_0 && m <= VideoModeFormat7_7
}

var videoModeNames = [...]string{
	"160x120 YUV444",
	"320x240 YUV422",
	"640x480 YUV411",
	"640x480 YUV422",
	"640x480 RGB8",
	"640x480 Mono8",
	"640x480 Mono16",
	"800x600 YUV422",
	"800x600 RGB8",
	"800x600 Mono8",
	"1024x768 YUV422",
	"1024x768 RGB8",
	"1024x768 Mono8",
	"800x600 Mono16",
	"1024x768 Mono16",
	"1280x960 YUV422",
	"1280x960 RGB8",
	"1280x960 Mono8",
	"1600x1200 YUV422",
	"1600x1200 RGB8",
	"1600x1200 Mono8",
	"1280x960 Mono16",
	"1600x1200 Mono16",
	"EXIF",
}

func (m VideoMode) String() string {
	if m.IsFormat7() {
		return fmt.Sprintf("Format7 mode %d", int(m-VideoModeFormat7_0))
	}
	if i := int(m - VideoMode160x120YUV444); i >= 0 && i < len(videoModeNames) {
		return videoModeNames[i]
	}
	return fmt.Sprintf("VideoMode(%d)", int(m))
}

// ColorCoding is a Format7 pixel coding. Values match dc1394color_coding_t.
type ColorCoding int

const (
	ColorCodingMono8 ColorCoding = iota + 352
	ColorCodingYUV411
	ColorCodingYUV422
	ColorCodingYUV444
	ColorCodingRGB8
	ColorCodingMono16
	ColorCodingRGB16
	ColorCodingMono16S
	ColorCodingRGB16S
	ColorCodingRaw8
	ColorCodingRaw16
)
