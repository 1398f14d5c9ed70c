// Package formats holds the pixel formats exchanged with IIDC cameras and
// the conversions between them.
package formats

import (
	"image"
	"image/color"
)

// BGR is an in-memory image whose pixels are packed B, G, R bytes, the
// channel order display surfaces and most vision libraries consume.
type BGR struct {
	// Pix holds the image's pixels, in B, G, R order. The pixel at
	// (x, y) starts at Pix[(y-Rect.Min.Y)*Stride + (x-Rect.Min.X)*3].
	Pix []uint8
	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int
	// Rect is the image's bounds.
	Rect image.Rectangle
}

var _ image.Image = &BGR{}

// NewBGR returns a BGR image with the given bounds.
func NewBGR(r image.Rectangle) *BGR {
	return &BGR{
		Pix:    make([]uint8, 3*r.Dx()*r.Dy()),
		Stride: 3 * r.Dx(),
		Rect:   r,
	}
}

func (p *BGR) ColorModel() color.Model { return color.RGBAModel }

func (p *BGR) Bounds() image.Rectangle { return p.Rect }

func (p *BGR) At(x, y int) color.Color {
	return p.RGBAAt(x, y)
}

func (p *BGR) RGBAAt(x, y int) color.RGBA {
	if !(image.Point{x, y}.In(p.Rect)) {
		return color.RGBA{}
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+3 : i+3] // Small cap improves performance, see https://golang.org/issue/27857
	return color.RGBA{s[2], s[1], s[0], 0xFF}
}

// PixOffset returns the index of the first element of Pix that corresponds to
// the pixel at (x, y).
func (p *BGR) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*3
}

// RGBA returns a copy of the image in the stdlib RGBA layout, for encoders
// and renderers that want premultiplied 4-channel pixels.
func (p *BGR) RGBA() *image.RGBA {
	dst := image.NewRGBA(p.Rect)
	for y := p.Rect.Min.Y; y < p.Rect.Max.Y; y++ {
		si := p.PixOffset(p.Rect.Min.X, y)
		di := dst.PixOffset(p.Rect.Min.X, y)
		for x := p.Rect.Min.X; x < p.Rect.Max.X; x++ {
			dst.Pix[di+0] = p.Pix[si+2]
			dst.Pix[di+1] = p.Pix[si+1]
			dst.Pix[di+2] = p.Pix[si+0]
			dst.Pix[di+3] = 0xFF
			si += 3
			di += 4
		}
	}
	return dst
}

// BGRFromRGB reorders a packed RGB8 buffer, the layout IIDC cameras
// deliver, into a freshly allocated BGR image of identical dimensions. The
// source buffer is only read, never retained.
func BGRFromRGB(src []byte, width, height int) *BGR {
	dst := NewBGR(image.Rect(0, 0, width, height))
	n := width * height * 3
	for i := 0; i+2 < n; i += 3 {
		dst.Pix[i+0] = src[i+2]
		dst.Pix[i+1] = src[i+1]
		dst.Pix[i+2] = src[i+0]
	}
	return dst
}
