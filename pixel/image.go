package pixel

import (
	"encoding/binary"
	"image"
	"image/color"

	"github.com/BeatGlow/bootfb/draw"
)

type Image interface {
	draw.Image

	// Clear the image.
	Clear()

	// Fill the image with a single color.
	Fill(color.Color)
}

// Buffer holds the pixel values and is a container that is used by most image formats in this package.
type Buffer struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the image pixels.
	Pix []byte

	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int
}

func (p *Buffer) Bounds() image.Rectangle {
	return p.Rect
}

func (p *Buffer) Clear() {
	clear(p.Pix)
}

// RGB32Image is a 32-bits per pixel image with a configurable channel layout.
//
// Pix is not owned by the image; it is typically a framebuffer surface.
type RGB32Image struct {
	Buffer
	Layout Layout
	Order  binary.ByteOrder
}

// NewRGB32Image allocates an image with the XRGB8888 layout.
func NewRGB32Image(w, h int) *RGB32Image {
	return &RGB32Image{
		Buffer: Buffer{
			Rect:   image.Rect(0, 0, w, h),
			Pix:    make([]byte, w*4*h),
			Stride: w * 4,
		},
		Layout: XRGB8888,
		Order:  binary.NativeEndian,
	}
}

// ColorModel returns a model that quantizes colors to the image layout.
func (p *RGB32Image) ColorModel() color.Model {
	return p.Layout.Model()
}

func (p *RGB32Image) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*4
}

func (p *RGB32Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}
	return p.Layout.Decode(p.Order.Uint32(p.Pix[p.PixOffset(x, y):]))
}

func (p *RGB32Image) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}
	p.Order.PutUint32(p.Pix[p.PixOffset(x, y):], p.Layout.Encode(c))
}

func (p *RGB32Image) Fill(c color.Color) {
	var (
		word = make([]byte, 4)
		w    = p.Rect.Dx() * 4
	)
	p.Order.PutUint32(word, p.Layout.Encode(c))
	for y := 0; y < p.Rect.Dy(); y++ {
		row := p.Pix[y*p.Stride : y*p.Stride+w]
		for i := 0; i < len(row); i += 4 {
			copy(row[i:], word)
		}
	}
}

// Interface checks.
var (
	_ Image = (*RGB32Image)(nil)
)
