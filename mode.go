package bootfb

import (
	"fmt"
	"image"
)

// Channel is the position of a color channel in a pixel, in bits.
type Channel struct {
	Offset int
	Length int
}

// Mode is the negotiated pixel geometry and layout.
type Mode struct {
	Width        int
	Height       int
	BitsPerPixel int

	// Stride is the distance in bytes between vertically adjacent pixels.
	Stride int

	Red, Green, Blue, Alpha Channel
}

// ModeOf returns the mode described by the variable and fixed screen info.
func ModeOf(vi *VarScreenInfo, fi *FixScreenInfo) Mode {
	return Mode{
		Width:        int(vi.Xres),
		Height:       int(vi.Yres),
		BitsPerPixel: int(vi.BitsPerPixel),
		Stride:       int(fi.LineLength),
		Red:          channelOf(vi.Red),
		Green:        channelOf(vi.Green),
		Blue:         channelOf(vi.Blue),
		Alpha:        channelOf(vi.Alpha),
	}
}

func channelOf(f BitField) Channel {
	return Channel{Offset: int(f.Offset), Length: int(f.Length)}
}

// Size is the surface byte length.
func (m Mode) Size() int {
	return m.Height * m.Stride
}

// Bounds of the visible area.
func (m Mode) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Width, m.Height)
}

func (m Mode) String() string {
	return fmt.Sprintf("%dx%d @ %dbpp (stride %d)", m.Width, m.Height, m.BitsPerPixel, m.Stride)
}
