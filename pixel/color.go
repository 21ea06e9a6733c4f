package pixel

import "image/color"

// Channel is the bit position of a color component within a 32-bit pixel.
type Channel struct {
	Offset uint8
	Length uint8
}

func (ch Channel) encode(v uint32) uint32 {
	if ch.Length == 0 {
		return 0
	}
	return (v >> (16 - uint32(ch.Length))) << ch.Offset
}

func (ch Channel) decode(p uint32) uint8 {
	if ch.Length == 0 {
		return 0
	}
	v := (p >> ch.Offset) & (1<<ch.Length - 1)
	// Replicate the high bits into the low bits.
	v <<= 8 - uint32(ch.Length)
	for n := uint32(ch.Length); n < 8; n *= 2 {
		v |= v >> n
	}
	return uint8(v)
}

// Layout describes where each color component lives in a 32-bit pixel.
//
// Channels longer than 8 bits are not supported.
type Layout struct {
	Red, Green, Blue, Alpha Channel
}

// Common layouts.
var (
	XRGB8888 = Layout{
		Red:   Channel{Offset: 16, Length: 8},
		Green: Channel{Offset: 8, Length: 8},
		Blue:  Channel{Offset: 0, Length: 8},
	}
	ARGB8888 = Layout{
		Red:   Channel{Offset: 16, Length: 8},
		Green: Channel{Offset: 8, Length: 8},
		Blue:  Channel{Offset: 0, Length: 8},
		Alpha: Channel{Offset: 24, Length: 8},
	}
	XBGR8888 = Layout{
		Red:   Channel{Offset: 0, Length: 8},
		Green: Channel{Offset: 8, Length: 8},
		Blue:  Channel{Offset: 16, Length: 8},
	}
)

// Encode a color into a pixel value.
func (l Layout) Encode(c color.Color) uint32 {
	r, g, b, a := c.RGBA()
	return l.Red.encode(r) | l.Green.encode(g) | l.Blue.encode(b) | l.Alpha.encode(a)
}

// Decode a pixel value. Without an alpha channel, the color is opaque.
func (l Layout) Decode(p uint32) color.RGBA {
	c := color.RGBA{
		R: l.Red.decode(p),
		G: l.Green.decode(p),
		B: l.Blue.decode(p),
		A: 0xff,
	}
	if l.Alpha.Length > 0 {
		c.A = l.Alpha.decode(p)
	}
	return c
}

// Model returns a color model that quantizes to this layout.
func (l Layout) Model() color.Model {
	return color.ModelFunc(func(c color.Color) color.Color {
		return l.Decode(l.Encode(c))
	})
}
