package pixel

import (
	"encoding/binary"
	"image"
	"image/color"
	"math/rand"
	"testing"
)

func TestRGB32Image(t *testing.T) {
	testImage(t, func(size image.Point) Image {
		return NewRGB32Image(size.X, size.Y)
	})
}

func TestRGB32ImageLayouts(t *testing.T) {
	layouts := map[string]Layout{
		"XRGB8888": XRGB8888,
		"ARGB8888": ARGB8888,
		"XBGR8888": XBGR8888,
		"RGB565in32": {
			Red:   Channel{Offset: 11, Length: 5},
			Green: Channel{Offset: 5, Length: 6},
			Blue:  Channel{Offset: 0, Length: 5},
		},
	}
	for name, layout := range layouts {
		t.Run(name, func(it *testing.T) {
			testImage(it, func(size image.Point) Image {
				i := NewRGB32Image(size.X, size.Y)
				i.Layout = layout
				return i
			})
		})
	}
}

func TestRGB32ImagePadded(t *testing.T) {
	// Stride larger than the visible width, as reported by many fbdev drivers.
	i := &RGB32Image{
		Buffer: Buffer{
			Rect:   image.Rect(0, 0, 3, 2),
			Pix:    make([]byte, 16*2),
			Stride: 16,
		},
		Layout: XRGB8888,
		Order:  binary.LittleEndian,
	}
	i.Fill(color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xff})
	for y := 0; y < 2; y++ {
		row := i.Pix[y*16:]
		for x := 0; x < 3; x++ {
			if v := binary.LittleEndian.Uint32(row[x*4:]); v != 0x00112233 {
				t.Errorf("pixel (%d,%d) is %#08x, expected %#08x", x, y, v, 0x00112233)
			}
		}
		for j := 12; j < 16; j++ {
			if row[j] != 0 {
				t.Fatalf("padding byte %d of row %d was written", j, y)
			}
		}
	}
}

func TestLayoutEncode(t *testing.T) {
	c := color.RGBA{R: 0xff, G: 0x80, B: 0x01, A: 0xff}
	tests := []struct {
		Name   string
		Layout Layout
		Want   uint32
	}{
		{"XRGB8888", XRGB8888, 0x00ff8001},
		{"ARGB8888", ARGB8888, 0xffff8001},
		{"XBGR8888", XBGR8888, 0x000180ff},
	}
	for _, test := range tests {
		if v := test.Layout.Encode(c); v != test.Want {
			t.Errorf("%s: expected %#08x, got %#08x", test.Name, test.Want, v)
		}
	}
}

func TestChannelDecode(t *testing.T) {
	for length := uint8(1); length <= 8; length++ {
		ch := Channel{Length: length}
		full := uint32(1)<<length - 1
		if v := ch.decode(full); v != 0xff {
			t.Errorf("%d-bit channel: expected full scale to decode to 0xff, got %#02x", length, v)
		}
		if v := ch.decode(0); v != 0 {
			t.Errorf("%d-bit channel: expected zero to decode to 0x00, got %#02x", length, v)
		}
	}
}

func testImage(t *testing.T, f func(image.Point) Image) {
	t.Helper()
	testCases := []image.Point{
		{},
		image.Pt(1, 1),
		image.Pt(2, 2),
		image.Pt(256, 32),
		image.Pt(64, 48),
	}
	for _, test := range testCases {
		t.Run(test.String(), func(it *testing.T) {
			i := f(test)

			if v := i.Bounds().Size(); !v.Eq(test) {
				it.Errorf("expected image size %s, got %s", test, v)
			}

			it.Run("in-bounds", func(itt *testing.T) {
				for y := 0; y < test.Y; y++ {
					for x := 0; x < test.X; x++ {
						c := testRandomColor()
						i.Set(x, y, c)
						if v := i.ColorModel().Convert(c); i.At(x, y) != v {
							itt.Fatalf("pixel (%d,%d) is %#+v, expected %#+v (%v)", x, y, i.At(x, y), v, c)
							return
						}
					}
				}
			})

			it.Run("in-bounds-matching-model", func(itt *testing.T) {
				for y := 0; y < test.Y; y++ {
					for x := 0; x < test.X; x++ {
						c := i.ColorModel().Convert(testRandomColor())
						i.Set(x, y, c)
						if i.At(x, y) != c {
							itt.Fatalf("pixel (%d,%d) is %#+v, expected %#+v", x, y, i.At(x, y), c)
							return
						}
					}
				}
			})

			it.Run("out-bounds", func(itt *testing.T) {
				for y := -test.Y; y < test.Y*2; y++ {
					for x := -test.X; x < test.X*2; x++ {
						i.Set(x, y, testRandomColor())
						if x < 0 || y < 0 {
							if v := i.At(x, y); v != color.Transparent {
								itt.Fatalf("pixel (%d,%d) is %#+v, expected transparent", x, y, v)
								return
							}
						}
					}
				}
			})

			it.Run("fill", func(itt *testing.T) {
				c := testRandomColor()
				i.Fill(c)
				if test.X > 0 && test.Y > 0 {
					x := rand.Intn(test.X)
					y := rand.Intn(test.Y)
					if v := i.ColorModel().Convert(c); i.At(x, y) != v {
						itt.Fatalf("pixel (%d,%d) is %#+v, expected %#+v (%v)", x, y, i.At(x, y), v, c)
						return
					}
				}
			})

			it.Run("clear", func(itt *testing.T) {
				i.Clear()
				if test.X > 0 && test.Y > 0 {
					x := rand.Intn(test.X)
					y := rand.Intn(test.Y)
					if r, g, b, _ := i.At(x, y).RGBA(); r|g|b != 0 {
						itt.Fatalf("pixel (%d,%d) is not black", x, y)
					}
				}
			})
		})
	}
}

func testRandomColor() color.Color {
	return color.RGBA{
		R: uint8(rand.Intn(255)),
		G: uint8(rand.Intn(255)),
		B: uint8(rand.Intn(255)),
		A: 0xFF,
	}
}
