// Package framebuffer implements double-buffered backends for the operating
// system's native framebuffer.
//
// This requires framebuffer device support in the operating system. A backend can
// be created with [New] and opened on any [bootfb.Device], or a device node can be
// opened directly with [Open]:
//
//	fb, err := framebuffer.Open("/dev/fb0", bootfb.Generic, nil)
//	if err != nil {
//		return err
//	}
//	defer fb.Close()
//
//	draw.Draw(fb.Image(), fb.Mode().Bounds(), splash, image.Point{}, draw.Src)
//	if err = fb.Update(); err != nil {
//		var commit *bootfb.CommitError
//		if !errors.As(err, &commit) {
//			return err
//		}
//	}
package framebuffer

import (
	"encoding/binary"
	"io"

	"github.com/juju/errors"

	"github.com/BeatGlow/bootfb"
	"github.com/BeatGlow/bootfb/pixel"
)

// Device is a display device that owns an open file.
type Device interface {
	bootfb.Device
	io.Closer
}

// New returns a closed backend of the requested kind.
func New(kind bootfb.Kind, config *bootfb.Config) (bootfb.Backend, error) {
	switch kind {
	case bootfb.Generic:
		return newGeneric(config), nil
	default:
		return nil, errors.NotSupportedf("backend %s", kind)
	}
}

// Framebuffer is an open backend together with the device it was opened on.
type Framebuffer struct {
	bootfb.Backend
	dev Device
}

// Open a framebuffer device by name, typically /dev/fb[0..x], and open a backend
// of the requested kind on it.
func Open(name string, kind bootfb.Kind, config *bootfb.Config) (*Framebuffer, error) {
	backend, err := New(kind, config)
	if err != nil {
		return nil, err
	}

	dev, err := OpenDevice(name)
	if err != nil {
		return nil, err
	}
	return openOn(dev, backend)
}

func openOn(dev Device, backend bootfb.Backend) (*Framebuffer, error) {
	if err := backend.Open(dev); err != nil {
		_ = dev.Close()
		return nil, err
	}
	return &Framebuffer{
		Backend: backend,
		dev:     dev,
	}, nil
}

// Image returns the shadow surface as an image, or nil if the backend is closed
// or the driver did not switch to a 32-bit pixel format.
//
// The image aliases the surface; drawing into it is drawing into the next frame.
func (fb *Framebuffer) Image() *pixel.RGB32Image {
	pix := fb.FrameDest()
	if pix == nil {
		return nil
	}
	mode := fb.Mode()
	if mode.BitsPerPixel != 32 || mode.Stride < mode.Width*4 || len(pix) < mode.Size() {
		return nil
	}
	return &pixel.RGB32Image{
		Buffer: pixel.Buffer{
			Rect:   mode.Bounds(),
			Pix:    pix,
			Stride: mode.Stride,
		},
		Layout: layoutOf(mode),
		Order:  binary.NativeEndian,
	}
}

// Close the backend and the framebuffer device.
func (fb *Framebuffer) Close() error {
	if fb.dev == nil {
		return nil
	}
	err := fb.Backend.Close()
	if closeErr := fb.dev.Close(); err == nil {
		err = errors.Annotate(closeErr, "framebuffer: close")
	}
	fb.dev = nil
	return err
}

func layoutOf(mode bootfb.Mode) pixel.Layout {
	return pixel.Layout{
		Red:   channelOf(mode.Red),
		Green: channelOf(mode.Green),
		Blue:  channelOf(mode.Blue),
		Alpha: channelOf(mode.Alpha),
	}
}

func channelOf(ch bootfb.Channel) pixel.Channel {
	// Keep the most significant bits of wide channels.
	if ch.Length > 8 {
		ch.Offset += ch.Length - 8
		ch.Length = 8
	}
	return pixel.Channel{Offset: uint8(ch.Offset), Length: uint8(ch.Length)}
}
