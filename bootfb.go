// Package bootfb contains the backend contract for double-buffered boot-time displays.
//
// A [Backend] owns two surfaces of identical size: the hardware surface that the
// display controller scans out, and a shadow surface that drawing code writes into.
// Every [Backend.Update] waits for vertical sync, copies the shadow surface into the
// hardware surface and commits it.
//
// Concrete backends live in the framebuffer package.
package bootfb

import (
	"errors"

	"periph.io/x/conn/v3/gpio"
)

// Errors
var (
	ErrNotOpen = errors.New("bootfb: backend is not open")
	ErrOpen    = errors.New("bootfb: backend is already open")
)

// Kind selects a backend implementation.
type Kind uint8

// Supported backends.
const (
	Generic Kind = iota // Single mapped surface plus a heap shadow surface
)

func (k Kind) String() string {
	switch k {
	case Generic:
		return "Generic"
	default:
		return "Unknown"
	}
}

// Backend is a double-buffered display backend.
//
// A Backend is a single session and is not safe for concurrent use. Drawing into
// the slice returned by FrameDest and calling Update must be serialized by the caller.
type Backend interface {
	// Kind of backend.
	Kind() Kind

	// Open negotiates the display mode on dev and allocates both surfaces.
	Open(dev Device) error

	// Close blanks the display and releases both surfaces. Closing a backend that
	// is not open is a no-op.
	Close() error

	// Update waits for vertical sync, copies the shadow surface to the hardware
	// surface and commits it. A *CommitError is informational: the frame was
	// copied, but the hardware may not show it.
	Update() error

	// FrameDest returns the shadow surface, or nil if the backend is not open.
	FrameDest() []byte

	// Mode is the negotiated display mode.
	Mode() Mode
}

// Config is the backend configuration.
type Config struct {
	// BlankOnInit powers the display down and up again after the mode switch, to
	// hide transient artifacts.
	BlankOnInit bool

	// Backlight pin, optional. Driven high after open and low after close.
	Backlight gpio.PinOut
}

// DefaultConfig is used when a nil *Config is passed.
var DefaultConfig = Config{
	BlankOnInit: blankOnBoot,
}
