package framebuffer

import (
	"github.com/juju/errors"
	"periph.io/x/conn/v3/gpio"

	"github.com/BeatGlow/bootfb"
)

// Only double buffering is implemented; the roles of both surfaces are fixed.
const (
	numBuffers  = 2
	frontBuffer = 0 // Mapped hardware surface
	backBuffer  = 1 // Heap allocated shadow surface
)

type genericState struct {
	surfaces [numBuffers][]byte
	size     int
}

// generic copies a heap shadow surface into a single mapped hardware surface on
// every update.
type generic struct {
	config bootfb.Config
	dev    bootfb.Device
	vi     bootfb.VarScreenInfo
	fi     bootfb.FixScreenInfo
	mode   bootfb.Mode
	state  *genericState
}

func newGeneric(config *bootfb.Config) *generic {
	if config == nil {
		config = new(bootfb.Config)
		*config = bootfb.DefaultConfig
	}
	return &generic{config: *config}
}

func (b *generic) Kind() bootfb.Kind {
	return bootfb.Generic
}

func (b *generic) Mode() bootfb.Mode {
	return b.mode
}

func (b *generic) Open(dev bootfb.Device) (err error) {
	if b.state != nil {
		return bootfb.ErrOpen
	}
	log := bootfb.Logger().With("backend", bootfb.Generic)

	// Negotiated into locals; b is only touched once the session is up.
	var (
		vi bootfb.VarScreenInfo
		fi bootfb.FixScreenInfo
	)
	if vi, err = dev.VarScreenInfo(); err != nil {
		return &bootfb.ModeSetError{Op: "read mode", Err: err}
	}

	vi.BitsPerPixel = 32
	vi.Vmode = bootfb.VModeNonInterlaced
	vi.Activate = bootfb.ActivateNow | bootfb.ActivateForce
	log.Info("requesting pixel format", "xres", vi.Xres, "yres", vi.Yres, "bpp", vi.BitsPerPixel)
	if err = dev.SetVarScreenInfo(&vi); err != nil {
		// The driver may still report a usable mode below.
		log.Warn("mode request rejected", "error", err)
	}

	// Hardware may not honor the exact request.
	if fi, err = dev.FixScreenInfo(); err != nil {
		return &bootfb.ModeSetError{Op: "read fixed info", Err: err}
	}
	if vi, err = dev.VarScreenInfo(); err != nil {
		return &bootfb.ModeSetError{Op: "read mode", Err: err}
	}

	mode := bootfb.ModeOf(&vi, &fi)
	log.Info("device reports (possibly inaccurate)",
		"id", fi.Name(),
		"bpp", mode.BitsPerPixel,
		"red", mode.Red,
		"green", mode.Green,
		"blue", mode.Blue,
		"xres", mode.Width,
		"yres", mode.Height,
		"line_length", mode.Stride)

	if mode.BitsPerPixel != 32 {
		log.Warn("driver did not accept 32bpp", "bpp", mode.BitsPerPixel)
	}

	size := mode.Size()
	if size <= 0 {
		return &bootfb.ModeSetError{Op: "negotiate", Err: errors.NotValidf("mode %s", mode)}
	}
	log.Info("surface size", "bytes", size)

	// Clear before activating the mode, so the switch does not show stale pixels.
	mapped, err := dev.Map(size)
	if err != nil {
		return &bootfb.MapError{Op: "map", Size: size, Err: err}
	}
	clear(mapped)
	if err = dev.Unmap(mapped); err != nil {
		return &bootfb.MapError{Op: "unmap", Size: size, Err: err}
	}

	if err = dev.SetVarScreenInfo(&vi); err != nil {
		log.Error("failed to set mode", "error", err)
		return &bootfb.ModeSetError{Op: "activate", Err: err}
	}
	if fi, err = dev.FixScreenInfo(); err != nil {
		return &bootfb.ModeSetError{Op: "read fixed info", Err: err}
	}
	if stride := int(fi.LineLength); stride != mode.Stride {
		log.Warn("line length changed on activation", "was", mode.Stride, "now", stride)
	}

	if mapped, err = dev.Map(size); err != nil {
		return &bootfb.MapError{Op: "map", Size: size, Err: err}
	}

	b.dev = dev
	b.vi, b.fi, b.mode = vi, fi, mode
	b.state = &genericState{size: size}
	b.state.surfaces[frontBuffer] = mapped
	b.state.surfaces[backBuffer] = make([]byte, size)

	if b.config.BlankOnInit {
		if err := dev.Blank(bootfb.BlankPowerdown); err != nil {
			log.Warn("blank failed", "level", bootfb.BlankPowerdown, "error", err)
		}
		if err := dev.Blank(bootfb.BlankUnblank); err != nil {
			log.Warn("blank failed", "level", bootfb.BlankUnblank, "error", err)
		}
	}
	b.setBacklight(true)

	return nil
}

func (b *generic) Update() error {
	if b.state == nil {
		return bootfb.ErrNotOpen
	}

	var commitErr error
	if err := b.dev.WaitForVSync(); err != nil {
		commitErr = &bootfb.CommitError{Op: "wait for vsync", Err: err}
	}

	copy(b.state.surfaces[frontBuffer], b.state.surfaces[backBuffer])

	if err := b.dev.Pan(&b.vi); err != nil && commitErr == nil {
		commitErr = &bootfb.CommitError{Op: "pan", Err: err}
	}

	if commitErr != nil {
		bootfb.Logger().Debug("frame commit incomplete", "error", commitErr)
	}
	return commitErr
}

func (b *generic) FrameDest() []byte {
	if b.state == nil {
		return nil
	}
	return b.state.surfaces[backBuffer]
}

func (b *generic) Close() error {
	state := b.state
	if state == nil {
		return nil
	}
	b.state = nil

	var (
		log   = bootfb.Logger().With("backend", bootfb.Generic)
		front = state.surfaces[frontBuffer]
		err   error
	)

	// Leave a blank frame on the display.
	clear(front)
	if panErr := b.dev.Pan(&b.vi); panErr != nil {
		log.Warn("final pan failed", "error", panErr)
		err = &bootfb.CommitError{Op: "pan", Err: panErr}
	}

	if unmapErr := b.dev.Unmap(front); unmapErr != nil {
		err = &bootfb.MapError{Op: "unmap", Size: state.size, Err: unmapErr}
	}
	state.surfaces = [numBuffers][]byte{}

	b.setBacklight(false)
	b.dev = nil
	return err
}

func (b *generic) setBacklight(on bool) {
	if b.config.Backlight == nil {
		return
	}
	if err := b.config.Backlight.Out(gpio.Level(on)); err != nil {
		bootfb.Logger().Warn("backlight failed", "pin", b.config.Backlight, "on", on, "error", err)
	}
}
