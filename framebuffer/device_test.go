package framebuffer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BeatGlow/bootfb"
)

var errTest = errors.New("test: injected failure")

// testDevice emulates an fbdev driver. Mappings alias vram, so writes survive
// an unmap just like they do on hardware.
type testDevice struct {
	vi   bootfb.VarScreenInfo
	fi   bootfb.FixScreenInfo
	vram []byte

	calls  []string
	mapped int

	// vramAtActivate is a copy of vram taken when a mode is applied.
	vramAtActivate [][]byte

	// vramAtPan is a copy of vram taken on every pan.
	vramAtPan [][]byte

	// keepBitsPerPixel, if set, is the only bit depth the driver accepts.
	keepBitsPerPixel uint32

	failOn map[string]error
	closed bool
}

func newTestDevice(width, height, bpp int) *testDevice {
	d := &testDevice{
		vi: bootfb.VarScreenInfo{
			Xres:         uint32(width),
			Yres:         uint32(height),
			XresVirtual:  uint32(width),
			YresVirtual:  uint32(height),
			BitsPerPixel: uint32(bpp),
		},
		failOn: make(map[string]error),
	}
	d.apply()
	d.vram = make([]byte, d.fi.SmemLen)
	// Stale pixels from whatever ran before us.
	for i := range d.vram {
		d.vram[i] = 0xa5
	}
	return d
}

// apply mimics the driver accepting the requested bit depth.
func (d *testDevice) apply() {
	if d.keepBitsPerPixel != 0 {
		d.vi.BitsPerPixel = d.keepBitsPerPixel
	}
	if d.vi.BitsPerPixel == 16 {
		d.vi.Red = bootfb.BitField{Offset: 11, Length: 5}
		d.vi.Green = bootfb.BitField{Offset: 5, Length: 6}
		d.vi.Blue = bootfb.BitField{Offset: 0, Length: 5}
	} else {
		d.vi.Red = bootfb.BitField{Offset: 16, Length: 8}
		d.vi.Green = bootfb.BitField{Offset: 8, Length: 8}
		d.vi.Blue = bootfb.BitField{Offset: 0, Length: 8}
	}
	copy(d.fi.ID[:], "testfb")
	d.fi.LineLength = d.vi.Xres * d.vi.BitsPerPixel / 8
	if size := d.fi.LineLength * d.vi.YresVirtual; size > d.fi.SmemLen {
		d.fi.SmemLen = size
		if len(d.vram) > 0 && len(d.vram) < int(size) {
			d.vram = append(d.vram, make([]byte, int(size)-len(d.vram))...)
		}
	}
}

func (d *testDevice) call(name string) error {
	d.calls = append(d.calls, name)
	return d.failOn[name]
}

func (d *testDevice) callCount(name string) (n int) {
	for _, call := range d.calls {
		if call == name {
			n++
		}
	}
	return
}

func (d *testDevice) String() string {
	return "test device: " + strings.Join(d.calls, ", ")
}

func (d *testDevice) Close() error {
	d.closed = true
	return d.call("close")
}

func (d *testDevice) VarScreenInfo() (bootfb.VarScreenInfo, error) {
	if err := d.call("get var"); err != nil {
		return bootfb.VarScreenInfo{}, err
	}
	return d.vi, nil
}

func (d *testDevice) SetVarScreenInfo(info *bootfb.VarScreenInfo) error {
	if err := d.call("put var"); err != nil {
		return err
	}
	d.vi = *info
	d.apply()
	*info = d.vi
	d.vramAtActivate = append(d.vramAtActivate, append([]byte(nil), d.vram...))
	return nil
}

func (d *testDevice) FixScreenInfo() (bootfb.FixScreenInfo, error) {
	if err := d.call("get fix"); err != nil {
		return bootfb.FixScreenInfo{}, err
	}
	return d.fi, nil
}

func (d *testDevice) Blank(level bootfb.BlankLevel) error {
	return d.call("blank " + level.String())
}

func (d *testDevice) WaitForVSync() error {
	return d.call("vsync")
}

func (d *testDevice) Pan(info *bootfb.VarScreenInfo) error {
	d.vramAtPan = append(d.vramAtPan, append([]byte(nil), d.vram...))
	return d.call("pan")
}

func (d *testDevice) Map(size int) ([]byte, error) {
	if err := d.call("map"); err != nil {
		return nil, err
	}
	if size > len(d.vram) {
		return nil, fmt.Errorf("test: map of %d bytes exceeds %d bytes of vram", size, len(d.vram))
	}
	d.mapped++
	return d.vram[:size:size], nil
}

func (d *testDevice) Unmap(b []byte) error {
	if err := d.call("unmap"); err != nil {
		return err
	}
	if d.mapped == 0 {
		return errors.New("test: unmap without mapping")
	}
	if len(b) == 0 || &b[0] != &d.vram[0] {
		return errors.New("test: unmap of memory that is not vram")
	}
	d.mapped--
	return nil
}

func isZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
