package framebuffer

import (
	"os"
	"unsafe"

	"github.com/juju/errors"
	"golang.org/x/sys/unix"

	"github.com/BeatGlow/bootfb"
	"github.com/BeatGlow/bootfb/internal/ioctl"
)

// From <linux/fb.h>
var (
	fbioGetVScreenInfo = ioctl.Command(0x4600)
	fbioPutVScreenInfo = ioctl.Command(0x4601)
	fbioGetFScreenInfo = ioctl.Command(0x4602)
	fbioPanDisplay     = ioctl.Command(0x4606)
	fbioBlank          = ioctl.Command(0x4611)
	fbioWaitForVSync   = ioctl.Pointer(ioctl.Write, new(uint32), 0x4620)
)

type linuxDevice struct {
	f    *os.File
	fd   uintptr
	name string
}

// OpenDevice opens a Linux FrameBuffer device (fbdev) by name, typically /dev/fb[0..x].
func OpenDevice(name string) (Device, error) {
	f, err := os.OpenFile(name, os.O_RDWR, os.ModeDevice)
	if err != nil {
		return nil, err
	}
	return &linuxDevice{
		f:    f,
		fd:   f.Fd(),
		name: name,
	}, nil
}

func (d *linuxDevice) String() string {
	return "fbdev " + d.name
}

func (d *linuxDevice) Close() error {
	return d.f.Close()
}

func (d *linuxDevice) VarScreenInfo() (info bootfb.VarScreenInfo, err error) {
	err = errors.Annotatef(ioctl.Do(d.fd, fbioGetVScreenInfo, unsafe.Pointer(&info)), "%s: FBIOGET_VSCREENINFO", d.name)
	return
}

func (d *linuxDevice) SetVarScreenInfo(info *bootfb.VarScreenInfo) error {
	return errors.Annotatef(ioctl.Do(d.fd, fbioPutVScreenInfo, unsafe.Pointer(info)), "%s: FBIOPUT_VSCREENINFO", d.name)
}

func (d *linuxDevice) FixScreenInfo() (info bootfb.FixScreenInfo, err error) {
	err = errors.Annotatef(ioctl.Do(d.fd, fbioGetFScreenInfo, unsafe.Pointer(&info)), "%s: FBIOGET_FSCREENINFO", d.name)
	return
}

func (d *linuxDevice) Blank(level bootfb.BlankLevel) error {
	return errors.Annotatef(ioctl.Call(d.fd, fbioBlank, uintptr(level)), "%s: FBIOBLANK %s", d.name, level)
}

func (d *linuxDevice) WaitForVSync() error {
	var crtc uint32
	return errors.Annotatef(ioctl.Do(d.fd, fbioWaitForVSync, unsafe.Pointer(&crtc)), "%s: FBIO_WAITFORVSYNC", d.name)
}

func (d *linuxDevice) Pan(info *bootfb.VarScreenInfo) error {
	return errors.Annotatef(ioctl.Do(d.fd, fbioPanDisplay, unsafe.Pointer(info)), "%s: FBIOPAN_DISPLAY", d.name)
}

func (d *linuxDevice) Map(size int) ([]byte, error) {
	b, err := unix.Mmap(int(d.fd), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, errors.Annotatef(err, "%s: mmap", d.name)
	}
	return b, nil
}

func (d *linuxDevice) Unmap(b []byte) error {
	return errors.Annotatef(unix.Munmap(b), "%s: munmap", d.name)
}
