package bootfb

// From <linux/fb.h>
const (
	VModeNonInterlaced = 0 // FB_VMODE_NONINTERLACED

	ActivateNow   = 0   // FB_ACTIVATE_NOW: set values immediately (or vbl)
	ActivateForce = 128 // FB_ACTIVATE_FORCE: force apply even when no change
)

// BlankLevel is passed to [Device.Blank].
type BlankLevel uintptr

// Blank levels, from <linux/fb.h>.
const (
	BlankUnblank      BlankLevel = 0 // screen: unblanked, hsync: on,  vsync: on
	BlankNormal       BlankLevel = 1 // screen: blanked,   hsync: on,  vsync: on
	BlankVSyncSuspend BlankLevel = 2 // screen: blanked,   hsync: on,  vsync: off
	BlankHSyncSuspend BlankLevel = 3 // screen: blanked,   hsync: off, vsync: on
	BlankPowerdown    BlankLevel = 4 // screen: blanked,   hsync: off, vsync: off
)

func (l BlankLevel) String() string {
	switch l {
	case BlankUnblank:
		return "unblank"
	case BlankNormal:
		return "normal"
	case BlankVSyncSuspend:
		return "vsync suspend"
	case BlankHSyncSuspend:
		return "hsync suspend"
	case BlankPowerdown:
		return "powerdown"
	default:
		return "invalid"
	}
}

// Device is the kernel display driver interface a backend operates on.
type Device interface {
	// VarScreenInfo reads the variable screen information (FBIOGET_VSCREENINFO).
	VarScreenInfo() (VarScreenInfo, error)

	// SetVarScreenInfo requests a mode (FBIOPUT_VSCREENINFO). The driver may
	// update info with the values it actually applied.
	SetVarScreenInfo(info *VarScreenInfo) error

	// FixScreenInfo reads the fixed screen information (FBIOGET_FSCREENINFO).
	FixScreenInfo() (FixScreenInfo, error)

	// Blank sets the blanking level (FBIOBLANK).
	Blank(BlankLevel) error

	// WaitForVSync blocks until the next vertical sync (FBIO_WAITFORVSYNC).
	WaitForVSync() error

	// Pan commits the visible area described by info (FBIOPAN_DISPLAY).
	Pan(info *VarScreenInfo) error

	// Map maps size bytes of the hardware surface into memory.
	Map(size int) ([]byte, error)

	// Unmap releases a mapping returned by Map.
	Unmap([]byte) error
}

// FixScreenInfo contains device independent unchangeable information about a
// frame buffer device (struct fb_fix_screeninfo).
type FixScreenInfo struct {
	ID           [16]byte  // Identification string eg "TT Builtin"
	SmemStart    uintptr   // Start of frame buffer mem
	SmemLen      uint32    // Length of frame buffer mem
	Type         uint32    // FB_TYPE_
	TypeAux      uint32    // Interleave for interleaved Planes
	Visual       uint32    // FB_VISUAL_
	Xpanstep     uint16    // Zero if no hardware panning
	Ypanstep     uint16    // Zero if no hardware panning
	Ywrapstep    uint16    // Zero if no hardware ywrap
	LineLength   uint32    // Length of a line in bytes
	MmioStart    uintptr   // Start of Memory Mapped I/O (physical address)
	MmioLen      uint32    // Length of Memory Mapped I/O
	Accel        uint32    // Indicate to driver which specific chip/card we have
	Capabilities uint16    // FB_CAP_
	Reserved     [2]uint16 // Reserved for future compatibility
}

// Name is the identification string.
func (info *FixScreenInfo) Name() string {
	for i, b := range info.ID {
		if b == 0 {
			return string(info.ID[:i])
		}
	}
	return string(info.ID[:])
}

// BitField describes the placement of a color channel inside a pixel.
type BitField struct {
	Offset   uint32 // Beginning of bitfield
	Length   uint32 // Length of bitfield
	MsbRight uint32 // != 0 : Most significant bit is right
}

// VarScreenInfo contains device independent changeable information about a frame
// buffer device and a specific video mode (struct fb_var_screeninfo).
type VarScreenInfo struct {
	Xres                    uint32
	Yres                    uint32
	XresVirtual             uint32
	YresVirtual             uint32
	Xoffset                 uint32
	Yoffset                 uint32
	BitsPerPixel            uint32
	Grayscale               uint32
	Red, Green, Blue, Alpha BitField
	Nonstd                  uint32
	Activate                uint32
	Height                  uint32 // Height of picture in mm
	Width                   uint32 // Width of picture in mm
	AccelFlags              uint32
	Pixclock                uint32
	LeftMargin              uint32
	RightMargin             uint32
	UpperMargin             uint32
	LowerMargin             uint32
	HsyncLen                uint32
	VsyncLen                uint32
	Sync                    uint32
	Vmode                   uint32
	Rotate                  uint32
	Colorspace              uint32
	Reserved                [4]uint32
}
