//go:build !linux

package framebuffer

import (
	"errors"
)

var ErrNotSupported = errors.New("framebuffer: not supported")

// OpenDevice is not supported on this platform.
func OpenDevice(_ string) (Device, error) {
	return nil, ErrNotSupported
}
