package ioctl

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Error is a failed ioctl call.
type Error struct {
	Command Command
	Errno   unix.Errno
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Command, e.Errno)
}

func (e *Error) Unwrap() error { return e.Errno }

// Do executes an ioctl call that passes arg by reference.
func Do(fd uintptr, command Command, arg unsafe.Pointer) error {
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, uintptr(command), uintptr(arg)); errno != 0 {
		return &Error{Command: command, Errno: errno}
	}
	return nil
}

// Call does a plain ioctl system call with arg passed by value.
func Call(fd uintptr, command Command, arg uintptr) error {
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, uintptr(command), arg); errno != 0 {
		return &Error{Command: command, Errno: errno}
	}
	return nil
}
