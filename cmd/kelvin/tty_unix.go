//go:build aix || darwin || dragonfly || freebsd || hurd || linux || netbsd || openbsd

package main

import (
	"syscall"
	"unsafe"
)

func init() {
	isTTY = isatty
}

func isatty(fd uintptr) bool {
	// Only the error of the window size request matters.
	p := [4]uint16{}
	_, _, e1 := syscall.Syscall(syscall.SYS_IOCTL, fd, syscall.TIOCGWINSZ,
		uintptr(unsafe.Pointer(&p[0])))
	return e1 == 0
}
