//go:build unix

package cpuext

import (
	"strconv"

	"golang.org/x/sys/unix"
)

// OSVersion returns the kernel name and release (e.g., "Linux 6.1.0-generic").
func OSVersion() string {
	var uname unix.Utsname
	if err := unix.Uname(&uname); err != nil {
		return ""
	}
	return unix.ByteSliceToString(uname.Sysname[:]) + " " + unix.ByteSliceToString(uname.Release[:])
}

// Is64BitOS reports whether the running kernel is 64-bit.
func Is64BitOS() bool {
	if strconv.IntSize == 64 {
		return true
	}
	var uname unix.Utsname
	if err := unix.Uname(&uname); err != nil {
		return false
	}
	return is64BitMachine(unix.ByteSliceToString(uname.Machine[:]))
}

func is64BitMachine(machine string) bool {
	switch machine {
	case "x86_64", "amd64", "aarch64", "arm64", "ppc64", "ppc64le", "s390x", "riscv64", "mips64", "loongarch64":
		return true
	}
	return false
}
