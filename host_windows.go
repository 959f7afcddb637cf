//go:build windows

package cpuext

import (
	"fmt"
	"strconv"

	"golang.org/x/sys/windows"
)

// Native machine types reported by IsWow64Process2.
const (
	imageFileMachineAMD64 = 0x8664
	imageFileMachineARM64 = 0xAA64
)

// OSVersion returns the Windows version (e.g., "Windows 10.0.22631").
func OSVersion() string {
	v := windows.RtlGetVersion()
	return fmt.Sprintf("Windows %d.%d.%d", v.MajorVersion, v.MinorVersion, v.BuildNumber)
}

// Is64BitOS reports whether Windows itself is 64-bit, including when this
// process runs as a 32-bit process under WOW64.
func Is64BitOS() bool {
	if strconv.IntSize == 64 {
		return true
	}

	var processMachine, nativeMachine uint16
	err := windows.IsWow64Process2(windows.CurrentProcess(), &processMachine, &nativeMachine)
	if err == nil {
		return nativeMachine == imageFileMachineAMD64 || nativeMachine == imageFileMachineARM64
	}

	// IsWow64Process2 needs Windows 10 1511.
	var wow64 bool
	if err := windows.IsWow64Process(windows.CurrentProcess(), &wow64); err != nil {
		return false
	}
	return wow64
}
