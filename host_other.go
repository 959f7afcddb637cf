//go:build !unix && !windows

package cpuext

import "strconv"

// OSVersion returns an empty string: the platform has no supported version query.
func OSVersion() string { return "" }

// Is64BitOS reports whether the process itself is 64-bit.
func Is64BitOS() bool { return strconv.IntSize == 64 }
