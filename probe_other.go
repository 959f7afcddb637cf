//go:build !386 && !amd64

package cpuext

// hardwareQuery reports zero for every selector on processors without CPUID,
// so the highest supported indices are 0 and every field stays false.
func hardwareQuery(uint32) Registers {
	return Registers{}
}
