package cpuext

import (
	"fmt"
	"strings"
)

// String returns a human-readable summary of the report.
func (r Report) String() string {
	var b strings.Builder

	b.WriteString("Standard:\n")
	writeResult(&b, "  MMX", r.MMX)
	writeResult(&b, "  SSE", r.SSE)
	writeResult(&b, "  SSE2", r.SSE2)
	writeResult(&b, "  SSE3", r.SSE3)
	writeResult(&b, "  SSSE3", r.SSSE3)
	writeResult(&b, "  SSE4.1", r.SSE41)
	writeResult(&b, "  SSE4.2", r.SSE42)
	writeResult(&b, "  AVX", r.AVX)
	writeResult(&b, "  AVX2", r.AVX2)
	writeResult(&b, "  FMA3", r.FMA3)
	b.WriteString("\n")

	b.WriteString("Extended:\n")
	writeResult(&b, "  x64", r.X64)
	writeResult(&b, "  SSE4a", r.SSE4a)
	writeResult(&b, "  XOP", r.XOP)
	writeResult(&b, "  FMA4", r.FMA4)

	return b.String()
}

// String returns the raw leaves of the snapshot, one per line.
func (s Snapshot) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Vendor: %s\n", s.VendorID())
	fmt.Fprintf(&b, "Max standard leaf: %#x\n", s.MaxStandard)
	fmt.Fprintf(&b, "Max extended leaf: %#x\n", s.MaxExtended)
	fmt.Fprintf(&b, "  0x%08x: %s\n", leafFeatures, s.Leaf1)
	fmt.Fprintf(&b, "  0x%08x: %s\n", leafExtFeatures, s.Leaf7)
	fmt.Fprintf(&b, "  0x%08x: %s\n", leafExtInfo, s.Ext1)

	return b.String()
}

func writeResult(b *strings.Builder, name string, supported bool) {
	status := "no"
	if supported {
		status = "yes"
	}
	fmt.Fprintf(b, "%s: %s\n", name, status)
}
