package cpuext

import "encoding/binary"

// CPUID selectors.
const (
	leafVendor      uint32 = 0x00000000
	leafFeatures    uint32 = 0x00000001
	leafExtFeatures uint32 = 0x00000007
	leafExtMax      uint32 = 0x80000000
	leafExtInfo     uint32 = 0x80000001
)

// Leaf 1 EDX.
const (
	bitMMX  = 1 << 23
	bitSSE  = 1 << 25
	bitSSE2 = 1 << 26
)

// Leaf 1 ECX.
const (
	bitSSE3  = 1 << 0
	bitSSSE3 = 1 << 9
	bitFMA3  = 1 << 12
	bitSSE41 = 1 << 19
	bitSSE42 = 1 << 20
	bitAVX   = 1 << 28
)

// Leaf 7 EBX.
const bitAVX2 = 1 << 5

// Leaf 0x80000001 ECX and EDX.
const (
	bitSSE4a = 1 << 6
	bitXOP   = 1 << 11
	bitFMA4  = 1 << 16
	bitLM    = 1 << 29
)

// QueryFunc issues one CPUID query for selector with sub-leaf 0.
type QueryFunc func(selector uint32) Registers

// Snapshot holds the raw CPUID results a [Report] is decoded from.
// Leaves that were not queried are left zero.
type Snapshot struct {
	MaxStandard uint32    `json:"max_standard"`
	MaxExtended uint32    `json:"max_extended"`
	Vendor      Registers `json:"leaf_0"`
	Leaf1       Registers `json:"leaf_1"`
	Leaf7       Registers `json:"leaf_7"`
	Ext1        Registers `json:"leaf_80000001"`
}

// ReadSnapshot issues the queries needed to build a [Report].
// Leaves 1 and 7 are only queried when the highest standard selector is at
// least 1, and leaf 0x80000001 only when the highest extended selector covers it.
func ReadSnapshot(q QueryFunc) Snapshot {
	var s Snapshot

	s.Vendor = q(leafVendor)
	s.MaxStandard = s.Vendor.EAX

	s.MaxExtended = q(leafExtMax).EAX

	if s.MaxStandard >= leafFeatures {
		s.Leaf1 = q(leafFeatures)
		s.Leaf7 = q(leafExtFeatures)
	}
	if s.MaxExtended >= leafExtInfo {
		s.Ext1 = q(leafExtInfo)
	}
	return s
}

// Report decodes the capability bits held in the snapshot.
func (s Snapshot) Report() Report {
	var r Report

	if s.MaxStandard >= leafFeatures {
		r.MMX = s.Leaf1.EDX&bitMMX != 0
		r.SSE = s.Leaf1.EDX&bitSSE != 0
		r.SSE2 = s.Leaf1.EDX&bitSSE2 != 0
		r.SSE3 = s.Leaf1.ECX&bitSSE3 != 0
		r.SSSE3 = s.Leaf1.ECX&bitSSSE3 != 0
		r.SSE41 = s.Leaf1.ECX&bitSSE41 != 0
		r.SSE42 = s.Leaf1.ECX&bitSSE42 != 0
		r.AVX = s.Leaf1.ECX&bitAVX != 0
		r.FMA3 = s.Leaf1.ECX&bitFMA3 != 0
		r.AVX2 = s.Leaf7.EBX&bitAVX2 != 0
	}

	if s.MaxExtended >= leafExtInfo {
		r.X64 = s.Ext1.EDX&bitLM != 0
		r.SSE4a = s.Ext1.ECX&bitSSE4a != 0
		r.FMA4 = s.Ext1.ECX&bitFMA4 != 0
		r.XOP = s.Ext1.ECX&bitXOP != 0
	}

	return r
}

// VendorID returns the 12-byte vendor string from leaf 0 (e.g. "GenuineIntel").
// It is empty when the leaf was not available.
func (s Snapshot) VendorID() string {
	if s.Vendor == (Registers{}) {
		return ""
	}
	var b [12]byte
	binary.LittleEndian.PutUint32(b[0:], s.Vendor.EBX)
	binary.LittleEndian.PutUint32(b[4:], s.Vendor.EDX)
	binary.LittleEndian.PutUint32(b[8:], s.Vendor.ECX)
	return string(b[:])
}

// DetectWith decodes a [Report] from the results of q.
func DetectWith(q QueryFunc) Report {
	return ReadSnapshot(q).Report()
}

// Detect reports the instruction-set extensions of the processor running the
// calling goroutine.
func Detect() Report {
	return DetectWith(hardwareQuery)
}

// DetectInto populates every field of r with the result of [Detect].
// A nil r is ignored.
func DetectInto(r *Report) {
	if r == nil {
		return
	}
	*r = Detect()
}

// HardwareQuery issues CPUID on the running processor. It returns zero
// registers on processors without CPUID.
func HardwareQuery(selector uint32) Registers {
	return hardwareQuery(selector)
}

// ReadHardwareSnapshot returns the raw CPUID results of the running processor.
func ReadHardwareSnapshot() Snapshot {
	return ReadSnapshot(hardwareQuery)
}
