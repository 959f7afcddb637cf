package cpuext

import (
	"fmt"
	"strings"

	"github.com/thediveo/enumflag/v2"
)

// Report holds the instruction-set extensions detected on the processor.
//
// Every field is derived from a single bit of a single CPUID leaf. Fields are
// independent of each other: a processor may report AVX2 without AVX, and the
// detector does not try to reconcile such combinations.
type Report struct {
	// Extended leaf 0x80000001
	X64   bool `json:"x64"`   // EDX bit 29, long mode
	SSE4a bool `json:"sse4a"` // ECX bit 6, AMD only
	XOP   bool `json:"xop"`   // ECX bit 11, AMD only
	FMA4  bool `json:"fma4"`  // ECX bit 16, AMD only

	// Standard leaf 1
	MMX   bool `json:"mmx"`   // EDX bit 23
	SSE   bool `json:"sse"`   // EDX bit 25
	SSE2  bool `json:"sse2"`  // EDX bit 26
	SSE3  bool `json:"sse3"`  // ECX bit 0
	SSSE3 bool `json:"ssse3"` // ECX bit 9
	FMA3  bool `json:"fma3"`  // ECX bit 12
	SSE41 bool `json:"sse41"` // ECX bit 19
	SSE42 bool `json:"sse42"` // ECX bit 20
	AVX   bool `json:"avx"`   // ECX bit 28

	// Standard leaf 7, sub-leaf 0
	AVX2 bool `json:"avx2"` // EBX bit 5
}

// Registers is the four-word result of a single CPUID query.
type Registers struct {
	EAX uint32 `json:"eax"`
	EBX uint32 `json:"ebx"`
	ECX uint32 `json:"ecx"`
	EDX uint32 `json:"edx"`
}

func (r Registers) String() string {
	return fmt.Sprintf("eax=%08x ebx=%08x ecx=%08x edx=%08x", r.EAX, r.EBX, r.ECX, r.EDX)
}

// FeatureError represents an error when a required CPU feature is unavailable.
type FeatureError struct {
	Feature string
	Reason  string
	Err     error
}

func (e *FeatureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("feature %s: %s: %v", e.Feature, e.Reason, e.Err)
	}
	return fmt.Sprintf("feature %s: %s", e.Feature, e.Reason)
}

func (e *FeatureError) Unwrap() error {
	return e.Err
}

// Feature names a single field of [Report] so it can be required via [Check].
type Feature int

const (
	// FeatureX64 requires 64-bit long mode.
	FeatureX64 Feature = iota
	// FeatureMMX requires MMX.
	FeatureMMX
	// FeatureSSE requires SSE.
	FeatureSSE
	// FeatureSSE2 requires SSE2.
	FeatureSSE2
	// FeatureSSE3 requires SSE3.
	FeatureSSE3
	// FeatureSSSE3 requires supplemental SSE3.
	FeatureSSSE3
	// FeatureSSE41 requires SSE4.1.
	FeatureSSE41
	// FeatureSSE42 requires SSE4.2.
	FeatureSSE42
	// FeatureSSE4a requires AMD SSE4a.
	FeatureSSE4a
	// FeatureAVX requires AVX.
	FeatureAVX
	// FeatureAVX2 requires AVX2.
	FeatureAVX2
	// FeatureXOP requires AMD XOP.
	FeatureXOP
	// FeatureFMA3 requires three-operand fused multiply-add.
	FeatureFMA3
	// FeatureFMA4 requires AMD four-operand fused multiply-add.
	FeatureFMA4
)

var featureNames = map[Feature]string{
	FeatureX64:   "x64",
	FeatureMMX:   "mmx",
	FeatureSSE:   "sse",
	FeatureSSE2:  "sse2",
	FeatureSSE3:  "sse3",
	FeatureSSSE3: "ssse3",
	FeatureSSE41: "sse4.1",
	FeatureSSE42: "sse4.2",
	FeatureSSE4a: "sse4a",
	FeatureAVX:   "avx",
	FeatureAVX2:  "avx2",
	FeatureXOP:   "xop",
	FeatureFMA3:  "fma3",
	FeatureFMA4:  "fma4",
}

func (f Feature) String() string {
	if name, ok := featureNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Feature(%d)", f)
}

// FeatureValues returns every known feature in declaration order.
func FeatureValues() []Feature {
	values := make([]Feature, 0, len(featureNames))
	for f := FeatureX64; f <= FeatureFMA4; f++ {
		values = append(values, f)
	}
	return values
}

// FeatureNames returns the identifiers of every known feature in declaration order.
func FeatureNames() []string {
	values := FeatureValues()
	names := make([]string, 0, len(values))
	for _, f := range values {
		names = append(names, f.String())
	}
	return names
}

// FeatureIdentifiers maps every known feature to its identifier, in the form
// accepted by enumflag values.
func FeatureIdentifiers() enumflag.EnumIdentifiers[Feature] {
	ids := make(enumflag.EnumIdentifiers[Feature], len(featureNames))
	for f, name := range featureNames {
		ids[f] = []string{name}
	}
	return ids
}

// ParseFeature returns the feature whose identifier matches name, ignoring case
// and surrounding space.
func ParseFeature(name string) (Feature, error) {
	var f Feature
	v := enumflag.New(&f, "cpuext.Feature", FeatureIdentifiers(), enumflag.EnumCaseInsensitive)
	if err := v.Set(strings.TrimSpace(name)); err != nil {
		return 0, fmt.Errorf("unknown feature: %q", strings.TrimSpace(name))
	}
	return f, nil
}

// Has reports whether f is present in the report.
// The second value is false if the feature is unknown.
func (r Report) Has(f Feature) (supported bool, known bool) {
	switch f {
	case FeatureX64:
		return r.X64, true
	case FeatureMMX:
		return r.MMX, true
	case FeatureSSE:
		return r.SSE, true
	case FeatureSSE2:
		return r.SSE2, true
	case FeatureSSE3:
		return r.SSE3, true
	case FeatureSSSE3:
		return r.SSSE3, true
	case FeatureSSE41:
		return r.SSE41, true
	case FeatureSSE42:
		return r.SSE42, true
	case FeatureSSE4a:
		return r.SSE4a, true
	case FeatureAVX:
		return r.AVX, true
	case FeatureAVX2:
		return r.AVX2, true
	case FeatureXOP:
		return r.XOP, true
	case FeatureFMA3:
		return r.FMA3, true
	case FeatureFMA4:
		return r.FMA4, true
	default:
		return false, false
	}
}

// Supported returns the features present in the report, in declaration order.
func (r Report) Supported() []Feature {
	var out []Feature
	for _, f := range FeatureValues() {
		if ok, _ := r.Has(f); ok {
			out = append(out, f)
		}
	}
	return out
}
