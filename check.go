package cpuext

import (
	"fmt"

	"golang.org/x/sys/cpu"
)

// Check validates the specified features against the running processor and
// returns a *[FeatureError] for the first unsatisfied one, or nil if all are met.
//
// Unlike [Report.Check], AVX, AVX2 and FMA3 are also rejected when the
// processor reports them but the operating system has not enabled the
// extended register state they need.
func Check(required ...Feature) error {
	return checkFeatures(Detect(), osEnabled, required)
}

// Check validates the specified features against the report and returns a
// *[FeatureError] for the first unsatisfied one, or nil if all are met.
func (r Report) Check(required ...Feature) error {
	return checkFeatures(r, nil, required)
}

func checkFeatures(r Report, enabled func(Feature) bool, required []Feature) error {
	for _, f := range normalizeFeatures(required) {
		supported, known := r.Has(f)
		if !known {
			return &FeatureError{Feature: f.String(), Reason: "unknown feature"}
		}
		if !supported {
			return &FeatureError{Feature: f.String(), Reason: r.Diagnose(f)}
		}
		if enabled != nil && !enabled(f) {
			return &FeatureError{
				Feature: f.String(),
				Reason:  "reported by CPUID but the OS has not enabled YMM state saving (XSAVE); update the OS or hypervisor configuration",
			}
		}
	}
	return nil
}

// normalizeFeatures drops duplicates while keeping the first occurrence order.
func normalizeFeatures(required []Feature) []Feature {
	seen := make(map[Feature]struct{}, len(required))
	out := make([]Feature, 0, len(required))
	for _, f := range required {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

// osEnabled reports whether the OS lets the process use f.
// Only the VEX-encoded extensions depend on OS-managed register state.
func osEnabled(f Feature) bool {
	switch f {
	case FeatureAVX:
		return cpu.X86.HasAVX
	case FeatureAVX2:
		return cpu.X86.HasAVX2
	case FeatureFMA3:
		return cpu.X86.HasFMA
	default:
		return true
	}
}

// featureSource records where a feature bit lives.
type featureSource struct {
	leaf uint32
	reg  string
	bit  uint
}

var featureSources = map[Feature]featureSource{
	FeatureX64:   {leafExtInfo, "EDX", 29},
	FeatureMMX:   {leafFeatures, "EDX", 23},
	FeatureSSE:   {leafFeatures, "EDX", 25},
	FeatureSSE2:  {leafFeatures, "EDX", 26},
	FeatureSSE3:  {leafFeatures, "ECX", 0},
	FeatureSSSE3: {leafFeatures, "ECX", 9},
	FeatureSSE41: {leafFeatures, "ECX", 19},
	FeatureSSE42: {leafFeatures, "ECX", 20},
	FeatureSSE4a: {leafExtInfo, "ECX", 6},
	FeatureAVX:   {leafFeatures, "ECX", 28},
	FeatureAVX2:  {leafExtFeatures, "EBX", 5},
	FeatureXOP:   {leafExtInfo, "ECX", 11},
	FeatureFMA3:  {leafFeatures, "ECX", 12},
	FeatureFMA4:  {leafExtInfo, "ECX", 16},
}

// Diagnose returns a reason string explaining why a feature is not supported
// and what the operator can do about it.
func (r Report) Diagnose(f Feature) string {
	src, ok := featureSources[f]
	if !ok {
		return "unknown feature"
	}
	reason := fmt.Sprintf("not reported by CPUID leaf %#x %s bit %d", src.leaf, src.reg, src.bit)

	switch f {
	case FeatureX64:
		return reason + "; processor has no long mode, use 32-bit builds"
	case FeatureSSE4a, FeatureXOP, FeatureFMA4:
		return reason + "; AMD-only extension, select a build without it"
	case FeatureAVX2:
		if r.AVX {
			return reason + "; AVX is available, select an AVX build"
		}
	case FeatureFMA3:
		if r.FMA4 {
			return reason + "; FMA4 is available, select an FMA4 build"
		}
	}
	return reason + "; select a build that does not require it"
}
