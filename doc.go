// Package cpuext provides x86 instruction-set extension detection.
//
// This package issues the CPUID instruction at a fixed set of leaves and
// decodes individual result bits into a flat [Report] of boolean flags,
// enabling callers to pick SIMD-specific code paths or executables and to
// fail early with clear messages when a required extension is missing.
//
// # API Model
//
//   - [Detect]/[DetectInto] for the report of the running processor
//   - [DetectWith]/[ReadSnapshot] for the same decoding over injected
//     CPUID results, which keeps the bit mapping testable on any host
//   - [Check] for pass/fail validation using [Feature] items
//
// # Quick Check
//
// Validate that required extensions are available:
//
//	if err := cpuext.Check(cpuext.FeatureSSE41, cpuext.FeatureAVX2); err != nil {
//	    var fe *cpuext.FeatureError
//	    if errors.As(err, &fe) {
//	        log.Fatalf("processor not supported: %s: %s", fe.Feature, fe.Reason)
//	    }
//	    log.Fatal(err)
//	}
//
// # Full Report
//
//	r := cpuext.Detect()
//	fmt.Printf("SSE4.2: %v\n", r.SSE42)
//	fmt.Printf("AVX2: %v\n", r.AVX2)
//	fmt.Println(r) // human-readable summary
//
// # Decoding
//
// Leaf 0 and leaf 0x80000000 give the highest standard and extended leaves.
// Leaf 1 (EDX: MMX, SSE, SSE2; ECX: SSE3, SSSE3, FMA3, SSE4.1, SSE4.2, AVX)
// and leaf 7 (EBX: AVX2) are read only when the highest standard leaf is at
// least 1. Leaf 0x80000001 (EDX: long mode; ECX: SSE4a, XOP, FMA4) is read
// only when the highest extended leaf covers it. A field whose leaf was not
// read stays false.
//
// On processors other than 386 and amd64 every field is false.
package cpuext
