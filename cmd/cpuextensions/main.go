//go:build cgo

// Command cpuextensions builds a shared library exporting GetExtensions for
// native callers:
//
//	go build -buildmode=c-shared -o CpuExtensions.dll ./cmd/cpuextensions
package main

/*
typedef struct Extensions {
	int x64;
	int MMX;
	int SSE;
	int SSE2;
	int SSE3;
	int SSSE3;
	int SSE41;
	int SSE42;
	int SSE4a;
	int AVX;
	int AVX2;
	int XOP;
	int FMA3;
	int FMA4;
} Extensions;
*/
import "C"

import "github.com/uniqproject/cpuext"

// GetExtensions fills result with the extensions of the running processor,
// one int per flag (1 for present, 0 for absent).
//
//export GetExtensions
func GetExtensions(result *C.Extensions) {
	if result == nil {
		return
	}

	var r cpuext.Report
	cpuext.DetectInto(&r)

	result.x64 = cBool(r.X64)
	result.MMX = cBool(r.MMX)
	result.SSE = cBool(r.SSE)
	result.SSE2 = cBool(r.SSE2)
	result.SSE3 = cBool(r.SSE3)
	result.SSSE3 = cBool(r.SSSE3)
	result.SSE41 = cBool(r.SSE41)
	result.SSE42 = cBool(r.SSE42)
	result.SSE4a = cBool(r.SSE4a)
	result.AVX = cBool(r.AVX)
	result.AVX2 = cBool(r.AVX2)
	result.XOP = cBool(r.XOP)
	result.FMA3 = cBool(r.FMA3)
	result.FMA4 = cBool(r.FMA4)
}

func cBool(b bool) C.int {
	if b {
		return 1
	}
	return 0
}

func main() {}
