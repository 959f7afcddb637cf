//go:build 386 || amd64

package cpuext

import (
	"sync"
	"testing"

	"golang.org/x/sys/cpu"
)

func TestDetect_MatchesXSysCPU(t *testing.T) {
	r := Detect()

	// x/sys/cpu reports these straight from leaf 1 without OS checks.
	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"SSE2", r.SSE2, cpu.X86.HasSSE2},
		{"SSE3", r.SSE3, cpu.X86.HasSSE3},
		{"SSSE3", r.SSSE3, cpu.X86.HasSSSE3},
		{"SSE4.1", r.SSE41, cpu.X86.HasSSE41},
		{"SSE4.2", r.SSE42, cpu.X86.HasSSE42},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, x/sys/cpu says %v", tt.name, tt.got, tt.want)
		}
	}

	// x/sys/cpu additionally requires OS support, so it can only be stricter.
	if cpu.X86.HasAVX && !r.AVX {
		t.Error("x/sys/cpu reports AVX but Detect does not")
	}
	if cpu.X86.HasAVX2 && !r.AVX2 {
		t.Error("x/sys/cpu reports AVX2 but Detect does not")
	}
	if cpu.X86.HasFMA && !r.FMA3 {
		t.Error("x/sys/cpu reports FMA but Detect does not")
	}
}

func TestDetect_HardwareSnapshot(t *testing.T) {
	s := ReadHardwareSnapshot()
	if s.MaxStandard < 1 {
		t.Fatalf("MaxStandard = %d, every x86 processor Go supports has leaf 1", s.MaxStandard)
	}
	if s.VendorID() == "" {
		t.Error("VendorID() empty")
	}
	if !s.Report().SSE2 {
		t.Error("SSE2 missing on an x86 processor")
	}
}

func TestDetect_Concurrent(t *testing.T) {
	want := Detect()

	var wg sync.WaitGroup
	errs := make(chan Report, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := Detect(); got != want {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)

	for got := range errs {
		t.Errorf("concurrent Detect() = %+v, want %+v", got, want)
	}
}
