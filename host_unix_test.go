//go:build unix

package cpuext

import (
	"strconv"
	"testing"
)

func TestIs64BitMachine(t *testing.T) {
	tests := []struct {
		machine string
		want    bool
	}{
		{"x86_64", true},
		{"aarch64", true},
		{"i686", false},
		{"armv7l", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := is64BitMachine(tt.machine); got != tt.want {
			t.Errorf("is64BitMachine(%q) = %v, want %v", tt.machine, got, tt.want)
		}
	}
}

func TestHost(t *testing.T) {
	if OSVersion() == "" {
		t.Error("OSVersion() empty")
	}
	if strconv.IntSize == 64 && !Is64BitOS() {
		t.Error("64-bit process on a 32-bit OS")
	}
}
