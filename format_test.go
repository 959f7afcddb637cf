package cpuext

import (
	"strings"
	"testing"
)

func TestReport_String(t *testing.T) {
	s := Report{SSE2: true, X64: true}.String()

	for _, want := range []string{
		"Standard:\n",
		"  SSE2: yes\n",
		"  AVX2: no\n",
		"Extended:\n",
		"  x64: yes\n",
		"  FMA4: no\n",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q:\n%s", want, s)
		}
	}
}

func TestSnapshot_String(t *testing.T) {
	s := Snapshot{
		MaxStandard: 0xd,
		MaxExtended: 0x80000008,
		Vendor:      Registers{EAX: 0xd, EBX: 0x68747541, EDX: 0x69746e65, ECX: 0x444d4163},
		Leaf1:       Registers{EDX: 0x178bfbff},
		Ext1:        Registers{ECX: 0x35c233ff, EDX: 0x2fd3fbff},
	}
	out := s.String()

	for _, want := range []string{
		"Vendor: AuthenticAMD\n",
		"Max standard leaf: 0xd\n",
		"Max extended leaf: 0x80000008\n",
		"  0x00000001: eax=00000000 ebx=00000000 ecx=00000000 edx=178bfbff\n",
		"  0x00000007: eax=00000000 ebx=00000000 ecx=00000000 edx=00000000\n",
		"  0x80000001: eax=00000000 ebx=00000000 ecx=35c233ff edx=2fd3fbff\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("String() missing %q:\n%s", want, out)
		}
	}
}
