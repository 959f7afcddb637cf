//go:build 386 || amd64

package cpuext

// cpuid is implemented in cpuid_386.s and cpuid_amd64.s.
//
//go:noescape
func cpuid(eaxArg, ecxArg uint32) (eax, ebx, ecx, edx uint32)

// hardwareQuery issues CPUID on the current processor with sub-leaf 0.
func hardwareQuery(selector uint32) Registers {
	a, b, c, d := cpuid(selector, 0)
	return Registers{EAX: a, EBX: b, ECX: c, EDX: d}
}
