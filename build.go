package cpuext

// BuildOptions controls which encoder build [ExecutableName] may select.
type BuildOptions struct {
	// Optimized allows SIMD-specific builds. When false the generic build is used.
	Optimized bool
	// Use64Bit allows 64-bit builds where one exists.
	Use64Bit bool
	// OS64Bit reports whether the host OS can run 64-bit executables (see [Is64BitOS]).
	OS64Bit bool
}

// ExecutableName returns the Windows executable name of the best encoder build
// for r, derived from base (e.g. "oggenc2" -> "oggenc2_SSE3_64.exe").
//
// Builds are tried from the most to the least capable: SSE3 (with a 64-bit
// variant), SSE2, SSE, then the generic build.
func ExecutableName(base string, r Report, opts BuildOptions) string {
	name := base
	if opts.Optimized {
		switch {
		case r.SSE3:
			name += "_SSE3"
			if opts.OS64Bit && opts.Use64Bit {
				name += "_64"
			}
		case r.SSE2:
			name += "_SSE2"
		case r.SSE:
			name += "_SSE"
		}
	}
	return name + ".exe"
}
