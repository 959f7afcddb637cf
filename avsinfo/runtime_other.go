//go:build !(windows && amd64)

package avsinfo

import (
	"runtime"

	"go.uber.org/zap"
)

// Open returns [ErrUnsupportedPlatform]: the runtime is only reachable
// through its Windows x64 C API.
func Open(opts ...Option) (Runtime, error) {
	o := newOptions(opts)
	o.logger.Debug("runtime unavailable on this platform",
		zap.String("library", o.library),
		zap.String("platform", runtime.GOOS+"/"+runtime.GOARCH),
	)
	return nil, ErrUnsupportedPlatform
}
