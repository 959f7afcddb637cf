package avsinfo

import (
	"fmt"

	"go.uber.org/zap"
)

// C API interface versions tried in order: AviSynth 2.6/AviSynth+, then 2.5.
var interfaceVersions = []uintptr{6, 3}

// envAPI is the part of the C API that creates and tears down a script
// environment. Handles are opaque.
type envAPI struct {
	create    func(version uintptr) uintptr
	lastError func(env uintptr) string
	destroy   func(env uintptr)
}

// createEnvironment returns the first environment created without an error
// for one of versions. A rejected environment is deleted before the next
// version is tried. When every version fails, the error raised for the last
// one is returned.
func createEnvironment(api envAPI, versions []uintptr, log *zap.Logger) (uintptr, error) {
	var lastErr error
	for _, version := range versions {
		env := api.create(version)
		if env == 0 {
			log.Debug("script environment not allocated", zap.Uint64("version", uint64(version)))
			continue
		}
		if msg := api.lastError(env); msg != "" {
			api.destroy(env)
			lastErr = &ScriptError{Msg: msg}
			log.Debug("script environment rejected interface version",
				zap.Uint64("version", uint64(version)),
				zap.String("error", msg),
			)
			continue
		}
		log.Debug("created script environment", zap.Uint64("version", uint64(version)))
		return env, nil
	}

	if lastErr != nil {
		return 0, fmt.Errorf("create script environment: %w", lastErr)
	}
	return 0, fmt.Errorf("%w: could not create script environment", ErrRuntimeNotFound)
}
