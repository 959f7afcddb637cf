package avsinfo

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Runtime evaluates scripts with an external scripting runtime.
type Runtime interface {
	// Import evaluates the script at path and returns the properties of the
	// clip it produces. A script that evaluates to something other than a
	// clip yields [ErrNoClip]; errors raised by the script yield a *[ScriptError].
	Import(path string) (VideoInfo, error)
	// Close releases the runtime.
	Close() error
}

// Option configures [Open].
type Option func(*options)

type options struct {
	library string
	logger  *zap.Logger
}

const defaultLibrary = "avisynth.dll"

// WithLibrary loads the runtime from path instead of searching for avisynth.dll.
func WithLibrary(path string) Option {
	return func(o *options) {
		o.library = path
	}
}

// WithLogger sets the logger used for loader diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func newOptions(opts []Option) *options {
	o := &options{library: defaultLibrary, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	if o.library == "" {
		o.library = defaultLibrary
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	return o
}

// Info is the result of inspecting a single script.
type Info struct {
	Path  string
	Video VideoInfo
}

// IsScriptPath reports whether path has the .avs extension.
func IsScriptPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".avs")
}

// Inspect evaluates the script at path with rt and validates that it produced
// a clip with video.
func Inspect(rt Runtime, path string) (*Info, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("inspect: empty path")
	}

	vi, err := rt.Import(path)
	if err != nil {
		var se *ScriptError
		if errors.As(err, &se) || errors.Is(err, ErrNoClip) {
			return nil, fmt.Errorf("inspect %q: %w", path, err)
		}
		return nil, fmt.Errorf("inspect %q: import: %w", path, err)
	}
	if !vi.HasVideo() {
		return nil, fmt.Errorf("inspect %q: %w", path, ErrNoVideo)
	}

	return &Info{Path: path, Video: vi}, nil
}
