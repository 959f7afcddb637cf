//go:build windows && amd64

package avsinfo

import (
	"fmt"
	"runtime"
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/sys/windows"
)

// AVS_Value type tags.
const (
	avsTypeClip   = 'c'
	avsTypeString = 's'
	avsTypeError  = 'e'
)

// avsValue mirrors AVS_Value: two shorts and an 8-byte union.
type avsValue struct {
	typ       int16
	arraySize int16
	_         int32
	data      uint64
}

// avsVideoInfo mirrors the leading fields of AVS_VideoInfo.
type avsVideoInfo struct {
	width                 int32
	height                int32
	fpsNumerator          uint32
	fpsDenominator        uint32
	numFrames             int32
	pixelType             int32
	audioSamplesPerSecond int32
	sampleType            int32
	numAudioSamples       int64
	nchannels             int32
	imageType             int32
}

type avsRuntime struct {
	log *zap.Logger
	dll *windows.LazyDLL
	env uintptr

	createEnv  *windows.LazyProc
	deleteEnv  *windows.LazyProc
	getError   *windows.LazyProc
	invoke     *windows.LazyProc
	takeClip   *windows.LazyProc
	releaseClp *windows.LazyProc
	releaseVal *windows.LazyProc
	videoInfo  *windows.LazyProc
}

// Open loads the AviSynth C API and creates a script environment.
// Close must be called to release it.
func Open(opts ...Option) (Runtime, error) {
	o := newOptions(opts)

	dll := windows.NewLazyDLL(o.library)
	if err := dll.Load(); err != nil {
		return nil, fmt.Errorf("%w: load %s: %w", ErrRuntimeNotFound, o.library, err)
	}
	o.logger.Debug("loaded runtime library", zap.String("library", o.library))

	rt := &avsRuntime{
		log:        o.logger,
		dll:        dll,
		createEnv:  dll.NewProc("avs_create_script_environment"),
		deleteEnv:  dll.NewProc("avs_delete_script_environment"),
		getError:   dll.NewProc("avs_get_error"),
		invoke:     dll.NewProc("avs_invoke"),
		takeClip:   dll.NewProc("avs_take_clip"),
		releaseClp: dll.NewProc("avs_release_clip"),
		releaseVal: dll.NewProc("avs_release_value"),
		videoInfo:  dll.NewProc("avs_get_video_info"),
	}
	for _, p := range []*windows.LazyProc{
		rt.createEnv, rt.deleteEnv, rt.getError, rt.invoke,
		rt.takeClip, rt.releaseClp, rt.releaseVal, rt.videoInfo,
	} {
		if err := p.Find(); err != nil {
			return nil, fmt.Errorf("%w: %s has no C API: %w", ErrRuntimeNotFound, o.library, err)
		}
	}

	env, err := createEnvironment(envAPI{
		create: func(version uintptr) uintptr {
			env, _, _ := rt.createEnv.Call(version)
			return env
		},
		lastError: rt.lastError,
		destroy: func(env uintptr) {
			rt.deleteEnv.Call(env)
		},
	}, interfaceVersions, rt.log)
	if err != nil {
		return nil, err
	}
	rt.env = env
	return rt, nil
}

func (rt *avsRuntime) lastError(env uintptr) string {
	p, _, _ := rt.getError.Call(env)
	if p == 0 {
		return ""
	}
	return windows.BytePtrToString((*byte)(unsafe.Pointer(p)))
}

// Import calls the runtime's Import function with path as its only argument.
func (rt *avsRuntime) Import(path string) (VideoInfo, error) {
	if rt.env == 0 {
		return VideoInfo{}, fmt.Errorf("import: runtime closed")
	}

	name, err := windows.BytePtrFromString("Import")
	if err != nil {
		return VideoInfo{}, err
	}
	arg, err := windows.BytePtrFromString(path)
	if err != nil {
		return VideoInfo{}, err
	}

	args := avsValue{typ: avsTypeString, data: uint64(uintptr(unsafe.Pointer(arg)))}
	var res avsValue
	// AVS_Value is 16 bytes: returned through a hidden pointer and passed by reference.
	rt.invoke.Call(
		uintptr(unsafe.Pointer(&res)),
		rt.env,
		uintptr(unsafe.Pointer(name)),
		uintptr(unsafe.Pointer(&args)),
		0,
	)
	runtime.KeepAlive(name)
	runtime.KeepAlive(arg)
	defer rt.releaseVal.Call(uintptr(unsafe.Pointer(&res)))

	rt.log.Debug("evaluated script", zap.String("path", path), zap.String("type", string(rune(res.typ))))

	switch res.typ {
	case avsTypeClip:
	case avsTypeError:
		msg := ""
		if res.data != 0 {
			msg = windows.BytePtrToString((*byte)(unsafe.Pointer(uintptr(res.data))))
		}
		return VideoInfo{}, &ScriptError{Msg: msg}
	default:
		return VideoInfo{}, ErrNoClip
	}

	clip, _, _ := rt.takeClip.Call(uintptr(unsafe.Pointer(&res)), rt.env)
	if clip == 0 {
		if msg := rt.lastError(rt.env); msg != "" {
			return VideoInfo{}, &ScriptError{Msg: msg}
		}
		return VideoInfo{}, ErrNoClip
	}
	defer rt.releaseClp.Call(clip)

	p, _, _ := rt.videoInfo.Call(clip)
	if p == 0 {
		return VideoInfo{}, ErrNoClip
	}
	vi := *(*avsVideoInfo)(unsafe.Pointer(p))

	return VideoInfo{
		Width:            int(vi.width),
		Height:           int(vi.height),
		FPSNumerator:     vi.fpsNumerator,
		FPSDenominator:   vi.fpsDenominator,
		FrameCount:       int(vi.numFrames),
		PixelType:        uint32(vi.pixelType),
		ImageType:        vi.imageType,
		AudioSampleRate:  int(vi.audioSamplesPerSecond),
		AudioChannels:    int(vi.nchannels),
		AudioSampleCount: vi.numAudioSamples,
	}, nil
}

// Close deletes the script environment. The library stays mapped for the
// life of the process.
func (rt *avsRuntime) Close() error {
	if rt.env == 0 {
		return nil
	}
	rt.deleteEnv.Call(rt.env)
	rt.env = 0
	return nil
}
