package avsinfo

import (
	"errors"
	"fmt"
)

var (
	// ErrRuntimeNotFound is returned when the AviSynth library cannot be loaded.
	ErrRuntimeNotFound = errors.New("avisynth runtime not found")
	// ErrNoClip is returned when a script does not evaluate to a clip.
	ErrNoClip = errors.New("script did not return a clip")
	// ErrNoVideo is returned when the clip has no video track.
	ErrNoVideo = errors.New("clip has no video")
	// ErrUnsupportedPlatform is returned by [Open] where the runtime cannot be loaded.
	ErrUnsupportedPlatform = errors.New("avisynth runtime is only supported on windows/amd64")
)

// ScriptError carries an error message raised by the runtime while
// evaluating a script.
type ScriptError struct {
	Msg string
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("avisynth error: %s", e.Msg)
}

// Pixel type bits of VideoInfo.PixelType.
const (
	csYUVA        uint32 = 1 << 27
	csBGR         uint32 = 1 << 28
	csYUV         uint32 = 1 << 29
	csInterleaved uint32 = 1 << 30
	csPlanar      uint32 = 1 << 31

	csSubWidthMask   uint32 = 7
	csSubHeightMask  uint32 = 7 << 8
	csSampleBitsMask uint32 = 7 << 16
	csVPlaneFirst    uint32 = 1 << 3

	csBGR24 = 1<<0 | csBGR | csInterleaved
	csBGR32 = 1<<1 | csBGR | csInterleaved
	csYUY2  = 1<<2 | csYUV | csInterleaved
	// 8-bit samples, 2x2 chroma subsampling: all zero in their fields.
	csYV12 = csPlanar | csYUV | csVPlaneFirst

	csPlanarMask = csPlanar | csInterleaved | csYUV | csBGR | csYUVA | csSampleBitsMask | csSubHeightMask | csSubWidthMask
)

// Image type bits of VideoInfo.ImageType.
const (
	itBFF int32 = 1 << 0
	itTFF int32 = 1 << 1
)

// VideoInfo is the subset of a clip's properties reported by avsinfo.
type VideoInfo struct {
	Width          int
	Height         int
	FPSNumerator   uint32
	FPSDenominator uint32
	FrameCount     int
	PixelType      uint32
	ImageType      int32

	AudioSampleRate  int
	AudioChannels    int
	AudioSampleCount int64
}

// HasVideo reports whether the clip carries a video track.
func (v VideoInfo) HasVideo() bool {
	return v.Width != 0
}

// HasAudio reports whether the clip carries an audio track.
func (v VideoInfo) HasAudio() bool {
	return v.AudioSampleRate != 0
}

// ColorSpace classifies a clip's pixel type.
type ColorSpace int

const (
	ColorSpaceUnknown ColorSpace = iota
	ColorSpaceYV12
	ColorSpaceRGB24
	ColorSpaceRGB32
	ColorSpaceRGB
	ColorSpaceYUY2
	ColorSpaceYUV
)

var colorSpaceNames = map[ColorSpace]string{
	ColorSpaceUnknown: "unknown",
	ColorSpaceYV12:    "Yv12",
	ColorSpaceRGB24:   "RGB24",
	ColorSpaceRGB32:   "RGB32",
	ColorSpaceRGB:     "RGB",
	ColorSpaceYUY2:    "YUY2",
	ColorSpaceYUV:     "YUV",
}

func (c ColorSpace) String() string {
	if name, ok := colorSpaceNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ColorSpace(%d)", c)
}

// ColorSpace returns the most specific classification of the pixel type.
// Packed 8-bit RGB formats are matched before the generic RGB family they
// belong to, and YV12 also covers I420, which differs only in plane order.
func (v VideoInfo) ColorSpace() ColorSpace {
	pt := v.PixelType
	eightBit := pt&csSampleBitsMask == 0

	switch {
	case pt&csPlanarMask == csYV12&csPlanarMask:
		return ColorSpaceYV12
	case pt&csBGR24 == csBGR24 && eightBit:
		return ColorSpaceRGB24
	case pt&csBGR32 == csBGR32 && eightBit:
		return ColorSpaceRGB32
	case pt&csBGR != 0:
		return ColorSpaceRGB
	case pt&csYUY2 == csYUY2:
		return ColorSpaceYUY2
	case pt&csYUV != 0:
		return ColorSpaceYUV
	default:
		return ColorSpaceUnknown
	}
}

// ScanType classifies a clip's field order.
type ScanType int

const (
	ScanProgressive ScanType = iota
	ScanBFF
	ScanTFF
)

func (s ScanType) String() string {
	switch s {
	case ScanProgressive:
		return "PRO"
	case ScanBFF:
		return "BFF"
	case ScanTFF:
		return "TFF"
	default:
		return fmt.Sprintf("ScanType(%d)", s)
	}
}

// ScanType returns the field order of the clip. A clip flagged both bottom
// and top field first is reported as BFF.
func (v VideoInfo) ScanType() ScanType {
	switch {
	case v.ImageType&itBFF != 0:
		return ScanBFF
	case v.ImageType&itTFF != 0:
		return ScanTFF
	default:
		return ScanProgressive
	}
}
