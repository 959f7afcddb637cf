package avsinfo

import (
	"encoding/json"
	"encoding/xml"
	"io"
)

type xmlReport struct {
	XMLName xml.Name  `xml:"avsinfo"`
	Video   xmlVideo  `xml:"video"`
	Audio   *xmlAudio `xml:"audio,omitempty"`
}

type xmlVideo struct {
	ColorSpace     string `xml:"colorspace"`
	Width          int    `xml:"resolutionx"`
	Height         int    `xml:"resolutiony"`
	FPSNumerator   uint32 `xml:"fps_num"`
	FPSDenominator uint32 `xml:"fps_denom"`
	FrameCount     int    `xml:"lengthf"`
	ScanType       string `xml:"scan_type"`
}

type xmlAudio struct {
	SampleRate  int   `xml:"samplerate"`
	Channels    int   `xml:"channelcount"`
	SampleCount int64 `xml:"numsamples"`
}

func newXMLReport(v VideoInfo) xmlReport {
	r := xmlReport{
		Video: xmlVideo{
			ColorSpace:     v.ColorSpace().String(),
			Width:          v.Width,
			Height:         v.Height,
			FPSNumerator:   v.FPSNumerator,
			FPSDenominator: v.FPSDenominator,
			FrameCount:     v.FrameCount,
			ScanType:       v.ScanType().String(),
		},
	}
	if v.HasAudio() {
		r.Audio = &xmlAudio{
			SampleRate:  v.AudioSampleRate,
			Channels:    v.AudioChannels,
			SampleCount: v.AudioSampleCount,
		}
	}
	return r
}

// Render writes the tagged text report for v:
//
//	<avsinfo>
//	  <video>
//	    <colorspace>Yv12</colorspace>
//	    ...
//	  </video>
//	  <audio>
//	    ...
//	  </audio>
//	</avsinfo>
//
// The audio block is omitted when the clip has no audio.
func Render(w io.Writer, v VideoInfo) error {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(newXMLReport(v)); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

type jsonReport struct {
	Path  string     `json:"path,omitempty"`
	Video jsonVideo  `json:"video"`
	Audio *jsonAudio `json:"audio,omitempty"`
}

type jsonVideo struct {
	ColorSpace     string `json:"colorspace"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	FPSNumerator   uint32 `json:"fps_num"`
	FPSDenominator uint32 `json:"fps_denom"`
	FrameCount     int    `json:"frames"`
	ScanType       string `json:"scan_type"`
}

type jsonAudio struct {
	SampleRate  int   `json:"sample_rate"`
	Channels    int   `json:"channels"`
	SampleCount int64 `json:"samples"`
}

// RenderJSON writes the report for info as indented JSON.
func RenderJSON(w io.Writer, info *Info) error {
	x := newXMLReport(info.Video)
	r := jsonReport{
		Path: info.Path,
		Video: jsonVideo{
			ColorSpace:     x.Video.ColorSpace,
			Width:          x.Video.Width,
			Height:         x.Video.Height,
			FPSNumerator:   x.Video.FPSNumerator,
			FPSDenominator: x.Video.FPSDenominator,
			FrameCount:     x.Video.FrameCount,
			ScanType:       x.Video.ScanType,
		},
	}
	if x.Audio != nil {
		r.Audio = &jsonAudio{
			SampleRate:  x.Audio.SampleRate,
			Channels:    x.Audio.Channels,
			SampleCount: x.Audio.SampleCount,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
