// Package avsinfo reports the clip properties of AviSynth scripts.
//
// A [Runtime] evaluates a script with the AviSynth Import function. [Open]
// loads avisynth.dll through its C API (Windows x64 only); [Inspect] runs a
// script and checks that it produced a clip with video; [Render] prints the
// result as a flat tagged block:
//
//	<avsinfo>
//	  <video>
//	    <colorspace>Yv12</colorspace>
//	    <resolutionx>1920</resolutionx>
//	    <resolutiony>1080</resolutiony>
//	    <fps_num>24000</fps_num>
//	    <fps_denom>1001</fps_denom>
//	    <lengthf>34560</lengthf>
//	    <scan_type>PRO</scan_type>
//	  </video>
//	  <audio>
//	    <samplerate>48000</samplerate>
//	    <channelcount>2</channelcount>
//	    <numsamples>69189120</numsamples>
//	  </audio>
//	</avsinfo>
//
// Failures are reported as [ErrRuntimeNotFound], [ErrNoClip], [ErrNoVideo]
// or a *[ScriptError] carrying the runtime's message.
package avsinfo
