package main

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/uniqproject/cpuext/avsinfo"
	"go.uber.org/zap"
)

type fakeRuntime struct {
	info   avsinfo.VideoInfo
	err    error
	closed bool
}

func (f *fakeRuntime) Import(string) (avsinfo.VideoInfo, error) { return f.info, f.err }

func (f *fakeRuntime) Close() error {
	f.closed = true
	return nil
}

func fakeOpen(rt *fakeRuntime, err error) openFunc {
	return func(...avsinfo.Option) (avsinfo.Runtime, error) {
		if err != nil {
			return nil, err
		}
		return rt, nil
	}
}

func TestRun(t *testing.T) {
	rt := &fakeRuntime{info: avsinfo.VideoInfo{Width: 720, Height: 576, FPSNumerator: 25, FPSDenominator: 1, FrameCount: 250}}

	var stdout, stderr bytes.Buffer
	err := run(&stdout, &stderr, fakeOpen(rt, nil), &Options{}, zap.NewNop(), "clip.avs")
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !rt.closed {
		t.Error("runtime not closed")
	}
	if stderr.Len() != 0 {
		t.Errorf("unexpected stderr: %q", stderr.String())
	}
	for _, want := range []string{"<avsinfo>", "<resolutionx>720</resolutionx>", "<lengthf>250</lengthf>", "</avsinfo>"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout.String())
		}
	}
}

func TestRun_JSON(t *testing.T) {
	rt := &fakeRuntime{info: avsinfo.VideoInfo{Width: 320, Height: 240}}

	var stdout, stderr bytes.Buffer
	if err := run(&stdout, &stderr, fakeOpen(rt, nil), &Options{JSON: true}, zap.NewNop(), "clip.avs"); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(stdout.String(), `"width": 320`) {
		t.Errorf("stdout = %s", stdout.String())
	}
}

func TestRun_WarnsOnExtension(t *testing.T) {
	rt := &fakeRuntime{info: avsinfo.VideoInfo{Width: 320, Height: 240}}

	var stdout, stderr bytes.Buffer
	if err := run(&stdout, &stderr, fakeOpen(rt, nil), &Options{}, zap.NewNop(), "clip.txt"); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(stderr.String(), "clip.txt is no .avs file") {
		t.Errorf("stderr = %q", stderr.String())
	}
	if stdout.Len() == 0 {
		t.Error("report should still be printed")
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name    string
		open    openFunc
		message string
	}{
		{
			"runtime not found",
			fakeOpen(nil, fmt.Errorf("%w: load avisynth.dll: not found", avsinfo.ErrRuntimeNotFound)),
			"Couldn't find avisynth.dll",
		},
		{
			"no clip",
			fakeOpen(&fakeRuntime{err: avsinfo.ErrNoClip}, nil),
			"Found no valid avisynth clip!",
		},
		{
			"no video",
			fakeOpen(&fakeRuntime{info: avsinfo.VideoInfo{AudioSampleRate: 48000}}, nil),
			"Found no video info in current script!",
		},
		{
			"script error",
			fakeOpen(&fakeRuntime{err: &avsinfo.ScriptError{Msg: "I don't know what 'foo' means"}}, nil),
			"avisynth error: I don't know what 'foo' means",
		},
		{
			"unsupported platform",
			fakeOpen(nil, avsinfo.ErrUnsupportedPlatform),
			avsinfo.ErrUnsupportedPlatform.Error(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := run(&stdout, &stderr, tt.open, &Options{}, zap.NewNop(), "clip.avs")
			if err == nil {
				t.Fatal("run() expected error")
			}
			if got := describe(err); !strings.Contains(got, tt.message) {
				t.Errorf("describe() = %q, want %q", got, tt.message)
			}
			if stdout.Len() != 0 {
				t.Errorf("stdout should be empty on failure: %q", stdout.String())
			}
		})
	}
}

func TestRootCmd(t *testing.T) {
	rt := &fakeRuntime{info: avsinfo.VideoInfo{Width: 640, Height: 480}}
	cmd := newRootCmd(fakeOpen(rt, nil))

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"movie.avs", "--json"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v (stderr %q)", err, stderr.String())
	}
	if !strings.Contains(stdout.String(), `"width": 640`) {
		t.Errorf("stdout = %s", stdout.String())
	}
}

func TestRootCmd_Failure(t *testing.T) {
	cmd := newRootCmd(fakeOpen(&fakeRuntime{err: avsinfo.ErrNoClip}, nil))

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"movie.avs"})

	err := cmd.Execute()
	if !errors.Is(err, avsinfo.ErrNoClip) {
		t.Fatalf("Execute() error = %v, want ErrNoClip", err)
	}
	if !strings.Contains(stderr.String(), "Found no valid avisynth clip!") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestRootCmd_RequiresPath(t *testing.T) {
	cmd := newRootCmd(fakeOpen(&fakeRuntime{}, nil))
	var stderr bytes.Buffer
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err == nil {
		t.Fatal("Execute() without a script path should fail")
	}
	if !strings.Contains(stderr.String(), "usage: avsinfo") {
		t.Errorf("stderr = %q, want usage", stderr.String())
	}
}
