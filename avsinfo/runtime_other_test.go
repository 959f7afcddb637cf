//go:build !(windows && amd64)

package avsinfo

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestOpen_UnsupportedPlatform(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	rt, err := Open(WithLibrary("custom.dll"), WithLogger(zap.New(core)))
	if !errors.Is(err, ErrUnsupportedPlatform) {
		t.Fatalf("Open() error = %v, want ErrUnsupportedPlatform", err)
	}
	if rt != nil {
		t.Fatal("Open() returned a runtime")
	}

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("logged %d entries, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["library"]; got != "custom.dll" {
		t.Errorf("logged library = %v, want custom.dll", got)
	}
}
