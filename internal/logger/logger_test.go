package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestLevelGating(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantDebug bool
		wantInfo  bool
	}{
		{name: "debug level passes everything", level: "debug", wantDebug: true, wantInfo: true},
		{name: "info level drops debug", level: "info", wantDebug: false, wantInfo: true},
		{name: "error level drops info", level: "error", wantDebug: false, wantInfo: false},
		{name: "unknown level defaults to info", level: "bogus", wantDebug: false, wantInfo: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewWithWriter(&buf, tt.level)
			ctx := context.Background()

			log.Debug(ctx, "debug-marker")
			log.Info(ctx, "info-marker")
			log.Error(ctx, "error-marker")

			out := buf.String()
			if got := strings.Contains(out, "debug-marker"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDebug)
			}
			if got := strings.Contains(out, "info-marker"); got != tt.wantInfo {
				t.Errorf("info logged = %v, want %v", got, tt.wantInfo)
			}
			if !strings.Contains(out, "error-marker") {
				t.Error("error should always be logged")
			}
		})
	}
}

func TestFormatting(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info")

	log.Info(context.Background(), "slide %d: %s", 3, "ok")

	if !strings.Contains(buf.String(), "slide 3: ok") {
		t.Errorf("expected formatted message, got %q", buf.String())
	}
}

func TestTeeDuplicatesAtDebug(t *testing.T) {
	var file bytes.Buffer
	log := NewTee(&file, "error")

	log.Debug(context.Background(), "tee-debug-marker")

	if !strings.Contains(file.String(), "tee-debug-marker") {
		t.Error("file handler should capture debug records regardless of console level")
	}
}
