package media

import (
	"context"
	"fmt"
	"testing"
)

// fakeExecutor returns canned stdout per command name.
type fakeExecutor struct {
	output string
	err    error
	calls  [][]string
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return f.output, f.err
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, dir, name string, args ...string) (string, error) {
	return f.Execute(ctx, name, args...)
}

func (f *fakeExecutor) LookPath(name string) error { return nil }

func TestDuration(t *testing.T) {
	exec := &fakeExecutor{output: `{"format": {"duration": "12.345000"}}`}

	dur, err := Duration(context.Background(), exec, "audio_001.wav")
	if err != nil {
		t.Fatalf("Duration() error = %v", err)
	}
	if dur != 12.345 {
		t.Errorf("Duration() = %v, want 12.345", dur)
	}
	if len(exec.calls) != 1 || exec.calls[0][0] != "ffprobe" {
		t.Errorf("expected one ffprobe call, got %v", exec.calls)
	}
}

func TestDurationErrors(t *testing.T) {
	t.Run("ffprobe failure", func(t *testing.T) {
		exec := &fakeExecutor{err: fmt.Errorf("exit status 1")}
		if _, err := Duration(context.Background(), exec, "x.wav"); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("missing duration", func(t *testing.T) {
		exec := &fakeExecutor{output: `{"format": {}}`}
		if _, err := Duration(context.Background(), exec, "x.wav"); err == nil {
			t.Error("expected error")
		}
	})
}

func TestFPS(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   float64
	}{
		{name: "integer rate", output: `{"streams": [{"r_frame_rate": "30/1"}]}`, want: 30},
		{name: "ntsc rate", output: `{"streams": [{"r_frame_rate": "30000/1001"}]}`, want: 30000.0 / 1001.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &fakeExecutor{output: tt.output}
			got, err := FPS(context.Background(), exec, "demo.mov")
			if err != nil {
				t.Fatalf("FPS() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("FPS() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("no video stream", func(t *testing.T) {
		exec := &fakeExecutor{output: `{"streams": []}`}
		if _, err := FPS(context.Background(), exec, "demo.mov"); err == nil {
			t.Error("expected error")
		}
	})
}
