package assembler

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestReconcileStill(t *testing.T) {
	tests := []struct {
		name      string
		audioDur  float64
		paddingMS int
		wantDur   float64
	}{
		{name: "no padding", audioDur: 5.0, paddingMS: 0, wantDur: 5.0},
		{name: "padding added on both sides", audioDur: 5.0, paddingMS: 500, wantDur: 6.0},
		{name: "zero audio", audioDur: 0, paddingMS: 250, wantDur: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := Reconcile(1, KindStill, "slide_001.png", "audio_001.wav", tt.audioDur, 0, tt.paddingMS)
			if !almostEqual(spec.Duration, tt.wantDur) {
				t.Errorf("Duration = %v, want %v", spec.Duration, tt.wantDur)
			}
			if spec.Freeze != 0 {
				t.Errorf("Freeze = %v, stills never freeze", spec.Freeze)
			}
		})
	}
}

func TestReconcileScreencast(t *testing.T) {
	tests := []struct {
		name       string
		audioDur   float64
		clipDur    float64
		paddingMS  int
		wantDur    float64
		wantFreeze float64
	}{
		{
			name:     "narration outlasts clip",
			audioDur: 12.0, clipDur: 5.0, paddingMS: 0,
			wantDur: 12.0, wantFreeze: 7.0,
		},
		{
			name:     "clip outlasts padded narration",
			audioDur: 5.0, clipDur: 10.0, paddingMS: 500,
			wantDur: 10.0, wantFreeze: 0,
		},
		{
			name:     "exact tie means no freeze",
			audioDur: 8.0, clipDur: 8.0, paddingMS: 0,
			wantDur: 8.0, wantFreeze: 0,
		},
		{
			name:     "padding tips narration past the clip",
			audioDur: 9.5, clipDur: 10.0, paddingMS: 500,
			wantDur: 10.5, wantFreeze: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := Reconcile(1, KindScreencast, "demo.mov", "audio_001.wav", tt.audioDur, tt.clipDur, tt.paddingMS)
			if !almostEqual(spec.Duration, tt.wantDur) {
				t.Errorf("Duration = %v, want %v", spec.Duration, tt.wantDur)
			}
			if !almostEqual(spec.Freeze, tt.wantFreeze) {
				t.Errorf("Freeze = %v, want %v", spec.Freeze, tt.wantFreeze)
			}
			// The segment never truncates narration.
			padded := tt.audioDur + 2*(float64(tt.paddingMS)/1000)
			if spec.Duration < padded {
				t.Errorf("Duration %v shorter than padded narration %v", spec.Duration, padded)
			}
		})
	}
}
