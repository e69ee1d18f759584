package speech

import (
	"context"

	"github.com/slidecraft/deck2video/internal/audio"
)

// MockResult scripts one Generate call of the mock engine.
type MockResult struct {
	Waveform *audio.Waveform
	Err      error
}

// MockEngine is a scriptable in-process engine for tests.
type MockEngine struct {
	Rate   int
	Device Device

	// Results are consumed one per Generate call; when the queue is
	// empty, Generate returns a short non-silent tone.
	Results []MockResult

	LoadCalls      int
	GenerateCalls  int
	MoveToCPUCalls int
	ReleaseCalls   int
	Texts          []string
	Closed         bool
}

// NewMockEngine creates a mock resolving "auto" to the accelerator.
func NewMockEngine(rate int) *MockEngine {
	return &MockEngine{Rate: rate, Device: DeviceAccelerator}
}

// Tone is a deliberately non-silent waveform of the given duration.
func Tone(seconds float64, rate int) *audio.Waveform {
	wf := audio.Silence(seconds, rate)
	for i := range wf.Data {
		wf.Data[i] = 1000
	}
	return wf
}

func (m *MockEngine) Load(ctx context.Context, device string) (Device, error) {
	m.LoadCalls++
	if device == "cpu" {
		m.Device = DeviceCPU
	}
	return m.Device, nil
}

func (m *MockEngine) Generate(ctx context.Context, req Request) (*audio.Waveform, error) {
	m.GenerateCalls++
	m.Texts = append(m.Texts, req.Text)
	if len(m.Results) > 0 {
		r := m.Results[0]
		m.Results = m.Results[1:]
		return r.Waveform, r.Err
	}
	return Tone(0.5, m.Rate), nil
}

func (m *MockEngine) MoveToCPU(ctx context.Context) error {
	m.MoveToCPUCalls++
	m.Device = DeviceCPU
	return nil
}

func (m *MockEngine) Release(ctx context.Context) error {
	m.ReleaseCalls++
	return nil
}

func (m *MockEngine) SampleRate() int {
	return m.Rate
}

func (m *MockEngine) Close() error {
	m.Closed = true
	return nil
}
