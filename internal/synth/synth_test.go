package synth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/slidecraft/deck2video/internal/config"
	"github.com/slidecraft/deck2video/internal/deck"
	"github.com/slidecraft/deck2video/internal/logger"
	"github.com/slidecraft/deck2video/internal/pronounce"
	"github.com/slidecraft/deck2video/internal/speech"
)

type fakePlayer struct {
	plays []string
}

func (f *fakePlayer) Play(ctx context.Context, path string) error {
	f.plays = append(f.plays, path)
	return nil
}

func testConfig() *config.Config {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}
	return cfg
}

func newTestSynth(cfg *config.Config, engine speech.Engine, table pronounce.Table, input string) (Synthesizer, *fakePlayer) {
	player := &fakePlayer{}
	log := logger.NewWithWriter(io.Discard, "error")
	s := NewWithIO(cfg, engine, table, player, log, strings.NewReader(input), io.Discard)
	return s, player
}

func readSamples(t *testing.T, path string) *gaudio.IntBuffer {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	buf, err := wav.NewDecoder(f).FullPCMBuffer()
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return buf
}

func allZero(data []int) bool {
	for _, s := range data {
		if s != 0 {
			return false
		}
	}
	return true
}

func TestTwoSlideDeck(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig()
	engine := speech.NewMockEngine(24000)
	s, _ := newTestSynth(cfg, engine, nil, "")

	slides := []deck.Slide{
		{Index: 1, Notes: "Hello world."},
		{Index: 2},
	}
	failed, err := s.GenerateAll(context.Background(), slides, dir)
	if err != nil {
		t.Fatalf("GenerateAll() error = %v", err)
	}
	if len(failed) != 0 {
		t.Errorf("failed = %v, want none", failed)
	}

	// One artifact per slide, keyed by index.
	narrated := readSamples(t, filepath.Join(dir, "audio_001.wav"))
	if allZero(narrated.Data) {
		t.Error("narrated slide should not be silent")
	}

	silent := readSamples(t, filepath.Join(dir, "audio_002.wav"))
	if len(silent.Data) != 72000 {
		t.Errorf("silent slide = %d samples, want 72000 (3.0s at 24kHz)", len(silent.Data))
	}
	if !allZero(silent.Data) {
		t.Error("silent slide payload must be all zeros")
	}
}

func TestModelLoadIsLazy(t *testing.T) {
	dir := t.TempDir()
	engine := speech.NewMockEngine(24000)
	s, _ := newTestSynth(testConfig(), engine, nil, "")

	slides := []deck.Slide{{Index: 1}, {Index: 2}}
	if _, err := s.GenerateAll(context.Background(), slides, dir); err != nil {
		t.Fatalf("GenerateAll() error = %v", err)
	}
	if engine.LoadCalls != 0 {
		t.Errorf("LoadCalls = %d, want 0 for an all-silent deck", engine.LoadCalls)
	}
}

func TestOOMDowngradesOnceAndRetriesSlide(t *testing.T) {
	dir := t.TempDir()
	engine := speech.NewMockEngine(24000)
	// Chunk 1 of the two-chunk slide hits OOM; the retry runs the whole
	// slide again on cpu.
	engine.Results = []speech.MockResult{{Err: speech.ErrResourceExhausted}}
	s, _ := newTestSynth(testConfig(), engine, nil, "")

	slides := []deck.Slide{
		{Index: 1, Notes: "One. Two. Three. Four."}, // 4 sentences -> 2 chunks
	}
	failed, err := s.GenerateAll(context.Background(), slides, dir)
	if err != nil {
		t.Fatalf("GenerateAll() error = %v", err)
	}
	if len(failed) != 0 {
		t.Errorf("failed = %v, want none after cpu retry", failed)
	}
	if engine.MoveToCPUCalls != 1 {
		t.Errorf("MoveToCPUCalls = %d, want 1", engine.MoveToCPUCalls)
	}
	// 1 failed chunk + full 2-chunk retry.
	if engine.GenerateCalls != 3 {
		t.Errorf("GenerateCalls = %d, want 3", engine.GenerateCalls)
	}
	if allZero(readSamples(t, filepath.Join(dir, "audio_001.wav")).Data) {
		t.Error("slide audio should be non-silent after successful retry")
	}
}

func TestAtMostOneDowngradePerRun(t *testing.T) {
	dir := t.TempDir()
	engine := speech.NewMockEngine(24000)
	s, _ := newTestSynth(testConfig(), engine, nil, "")

	// Slide 1: OOM then clean retry. Slide 2: OOM again, but the model is
	// already on cpu, so the slide falls back to silence instead.
	engine.Results = []speech.MockResult{
		{Err: speech.ErrResourceExhausted}, // slide 1 first attempt
		{Waveform: speech.Tone(0.5, 24000)}, // slide 1 retry
		{Err: speech.ErrResourceExhausted}, // slide 2
	}

	slides := []deck.Slide{
		{Index: 1, Notes: "Hello there."},
		{Index: 2, Notes: "Still talking."},
	}
	failed, err := s.GenerateAll(context.Background(), slides, dir)
	if err != nil {
		t.Fatalf("GenerateAll() error = %v", err)
	}
	if engine.MoveToCPUCalls != 1 {
		t.Errorf("MoveToCPUCalls = %d, want exactly 1 per run", engine.MoveToCPUCalls)
	}
	if len(failed) != 1 || failed[0] != 2 {
		t.Errorf("failed = %v, want [2]", failed)
	}
	if !allZero(readSamples(t, filepath.Join(dir, "audio_002.wav")).Data) {
		t.Error("slide 2 should have been substituted with silence")
	}
}

func TestNonOOMFailureSubstitutesSilence(t *testing.T) {
	dir := t.TempDir()
	engine := speech.NewMockEngine(24000)
	engine.Results = []speech.MockResult{{Err: fmt.Errorf("weights corrupted")}}
	s, _ := newTestSynth(testConfig(), engine, nil, "")

	slides := []deck.Slide{{Index: 1, Notes: "Hello."}}
	failed, err := s.GenerateAll(context.Background(), slides, dir)
	if err != nil {
		t.Fatalf("GenerateAll() error = %v", err)
	}
	if len(failed) != 1 || failed[0] != 1 {
		t.Errorf("failed = %v, want [1]", failed)
	}
	if engine.MoveToCPUCalls != 0 {
		t.Errorf("MoveToCPUCalls = %d, want 0 for non-OOM failure", engine.MoveToCPUCalls)
	}

	fallback := readSamples(t, filepath.Join(dir, "audio_001.wav"))
	if len(fallback.Data) != 72000 || !allZero(fallback.Data) {
		t.Error("fallback artifact should be hold-duration silence")
	}
}

func TestReleaseRunsAfterEveryChunk(t *testing.T) {
	dir := t.TempDir()
	engine := speech.NewMockEngine(24000)
	s, _ := newTestSynth(testConfig(), engine, nil, "")

	slides := []deck.Slide{{Index: 1, Notes: "One. Two. Three. Four. Five. Six."}} // 2 chunks
	if _, err := s.GenerateAll(context.Background(), slides, dir); err != nil {
		t.Fatalf("GenerateAll() error = %v", err)
	}
	// One release per chunk plus the slide-boundary release.
	if engine.ReleaseCalls < 3 {
		t.Errorf("ReleaseCalls = %d, want at least 3", engine.ReleaseCalls)
	}
}

func TestGenerateSubsetTouchesOnlyRequestedSlides(t *testing.T) {
	dir := t.TempDir()
	engine := speech.NewMockEngine(24000)
	s, _ := newTestSynth(testConfig(), engine, nil, "")

	slides := []deck.Slide{
		{Index: 1, Notes: "First slide."},
		{Index: 2, Notes: "Second slide."},
		{Index: 3, Notes: "Third slide."},
	}

	// Pre-existing artifact for slide 1 that must survive the subset run.
	marker := filepath.Join(dir, "audio_001.wav")
	if err := os.WriteFile(marker, []byte("keep me"), 0644); err != nil {
		t.Fatal(err)
	}

	failed, err := s.GenerateSubset(context.Background(), slides, []int{2, 3}, dir)
	if err != nil {
		t.Fatalf("GenerateSubset() error = %v", err)
	}
	if len(failed) != 0 {
		t.Errorf("failed = %v, want none", failed)
	}
	if engine.GenerateCalls != 2 {
		t.Errorf("GenerateCalls = %d, want 2", engine.GenerateCalls)
	}

	data, err := os.ReadFile(marker)
	if err != nil || string(data) != "keep me" {
		t.Error("slide 1 artifact must not be touched by a subset run")
	}
	for _, idx := range []int{2, 3} {
		if allZero(readSamples(t, filepath.Join(dir, deck.AudioFileName(idx))).Data) {
			t.Errorf("slide %d should have fresh non-silent audio", idx)
		}
	}
}

func TestGenerateSubsetRejectsOutOfRangeIndex(t *testing.T) {
	engine := speech.NewMockEngine(24000)
	s, _ := newTestSynth(testConfig(), engine, nil, "")

	slides := []deck.Slide{{Index: 1, Notes: "Only slide."}}
	_, err := s.GenerateSubset(context.Background(), slides, []int{4}, t.TempDir())
	if !errors.Is(err, deck.ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
	if engine.GenerateCalls != 0 {
		t.Error("nothing should be synthesized for an invalid index list")
	}
}

func TestPronunciationsAppliedBeforeChunking(t *testing.T) {
	dir := t.TempDir()
	engine := speech.NewMockEngine(24000)
	table := pronounce.Table{"kubectl": "cube control"}
	s, _ := newTestSynth(testConfig(), engine, table, "")

	slides := []deck.Slide{{Index: 1, Notes: "Use kubectl."}}
	if _, err := s.GenerateAll(context.Background(), slides, dir); err != nil {
		t.Fatalf("GenerateAll() error = %v", err)
	}
	if len(engine.Texts) != 1 || engine.Texts[0] != "Use cube control." {
		t.Errorf("model saw %v, want rewritten text", engine.Texts)
	}
	if slides[0].Notes != "Use kubectl." {
		t.Error("slide record must not be mutated by the rewrite")
	}
}
