package speech

import (
	"bufio"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/mattn/go-shellwords"

	"github.com/slidecraft/deck2video/internal/audio"
	"github.com/slidecraft/deck2video/internal/config"
	"github.com/slidecraft/deck2video/internal/logger"
)

// maxResponseLine bounds one worker reply. A minute of 24 kHz mono PCM is
// under 4 MB base64, so 64 MB leaves ample headroom.
const maxResponseLine = 64 << 20

type workerRequest struct {
	Op           string  `json:"op"`
	Device       string  `json:"device,omitempty"`
	Text         string  `json:"text,omitempty"`
	Voice        string  `json:"voice,omitempty"`
	Exaggeration float64 `json:"exaggeration,omitempty"`
	CFGWeight    float64 `json:"cfg_weight,omitempty"`
	Temperature  float64 `json:"temperature,omitempty"`
}

type workerResponse struct {
	OK         bool   `json:"ok"`
	Device     string `json:"device,omitempty"`
	SampleRate int    `json:"sample_rate,omitempty"`
	PCMBase64  string `json:"pcm_base64,omitempty"`
	Error      string `json:"error,omitempty"`
	Code       string `json:"code,omitempty"`
}

// execEngine drives a persistent speech-worker subprocess over
// line-delimited JSON: one request line in, one response line out.
type execEngine struct {
	cmdline    []string
	sampleRate int
	log        logger.Logger

	mu      sync.Mutex
	proc    *exec.Cmd
	stdin   io.WriteCloser
	scanner *bufio.Scanner
}

// NewExecEngine builds an engine from the configured worker command line.
// The worker is not started until Load.
func NewExecEngine(cfg config.SpeechConfig, log logger.Logger) (Engine, error) {
	parser := shellwords.NewParser()
	args, err := parser.Parse(cfg.Command)
	if err != nil {
		return nil, fmt.Errorf("parse speech command: %w", err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("speech command is empty")
	}
	return &execEngine{
		cmdline:    args,
		sampleRate: cfg.SampleRate,
		log:        log,
	}, nil
}

func (e *execEngine) Load(ctx context.Context, device string) (Device, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.proc == nil {
		if err := e.start(ctx); err != nil {
			return DeviceCPU, err
		}
	}

	resp, err := e.roundTrip(workerRequest{Op: "load", Device: device})
	if err != nil {
		return DeviceCPU, fmt.Errorf("load model: %w", err)
	}
	if resp.SampleRate > 0 {
		e.sampleRate = resp.SampleRate
	}
	resolved := DeviceFromName(resp.Device)
	e.log.Debug(ctx, "speech model loaded on %s (sample rate %d)", resp.Device, e.sampleRate)
	return resolved, nil
}

func (e *execEngine) Generate(ctx context.Context, req Request) (*audio.Waveform, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.proc == nil {
		return nil, fmt.Errorf("speech worker not loaded")
	}

	resp, err := e.roundTrip(workerRequest{
		Op:           "generate",
		Text:         req.Text,
		Voice:        req.VoicePath,
		Exaggeration: req.Exaggeration,
		CFGWeight:    req.CFGWeight,
		Temperature:  req.Temperature,
	})
	if err != nil {
		return nil, err
	}

	pcm, err := base64.StdEncoding.DecodeString(resp.PCMBase64)
	if err != nil {
		return nil, fmt.Errorf("decode worker pcm: %w", err)
	}
	rate := resp.SampleRate
	if rate == 0 {
		rate = e.sampleRate
	}
	return audio.FromPCM16(pcm, rate)
}

func (e *execEngine) MoveToCPU(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.proc == nil {
		return nil
	}
	if _, err := e.roundTrip(workerRequest{Op: "move_to", Device: "cpu"}); err != nil {
		return fmt.Errorf("move model to cpu: %w", err)
	}
	e.log.Warn(ctx, "speech model moved to cpu")
	return nil
}

func (e *execEngine) Release(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.proc == nil {
		return nil
	}
	if _, err := e.roundTrip(workerRequest{Op: "flush"}); err != nil {
		return fmt.Errorf("release accelerator memory: %w", err)
	}
	return nil
}

func (e *execEngine) SampleRate() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sampleRate
}

func (e *execEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.proc == nil {
		return nil
	}
	e.stdin.Close()
	err := e.proc.Wait()
	e.proc = nil
	return err
}

func (e *execEngine) start(ctx context.Context) error {
	cmd := exec.Command(e.cmdline[0], e.cmdline[1:]...)
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("speech worker stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("speech worker stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start speech worker: %w", err)
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 64<<10), maxResponseLine)

	e.proc = cmd
	e.stdin = stdin
	e.scanner = scanner
	e.log.Debug(ctx, "speech worker started: %s", e.cmdline[0])
	return nil
}

// roundTrip writes one request line and reads one response line.
// Caller holds e.mu.
func (e *execEngine) roundTrip(req workerRequest) (workerResponse, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return workerResponse{}, fmt.Errorf("encode worker request: %w", err)
	}
	data = append(data, '\n')
	if _, err := e.stdin.Write(data); err != nil {
		return workerResponse{}, fmt.Errorf("write to speech worker: %w", err)
	}

	if !e.scanner.Scan() {
		if err := e.scanner.Err(); err != nil {
			return workerResponse{}, fmt.Errorf("read from speech worker: %w", err)
		}
		return workerResponse{}, fmt.Errorf("speech worker closed its output")
	}

	var resp workerResponse
	if err := json.Unmarshal(e.scanner.Bytes(), &resp); err != nil {
		return workerResponse{}, fmt.Errorf("decode worker response: %w", err)
	}
	if !resp.OK {
		if resp.Code == "oom" || isOOMMessage(resp.Error) {
			return workerResponse{}, fmt.Errorf("%w: %s", ErrResourceExhausted, resp.Error)
		}
		return workerResponse{}, fmt.Errorf("speech worker error: %s", resp.Error)
	}
	return resp, nil
}
