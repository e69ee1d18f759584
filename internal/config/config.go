package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Speech  SpeechConfig  `yaml:"speech"`
	FFmpeg  FFmpegConfig  `yaml:"ffmpeg"`
	Timing  TimingConfig  `yaml:"timing"`
	Paths   PathsConfig   `yaml:"paths"`
	Logging LoggingConfig `yaml:"logging"`
	Review  ReviewConfig  `yaml:"review"`
}

type SpeechConfig struct {
	// Command launches the speech worker process, e.g.
	// "python3 -m chatterbox_worker". Parsed with shell-style word splitting.
	Command   string `yaml:"command"`
	VoicePath string `yaml:"voice_path"`
	Device    string `yaml:"device"` // auto, cpu, cuda, mps

	// For the three synthesis knobs a zero value means "use the default"
	// (0.5, 0.5, 0.8); a config file cannot force an explicit zero. The
	// matching CLI flags can, since they override after defaulting.
	Exaggeration float64 `yaml:"exaggeration"`
	CFGWeight    float64 `yaml:"cfg_weight"`
	Temperature  float64 `yaml:"temperature"`

	SampleRate int `yaml:"sample_rate"`
}

type FFmpegConfig struct {
	VideoCodec   string `yaml:"video_codec"`
	AudioCodec   string `yaml:"audio_codec"`
	AudioBitrate string `yaml:"audio_bitrate"`
	FPS          int    `yaml:"fps"` // 0 = auto-detect from screencasts
}

type TimingConfig struct {
	// HoldDuration is how long slides without notes stay on screen, seconds.
	HoldDuration float64 `yaml:"hold_duration"`
	// AudioPaddingMS is silence inserted before and after each slide's narration.
	AudioPaddingMS int `yaml:"audio_padding_ms"`
}

type PathsConfig struct {
	TempDir        string `yaml:"temp_dir"`
	Output         string `yaml:"output"`
	Pronunciations string `yaml:"pronunciations"`
	KeepTemp       bool   `yaml:"keep_temp"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ReviewConfig struct {
	Interactive bool `yaml:"interactive"`
}

// Load reads a yaml config file, fills defaults and validates.
// An empty path yields a default config.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Speech.Exaggeration < 0 {
		return fmt.Errorf("speech.exaggeration must not be negative")
	}
	if c.Timing.HoldDuration < 0 {
		return fmt.Errorf("timing.hold_duration must not be negative")
	}
	if c.Timing.AudioPaddingMS < 0 {
		return fmt.Errorf("timing.audio_padding_ms must not be negative")
	}
	if c.FFmpeg.FPS < 0 {
		return fmt.Errorf("ffmpeg.fps must not be negative")
	}

	if c.Speech.Command == "" {
		c.Speech.Command = "python3 -m deck2video_worker"
	}
	if c.Speech.Device == "" {
		c.Speech.Device = "auto"
	}
	if c.Speech.Exaggeration == 0 {
		c.Speech.Exaggeration = 0.5
	}
	if c.Speech.CFGWeight == 0 {
		c.Speech.CFGWeight = 0.5
	}
	if c.Speech.Temperature == 0 {
		c.Speech.Temperature = 0.8
	}
	if c.Speech.SampleRate == 0 {
		c.Speech.SampleRate = 24000
	}
	if c.Timing.HoldDuration == 0 {
		c.Timing.HoldDuration = 3.0
	}
	if c.FFmpeg.VideoCodec == "" {
		c.FFmpeg.VideoCodec = "libx264"
	}
	if c.FFmpeg.AudioCodec == "" {
		c.FFmpeg.AudioCodec = "aac"
	}
	if c.FFmpeg.AudioBitrate == "" {
		c.FFmpeg.AudioBitrate = "192k"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}
