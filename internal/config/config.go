package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fmueller/dictator/internal/bridge"
	"github.com/fmueller/dictator/internal/whisper"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. DICTATOR_DECODE_LANGUAGE.
const EnvPrefix = "DICTATOR"

const DefaultLogTag = "whisperlib"

type Config struct {
	Model  ModelConfig  `yaml:"model"`
	Decode DecodeConfig `yaml:"decode"`
	Log    LogConfig    `yaml:"log"`
}

type ModelConfig struct {
	// Name selects a registry model inside Dir. Path wins when both are set.
	Name   string `yaml:"name"`
	Path   string `yaml:"path,omitempty"`
	Dir    string `yaml:"dir,omitempty"`
	UseGPU *bool  `yaml:"use_gpu,omitempty" split_words:"true"`
}

type DecodeConfig struct {
	Strategy        string `yaml:"strategy"`
	Language        string `yaml:"language"`
	Translate       bool   `yaml:"translate"`
	Threads         int    `yaml:"threads"`
	NoContext       bool   `yaml:"no_context" split_words:"true"`
	SingleSegment   bool   `yaml:"single_segment" split_words:"true"`
	PrintProgress   bool   `yaml:"print_progress" split_words:"true"`
	PrintSpecial    bool   `yaml:"print_special" split_words:"true"`
	PrintTimestamps bool   `yaml:"print_timestamps" split_words:"true"`
	PrintRealtime   bool   `yaml:"print_realtime" split_words:"true"`
}

type LogConfig struct {
	Verbose bool   `yaml:"verbose"`
	JSON    bool   `yaml:"json"`
	Tag     string `yaml:"tag"`
}

// Default returns the dictation defaults: greedy English decoding on four
// threads with no context carried between calls.
func Default() Config {
	params := whisper.TranscribeParams()
	return Config{
		Model: ModelConfig{
			Name: whisper.DefaultModel,
		},
		Decode: DecodeConfig{
			Strategy:        string(params.Strategy),
			Language:        params.Language,
			Translate:       params.Translate,
			Threads:         params.Threads,
			NoContext:       params.NoContext,
			SingleSegment:   params.SingleSegment,
			PrintProgress:   params.PrintProgress,
			PrintSpecial:    params.PrintSpecial,
			PrintTimestamps: params.PrintTimestamps,
			PrintRealtime:   params.PrintRealtime,
		},
		Log: LogConfig{
			Tag: DefaultLogTag,
		},
	}
}

// Load reads the YAML file at path over the defaults, applies environment
// overrides and validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return cfg, fmt.Errorf("config file not found: %w", err)
			}
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return cfg, fmt.Errorf("apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate normalizes fields in place and rejects unusable values.
func (c *Config) Validate() error {
	c.Decode.Language = strings.ToLower(strings.TrimSpace(c.Decode.Language))
	c.Decode.Strategy = strings.ToLower(strings.TrimSpace(c.Decode.Strategy))
	c.Model.Name = strings.TrimSpace(c.Model.Name)
	c.Model.Path = strings.TrimSpace(c.Model.Path)
	c.Model.Dir = strings.TrimSpace(c.Model.Dir)

	if c.Decode.Language == "" {
		return errors.New("decode.language must not be empty (use \"auto\" for detection)")
	}
	if _, err := whisper.ParseStrategy(c.Decode.Strategy); err != nil {
		return fmt.Errorf("decode.strategy: %w", err)
	}
	if c.Decode.Threads < 1 {
		return fmt.Errorf("decode.threads must be >= 1, got %d", c.Decode.Threads)
	}
	if c.Model.Name == "" && c.Model.Path == "" {
		return errors.New("model.name or model.path must be set")
	}
	if strings.TrimSpace(c.Log.Tag) == "" {
		c.Log.Tag = DefaultLogTag
	}
	return nil
}

func (c Config) ContextParams() whisper.ContextParams {
	params := whisper.DefaultContextParams()
	params.UseGPU = c.Model.UseGPU
	return params
}

func (c Config) FullParams() whisper.FullParams {
	strategy, err := whisper.ParseStrategy(c.Decode.Strategy)
	if err != nil {
		strategy = whisper.StrategyGreedy
	}
	params := whisper.DefaultFullParams(strategy)
	params.Language = c.Decode.Language
	params.Translate = c.Decode.Translate
	params.Threads = c.Decode.Threads
	params.NoContext = c.Decode.NoContext
	params.SingleSegment = c.Decode.SingleSegment
	params.PrintProgress = c.Decode.PrintProgress
	params.PrintSpecial = c.Decode.PrintSpecial
	params.PrintTimestamps = c.Decode.PrintTimestamps
	params.PrintRealtime = c.Decode.PrintRealtime
	return params
}

func (c Config) BridgeOptions() bridge.Options {
	return bridge.Options{
		Context: c.ContextParams(),
		Decode:  c.FullParams(),
	}
}

// Marshal renders the configuration as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
