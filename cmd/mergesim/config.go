// SPDX-License-Identifier: MIT
// Package: mergesim/cmd/mergesim
//
// config.go: YAML run configuration.
//
// Load order: file → ${VAR} expansion → defaults → MERGESIM_* overrides → validation.

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/katalvlaran/mergesim/market"
	"github.com/katalvlaran/mergesim/seedseq"
	"github.com/katalvlaran/mergesim/variates"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// envPrefix is the prefix of environment overrides (MERGESIM_THREADS, ...).
const envPrefix = "MERGESIM"

// Config is the file layout accepted by `mergesim run` and `mergesim validate`.
type Config struct {
	Sample  market.SampleSpec `yaml:"sample"`
	Run     RunConfig         `yaml:"run"`
	Logging LoggingConfig     `yaml:"logging"`
}

// RunConfig holds scheduling and reproducibility settings.
type RunConfig struct {
	// Seeds are integer seeds in assignment order (shares, margins, firm
	// counts, prices). Empty means fresh OS entropy.
	Seeds     []uint64 `yaml:"seeds"`
	Generator string   `yaml:"generator" validate:"oneof=pcg mt19937"`
	Threads   int      `yaml:"threads" validate:"gte=1,lte=4096"`
	ChunkRows int      `yaml:"chunk_rows" validate:"gte=1"`
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// envOverrides are applied after the file; zero values leave the file alone.
type envOverrides struct {
	Threads  int    `envconfig:"THREADS"`
	LogLevel string `envconfig:"LOG_LEVEL"`
}

// Load reads a YAML config file and expands environment variables.
// Sample fields missing from the file keep market.DefaultSampleSpec values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := Config{Sample: market.DefaultSampleSpec()}
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}

	return &cfg, nil
}

// LoadAndValidate loads config, applies defaults and overrides, and validates.
func LoadAndValidate(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Run.Generator == "" {
		c.Run.Generator = "pcg"
	}
	c.Run.Generator = strings.ToLower(c.Run.Generator)
	if c.Run.Threads == 0 {
		c.Run.Threads = variates.DefaultThreads
	}
	if c.Run.ChunkRows == 0 {
		c.Run.ChunkRows = variates.DefaultChunkRows
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

func (c *Config) applyEnv() error {
	var env envOverrides
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return fmt.Errorf("load config from env: %w", err)
	}
	if env.Threads != 0 {
		c.Run.Threads = env.Threads
	}
	if env.LogLevel != "" {
		c.Logging.Level = strings.ToLower(env.LogLevel)
	}

	return nil
}

var validate = validator.New()

// Validate checks the struct tags first, then the sample specification.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, formatFieldError(fe))
		}

		return errors.New(strings.Join(msgs, "; "))
	}

	return c.Sample.Validate()
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", fe.Namespace(), fe.Param(), fe.Value())
	case "gte", "lte":
		return fmt.Sprintf("%s must be %s %s, got %v", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag())
	}
}

// generator maps the configured name to a bit generator. Call after Validate.
func (r RunConfig) generator() seedseq.BitGenerator {
	if r.Generator == "mt19937" {
		return seedseq.MT19937
	}

	return seedseq.PCG
}

// seedPools expands the integer seeds; nil when none are configured.
func (r RunConfig) seedPools() []*seedseq.SeedSequence {
	if len(r.Seeds) == 0 {
		return nil
	}
	gen := r.generator()
	out := make([]*seedseq.SeedSequence, len(r.Seeds))
	for i, s := range r.Seeds {
		out[i] = seedseq.New(s).WithGenerator(gen)
	}

	return out
}

// level parses Logging.Level; slog accepts the validated names.
func (l LoggingConfig) level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}

	return lvl
}
