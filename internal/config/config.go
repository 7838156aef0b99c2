/*
 * Copyright 2025 SREDiag Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package config loads the telemetry poller settings from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/srediag/acc-telemetry/internal/logger"
	"github.com/srediag/acc-telemetry/pkg/acc"
)

// DefaultSimProcess is the executable name of the simulator on Windows.
const DefaultSimProcess = "AC2-Win64-Shipping.exe"

// Config is the poller configuration. Every field maps to one variable.
type Config struct {
	// Interval is the wait between two poll iterations.
	Interval time.Duration `env:"ACC_TELEMETRY_INTERVAL"`
	// Fields are the graphics fields printed every iteration, in order.
	Fields []string `env:"ACC_TELEMETRY_FIELDS" envSeparator:","`
	// Dump lists channels whose full field listing follows each block.
	Dump []string `env:"ACC_TELEMETRY_DUMP" envSeparator:","`
	// Create makes the mappings when the simulator has not yet.
	Create bool `env:"ACC_TELEMETRY_CREATE"`
	// AttachTimeout bounds the attach retries. Zero attaches once.
	AttachTimeout time.Duration `env:"ACC_TELEMETRY_ATTACH_TIMEOUT"`
	// MetricsAddr is the listen address of /metrics, /live and /ready.
	MetricsAddr string `env:"ACC_TELEMETRY_METRICS_ADDR"`
	// SimProcess is the process name checked by the readiness probe.
	SimProcess string `env:"ACC_TELEMETRY_SIM_PROCESS"`
	// LogLevel is the logger level, 0 (Trace) to 5 (NoPrint).
	LogLevel int `env:"ACC_TELEMETRY_LOG_LEVEL"`
}

// DefaultConfig returns the settings used when no variable is set.
func DefaultConfig() *Config {
	return &Config{
		Interval:   5 * time.Second,
		Fields:     []string{"penalty", "flag"},
		Create:     true,
		SimProcess: DefaultSimProcess,
		LogLevel:   logger.LevelWarn,
	}
}

// Load parses the environment on top of DefaultConfig and verifies the result.
func Load() (*Config, error) {
	cfg := DefaultConfig()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.Fields = normalize(cfg.Fields)
	cfg.Dump = normalize(cfg.Dump)
	if err := VerifyConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// VerifyConfig checks cfg for values the poller cannot run with.
func VerifyConfig(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	if cfg.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %v", cfg.Interval)
	}
	if cfg.AttachTimeout < 0 {
		return fmt.Errorf("attach timeout must not be negative, got %v", cfg.AttachTimeout)
	}
	if len(cfg.Fields) == 0 {
		return errors.New("at least one field must be printed")
	}
	for _, name := range cfg.Fields {
		if !acc.IsGraphicsField(name) {
			return fmt.Errorf("%w: %q", acc.ErrUnknownField, name)
		}
	}
	if _, err := cfg.DumpChannels(); err != nil {
		return err
	}
	if cfg.LogLevel < logger.LevelTrace || cfg.LogLevel > logger.LevelNoPrint {
		return fmt.Errorf("log level must be within [%d, %d], got %d",
			logger.LevelTrace, logger.LevelNoPrint, cfg.LogLevel)
	}
	return nil
}

// DumpChannels resolves Dump into channels, dropping duplicates.
func (c *Config) DumpChannels() ([]acc.Channel, error) {
	var out []acc.Channel
	seen := make(map[acc.Channel]bool, len(acc.Channels))
	for _, name := range c.Dump {
		ch, err := acc.ParseChannel(name)
		if err != nil {
			return nil, err
		}
		if !seen[ch] {
			seen[ch] = true
			out = append(out, ch)
		}
	}
	return out, nil
}

func normalize(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
