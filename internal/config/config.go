package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// EnvReducedMotion overrides the reduced_motion setting when set to a value
// strconv.ParseBool accepts.
const EnvReducedMotion = "MODALHOST_REDUCED_MOTION"

// Config holds user preferences for the modal host.
type Config struct {
	ReducedMotion   bool   `json:"reduced_motion"`
	AnimationFrames int    `json:"animation_frames,omitempty"`
	FrameIntervalMS int    `json:"frame_interval_ms,omitempty"`
	LogFile         string `json:"log_file,omitempty"`
}

// FrameInterval returns the animation frame interval, zero if unset.
func (c *Config) FrameInterval() time.Duration {
	return time.Duration(c.FrameIntervalMS) * time.Millisecond
}

// Load reads the config file at path. A missing file yields defaults. The
// environment override is applied on top.
func Load(path string) (*Config, error) {
	cfg, err := read(path)
	if err != nil {
		return nil, err
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func read(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	v, ok := os.LookupEnv(EnvReducedMotion)
	if !ok || v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", EnvReducedMotion, err)
	}
	cfg.ReducedMotion = b
	return nil
}

// Save writes the config to path
func Save(path string, cfg *Config) error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SetReducedMotion persists the reduced-motion preference.
func SetReducedMotion(path string, enabled bool) error {
	cfg, err := read(path)
	if err != nil {
		return err
	}

	cfg.ReducedMotion = enabled
	return Save(path, cfg)
}

// Watch polls the config file every interval and calls fn with the reloaded
// config whenever its modification time changes. It returns when ctx ends.
// Files that fail to parse are skipped until the next change.
func Watch(ctx context.Context, path string, interval time.Duration, fn func(*Config)) error {
	last := modTime(path)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			mt := modTime(path)
			if mt.Equal(last) {
				continue
			}
			last = mt
			cfg, err := Load(path)
			if err != nil {
				continue
			}
			fn(cfg)
		}
	}
}

func modTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
