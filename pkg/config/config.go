package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values like "15m" parse.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("parse duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}

	var seconds int64
	if err := value.Decode(&seconds); err != nil {
		return fmt.Errorf("parse duration: %w", err)
	}
	*d = Duration(time.Duration(seconds) * time.Second)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config is the operational configuration of the reminder service.
// User-facing notification settings live in the store, not here.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Temporal  TemporalConfig  `yaml:"temporal"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type SchedulerConfig struct {
	// Interval between reschedule passes for the local loop and the
	// Temporal workflow timer.
	Interval Duration `yaml:"interval"`
}

type TemporalConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Host      string `yaml:"host"`
	Namespace string `yaml:"namespace"`
	TaskQueue string `yaml:"task_queue"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{},
		Scheduler: SchedulerConfig{
			Interval: Duration(15 * time.Minute),
		},
		Temporal: TemporalConfig{
			Enabled:   false,
			Host:      "localhost:7233",
			Namespace: "default",
			TaskQueue: "routinely-reminders",
		},
	}
}

// LoadConfigFromFile reads a YAML config file, filling gaps with
// defaults.
func LoadConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Scheduler.Interval <= 0 {
		cfg.Scheduler.Interval = Duration(15 * time.Minute)
	}
	if cfg.Temporal.Host == "" {
		cfg.Temporal.Host = "localhost:7233"
	}
	if cfg.Temporal.Namespace == "" {
		cfg.Temporal.Namespace = "default"
	}
	if cfg.Temporal.TaskQueue == "" {
		cfg.Temporal.TaskQueue = "routinely-reminders"
	}
	return cfg, nil
}
