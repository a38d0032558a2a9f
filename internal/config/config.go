// Package config provides Viper-based configuration loading for the academy.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/cory-johannsen/academy/internal/game/gametime"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// StorageConfig selects where the save blob lives.
type StorageConfig struct {
	// Backend is "file" (one JSON file per key) or "sqlite".
	Backend string `mapstructure:"backend"`
	// Path is the save directory for "file" or the database file for "sqlite".
	Path string `mapstructure:"path"`
	// Key is the storage key of the save blob.
	Key string `mapstructure:"key"`
}

// ContentConfig locates the static YAML content.
type ContentConfig struct {
	Dir string `mapstructure:"dir"`
}

// ScheduleFile returns the class timetable path.
func (c ContentConfig) ScheduleFile() string { return filepath.Join(c.Dir, "schedule.yaml") }

// ItemsFile returns the item catalog path.
func (c ContentConfig) ItemsFile() string { return filepath.Join(c.Dir, "items.yaml") }

// CampusFile is the map of the grounds.
func (c ContentConfig) CampusFile() string { return filepath.Join(c.Dir, "campus.yaml") }

// MonstersDir returns the bestiary directory.
func (c ContentConfig) MonstersDir() string { return filepath.Join(c.Dir, "monsters") }

// GameConfig holds rules that vary between installations.
type GameConfig struct {
	// StartLocation is where a new student wakes up.
	StartLocation string `mapstructure:"start_location"`
	// RestDays, when set, replaces the rest days declared in the schedule.
	RestDays []string `mapstructure:"rest_days"`
	// Seed makes dice rolls reproducible; 0 draws from crypto/rand.
	Seed uint64 `mapstructure:"seed"`
}

// RestDayValues parses RestDays.
//
// Precondition: Validate has accepted the configuration.
func (g GameConfig) RestDayValues() []gametime.Day {
	out := make([]gametime.Day, 0, len(g.RestDays))
	for _, s := range g.RestDays {
		d, err := gametime.ParseDay(s)
		if err != nil {
			panic(fmt.Sprintf("config: unvalidated rest day %q", s))
		}
		out = append(out, d)
	}
	return out
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Storage StorageConfig `mapstructure:"storage"`
	Content ContentConfig `mapstructure:"content"`
	Game    GameConfig    `mapstructure:"game"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateStorage(c.Storage); err != nil {
		errs = append(errs, err.Error())
	}
	if strings.TrimSpace(c.Content.Dir) == "" {
		errs = append(errs, "content.dir must not be empty")
	}
	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateStorage(s StorageConfig) error {
	var errs []string
	if s.Backend != BackendFile && s.Backend != BackendSQLite {
		errs = append(errs, fmt.Sprintf("storage.backend must be one of [file, sqlite], got %q", s.Backend))
	}
	if strings.TrimSpace(s.Path) == "" {
		errs = append(errs, "storage.path must not be empty")
	}
	if strings.TrimSpace(s.Key) == "" || strings.ContainsAny(s.Key, `/\`) {
		errs = append(errs, fmt.Sprintf("storage.key must be a non-empty name without path separators, got %q", s.Key))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string
	if strings.TrimSpace(g.StartLocation) == "" {
		errs = append(errs, "game.start_location must not be empty")
	}
	seen := map[string]bool{}
	for _, d := range g.RestDays {
		if _, err := gametime.ParseDay(d); err != nil {
			errs = append(errs, fmt.Sprintf("game.rest_days: %v", err))
		}
		if seen[d] {
			errs = append(errs, fmt.Sprintf("game.rest_days lists %q twice", d))
		}
		seen[d] = true
	}
	if len(g.RestDays) >= gametime.DaysPerWeek {
		errs = append(errs, "game.rest_days must leave at least one school day")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment
// variable overrides, and validates the result. An empty path uses defaults
// and the environment only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with ACADEMY_ prefix
	v.SetEnvPrefix("ACADEMY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("storage.backend", BackendFile)
	v.SetDefault("storage.path", "saves")
	v.SetDefault("storage.key", "academy.save")

	v.SetDefault("content.dir", "content")

	v.SetDefault("game.start_location", "dormitory")
	v.SetDefault("game.rest_days", []string{})
	v.SetDefault("game.seed", 0)
}
