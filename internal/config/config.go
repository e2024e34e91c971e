// Package config provides Viper-based configuration loading for the duel host.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/cory-johannsen/steelkilt/internal/game/hitlocation"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is a zap output path such as "stderr" or a file; empty means stderr.
	Output string `mapstructure:"output"`
}

// CombatConfig holds the settings applied to every session the host starts.
type CombatConfig struct {
	// MaxRounds ends a duel in a stalemate; 0 means unlimited.
	MaxRounds int `mapstructure:"max_rounds"`
	// FatiguePerRound is the exhaustion each fighter gains per round.
	FatiguePerRound int `mapstructure:"fatigue_per_round"`
	// HitLocations enables per-location damage tracking.
	HitLocations bool `mapstructure:"hit_locations"`
	// Direction is the attack direction used for location rolls.
	Direction string `mapstructure:"direction"`
	// WeaponArm is the location that must stay functional to attack.
	WeaponArm string `mapstructure:"weapon_arm"`
	// Seed makes every roll replayable; 0 rolls with crypto/rand.
	Seed uint64 `mapstructure:"seed"`
}

// ContentConfig locates the equipment, spell and skill catalogs.
type ContentConfig struct {
	// Dir holds *.yaml, *.yml and *.toml catalog files.
	Dir string `mapstructure:"dir"`
}

// ScriptingConfig locates the Lua modifier scripts.
type ScriptingConfig struct {
	// Dir holds *.lua scripts; empty disables scripting.
	Dir string `mapstructure:"dir"`
	// InstructionLimit caps the opcodes per hook call; 0 uses the default.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Combat    CombatConfig    `mapstructure:"combat"`
	Content   ContentConfig   `mapstructure:"content"`
	Scripting ScriptingConfig `mapstructure:"scripting"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateCombat(c.Combat); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateContent(c.Content); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateScripting(c.Scripting); err != nil {
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

func validateCombat(c CombatConfig) error {
	var errs []string
	if c.MaxRounds < 0 {
		errs = append(errs, fmt.Sprintf("combat.max_rounds must be >= 0, got %d", c.MaxRounds))
	}
	if c.FatiguePerRound < 0 {
		errs = append(errs, fmt.Sprintf("combat.fatigue_per_round must be >= 0, got %d", c.FatiguePerRound))
	}
	if _, err := hitlocation.ParseDirection(c.Direction); err != nil {
		errs = append(errs, fmt.Sprintf("combat.direction: %v", err))
	}
	if _, err := hitlocation.ParseLocation(c.WeaponArm); err != nil {
		errs = append(errs, fmt.Sprintf("combat.weapon_arm: %v", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateContent(c ContentConfig) error {
	if c.Dir == "" {
		return errors.New("content.dir must not be empty")
	}
	return nil
}

func validateScripting(s ScriptingConfig) error {
	if s.InstructionLimit < 0 {
		return fmt.Errorf("scripting.instruction_limit must be >= 0, got %d", s.InstructionLimit)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with STEELKILT_ prefix
	v.SetEnvPrefix("STEELKILT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
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

// Defaults returns a Viper instance carrying only the default values, for
// hosts that run without a configuration file.
//
// Postcondition: LoadFromViper(Defaults()) returns a valid Config.
func Defaults() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("STEELKILT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("combat.max_rounds", 50)
	v.SetDefault("combat.fatigue_per_round", 1)
	v.SetDefault("combat.hit_locations", false)
	v.SetDefault("combat.direction", "front")
	v.SetDefault("combat.weapon_arm", "right_arm")
	v.SetDefault("combat.seed", 0)

	v.SetDefault("content.dir", "content")

	v.SetDefault("scripting.dir", "")
	v.SetDefault("scripting.instruction_limit", 100000)
}
