package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func validConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Combat: CombatConfig{
			MaxRounds:       50,
			FatiguePerRound: 1,
			Direction:       "front",
			WeaponArm:       "right_arm",
		},
		Content: ContentConfig{
			Dir: "content",
		},
		Scripting: ScriptingConfig{
			InstructionLimit: 100000,
		},
	}
}

func TestValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(path, []byte(`
logging:
  level: debug
  format: console
combat:
  max_rounds: 20
  hit_locations: true
  direction: left
  seed: 42
content:
  dir: /srv/content
scripting:
  dir: /srv/scripts
`), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 20, cfg.Combat.MaxRounds)
	assert.True(t, cfg.Combat.HitLocations)
	assert.Equal(t, "left", cfg.Combat.Direction)
	assert.Equal(t, uint64(42), cfg.Combat.Seed)
	assert.Equal(t, 1, cfg.Combat.FatiguePerRound, "unset keys keep their defaults")
	assert.Equal(t, "right_arm", cfg.Combat.WeaponArm)
	assert.Equal(t, "/srv/content", cfg.Content.Dir)
	assert.Equal(t, "/srv/scripts", cfg.Scripting.Dir)
	assert.Equal(t, 100000, cfg.Scripting.InstructionLimit)
}

func TestLoad_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	require.NoError(t, os.WriteFile(path, []byte("combat:\n  max_rounds: 20\n"), 0644))
	t.Setenv("STEELKILT_COMBAT_MAX_ROUNDS", "7")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Combat.MaxRounds)
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestDefaults_Valid(t *testing.T) {
	cfg, err := LoadFromViper(Defaults())
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Combat.MaxRounds)
	assert.Equal(t, "content", cfg.Content.Dir)
	assert.Zero(t, cfg.Combat.Seed)
}

func TestValidateLoggingLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := validConfig()
		cfg.Logging.Level = level
		assert.NoError(t, cfg.Validate(), "level %q should be valid", level)
	}
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingFormat(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		cfg := validConfig()
		cfg.Logging.Format = format
		assert.NoError(t, cfg.Validate(), "format %q should be valid", format)
	}
	cfg := validConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestValidateCombatDirection(t *testing.T) {
	for _, d := range []string{"front", "back", "left", "right", "above", "below"} {
		cfg := validConfig()
		cfg.Combat.Direction = d
		assert.NoError(t, cfg.Validate(), "direction %q should be valid", d)
	}
	cfg := validConfig()
	cfg.Combat.Direction = "sideways"
	assert.Error(t, cfg.Validate())
}

func TestValidateCombatWeaponArm(t *testing.T) {
	cfg := validConfig()
	cfg.Combat.WeaponArm = "left arm"
	assert.NoError(t, cfg.Validate())
	cfg.Combat.WeaponArm = "tail"
	assert.Error(t, cfg.Validate())
}

func TestValidateContentDirEmpty(t *testing.T) {
	cfg := validConfig()
	cfg.Content.Dir = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateScriptingLimit(t *testing.T) {
	cfg := validConfig()
	cfg.Scripting.InstructionLimit = -1
	assert.Error(t, cfg.Validate())
}

func TestValidate_ReportsAllViolations(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	cfg.Combat.MaxRounds = -1
	cfg.Content.Dir = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
	assert.Contains(t, err.Error(), "combat.max_rounds")
	assert.Contains(t, err.Error(), "content.dir")
}

// Property-based tests

func TestPropertyNonNegativeRoundsValid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rounds := rapid.IntRange(0, 10000).Draw(t, "max_rounds")
		fatigue := rapid.IntRange(0, 100).Draw(t, "fatigue")
		cfg := validConfig()
		cfg.Combat.MaxRounds = rounds
		cfg.Combat.FatiguePerRound = fatigue
		if err := cfg.Validate(); err != nil {
			t.Fatalf("valid combat config rejected: %v", err)
		}
	})
}

func TestPropertyNegativeRoundsInvalid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rounds := rapid.IntRange(-1000, -1).Draw(t, "max_rounds")
		cfg := validConfig()
		cfg.Combat.MaxRounds = rounds
		if cfg.Validate() == nil {
			t.Fatalf("max_rounds=%d accepted", rounds)
		}
	})
}
