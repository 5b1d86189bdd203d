package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "glassbox.cue")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 10000, cfg.ConceptLimit)
	assert.Equal(t, 100, cfg.StabilitySamples)
	assert.Equal(t, 0.5, cfg.Physics.GravityConstant)
	assert.Equal(t, 0.1, cfg.Physics.DragCoefficient)
	assert.Equal(t, 0.1, cfg.Physics.TimeStep)
	assert.Equal(t, 0.85, cfg.Physics.PhaseLockThreshold)
	assert.Equal(t, 75.0, cfg.Physics.EscapeVelocityThreshold)
	assert.Equal(t, 75.0, cfg.Physics.WellThreshold)
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, `
concept_limit: 500
physics: gravity_constant: 0.9
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 500, cfg.ConceptLimit)
	assert.Equal(t, 0.9, cfg.Physics.GravityConstant)
	// Untouched fields keep schema defaults.
	assert.Equal(t, 100, cfg.StabilitySamples)
	assert.Equal(t, 0.1, cfg.Physics.DragCoefficient)
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.cue"))
	var ce *ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrCodeConfigNotFound, ce.Code)
}

func TestLoad_ParseError(t *testing.T) {
	path := writeConfig(t, `concept_limit: {{{`)

	_, err := Load(path)
	var ce *ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrCodeConfigParse, ce.Code)
}

func TestLoad_OutOfRange(t *testing.T) {
	cases := map[string]string{
		"negative limit": `concept_limit: -1`,
		"drag too high":  `physics: drag_coefficient: 1.5`,
		"zero step":      `physics: time_step: 0`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			var ce *ConfigError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, ErrCodeConfigInvalid, ce.Code)
		})
	}
}
