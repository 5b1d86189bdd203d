// Package config loads engine configuration from CUE, with every field
// defaulted by the embedded schema. A user file only needs to state
// what it overrides; the schema rejects out-of-range values at load
// time rather than deep inside a run.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schema.cue
var schemaSource []byte

// Physics holds the semantic field constants.
type Physics struct {
	GravityConstant         float64 `json:"gravity_constant"`
	DragCoefficient         float64 `json:"drag_coefficient"`
	TimeStep                float64 `json:"time_step"`
	PhaseLockThreshold      float64 `json:"phase_lock_threshold"`
	EscapeVelocityThreshold float64 `json:"escape_velocity_threshold"`
	WellThreshold           float64 `json:"well_threshold"`
}

// Config is the full engine configuration.
type Config struct {
	ConceptLimit     int     `json:"concept_limit"`
	StabilitySamples int     `json:"stability_samples"`
	Physics          Physics `json:"physics"`
}

// ConfigError is a structured configuration failure.
type ConfigError struct {
	Code    ConfigErrorCode
	Message string
	Path    string
}

// ConfigErrorCode categorizes configuration failures.
type ConfigErrorCode string

const (
	ErrCodeConfigNotFound ConfigErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigParse    ConfigErrorCode = "CONFIG_PARSE"
	ErrCodeConfigInvalid  ConfigErrorCode = "CONFIG_INVALID"
)

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s (path=%s)", e.Code, e.Message, e.Path)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Default returns the configuration with every schema default applied.
func Default() Config {
	cfg, err := decode(schema(cuecontext.New()))
	if err != nil {
		// The embedded schema is complete; this means the build is bad.
		panic(fmt.Sprintf("config: embedded schema does not decode: %v", err))
	}
	return cfg
}

// Load reads a CUE file and unifies it with the embedded schema.
// Fields absent from the file keep their schema defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, &ConfigError{
				Code:    ErrCodeConfigNotFound,
				Message: "config file not found",
				Path:    path,
			}
		}
		return Config{}, err
	}

	ctx := cuecontext.New()
	user := ctx.CompileBytes(data)
	if err := user.Err(); err != nil {
		return Config{}, &ConfigError{
			Code:    ErrCodeConfigParse,
			Message: err.Error(),
			Path:    path,
		}
	}

	merged := schema(ctx).Unify(user)
	cfg, err := decode(merged)
	if err != nil {
		return Config{}, &ConfigError{
			Code:    ErrCodeConfigInvalid,
			Message: err.Error(),
			Path:    path,
		}
	}
	return cfg, nil
}

func schema(ctx *cue.Context) cue.Value {
	return ctx.CompileBytes(schemaSource)
}

func decode(v cue.Value) (Config, error) {
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := v.Decode(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
