// Package soul loads the identity file that configures a session: who
// the system speaks as, its integrity axioms, and the physics constants
// the semantic field runs under.
package soul

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Axiom is one constitutional rule with a weight and description.
type Axiom struct {
	Weight      float64 `json:"weight"`
	Description string  `json:"description"`
}

// PhysicsConstants overrides the field defaults. Zero values mean
// "use the built-in default".
type PhysicsConstants struct {
	GravityConstant    float64 `json:"gravity_constant"`
	DragCoefficient    float64 `json:"drag_coefficient"`
	PhaseLockThreshold float64 `json:"phase_lock_threshold"`
}

// GravityConfig tunes well detection and the lift vocabulary.
type GravityConfig struct {
	AntigravityTriggers []string `json:"antigravity_triggers"`
	HighMassThreshold   float64  `json:"high_mass_threshold"`
}

// Soul is the parsed identity file.
type Soul struct {
	Provenance              string           `json:"provenance"`
	Archetype               string           `json:"archetype"`
	EscapeVelocityThreshold float64          `json:"escape_velocity_threshold"`
	Axioms                  map[string]Axiom `json:"vci_axioms"`
	Physics                 PhysicsConstants `json:"physics_constants"`
	Gravity                 GravityConfig    `json:"semantic_gravity_config"`
	ForbiddenPatterns       []string         `json:"forbidden_patterns"`
}

// LoadError is a structured soul loading failure.
type LoadError struct {
	Code    LoadErrorCode
	Message string
	Path    string
}

// LoadErrorCode categorizes load failures.
type LoadErrorCode string

const (
	ErrCodeSoulNotFound LoadErrorCode = "SOUL_NOT_FOUND"
	ErrCodeSoulInvalid  LoadErrorCode = "SOUL_INVALID_JSON"
	ErrCodeSoulMissing  LoadErrorCode = "SOUL_MISSING_FIELD"
)

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s (path=%s)", e.Code, e.Message, e.Path)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsNotFoundError reports whether err is a missing soul file.
// Uses errors.As to handle wrapped errors.
func IsNotFoundError(err error) bool {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Code == ErrCodeSoulNotFound
	}
	return false
}

// Load reads and validates a soul file. Provenance and archetype are
// mandatory; everything else falls back to defaults downstream.
func Load(path string) (*Soul, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{
				Code:    ErrCodeSoulNotFound,
				Message: "soul file not found",
				Path:    path,
			}
		}
		return nil, err
	}

	var s Soul
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, &LoadError{
			Code:    ErrCodeSoulInvalid,
			Message: err.Error(),
			Path:    path,
		}
	}

	if s.Provenance == "" {
		return nil, &LoadError{
			Code:    ErrCodeSoulMissing,
			Message: "provenance is required",
			Path:    path,
		}
	}
	if s.Archetype == "" {
		return nil, &LoadError{
			Code:    ErrCodeSoulMissing,
			Message: "archetype is required",
			Path:    path,
		}
	}
	return &s, nil
}
