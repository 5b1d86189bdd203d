package soul

import "strings"

// DefaultAlignmentThreshold is the alignment score below which the
// recursive integrity check fails.
const DefaultAlignmentThreshold = 0.7

// IntegrityVector enforces the constitutional axioms over outputs.
// It is immutable after construction.
type IntegrityVector struct {
	axioms map[string]Axiom
}

// NewIntegrityVector builds a vector from soul axioms.
func NewIntegrityVector(axioms map[string]Axiom) *IntegrityVector {
	if axioms == nil {
		axioms = map[string]Axiom{}
	}
	return &IntegrityVector{axioms: axioms}
}

// Len returns the number of active axioms.
func (v *IntegrityVector) Len() int { return len(v.axioms) }

// Weight returns the weight of the named axiom, zero when absent.
func (v *IntegrityVector) Weight(name string) float64 {
	return v.axioms[name].Weight
}

// ValidateOutput scans output for forbidden patterns, case insensitive.
// It returns the first offending pattern, or ok.
func (v *IntegrityVector) ValidateOutput(output string, forbidden []string) (ok bool, pattern string) {
	lower := strings.ToLower(output)
	for _, p := range forbidden {
		if p == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(p)) {
			return false, p
		}
	}
	return true, ""
}

// RecursiveIntegrity reports whether the alignment score clears the
// drift threshold.
func (v *IntegrityVector) RecursiveIntegrity(score, threshold float64) bool {
	return score >= threshold
}
