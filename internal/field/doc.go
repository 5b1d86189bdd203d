// Package field is a small N-body simulator over token particles.
// Tokens carry semantic mass, attract each other gravitationally, and
// the field reports coherence diagnostics: velocity alignment (phi),
// phase synchrony (alpha), and total energy.
//
// The antigravity protocol sits on top: it finds particles trapped in
// high-mass wells, injects stabilizing lift particles, and advances the
// field until phase-lock or a step ceiling.
//
// All randomness (spawn jitter) comes from an injected *rand.Rand, so a
// fixed seed reproduces a run exactly.
package field
