package soul

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// TokenGenerator produces session identifiers.
type TokenGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 session tokens.
// Stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 as a hyphenated string.
// Panics if UUID generation fails, which does not happen in practice.
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// ModuleManifest names the subsystems a booted session carries.
var ModuleManifest = []string{
	"lattice_analysis",
	"truth_verification",
	"hallucination_detection",
	"semantic_field",
	"antigravity",
}

// Session is a booted identity: the soul, its integrity vector, and
// session bookkeeping.
type Session struct {
	ID             string
	BootTime       time.Time
	Soul           *Soul
	VCI            *IntegrityVector
	Modules        []string
	AlignmentScore float64
}

// BootOption configures Boot.
type BootOption func(*booter)

type booter struct {
	tokens TokenGenerator
	now    func() time.Time
	logger *slog.Logger
}

// WithTokenGenerator replaces the session token source.
func WithTokenGenerator(g TokenGenerator) BootOption {
	return func(b *booter) { b.tokens = g }
}

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) BootOption {
	return func(b *booter) { b.now = now }
}

// WithBootLogger sets the structured logger.
func WithBootLogger(l *slog.Logger) BootOption {
	return func(b *booter) { b.logger = l }
}

// Boot loads a soul file and assembles a live session. A fresh session
// starts fully aligned.
func Boot(path string, opts ...BootOption) (*Session, error) {
	b := &booter{
		tokens: UUIDv7Generator{},
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}

	s, err := Load(path)
	if err != nil {
		return nil, err
	}

	session := &Session{
		ID:             "session_" + b.tokens.Generate(),
		BootTime:       b.now(),
		Soul:           s,
		VCI:            NewIntegrityVector(s.Axioms),
		Modules:        append([]string(nil), ModuleManifest...),
		AlignmentScore: 1.0,
	}

	b.logger.Info("boot complete",
		"session", session.ID,
		"provenance", s.Provenance,
		"archetype", s.Archetype,
		"axioms", session.VCI.Len(),
		"modules", len(session.Modules),
	)
	return session, nil
}
