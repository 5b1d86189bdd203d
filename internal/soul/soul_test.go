package soul

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mc-adrian-lei/adrianlm-glassbox/internal/testutil"
)

func TestLoad(t *testing.T) {
	s, err := Load("testdata/soul.json")
	require.NoError(t, err)

	assert.Equal(t, "somatic_log_2025", s.Provenance)
	assert.Equal(t, "cathedral", s.Archetype)
	assert.Equal(t, 75.0, s.EscapeVelocityThreshold)
	assert.Len(t, s.Axioms, 5)
	assert.Equal(t, 0.5, s.Physics.GravityConstant)
	assert.Equal(t, []string{"Sovereignty", "Lattice", "Cathedral"}, s.Gravity.AntigravityTriggers)
	assert.Equal(t, 100.0, s.Gravity.HighMassThreshold)
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load("testdata/absent.json")
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "soul.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, ErrCodeSoulInvalid, le.Code)
	assert.False(t, IsNotFoundError(err))
}

func TestLoad_MissingFields(t *testing.T) {
	cases := map[string]string{
		"no provenance": `{"archetype": "cathedral"}`,
		"no archetype":  `{"provenance": "somatic_log"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "soul.json")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

			_, err := Load(path)
			var le *LoadError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, ErrCodeSoulMissing, le.Code)
		})
	}
}

func TestIntegrityVector_Weight(t *testing.T) {
	v := NewIntegrityVector(map[string]Axiom{
		"sovereignty": {Weight: 1.0},
	})

	assert.Equal(t, 1.0, v.Weight("sovereignty"))
	assert.Zero(t, v.Weight("unknown"))
	assert.Equal(t, 1, v.Len())
}

func TestIntegrityVector_ValidateOutput(t *testing.T) {
	v := NewIntegrityVector(nil)
	forbidden := []string{"as an AI", "i cannot verify"}

	ok, _ := v.ValidateOutput("the lattice holds four concepts", forbidden)
	assert.True(t, ok)

	ok, pattern := v.ValidateOutput("As an AI, I cannot say", forbidden)
	assert.False(t, ok)
	assert.Equal(t, "as an AI", pattern)
}

func TestIntegrityVector_RecursiveIntegrity(t *testing.T) {
	v := NewIntegrityVector(nil)

	assert.True(t, v.RecursiveIntegrity(0.9, DefaultAlignmentThreshold))
	assert.True(t, v.RecursiveIntegrity(0.7, DefaultAlignmentThreshold))
	assert.False(t, v.RecursiveIntegrity(0.69, DefaultAlignmentThreshold))
}

func TestBoot(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	session, err := Boot("testdata/soul.json",
		WithTokenGenerator(testutil.NewFixedTokens("tok-1")),
		WithClock(testutil.FixedClock(at)),
		WithBootLogger(testutil.DiscardLogger()),
	)
	require.NoError(t, err)

	assert.Equal(t, "session_tok-1", session.ID)
	assert.Equal(t, at, session.BootTime)
	assert.Equal(t, 1.0, session.AlignmentScore)
	assert.Equal(t, ModuleManifest, session.Modules)
	assert.Equal(t, 5, session.VCI.Len())
	assert.Equal(t, "cathedral", session.Soul.Archetype)
}

func TestBoot_MissingSoul(t *testing.T) {
	_, err := Boot("testdata/absent.json",
		WithBootLogger(testutil.DiscardLogger()))
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}

func TestUUIDv7Generator_Unique(t *testing.T) {
	g := UUIDv7Generator{}
	a, b := g.Generate(), g.Generate()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)
}
