package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRoot_InvalidFormat(t *testing.T) {
	_, err := runCommand(t, "--format", "xml", "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestVerify_RequiresCitations(t *testing.T) {
	_, err := runCommand(t, "verify", "some answer")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestVerify_ValidAnswer(t *testing.T) {
	out, err := runCommand(t, "verify",
		"--citation", "The sky is blue.",
		"--citation", "Clouds are white.",
		"The sky is blue and has white clouds.")
	require.NoError(t, err)
	assert.Contains(t, out, "VALID")
	assert.Contains(t, out, "confidence: 1.000")
}

func TestVerify_HallucinationExitsNonzero(t *testing.T) {
	out, err := runCommand(t, "verify",
		"--citation", "The sky is blue.",
		"--citation", "Clouds are white.",
		"The sky is blue and green. Stars are visible during the day.")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "HALLUCINATION_DETECTED")
	assert.Contains(t, out, "invented relationship: 'are' -> 'the'")
}

func TestVerify_JSONEnvelope(t *testing.T) {
	out, err := runCommand(t, "--format", "json", "verify",
		"--citation", "alpha beta.",
		"alpha beta.")
	require.NoError(t, err)

	var resp Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
}

func TestVerify_ConceptLimit(t *testing.T) {
	_, err := runCommand(t, "verify",
		"--citation", "alpha beta.",
		"--citation", "alpha gamma.",
		"--limit", "2",
		"alpha.")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestLattice_Text(t *testing.T) {
	out, err := runCommand(t, "lattice", "alpha beta. alpha gamma.")
	require.NoError(t, err)
	assert.Contains(t, out, "metrics: 4 concepts, 4 edges")
	assert.Contains(t, out, "irreducibles: 2 join, 2 meet")
}

func TestLattice_Stability(t *testing.T) {
	out, err := runCommand(t, "lattice", "--stability", "--seed", "7", "alpha beta. alpha gamma.")
	require.NoError(t, err)
	assert.Contains(t, out, "stability")
}

func TestTest_ScenarioDirectory(t *testing.T) {
	out, err := runCommand(t, "test", "--dir", "../harness/testdata/scenarios")
	require.NoError(t, err)
	assert.Contains(t, out, "4 scenarios: 4 passed, 0 failed")
}

func TestTest_MissingDirectory(t *testing.T) {
	_, err := runCommand(t, "test", "--dir", "testdata/absent")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestBoot(t *testing.T) {
	out, err := runCommand(t, "boot", "--soul", "../soul/testdata/soul.json")
	require.NoError(t, err)
	assert.Contains(t, out, "provenance: somatic_log_2025")
	assert.Contains(t, out, "archetype:  cathedral")
}

func TestBoot_MissingSoul(t *testing.T) {
	_, err := runCommand(t, "boot", "--soul", "testdata/absent.json")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestSimulate_Deterministic(t *testing.T) {
	a, err := runCommand(t, "simulate", "--steps", "10", "--seed", "3")
	require.NoError(t, err)
	b, err := runCommand(t, "simulate", "--steps", "10", "--seed", "3")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Contains(t, a, "status:")
}

func TestValidate_Defaults(t *testing.T) {
	out, err := runCommand(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "concept limit:     10000")
	assert.Contains(t, out, "stability samples: 100")
}

func TestValidate_WithSoul(t *testing.T) {
	_, err := runCommand(t, "validate", "--soul", "../soul/testdata/soul.json")
	require.NoError(t, err)
}

func TestFormatter_ErrorText(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &Formatter{Format: "text", Writer: buf}
	require.NoError(t, f.Error("E001", "boom"))
	assert.Equal(t, "error [E001]: boom\n", buf.String())
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "x")))
	assert.Equal(t, ExitFailure, GetExitCode(assert.AnError))
}
