package cli

import (
	"testing"

	"github.com/fmueller/dictator/internal/whisper"
	"github.com/stretchr/testify/require"
)

func TestModelsListsRegistryWithPresence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeModel(t, dir, "tiny")

	stdout, _, err := runCommand(t, []string{"models", "--model-dir", dir})
	require.NoError(t, err)

	for _, name := range whisper.ModelNames() {
		require.Contains(t, stdout, name)
	}
	require.Regexp(t, `tiny\s+\S+ggml-tiny\.bin\s+installed`, stdout)
	require.Regexp(t, `base\s+\S+ggml-base\.bin\s+missing`, stdout)
}

func TestModelsVerifyFlagsChecksumMismatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeModel(t, dir, "small")

	stdout, _, err := runCommand(t, []string{"models", "--verify", "--model-dir", dir})
	require.ErrorIs(t, err, whisper.ErrChecksumMismatch)
	require.Contains(t, err.Error(), "1 model file(s)")
	require.Regexp(t, `small\s+\S+\s+checksum mismatch`, stdout)
}

func TestInfoReportsEngineAndConfig(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCommand(t, []string{"info", "--model", "tiny"})
	require.NoError(t, err)
	require.Contains(t, stdout, "native: ")
	require.Contains(t, stdout, "system: ")
	require.Contains(t, stdout, "config:")
	require.Contains(t, stdout, "name: tiny")
	require.Contains(t, stdout, "strategy: greedy")
}
