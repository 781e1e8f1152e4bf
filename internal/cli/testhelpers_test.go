package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fmueller/dictator/internal/audio/audiotest"
	"github.com/fmueller/dictator/internal/whisper"
	"github.com/fmueller/dictator/internal/whisper/whispertest"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args []string) (stdout string, stderr string, err error) {
	t.Helper()
	return runCommandWith(t, newAppState(), args)
}

func runCommandWith(t *testing.T, app *appState, args []string) (stdout string, stderr string, err error) {
	t.Helper()

	cmd := newRootCmd(app)
	outBuf := new(bytes.Buffer)
	errBuf := new(bytes.Buffer)

	cmd.SetOut(outBuf)
	cmd.SetErr(errBuf)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

// fakeEngineApp returns an appState whose engine is lib instead of the native
// library.
func fakeEngineApp(lib *whispertest.Library) *appState {
	app := newAppState()
	app.libraryFn = func() whisper.Library { return lib }
	return app
}

// writeModel creates a placeholder model file in dir under the registry file
// name for name.
func writeModel(t *testing.T, dir, name string) string {
	t.Helper()

	model, ok := whisper.LookupModel(name)
	require.True(t, ok)
	path := filepath.Join(dir, model.FileName)
	writeFile(t, path, "not really ggml")
	return path
}

func writeToneWAV(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "speech.wav")
	require.NoError(t, audiotest.WriteWAV(path, 16000, 16, 1, audiotest.Sine(16000, 440, 0.3, 16000)))
	return path
}

func writeSilentWAV(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "silent.wav")
	require.NoError(t, audiotest.WriteWAV(path, 16000, 16, 1, make([]int, 16000)))
	return path
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}
