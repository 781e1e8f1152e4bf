package bridge

import (
	"testing"

	"github.com/fmueller/dictator/internal/whisper"
	"github.com/fmueller/dictator/internal/whisper/whispertest"
	"github.com/stretchr/testify/require"
)

func TestOpenFailurePropagatesLoadError(t *testing.T) {
	t.Parallel()

	_, err := Open(whispertest.NewLibrary(), "/nope.bin", DefaultOptions(), nil)
	require.ErrorIs(t, err, whisper.ErrModelLoad)

	_, err = Open(nil, "/nope.bin", DefaultOptions(), nil)
	require.ErrorIs(t, err, whisper.ErrNativeUnavailable)
}

func TestContextCloseIsIdempotent(t *testing.T) {
	t.Parallel()

	lib := whispertest.NewLibrary()
	lib.Register("/m.bin", whispertest.Script{Segments: whispertest.Segments("x")})

	ctx, err := Open(lib, "/m.bin", DefaultOptions(), nil)
	require.NoError(t, err)
	require.False(t, ctx.Released())

	engine, ok := ctx.engine.(*whispertest.Context)
	require.True(t, ok)
	require.False(t, engine.Freed())

	require.NoError(t, ctx.Close())
	require.NoError(t, ctx.Close())
	require.True(t, ctx.Released())
	require.True(t, engine.Freed())

	_, _, frees := lib.Counts()
	require.Equal(t, 1, frees)

	result := ctx.Transcribe([]float32{0.1, 0.2})
	require.Equal(t, StatusNoContext, result.Status)
	require.Equal(t, 2, result.Samples)
}

func TestContextTranscribeDoesNotRetainSamples(t *testing.T) {
	t.Parallel()

	lib := whispertest.NewLibrary()
	lib.Register("/m.bin", whispertest.Script{Segments: whispertest.Segments("x")})
	ctx, err := Open(lib, "/m.bin", DefaultOptions(), nil)
	require.NoError(t, err)
	defer ctx.Close()

	samples := make([]float32, 32000)
	result := ctx.Transcribe(samples)
	require.Equal(t, "x", result.Text)
	require.InDelta(t, 2.0, result.AudioSeconds(), 1e-9)

	// Reusing the caller's buffer must not affect later calls.
	for i := range samples {
		samples[i] = 1
	}
	require.Equal(t, "x", ctx.Transcribe(samples[:0]).Text)
}

func TestTrimTranscript(t *testing.T) {
	t.Parallel()

	require.Equal(t, "foobar", trimTranscript(" foobar "))
	require.Equal(t, "a  b", trimTranscript("\n\ta  b\r\n"))
	require.Equal(t, "", trimTranscript(" \t\r\n"))
	require.Equal(t, "", trimTranscript(""))
}

func TestStatusString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "ok", StatusOK.String())
	require.Equal(t, "empty", StatusEmpty.String())
	require.Equal(t, "no_context", StatusNoContext.String())
	require.Equal(t, "engine_error", StatusEngineError.String())
	require.Equal(t, "status(9)", Status(9).String())
}
