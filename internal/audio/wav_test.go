package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fmueller/dictator/internal/audio/audiotest"
	"github.com/stretchr/testify/require"
)

func TestLoadWAVNormalizes16BitPCM(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "speech.wav")
	require.NoError(t, audiotest.WriteWAV(path, 16000, 16, 1, []int{0, 16384, -32768, 32767}))

	samples, err := LoadWAV(path)
	require.NoError(t, err)
	require.Len(t, samples, 4)
	require.InDelta(t, 0.0, samples[0], 1e-6)
	require.InDelta(t, 0.5, samples[1], 1e-6)
	require.InDelta(t, -1.0, samples[2], 1e-6)
	require.InDelta(t, 1.0, samples[3], 1e-4)
}

func TestLoadWAVRejectsWrongRate(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cd.wav")
	require.NoError(t, audiotest.WriteWAV(path, 44100, 16, 1, make([]int, 441)))

	_, err := LoadWAV(path)
	require.ErrorIs(t, err, ErrUnsupportedWAV)
	require.Contains(t, err.Error(), "44100 Hz")
}

func TestLoadWAVRejectsStereo(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "stereo.wav")
	require.NoError(t, audiotest.WriteWAV(path, 16000, 16, 2, make([]int, 320)))

	_, err := LoadWAV(path)
	require.ErrorIs(t, err, ErrUnsupportedWAV)
}

func TestLoadWAVInvalidFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "not-wav.wav")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	_, err := LoadWAV(path)
	require.ErrorIs(t, err, ErrInvalidWAV)
}

func TestLoadWAVMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadWAV(filepath.Join(t.TempDir(), "absent.wav"))
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestNormalizePCM(t *testing.T) {
	t.Parallel()

	eight, err := normalizePCM([]int{0, 128, 255}, 8)
	require.NoError(t, err)
	require.InDelta(t, -1.0, eight[0], 1e-6)
	require.InDelta(t, 0.0, eight[1], 1e-6)
	require.InDelta(t, 127.0/128.0, eight[2], 1e-6)

	twentyFour, err := normalizePCM([]int{-8388608, 4194304}, 24)
	require.NoError(t, err)
	require.InDelta(t, -1.0, twentyFour[0], 1e-6)
	require.InDelta(t, 0.5, twentyFour[1], 1e-6)

	_, err = normalizePCM([]int{1}, 12)
	require.ErrorIs(t, err, ErrUnsupportedWAV)
}
