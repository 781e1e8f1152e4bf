package audio

import (
	"math"
	"testing"

	"github.com/fmueller/dictator/internal/audio/audiotest"
	"github.com/stretchr/testify/require"
)

func TestIsSilentDetectsSilence(t *testing.T) {
	t.Parallel()

	silent, metrics := IsSilent(make([]float32, 16000), -65)
	require.True(t, silent)
	require.True(t, math.IsInf(metrics.RMSdBFS, -1))
	require.True(t, math.IsInf(metrics.PeakdBFS, -1))
	require.Equal(t, 16000, metrics.Samples)
}

func TestIsSilentEmptyBuffer(t *testing.T) {
	t.Parallel()

	silent, metrics := IsSilent(nil, -65)
	require.True(t, silent)
	require.Zero(t, metrics.Samples)
}

func TestIsSilentDetectsSpeechLikeSignal(t *testing.T) {
	t.Parallel()

	tone, err := normalizePCM(audiotest.Sine(16000, 440, 0.25, 16000), 16)
	require.NoError(t, err)

	silent, metrics := IsSilent(tone, -65)
	require.False(t, silent)
	require.Greater(t, metrics.PeakdBFS, -20.0)
	require.Greater(t, metrics.RMSdBFS, -20.0)
}

func TestIsSilentToleratesQuietClick(t *testing.T) {
	t.Parallel()

	samples := make([]float32, 16000)
	// A single sample at about -62 dBFS: RMS stays far below -65, peak is
	// within the 6 dB allowance.
	samples[100] = 0.0008

	silent, _ := IsSilent(samples, -65)
	require.True(t, silent)
}
