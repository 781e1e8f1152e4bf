// Package audiotest writes WAV fixtures for tests.
package audiotest

import (
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWAV writes integer PCM samples to path.
func WriteWAV(path string, sampleRate, bitDepth, channels int, data []int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create wav: %w", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, bitDepth, channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("write wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close wav encoder: %w", err)
	}
	return nil
}

// Sine returns n 16-bit samples of a tone at freq Hz and the given amplitude
// (0..1), sampled at rate Hz.
func Sine(n int, freq, amplitude float64, rate int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = int(amplitude * 32767 * math.Sin(2*math.Pi*freq*float64(i)/float64(rate)))
	}
	return out
}
