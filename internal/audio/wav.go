package audio

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

// RequiredSampleRate is the only rate LoadWAV accepts; nothing is resampled.
const RequiredSampleRate = 16000

var (
	ErrUnsupportedWAV = errors.New("unsupported wav format")
	ErrInvalidWAV     = errors.New("invalid wav file")
)

// LoadWAV decodes a 16 kHz mono PCM WAV file into samples in [-1, 1].
func LoadWAV(path string) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wav: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, ErrInvalidWAV
	}
	if dec.WavAudioFormat != 1 {
		return nil, fmt.Errorf("%w: audio format %d (only integer PCM is supported)", ErrUnsupportedWAV, dec.WavAudioFormat)
	}
	if dec.NumChans != 1 {
		return nil, fmt.Errorf("%w: %d channels (mono required)", ErrUnsupportedWAV, dec.NumChans)
	}
	if dec.SampleRate != RequiredSampleRate {
		return nil, fmt.Errorf("%w: %d Hz (%d Hz required)", ErrUnsupportedWAV, dec.SampleRate, RequiredSampleRate)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWAV, err)
	}

	return normalizePCM(buf.Data, int(dec.BitDepth))
}

func normalizePCM(data []int, bitDepth int) ([]float32, error) {
	var (
		scale  float32
		offset int
	)
	switch bitDepth {
	case 8:
		// 8-bit WAV is unsigned.
		scale, offset = 128, 128
	case 16:
		scale = 32768
	case 24:
		scale = 8388608
	case 32:
		scale = 2147483648
	default:
		return nil, fmt.Errorf("%w: %d-bit samples", ErrUnsupportedWAV, bitDepth)
	}

	samples := make([]float32, len(data))
	for i, v := range data {
		samples[i] = float32(v-offset) / scale
	}
	return samples, nil
}
