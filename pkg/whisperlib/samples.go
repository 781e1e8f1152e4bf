package whisperlib

import (
	"encoding/binary"
	"math"

	"go.uber.org/zap"
)

const bytesPerSample = 4

// decodeSamples converts little-endian float32 bytes into a fresh slice. A
// trailing partial sample is dropped.
func decodeSamples(data []byte, logger *zap.Logger) []float32 {
	if rem := len(data) % bytesPerSample; rem != 0 {
		logger.Warn("audio buffer is not a whole number of float32 samples; ignoring tail",
			zap.Int("bytes", len(data)),
			zap.Int("ignored", rem),
		)
	}

	samples := make([]float32, len(data)/bytesPerSample)
	for i := range samples {
		samples[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*bytesPerSample:]))
	}
	return samples
}

// EncodeSamples is the inverse of what Transcribe expects, for Go hosts that
// hold []float32.
func EncodeSamples(samples []float32) []byte {
	out := make([]byte, len(samples)*bytesPerSample)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(out[i*bytesPerSample:], math.Float32bits(s))
	}
	return out
}
