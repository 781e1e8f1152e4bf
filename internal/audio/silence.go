package audio

import "math"

type SilenceMetrics struct {
	RMSdBFS  float64
	PeakdBFS float64
	Samples  int
}

// IsSilent reports whether samples stay below thresholdDBFS. The peak may sit
// up to 6 dB above the threshold to tolerate clicks.
func IsSilent(samples []float32, thresholdDBFS float64) (bool, SilenceMetrics) {
	metrics := Measure(samples)
	if metrics.Samples == 0 {
		return true, metrics
	}

	if math.IsInf(metrics.RMSdBFS, -1) && math.IsInf(metrics.PeakdBFS, -1) {
		return true, metrics
	}

	peakGate := thresholdDBFS + 6
	return metrics.RMSdBFS <= thresholdDBFS && metrics.PeakdBFS <= peakGate, metrics
}

func Measure(samples []float32) SilenceMetrics {
	if len(samples) == 0 {
		return SilenceMetrics{RMSdBFS: math.Inf(-1), PeakdBFS: math.Inf(-1)}
	}

	var peak, sumSquares float64
	for _, s := range samples {
		value := float64(s)
		if abs := math.Abs(value); abs > peak {
			peak = abs
		}
		sumSquares += value * value
	}

	rms := math.Sqrt(sumSquares / float64(len(samples)))
	return SilenceMetrics{
		RMSdBFS:  amplitudeToDBFS(rms),
		PeakdBFS: amplitudeToDBFS(peak),
		Samples:  len(samples),
	}
}

func amplitudeToDBFS(amplitude float64) float64 {
	if amplitude <= 0 {
		return math.Inf(-1)
	}
	return 20.0 * math.Log10(amplitude)
}
