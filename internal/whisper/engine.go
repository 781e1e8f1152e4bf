package whisper

import (
	"errors"
	"fmt"
)

// SampleRate is the rate, in Hz, the engine expects audio samples at.
const SampleRate = 16000

var (
	ErrNativeUnavailable = errors.New("whisper: native engine unavailable")
	ErrModelLoad         = errors.New("whisper: failed to load model")
)

// Library is the native inference engine. It loads models into contexts and
// reports build information; everything else happens on a Context.
type Library interface {
	InitFromFile(path string, params ContextParams) (Context, error)
	SystemInfo() string
}

// Context is one loaded model. Segment accessors are only meaningful right
// after a successful Full call on the same context. A Context is not safe for
// concurrent use.
type Context interface {
	// Full runs inference over samples and returns the engine status; 0 means
	// success, anything else is an engine specific failure code.
	Full(params FullParams, samples []float32) int
	NumSegments() int
	// SegmentText returns the text of segment i, or false when the engine
	// reports no text for it.
	SegmentText(i int) (string, bool)
	Free()
}

type Strategy string

const (
	StrategyGreedy     Strategy = "greedy"
	StrategyBeamSearch Strategy = "beam_search"
)

func ParseStrategy(value string) (Strategy, error) {
	switch Strategy(value) {
	case StrategyGreedy, StrategyBeamSearch:
		return Strategy(value), nil
	default:
		return "", fmt.Errorf("unknown sampling strategy %q (supported: %s, %s)", value, StrategyGreedy, StrategyBeamSearch)
	}
}

// ContextParams configures model loading. A nil field keeps the engine default.
type ContextParams struct {
	UseGPU *bool
}

func DefaultContextParams() ContextParams {
	return ContextParams{}
}

// FullParams configures one decoding pass.
type FullParams struct {
	Strategy        Strategy
	Language        string
	Translate       bool
	Threads         int
	NoContext       bool
	SingleSegment   bool
	PrintProgress   bool
	PrintSpecial    bool
	PrintTimestamps bool
	PrintRealtime   bool
}

// DefaultFullParams mirrors whisper_full_default_params for a strategy. The
// native library starts from the engine's own record and overlays every field
// here, so these values are what a caller gets without further changes.
func DefaultFullParams(strategy Strategy) FullParams {
	return FullParams{
		Strategy:        strategy,
		Language:        "en",
		Threads:         4,
		NoContext:       true,
		PrintProgress:   true,
		PrintTimestamps: true,
	}
}

// TranscribeParams returns the decoding configuration used for dictation:
// greedy, English, four threads, no printing, no carried context.
func TranscribeParams() FullParams {
	params := DefaultFullParams(StrategyGreedy)
	params.PrintProgress = false
	params.PrintSpecial = false
	params.PrintTimestamps = false
	params.PrintRealtime = false
	params.Translate = false
	params.Language = "en"
	params.Threads = 4
	params.NoContext = true
	params.SingleSegment = false
	return params
}
