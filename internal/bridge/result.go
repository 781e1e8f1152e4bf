package bridge

import (
	"errors"
	"fmt"
	"time"
)

var ErrNoContext = errors.New("bridge: no inference context")

// EngineError carries the status code of a failed inference pass.
type EngineError struct {
	Code int
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("bridge: inference failed with code %d", e.Code)
}

type Status int

const (
	// StatusOK means the engine produced non-blank text.
	StatusOK Status = iota
	// StatusEmpty means inference succeeded but nothing but whitespace came out.
	StatusEmpty
	// StatusNoContext means the handle or context was null, unknown or released.
	StatusNoContext
	// StatusEngineError means the engine reported a non-zero status.
	StatusEngineError
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusEmpty:
		return "empty"
	case StatusNoContext:
		return "no_context"
	case StatusEngineError:
		return "engine_error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result is the detailed outcome of one transcription. The boundary only ever
// exposes Text, which is empty for every status but StatusOK.
type Result struct {
	Text     string
	Status   Status
	Code     int
	Segments int
	Samples  int
	Elapsed  time.Duration
}

// Err maps the failure statuses to errors. Empty output is not an error.
func (r Result) Err() error {
	switch r.Status {
	case StatusNoContext:
		return ErrNoContext
	case StatusEngineError:
		return &EngineError{Code: r.Code}
	default:
		return nil
	}
}

// AudioSeconds is the duration of the transcribed buffer at the engine rate.
func (r Result) AudioSeconds() float64 {
	return audioSeconds(r.Samples)
}
