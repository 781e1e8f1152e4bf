//go:build !whispercpp

package whisper

import "fmt"

// NativeAvailable reports whether the whisper.cpp backend is compiled in.
func NativeAvailable() bool { return false }

type unavailableLibrary struct{}

// NewNativeLibrary returns a Library whose every load fails with
// ErrNativeUnavailable. Build with -tags whispercpp to link whisper.cpp.
func NewNativeLibrary() Library {
	return unavailableLibrary{}
}

func (unavailableLibrary) InitFromFile(path string, _ ContextParams) (Context, error) {
	return nil, fmt.Errorf("%w: cannot load %s (built without whispercpp tag)", ErrNativeUnavailable, path)
}

func (unavailableLibrary) SystemInfo() string {
	return "whisper.cpp not linked"
}
