//go:build whispercpp

package whisper

/*
#cgo CFLAGS: -I${SRCDIR}/../../third_party/whisper.cpp/include -I${SRCDIR}/../../third_party/whisper.cpp/ggml/include
#cgo LDFLAGS: -L${SRCDIR}/../../third_party/whisper.cpp/build/src -L${SRCDIR}/../../third_party/whisper.cpp/build/ggml/src -Wl,-rpath,${SRCDIR}/../../third_party/whisper.cpp/build/src -lwhisper -lggml -lggml-base -lstdc++ -lm

#include <stdlib.h>
#include "whisper.h"
*/
import "C"

import (
	"fmt"
	"strings"
	"unsafe"
)

func NativeAvailable() bool { return true }

type nativeLibrary struct{}

// NewNativeLibrary returns the whisper.cpp backed Library.
func NewNativeLibrary() Library {
	return nativeLibrary{}
}

func (nativeLibrary) InitFromFile(path string, params ContextParams) (Context, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: model path required", ErrModelLoad)
	}
	cPath := C.CString(path)
	defer C.free(unsafe.Pointer(cPath))

	cParams := C.whisper_context_default_params()
	if params.UseGPU != nil {
		cParams.use_gpu = C.bool(*params.UseGPU)
	}

	ctx := C.whisper_init_from_file_with_params(cPath, cParams)
	if ctx == nil {
		return nil, fmt.Errorf("%w: %s", ErrModelLoad, path)
	}
	return &nativeContext{ctx: ctx}, nil
}

func (nativeLibrary) SystemInfo() string {
	return strings.TrimSpace(C.GoString(C.whisper_print_system_info()))
}

type nativeContext struct {
	ctx *C.struct_whisper_context
}

func (c *nativeContext) Full(params FullParams, samples []float32) int {
	if c.ctx == nil {
		return -1
	}

	strategy := C.enum_whisper_sampling_strategy(C.WHISPER_SAMPLING_GREEDY)
	if params.Strategy == StrategyBeamSearch {
		strategy = C.WHISPER_SAMPLING_BEAM_SEARCH
	}

	cParams := C.whisper_full_default_params(strategy)
	cParams.print_progress = C.bool(params.PrintProgress)
	cParams.print_special = C.bool(params.PrintSpecial)
	cParams.print_timestamps = C.bool(params.PrintTimestamps)
	cParams.print_realtime = C.bool(params.PrintRealtime)
	cParams.translate = C.bool(params.Translate)
	cParams.n_threads = C.int(params.Threads)
	cParams.no_context = C.bool(params.NoContext)
	cParams.single_segment = C.bool(params.SingleSegment)

	// The language string must outlive whisper_full.
	cLang := C.CString(params.Language)
	defer C.free(unsafe.Pointer(cLang))
	cParams.language = cLang

	// Borrowed for the duration of the call only.
	var cSamples *C.float
	if len(samples) > 0 {
		cSamples = (*C.float)(unsafe.Pointer(&samples[0]))
	}

	return int(C.whisper_full(c.ctx, cParams, cSamples, C.int(len(samples))))
}

func (c *nativeContext) NumSegments() int {
	if c.ctx == nil {
		return 0
	}
	return int(C.whisper_full_n_segments(c.ctx))
}

func (c *nativeContext) SegmentText(i int) (string, bool) {
	if c.ctx == nil {
		return "", false
	}
	text := C.whisper_full_get_segment_text(c.ctx, C.int(i))
	if text == nil {
		return "", false
	}
	return C.GoString(text), true
}

func (c *nativeContext) Free() {
	if c.ctx != nil {
		C.whisper_free(c.ctx)
		c.ctx = nil
	}
}
