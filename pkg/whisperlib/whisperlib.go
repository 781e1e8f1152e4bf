// Package whisperlib is the host-facing surface of the bridge: package-level
// functions with types gomobile can bind, integer handles instead of
// pointers, and sentinel returns instead of errors.
//
// A zero handle means "no context". InitContext returns it when a model
// cannot be loaded; Transcribe returns "" for it, for stale handles, and on
// any inference failure. Causes are logged under the configured tag
// (default "whisperlib").
package whisperlib

import (
	"sync"

	"github.com/fmueller/dictator/internal/bridge"
	"github.com/fmueller/dictator/internal/config"
	"github.com/fmueller/dictator/internal/logging"
	"github.com/fmueller/dictator/internal/version"
	"github.com/fmueller/dictator/internal/whisper"
	"go.uber.org/zap"
)

var (
	mu     sync.Mutex
	shared *bridge.Bridge
	logger = zap.NewNop()

	newLibrary = whisper.NewNativeLibrary
)

// InitContext loads the model file at modelPath and returns its handle, or 0.
func InitContext(modelPath string) (handle int64) {
	defer recoverTo("InitContext", func() { handle = int64(bridge.NullHandle) })
	return int64(current().InitContext(modelPath))
}

// Transcribe runs inference over audio, which holds 16 kHz mono samples as
// little-endian IEEE-754 float32 values. The bytes are only read during the
// call.
func Transcribe(handle int64, audio []byte) (text string) {
	if bridge.Handle(handle) == bridge.NullHandle {
		return ""
	}
	defer recoverTo("Transcribe", func() { text = "" })

	b := current()
	samples := decodeSamples(audio, currentLogger())
	return b.Transcribe(bridge.Handle(handle), samples)
}

// FreeContext releases the model behind handle. Zero and already freed
// handles are ignored.
func FreeContext(handle int64) {
	if bridge.Handle(handle) == bridge.NullHandle {
		return
	}
	defer recoverTo("FreeContext", nil)
	current().FreeContext(bridge.Handle(handle))
}

// Configure loads configuration from the YAML file at configPath (empty for
// defaults) plus DICTATOR_* environment overrides. Decoding and model options
// apply to contexts initialized afterwards. Logging options only take effect
// if Configure runs before any other call.
func Configure(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	if shared == nil {
		shared = newBridge(cfg)
		return nil
	}
	shared.Configure(cfg.BridgeOptions())
	return nil
}

// Shutdown frees every live context. Handles issued before it are stale
// afterwards; the next call starts a fresh bridge.
func Shutdown() {
	mu.Lock()
	b := shared
	shared = nil
	mu.Unlock()

	if b != nil {
		_ = b.Close()
	}
}

// NativeAvailable reports whether whisper.cpp is linked into this build.
func NativeAvailable() bool {
	return whisper.NativeAvailable()
}

func Version() string {
	return version.Resolve()
}

func current() *bridge.Bridge {
	mu.Lock()
	defer mu.Unlock()

	if shared == nil {
		cfg, err := config.Load("")
		if err != nil {
			cfg = config.Default()
			defer func() {
				logger.Warn("invalid environment configuration; using defaults", zap.Error(err))
			}()
		}
		shared = newBridge(cfg)
	}
	return shared
}

// newBridge must be called with mu held.
func newBridge(cfg config.Config) *bridge.Bridge {
	l, err := logging.New(logging.Options{
		Verbose: cfg.Log.Verbose,
		JSON:    cfg.Log.JSON,
		Name:    cfg.Log.Tag,
	})
	if err != nil {
		l = zap.NewNop()
	}
	logger = l
	return bridge.New(newLibrary(), l, cfg.BridgeOptions())
}

func currentLogger() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// recoverTo turns a panic into the boundary's failure value. Panics must not
// unwind into a host runtime that cannot handle them.
func recoverTo(op string, fail func()) {
	r := recover()
	if r == nil {
		return
	}
	currentLogger().Error("recovered from panic", zap.String("op", op), zap.Any("panic", r))
	if fail != nil {
		fail()
	}
}
