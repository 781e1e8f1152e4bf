package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Options struct {
	Verbose bool
	JSON    bool
	// Name tags every entry so host log output can be filtered. Empty leaves
	// the logger unnamed.
	Name string
}

func New(opts Options) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if !opts.JSON {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.TimeKey = ""
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.EncoderConfig.EncodeCaller = nil
		cfg.Encoding = "console"
	}

	cfg.Level = zap.NewAtomicLevelAt(levelFor(opts.Verbose))
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = !opts.Verbose

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	if opts.Name != "" {
		logger = logger.Named(opts.Name)
	}
	return logger, nil
}

func levelFor(verbose bool) zapcore.Level {
	if verbose {
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}
