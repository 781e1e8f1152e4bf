package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/fmueller/dictator/internal/config"
	"github.com/fmueller/dictator/internal/logging"
	"github.com/fmueller/dictator/internal/platform"
	"github.com/fmueller/dictator/internal/version"
	"github.com/fmueller/dictator/internal/whisper"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

type appState struct {
	configPath  string
	envFile     string
	verbose     bool
	jsonLogs    bool
	noProgress  bool
	model       string
	modelDir    string
	language    string
	threads     int
	translate   bool
	useGPU      bool
	silenceGate bool
	silenceDBFS float64

	cfg    config.Config
	logger *zap.Logger

	libraryFn func() whisper.Library
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(newAppState())
}

func newRootCmd(app *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "dictator",
		Short:         "Transcribe speech with an in-process whisper.cpp engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Resolve(),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.prepare(cmd)
		},
	}

	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	bindConfigFlags(cmd, app)
	bindLoggingFlags(cmd, app)
	bindModelFlags(cmd, app)

	cmd.AddCommand(newTranscribeCmd(app))
	cmd.AddCommand(newModelsCmd(app))
	cmd.AddCommand(newInfoCmd(app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newAppState() *appState {
	defaults := config.Default()
	return &appState{
		model:       defaults.Model.Name,
		language:    defaults.Decode.Language,
		threads:     defaults.Decode.Threads,
		silenceGate: true,
		silenceDBFS: -65,
		cfg:         defaults,
		libraryFn:   whisper.NewNativeLibrary,
	}
}

func bindConfigFlags(cmd *cobra.Command, app *appState) {
	cmd.PersistentFlags().StringVar(&app.configPath, "config", app.configPath, "YAML configuration file")
	cmd.PersistentFlags().StringVar(&app.envFile, "env-file", app.envFile, "dotenv file loaded before DICTATOR_* overrides are applied")
}

func bindLoggingFlags(cmd *cobra.Command, app *appState) {
	cmd.PersistentFlags().BoolVar(&app.verbose, "verbose", app.verbose, "Enable verbose logs")
	cmd.PersistentFlags().BoolVar(&app.jsonLogs, "json", app.jsonLogs, "Enable JSON logging")
}

func bindModelFlags(cmd *cobra.Command, app *appState) {
	cmd.PersistentFlags().StringVar(&app.model, "model", app.model, "Model name or model file path")
	cmd.PersistentFlags().StringVar(&app.modelDir, "model-dir", app.modelDir, "Directory where models are stored")
}

func bindDecodeFlags(cmd *cobra.Command, app *appState) {
	cmd.Flags().StringVar(&app.language, "language", app.language, "Language code (auto|en|de|...) for transcription")
	cmd.Flags().IntVar(&app.threads, "threads", app.threads, "Inference threads")
	cmd.Flags().BoolVar(&app.translate, "translate", app.translate, "Translate the transcript to English")
	cmd.Flags().BoolVar(&app.useGPU, "use-gpu", app.useGPU, "Request GPU inference when the engine supports it")
	cmd.Flags().BoolVar(&app.noProgress, "no-progress", app.noProgress, "Disable progress indicators")
}

func bindSilenceFlags(cmd *cobra.Command, app *appState) {
	cmd.Flags().BoolVar(&app.silenceGate, "silence-gate", app.silenceGate, "Detect near-silent WAV audio and skip transcription")
	cmd.Flags().Float64Var(&app.silenceDBFS, "silence-threshold-dbfs", app.silenceDBFS, "Silence gate threshold in dBFS")
}

// prepare loads configuration in increasing precedence: defaults, config
// file, environment (optionally seeded from --env-file), explicit flags.
func (a *appState) prepare(cmd *cobra.Command) error {
	if a.envFile != "" {
		if err := godotenv.Load(a.envFile); err != nil {
			return fmt.Errorf("load env file: %w", err)
		}
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.applyFlagOverrides(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(logging.Options{Verbose: cfg.Log.Verbose, JSON: cfg.Log.JSON})
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	a.logger = logger
	return nil
}

func (a *appState) applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	changed := func(name string) bool {
		return flags.Lookup(name) != nil && flags.Changed(name)
	}

	if changed("model") {
		cfg.Model.Name = strings.TrimSpace(a.model)
		cfg.Model.Path = ""
	}
	if changed("model-dir") {
		cfg.Model.Dir = a.modelDir
	}
	if changed("language") {
		cfg.Decode.Language = sanitizeLanguage(a.language)
	}
	if changed("threads") {
		cfg.Decode.Threads = a.threads
	}
	if changed("translate") {
		cfg.Decode.Translate = a.translate
	}
	if changed("use-gpu") {
		useGPU := a.useGPU
		cfg.Model.UseGPU = &useGPU
	}
	if changed("verbose") {
		cfg.Log.Verbose = a.verbose
	}
	if changed("json") {
		cfg.Log.JSON = a.jsonLogs
	}
}

// modelRef is what ResolveModel should look up: an explicit path wins over
// a registry name.
func (a *appState) modelRef() string {
	if a.cfg.Model.Path != "" {
		return a.cfg.Model.Path
	}
	return a.cfg.Model.Name
}

func (a *appState) modelStorageDir() (string, error) {
	return platform.ResolveModelDir(a.cfg.Model.Dir)
}

func (a *appState) library() whisper.Library {
	if a.libraryFn == nil {
		return whisper.NewNativeLibrary()
	}
	return a.libraryFn()
}

// engineLogger tags bridge output so it can be filtered from CLI messages.
func (a *appState) engineLogger() *zap.Logger {
	return a.log().Named(a.cfg.Log.Tag)
}

func (a *appState) log() *zap.Logger {
	if a.logger == nil {
		return zap.NewNop()
	}
	return a.logger
}

func (a *appState) progressEnabled() bool {
	if a.noProgress {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}

func sanitizeLanguage(input string) string {
	trimmed := strings.TrimSpace(strings.ToLower(input))
	if trimmed == "" {
		return "auto"
	}
	return trimmed
}
