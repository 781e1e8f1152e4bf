package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fmueller/dictator/internal/audio"
	"github.com/fmueller/dictator/internal/bridge"
	"github.com/fmueller/dictator/internal/whisper"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newTranscribeCmd(app *appState) *cobra.Command {
	var showResult bool

	cmd := &cobra.Command{
		Use:   "transcribe <audio-file>",
		Short: "Transcribe a 16 kHz mono WAV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.transcribeFile(args[0])
			if err != nil {
				// Inference failures still carry a result worth reporting.
				if showResult && result.Err() != nil {
					if werr := writeResultJSON(cmd, result); werr != nil {
						app.log().Warn("failed to write result", zap.Error(werr))
					}
				}
				return err
			}

			if showResult {
				return writeResultJSON(cmd, result)
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.Text)
			if isBlankTranscript(result.Text) {
				app.log().Warn(noSpeechHint())
			}
			return nil
		},
	}

	bindDecodeFlags(cmd, app)
	bindSilenceFlags(cmd, app)
	cmd.Flags().BoolVar(&showResult, "result", false, "Print the detailed result as JSON instead of the bare transcript")
	return cmd
}

// transcribeFile runs one file through a short-lived bridge: load the model,
// transcribe once, free the context.
func (a *appState) transcribeFile(audioPath string) (bridge.Result, error) {
	audioPath = filepath.Clean(audioPath)
	if _, err := os.Stat(audioPath); err != nil {
		return bridge.Result{}, fmt.Errorf("audio file not found: %w", err)
	}

	samples, err := audio.LoadWAV(audioPath)
	if err != nil {
		return bridge.Result{}, err
	}

	if a.silenceGateSkips(audioPath, samples) {
		return bridge.Result{Status: bridge.StatusEmpty, Samples: len(samples)}, nil
	}

	modelDir, err := a.modelStorageDir()
	if err != nil {
		return bridge.Result{}, err
	}
	model, err := whisper.ResolveModel(a.modelRef(), modelDir)
	if err != nil {
		return bridge.Result{}, err
	}

	b := bridge.New(a.library(), a.engineLogger(), a.cfg.BridgeOptions())
	defer b.Close()

	h := b.InitContext(model.Path)
	if h == bridge.NullHandle {
		return bridge.Result{}, fmt.Errorf("load model %s: %w", model.Path, whisper.ErrModelLoad)
	}
	defer b.FreeContext(h)

	a.log().Info("transcribing...",
		zap.String("audio", audioPath),
		zap.String("model", model.Path),
		zap.String("language", a.cfg.Decode.Language),
	)
	stopSpinner := startSpinner(a.progressEnabled(), os.Stderr, "Transcribing")
	result := b.TranscribeResult(h, samples)
	stopSpinner()

	if err := result.Err(); err != nil {
		return result, fmt.Errorf("transcribe %s: %w", audioPath, err)
	}

	a.log().Info("transcription finished",
		zap.Duration("elapsed", result.Elapsed),
		zap.Stringer("status", result.Status),
	)
	return result, nil
}

func (a *appState) silenceGateSkips(audioPath string, samples []float32) bool {
	if !a.silenceGate {
		return false
	}

	silent, metrics := audio.IsSilent(samples, a.silenceDBFS)
	if !silent {
		return false
	}

	a.log().Info(
		"audio considered silent; skipping transcription",
		zap.String("audio", audioPath),
		zap.Float64("rms_dbfs", metrics.RMSdBFS),
		zap.Float64("peak_dbfs", metrics.PeakdBFS),
		zap.Float64("threshold_dbfs", a.silenceDBFS),
	)
	return true
}

type resultJSON struct {
	Text         string  `json:"text"`
	Status       string  `json:"status"`
	Code         int     `json:"code,omitempty"`
	Segments     int     `json:"segments"`
	AudioSeconds float64 `json:"audio_seconds"`
	ElapsedMS    int64   `json:"elapsed_ms"`
}

func writeResultJSON(cmd *cobra.Command, result bridge.Result) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(resultJSON{
		Text:         result.Text,
		Status:       result.Status.String(),
		Code:         result.Code,
		Segments:     result.Segments,
		AudioSeconds: result.AudioSeconds(),
		ElapsedMS:    result.Elapsed.Milliseconds(),
	})
}
