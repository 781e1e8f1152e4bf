package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/fmueller/dictator/internal/whisper"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newModelsCmd(app *appState) *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List known models and whether they are installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			modelDir, err := app.modelStorageDir()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tFILE\tSTATUS")

			var failed int
			for _, name := range whisper.ModelNames() {
				resolved, err := whisper.InspectModel(name, modelDir)
				if err != nil {
					return err
				}

				status := app.modelStatus(resolved, verify)
				if status == statusChecksumMismatch {
					failed++
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", resolved.Name, resolved.Path, status)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if failed > 0 {
				return fmt.Errorf("%d model file(s) failed verification: %w", failed, whisper.ErrChecksumMismatch)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "Check the SHA-256 of installed model files")
	return cmd
}

const (
	statusMissing          = "missing"
	statusInstalled        = "installed"
	statusVerified         = "verified"
	statusChecksumMismatch = "checksum mismatch"
)

func (a *appState) modelStatus(resolved whisper.ResolvedModel, verify bool) string {
	if !resolved.Present {
		return statusMissing
	}
	if !verify {
		return statusInstalled
	}

	if err := whisper.VerifyModel(resolved.Path, resolved.SHA256); err != nil {
		a.log().Warn("model verification failed", zap.String("model", resolved.Name), zap.Error(err))
		return statusChecksumMismatch
	}
	return statusVerified
}
