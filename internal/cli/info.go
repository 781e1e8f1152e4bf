package cli

import (
	"fmt"

	"github.com/fmueller/dictator/internal/platform"
	"github.com/fmueller/dictator/internal/version"
	"github.com/fmueller/dictator/internal/whisper"
	"github.com/spf13/cobra"
)

func newInfoCmd(app *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show engine availability and the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "version: %s\n", version.Resolve())
			fmt.Fprintf(out, "platform: %s\n", platform.CurrentRuntime())
			fmt.Fprintf(out, "native: %t\n", whisper.NativeAvailable())
			fmt.Fprintf(out, "system: %s\n", app.library().SystemInfo())

			data, err := app.cfg.Marshal()
			if err != nil {
				return fmt.Errorf("render configuration: %w", err)
			}
			fmt.Fprintln(out, "config:")
			for _, line := range splitLines(string(data)) {
				fmt.Fprintf(out, "  %s\n", line)
			}
			return nil
		},
	}
}
