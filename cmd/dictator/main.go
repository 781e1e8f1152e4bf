package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fmueller/dictator/internal/cli"
	"github.com/spf13/cobra"
)

func main() {
	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if isUsageError(err) {
			fmt.Fprintf(os.Stderr, "Run '%s --help' for usage.\n", helpTarget(cmd, os.Args[1:]))
		}
		os.Exit(1)
	}
}

// cobra reports argument and flag problems as plain errors, so they are
// recognized by message.
var usageErrorMarkers = []string{
	"unknown command",
	"unknown flag",
	"unknown shorthand flag",
	"flag needs an argument",
	"invalid argument",
	"accepts ",
	"requires at least",
	"requires at most",
	"requires between",
	"required flag",
}

func isUsageError(err error) bool {
	if err == nil {
		return false
	}

	message := strings.ToLower(err.Error())
	for _, marker := range usageErrorMarkers {
		if strings.Contains(message, marker) {
			return true
		}
	}
	return false
}

// helpTarget names the deepest command args resolve to, so the hint points
// at the subcommand the user was typing.
func helpTarget(root *cobra.Command, args []string) string {
	if root == nil {
		return "dictator"
	}
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return root.CommandPath()
	}

	if found, _, err := root.Find(args); err == nil && found != nil {
		return found.CommandPath()
	}
	return root.CommandPath()
}
