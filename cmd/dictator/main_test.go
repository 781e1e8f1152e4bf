package main

import (
	"errors"
	"testing"

	"github.com/fmueller/dictator/internal/cli"
	"github.com/stretchr/testify/require"
)

func TestIsUsageError(t *testing.T) {
	t.Parallel()

	require.True(t, isUsageError(errors.New("unknown command \"bad\" for \"dictator\"")))
	require.True(t, isUsageError(errors.New("unknown flag: --oops")))
	require.True(t, isUsageError(errors.New("accepts 1 arg(s), received 0")))
	require.True(t, isUsageError(errors.New(`invalid argument "x" for "--threads" flag: parse error`)))
	require.False(t, isUsageError(errors.New("model \"base\" not found at /m/ggml-base.bin")))
	require.False(t, isUsageError(nil))
}

func TestHelpTarget(t *testing.T) {
	t.Parallel()

	root := cli.NewRootCmd()
	require.Equal(t, "dictator", helpTarget(nil, nil))
	require.Equal(t, "dictator", helpTarget(root, nil))
	require.Equal(t, "dictator", helpTarget(root, []string{"--badflag"}))
	require.Equal(t, "dictator", helpTarget(root, []string{"badcmd"}))
	require.Equal(t, "dictator transcribe", helpTarget(root, []string{"transcribe"}))
	require.Equal(t, "dictator models", helpTarget(root, []string{"models", "--verify"}))
}
