package platform

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultModelDirFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		goos string
		home string
		xdg  string
		want string
	}{
		{name: "linux with xdg", goos: "linux", home: "/home/dev", xdg: "/tmp/xdg-data", want: "/tmp/xdg-data/dictator/models"},
		{name: "linux without xdg", goos: "linux", home: "/home/dev", want: "/home/dev/.local/share/dictator/models"},
		{name: "android", goos: "android", home: "/data/user/0/app", want: "/data/user/0/app/.local/share/dictator/models"},
		{name: "macos", goos: "darwin", home: "/Users/dev", want: "/Users/dev/Library/Application Support/dictator/models"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir, err := DefaultModelDirFor(tt.goos, tt.home, tt.xdg)
			require.NoError(t, err)
			require.Equal(t, tt.want, dir)
		})
	}
}

func TestDefaultModelDirForRejectsUnsupportedInput(t *testing.T) {
	t.Parallel()

	_, err := DefaultModelDirFor("windows", "/Users/dev", "")
	require.Error(t, err)

	_, err = DefaultModelDirFor("linux", "", "")
	require.ErrorContains(t, err, "home directory is empty")
}

func TestResolveModelDirOverride(t *testing.T) {
	t.Parallel()

	dir, err := ResolveModelDir("/opt/models/../models/")
	require.NoError(t, err)
	require.Equal(t, "/opt/models", dir)
}

func TestNormalizeArch(t *testing.T) {
	t.Parallel()

	require.Equal(t, "amd64", NormalizeArch("x86_64"))
	require.Equal(t, "arm64", NormalizeArch("aarch64"))
	require.Equal(t, "riscv64", NormalizeArch("riscv64"))
	require.Equal(t, "linux/arm64", Runtime{OS: "linux", Arch: "arm64"}.String())
}
