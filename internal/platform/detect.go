package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const appDirName = "dictator"

type Runtime struct {
	OS   string
	Arch string
}

func CurrentRuntime() Runtime {
	return Runtime{
		OS:   runtime.GOOS,
		Arch: NormalizeArch(runtime.GOARCH),
	}
}

func (r Runtime) String() string {
	return r.OS + "/" + r.Arch
}

func NormalizeArch(arch string) string {
	switch arch {
	case "x86_64":
		return "amd64"
	case "aarch64":
		return "arm64"
	default:
		return arch
	}
}

// DefaultModelDirFor returns where model files are looked up when no
// directory is configured.
func DefaultModelDirFor(goos, homeDir, xdgDataHome string) (string, error) {
	if homeDir == "" {
		return "", errors.New("home directory is empty")
	}

	switch goos {
	case "linux", "android":
		if xdgDataHome != "" {
			return filepath.Join(xdgDataHome, appDirName, "models"), nil
		}
		return filepath.Join(homeDir, ".local", "share", appDirName, "models"), nil
	case "darwin", "ios":
		return filepath.Join(homeDir, "Library", "Application Support", appDirName, "models"), nil
	default:
		return "", fmt.Errorf("unsupported OS: %s", goos)
	}
}

// ResolveModelDir prefers override, then the per-OS default.
func ResolveModelDir(override string) (string, error) {
	if override != "" {
		return filepath.Clean(override), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home: %w", err)
	}

	return DefaultModelDirFor(runtime.GOOS, homeDir, os.Getenv("XDG_DATA_HOME"))
}
