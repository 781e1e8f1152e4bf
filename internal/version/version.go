package version

import (
	"runtime/debug"
	"strings"
)

// Set with -ldflags "-X github.com/fmueller/dictator/internal/version.Version=..."
var (
	Version = "0.1.0"
	Commit  = ""
)

// Resolve returns Version, suffixed with the VCS revision the binary was
// built from unless the build is a tagged release.
func Resolve() string {
	return resolveVersion(Version, Commit, debug.ReadBuildInfo)
}

type buildInfoFunc func() (*debug.BuildInfo, bool)

func resolveVersion(base, commit string, readInfo buildInfoFunc) string {
	base = strings.TrimPrefix(strings.TrimSpace(base), "v")
	if base == "" {
		base = "0.0.0"
	}

	rev, dirty := vcsState(readInfo)
	if commit == "" {
		commit = rev
	}
	if commit == "" {
		return base
	}
	if info, ok := readInfo(); ok && info != nil && info.Main.Version == "v"+base && !dirty {
		return base
	}

	suffix := shortRevision(commit)
	if dirty {
		suffix += "-dirty"
	}
	return base + "-" + suffix
}

func vcsState(readInfo buildInfoFunc) (string, bool) {
	info, ok := readInfo()
	if !ok || info == nil {
		return "", false
	}

	var rev string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	return rev, dirty
}

func shortRevision(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}
