// Package buildinfo reports the binary's version, commit, and build date.
//
// Release builds override the values via ldflags:
//
//	go build -ldflags "-X github.com/egoview/egoview/pkg/buildinfo.version=v1.0.0 \
//	    -X github.com/egoview/egoview/pkg/buildinfo.commit=$(git rev-parse HEAD) \
//	    -X github.com/egoview/egoview/pkg/buildinfo.date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Without overrides, the values fall back to the VCS metadata Go embeds in
// module builds, so `go install`ed binaries still report something useful.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// Overridden via ldflags at release time.
var (
	version = ""
	commit  = ""
	date    = ""
)

// Version returns the semantic version, the module version from build
// metadata, or "dev".
func Version() string {
	if version != "" {
		return version
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		if v := bi.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return "dev"
}

// Commit returns the git commit, shortened to 12 characters.
func Commit() string {
	c := commit
	if c == "" {
		c = vcsSetting("vcs.revision")
	}
	if c == "" {
		return "none"
	}
	if len(c) > 12 {
		c = c[:12]
	}
	return c
}

// Date returns the build timestamp.
func Date() string {
	if date != "" {
		return date
	}
	if d := vcsSetting("vcs.time"); d != "" {
		return d
	}
	return "unknown"
}

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version(), Commit(), Date())
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version(), Commit(), Date())
}

// vcsSetting reads one key from the embedded VCS build settings.
func vcsSetting(key string) string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range bi.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}
