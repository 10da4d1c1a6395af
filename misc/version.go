// Package misc keeps build time information.
package misc

import "runtime/debug"

const appName = "lldump"

// set with -ldflags "-X lldump/misc.version=... -X lldump/misc.gitHash=..."
var (
	version = "dev"
	gitHash = ""
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

// GetGitHash returns hash the binary was built from. When it was not set at
// link time VCS information embedded by the go tool is used.
func GetGitHash() string {
	if len(gitHash) > 0 {
		return gitHash
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
