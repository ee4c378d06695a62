package tui

import "fmt"

// Build metadata, set with -ldflags by the release build.
var (
	AppVersion = "0.1.0"
	GitCommit  = "unknown"
	BuildTime  = "unknown"
)

func versionLabel() string {
	label := AppVersion
	if GitCommit != "unknown" || BuildTime != "unknown" {
		label = fmt.Sprintf("%s (%s %s)", AppVersion, GitCommit, BuildTime)
	}
	return label
}

// VersionLabel exposes the build label to the command line.
func VersionLabel() string {
	return versionLabel()
}
