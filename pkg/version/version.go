// Package version holds build metadata injected at link time.
package version

// Set via -ldflags "-X github.com/rshade/biofeas/pkg/version.version=...".
//
//nolint:gochecknoglobals // Overwritten by the linker.
var (
	version   = "dev"
	gitCommit = ""
	buildDate = ""
)

// GetVersion returns the release version, or "dev" for local builds.
func GetVersion() string {
	return version
}

// GetGitCommit returns the commit the binary was built from, if known.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build timestamp, if known.
func GetBuildDate() string {
	return buildDate
}
