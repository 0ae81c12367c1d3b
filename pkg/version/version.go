// Package version exposes build metadata stamped in via -ldflags.
package version

import "runtime"

var (
	// Version is the semantic version, "dev" for local builds.
	Version = "dev"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"

	// GoVersion is the Go toolchain the binary was built with.
	GoVersion = runtime.Version()
)
