package main

import "fmt"

// Build-time variables set via ldflags:
//
//	go build -ldflags "-X main.Version=... -X main.BuildTime=... -X main.GitCommit=..."
var (
	// Version is the application version.
	Version = "1.0.0"
	// BuildTime is when the binary was built.
	BuildTime = "unknown"
	// GitCommit is the git commit the binary was built from.
	GitCommit = "unknown"
)

// versionString formats the build metadata for --version output.
func versionString() string {
	return fmt.Sprintf("%s (built %s, commit %s)", Version, BuildTime, GitCommit)
}
