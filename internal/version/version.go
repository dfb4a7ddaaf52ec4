// Package version holds build metadata injected with -ldflags.
package version

import (
	"fmt"
	"runtime"
)

// Set at build time:
//
//	go build -ldflags "-X github.com/SAIRAKSHAAN1/gemini-chatbot/internal/version.Version=v1.0.0"
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// Short returns only the version number.
func Short() string {
	return Version
}

// Info returns the full version description.
func Info() string {
	return fmt.Sprintf("Version:    %s\nCommit:     %s\nBuild time: %s\nGo version: %s",
		Version, Commit, BuildTime, runtime.Version())
}
