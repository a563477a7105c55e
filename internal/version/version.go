// Package version describes the build of the bot binary.
package version

import (
	"runtime/debug"
	"strings"
)

const (
	AppName        = "commandclient"
	AppDescription = "Prefix commands for Discord, one listener for every handler."
)

// Set at build time with -ldflags "-X .../internal/version.BuildDate=...".
var BuildDate string

// Release describes the build, e.g. "2026-10-16 (Go 1.24.2)".
func Release() string {
	date := BuildDate
	if date == "" {
		date = "dev"
	}
	goVer := "unknown"
	if info, ok := debug.ReadBuildInfo(); ok {
		goVer = strings.TrimPrefix(info.GoVersion, "go")
	}
	return date + " (Go " + goVer + ")"
}
