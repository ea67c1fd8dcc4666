package internal

import (
	"fmt"
	"runtime/debug"
)

var (
	commitVersion string // Set by ldflags at release build
	commitDate    string // Set by ldflags at release build (UNIX epoch)
)

func GetVersion() string {
	if commitVersion != "" {
		return fmt.Sprintf("%s, date: %s", commitVersion, commitDate)
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}
