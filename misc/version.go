// Package misc holds build time information about the program.
package misc

import (
	"os"
	"path/filepath"
	"strings"
)

// Set with -ldflags "-X docconv/misc.version=... -X docconv/misc.gitHash=..."
var (
	version = "dev"
	gitHash = "unknown"
	appName = ""
)

func GetAppName() string {
	if len(appName) > 0 {
		return appName
	}
	name := filepath.Base(os.Args[0])
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
