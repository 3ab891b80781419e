package version

import (
	"fmt"
	"strings"
	"sync"
)

// validCharacters is a list of characters valid in the appBuild string
const validCharacters = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-"

const (
	appMajor uint = 0
	appMinor uint = 1
	appPatch uint = 0
)

// appBuild can be set at build time with
// '-ldflags "-X github.com/kaspanet/blocktree/version.appBuild=foo"'.
// It MUST only contain characters from validCharacters.
var appBuild string

var (
	version     string
	versionOnce sync.Once
)

// Version returns the application version as a properly formed string
func Version() string {
	versionOnce.Do(func() {
		version = formatVersion(appBuild)
	})
	return version
}

func formatVersion(build string) string {
	formatted := fmt.Sprintf("%d.%d.%d", appMajor, appMinor, appPatch)
	if isValidBuild(build) && build != "" {
		formatted = fmt.Sprintf("%s-%s", formatted, build)
	}
	return formatted
}

// isValidBuild reports whether build only holds validCharacters
func isValidBuild(build string) bool {
	for _, r := range build {
		if !strings.ContainsRune(validCharacters, r) {
			return false
		}
	}
	return true
}
