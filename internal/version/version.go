// Package version reports the build version stamped into client version strings.
package version

import (
	"runtime/debug"
	"sync"
)

const modulePath = "github.com/feedkit/gdata.go"

// Override is set with -ldflags "-X github.com/feedkit/gdata.go/internal/version.Override=v1.2.3".
var Override string

var (
	once     sync.Once
	resolved string
)

// Get returns the module version: Override when set, otherwise the version
// recorded in the build info, otherwise "devel".
func Get() string {
	if Override != "" {
		return Override
	}
	once.Do(func() {
		resolved = fromBuildInfo()
	})
	return resolved
}

func fromBuildInfo() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "devel"
	}
	if info.Main.Path == modulePath && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	for _, dep := range info.Deps {
		if dep.Path == modulePath {
			return dep.Version
		}
	}
	return "devel"
}
