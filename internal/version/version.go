// Package version provides the build version of the module,
// with the build number and commit injected at link time.
package version

import "fmt"

const (
	major = 0
	minor = 1
)

// Build is the build number, set via -ldflags at release time.
var Build = "dev"

// Version describes the release version.
type Version struct {
	Major int
	Minor int
	Build string
}

// Current returns the version of the running binary.
func Current() Version {
	return Version{
		Major: major,
		Minor: minor,
		Build: Build,
	}
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%s", v.Major, v.Minor, v.Build)
}
