// Package version reports build information for the mocktree CLI.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

var (
	// Version is the application version, set via ldflags.
	Version string
	// BuildDate is when the binary was built, set via ldflags.
	BuildDate string
)

// Info describes a build of the mocktree binary.
type Info struct {
	Version   string `json:"version"`
	Revision  string `json:"revision"`
	BuildDate string `json:"buildDate,omitempty"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// Get returns the build information of the running binary. Values not set
// via ldflags are read from the embedded module build info.
func Get() Info {
	info := Info{
		Version:   Version,
		Revision:  "unknown",
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	bi, ok := debug.ReadBuildInfo()
	if ok {
		fromBuildInfo(&info, bi)
	}

	if info.Version == "" {
		info.Version = "devel"
	}

	return info
}

func fromBuildInfo(info *Info, bi *debug.BuildInfo) {
	if info.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}

	modified := false

	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Revision = s.Value
		case "vcs.time":
			if info.BuildDate == "" {
				info.BuildDate = s.Value
			}
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}

	if modified {
		info.Revision += "-dirty"
	}
}

// String formats i as one line, e.g.
// "mocktree v1.2.0 (abc123, 2025-01-02T15:04:05Z) go1.25.0 linux/amd64".
func (i Info) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "mocktree %s (%s", i.Version, i.Revision)

	if i.BuildDate != "" {
		fmt.Fprintf(&sb, ", %s", i.BuildDate)
	}

	fmt.Fprintf(&sb, ") %s %s", i.GoVersion, i.Platform)

	return sb.String()
}
