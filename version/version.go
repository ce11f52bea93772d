package version

import (
	"runtime/debug"
)

// Version is set at build time using -ldflags.
var Version = "dev"

// Build describes the running binary.
type Build struct {
	Version  string `json:"version"`
	Revision string `json:"revision,omitempty"`
	Dirty    bool   `json:"dirty,omitempty"`
}

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// Current returns the build identity of the running binary.
func Current() Build {
	b := Build{Version: Version}
	info, ok := readBuildInfo()
	if !ok {
		return b
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			b.Revision = s.Value
			if len(b.Revision) > 7 {
				b.Revision = b.Revision[:7]
			}
		case "vcs.modified":
			b.Dirty = s.Value == "true"
		}
	}
	return b
}

// String returns "version[-revision][-dirty]".
func (b Build) String() string {
	s := b.Version
	if b.Revision != "" {
		s += "-" + b.Revision
	}
	if b.Dirty {
		s += "-dirty"
	}
	return s
}
