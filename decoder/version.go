package decoder

import (
	"runtime"
	"runtime/debug"
)

const (
	imagingModule = "github.com/disintegration/imaging"
	xImageModule  = "golang.org/x/image"

	unknownVersion = "unknown"
)

func stdlibVersion() Version {
	compiled := unknownVersion
	if info, ok := debug.ReadBuildInfo(); ok && info.GoVersion != "" {
		compiled = info.GoVersion
	}
	return Version{Compiled: compiled, Runtime: runtime.Version()}
}

// moduleVersion reports the module version recorded in the build info. Go
// links modules statically, so the build and run-time versions are the same.
func moduleVersion(path string) Version {
	v := linkedVersion(path)
	return Version{Compiled: v, Runtime: v}
}

func linkedVersion(path string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return unknownVersion
	}
	for _, dep := range info.Deps {
		if dep.Path != path {
			continue
		}
		if dep.Replace != nil {
			dep = dep.Replace
		}
		if dep.Version == "" {
			return unknownVersion
		}
		return dep.Version
	}
	return unknownVersion
}
