// Package version provides information about the build version of the service.
package version

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build information
// -ldflags "-X github.com/sspenst/thinky.gg-sub004/internal/core/version.version=v1.2.0"
func Info() BuildInfo {
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

var (
	service = "thinky-api"
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
