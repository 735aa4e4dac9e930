package version

import "fmt"

// These variables are set at build time using -ldflags
// Example: go build -ldflags "-X github.com/alexiusacademia/beamcheck/internal/version.Version=1.0.0"
var (
	// Version is the semantic version of the application
	Version = "0.3.0"

	// BuildTime is the time the binary was built (set via ldflags)
	BuildTime = "unknown"

	// GitCommit is the git commit hash (set via ldflags)
	GitCommit = "unknown"

	// Author of the application
	Author = "Alexius Academia"

	// Year of release
	Year = "2026"
)

// CodeEdition names the provision set every check is made against.
const CodeEdition = "NSCP 2015 Vol. 1 (ACI 318-14)"

// Info is the build information exposed by the API and the CLI.
type Info struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	GitCommit string `json:"git_commit"`
	Code      string `json:"code"`
}

// Get returns the build information.
func Get() Info {
	return Info{
		Version:   Version,
		BuildTime: BuildTime,
		GitCommit: GitCommit,
		Code:      CodeEdition,
	}
}

// String formats the build information on one line.
func (i Info) String() string {
	return fmt.Sprintf("beamcheck v%s (commit %s, built %s) - %s", i.Version, i.GitCommit, i.BuildTime, i.Code)
}
