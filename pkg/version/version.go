package version

import "runtime"

// Build variables set via ldflags, for example:
// -X 'github.com/compozy/carpark/pkg/version.Version=v1.0.0'
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// Info is the build information reported by `carpark version`.
type Info struct {
	Version    string `json:"version"`
	CommitHash string `json:"commit_hash"`
	BuildDate  string `json:"build_date"`
	GoVersion  string `json:"go_version"`
}

func Get() Info {
	return Info{
		Version:    Version,
		CommitHash: CommitHash,
		BuildDate:  BuildDate,
		GoVersion:  runtime.Version(),
	}
}

func (i Info) String() string {
	return i.Version + " (" + i.CommitHash + ", built " + i.BuildDate + ", " + i.GoVersion + ")"
}
