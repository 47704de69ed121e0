// Package buildinfo holds the version stamped into seatplan at build time.
//
//	go build -ldflags "-X github.com/vardhan31/Exam-Seating-Plan/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/vardhan31/Exam-Seating-Plan/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/vardhan31/Exam-Seating-Plan/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/seatplan
package buildinfo

import "fmt"

// Set via ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the build information reported by the health endpoint.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Get returns the current build information.
func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (commit %s, built %s)\n", Version, Commit, Date)
}
