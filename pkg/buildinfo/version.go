// Package buildinfo holds version information stamped in at build time:
//
//	go build -ldflags "-X github.com/matzehuels/sysgraph/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/sysgraph/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/sysgraph/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/sysgraph
package buildinfo

import "fmt"

var (
	Version = "dev"     // Semantic version, or "dev" for local builds
	Commit  = "none"    // Git commit SHA
	Date    = "unknown" // Build timestamp (RFC 3339)
)

// Template returns the --version template for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

// LogFields returns the build information as logger key-value pairs.
func LogFields() []any {
	return []any{"version", Version, "commit", Commit}
}
