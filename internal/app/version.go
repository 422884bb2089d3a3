package app

import "fmt"

// Name tags every log record and the health payload.
const Name = "archive"

// Set via ldflags, e.g.
//
//	go build -ldflags "-X github.com/heartmarshall/archive-backend/internal/app.Version=1.4.0"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion returns "<name> <version> (<commit>, <build time>)".
func BuildVersion() string {
	return fmt.Sprintf("%s %s (%s, %s)", Name, Version, Commit, BuildTime)
}
