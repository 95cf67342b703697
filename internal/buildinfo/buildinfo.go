// Package buildinfo holds version information injected at build time via ldflags:
//
//	go build -ldflags "-X github.com/watchfire-io/menubar/internal/buildinfo.Version=0.2.0" ./cmd/menubar
package buildinfo

// Shown by `menubar version` and the About overlay.
var (
	Version    = "dev"
	Codename   = "Menubar"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)
