// Package version holds the application version, overridable at build time with
// -ldflags "-X github.com/JasVita/wealthpilot-portal/internal/version.Version=...".
package version

// Version is the application version.
var Version = "dev"
