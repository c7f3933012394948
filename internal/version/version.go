// Package version carries the build version, set at link time with
// -ldflags "-X pepidx/internal/version.Version=v1.2.3".
package version

var Version = "dev"
