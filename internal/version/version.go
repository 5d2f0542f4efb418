// Package version records the build version, overridable at link time.
package version

// Version is the application version. Set with:
//
//	go build -ldflags "-X palomnyk-go/internal/version.Version=v1.2.3"
var Version = "dev"
