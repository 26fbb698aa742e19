// Package version holds build metadata set through -ldflags.
package version

var Version = "dev"
