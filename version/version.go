// Package version holds build metadata, injected at build time with
//
//	-ldflags "-X tabsgo/version.Version=1.4.0 -X tabsgo/version.Engine=126.0.6478.36"
package version

var (
	Version = "0.0.0-dev"
	Commit  = "none"
	Date    = "unknown"

	// Engine and ScriptRuntime are the versions of the bundled page engine and
	// script runtime reported to the presentation layer.
	Engine        = "0.0.0"
	ScriptRuntime = "0.0.0"
)
