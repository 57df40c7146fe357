//go:build !debug

package ui

import (
	"embed"
	"io/fs"
)

//go:embed dist
var distFS embed.FS

// DistFS returns the embedded UI filesystem (production: baked into binary).
func DistFS() fs.FS {
	sub, err := fs.Sub(distFS, "dist")
	if err != nil {
		// The dist directory is embedded at compile time; Sub can only
		// fail if it is missing from the build entirely.
		panic(err)
	}
	return sub
}
