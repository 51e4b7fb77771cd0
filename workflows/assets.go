// Package workflows provides the workflow prompt templates shipped with
// context-engine.
//
// The *.md files in this directory are embedded at build time. A directory
// on disk can replace the embedded set, which is how projects customise
// their prompts without rebuilding the binary.
package workflows

import (
	"embed"
	"io/fs"
	"os"
)

//go:embed *.md
var assets embed.FS

// Embedded returns the templates compiled into the binary.
func Embedded() fs.FS {
	return assets
}

// FS returns the template filesystem. If overrideDir names an existing
// directory it is used instead of the embedded templates; otherwise the
// embedded set is returned.
func FS(overrideDir string) fs.FS {
	if overrideDir != "" {
		if stat, err := os.Stat(overrideDir); err == nil && stat.IsDir() {
			return os.DirFS(overrideDir)
		}
	}
	return assets
}
