// Package example ships the demo tree used when no manifest is supplied.
package example

import (
	_ "embed"

	"fsindex/internal/loader"
)

//go:embed demo.yaml
var demoManifest []byte

// Manifest returns a fresh copy of the demo manifest.
func Manifest() (*loader.Manifest, error) {
	return loader.ParseManifest(demoManifest)
}
