// Package carddata provides the embedded card catalog and utilities for loading it.
package carddata

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
