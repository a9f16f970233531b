// Package gamedata provides the embedded swatch palette and helpers for
// turning it into terminal symbols and colors.
package gamedata

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
