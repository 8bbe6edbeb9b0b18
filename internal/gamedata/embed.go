// Package gamedata provides embedded kind tables for the things that populate
// a level, and weighted spawning over them.
package gamedata

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
