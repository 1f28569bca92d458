// Package gamedata provides the content tables (races, classes, items, spells,
// skills, abilities, monsters, villains, encounters), the fixed stat and
// element tables, and utilities for loading them.
package gamedata

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
