package web

import "embed"

// StaticFS embeds the single-page frontend assets.
//
//go:embed static
var StaticFS embed.FS
