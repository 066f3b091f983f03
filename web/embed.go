// Package web embeds the built dashboard assets served by ctxkeep-server.
package web

import "embed"

// Dist holds the dashboard build output.
//
//go:embed dist
var Dist embed.FS
