// Package web embeds the HTML templates and static assets served by the site.
package web

import "embed"

// FS holds template/** and static/**.
//
//go:embed template static
var FS embed.FS
