// Package web embeds the HTML templates served by the view handlers.
package web

import "embed"

//go:embed templates/*.html
var Templates embed.FS
