// Package web embeds the recorder page served at /.
package web

import "embed"

//go:embed templates/index.html
var Templates embed.FS
