// Package static embeds the API documentation assets served under /docs.
package static

import "embed"

// Files holds openapi.html (the docs UI) and openapi.json (the API description).
//
//go:embed openapi.html openapi.json
var Files embed.FS
