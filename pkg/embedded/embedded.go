// Package embedded provides embedded static assets for the application.
package embedded

import (
	"embed"
)

// Files contains the static dashboard served at the root path.
// Embedding it keeps the binary self-contained - no working-directory
// assumptions at runtime.
//
//go:embed dashboard.html
var Files embed.FS
