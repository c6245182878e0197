// Package embedded provides the static reference data compiled into the
// binary. The reference lists are populated once at system initialization
// and treated as read-only afterward.
package embedded

import (
	"embed"
)

// FS embeds the static reference lists (FERC account numbers, FERC
// depreciation line identifiers) at build time.
//
//go:embed reference/*.yaml
var FS embed.FS
