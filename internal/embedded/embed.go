// Package embedded holds the GPU catalog compiled into the binary.
package embedded

import (
	"embed"
)

// FS embeds the catalog YAML files at build time. GPU definitions live under
// catalog/gpus, one file per manufacturer.
//
//go:embed catalog/*
var FS embed.FS
