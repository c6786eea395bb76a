// Package migrations embeds the versioned schema files.
package migrations

import "embed"

// FS holds NNNNNN_name.up.sql and NNNNNN_name.down.sql pairs.
//
//go:embed *.sql
var FS embed.FS
