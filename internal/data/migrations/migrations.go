// Package migrations embeds the goose SQL migrations for the users, sessions
// and verification_tokens tables.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
