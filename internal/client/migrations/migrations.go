// Package migrations embeds the goose migrations for the client-local
// database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
