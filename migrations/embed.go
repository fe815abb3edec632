// Package migrations holds the goose SQL migrations for the BuddyBoost schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
