// Package migrations embeds the SQL schema for the sqlite driver.
package migrations

import "embed"

// FS holds every *.sql file of this directory. Files apply in name order.
//
//go:embed *.sql
var FS embed.FS
