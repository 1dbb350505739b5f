// Package migrations embeds the schema migrations for each supported database.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS

func SQLite() (fs.FS, error) {
	return fs.Sub(FS, "sqlite")
}

func Postgres() (fs.FS, error) {
	return fs.Sub(FS, "postgres")
}
