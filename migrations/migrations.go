// Package migrations содержит SQL схему хранилища записей
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
