// Package migrations хранит версионированные SQL-миграции схемы (users, trainings).
// Имена файлов следуют соглашению golang-migrate: NNNNNN_title.{up,down}.sql.
package migrations

import "embed"

// Migrations встроены в бинарник, чтобы сервер и cmd/migrate не зависели от рабочей директории.
//
//go:embed *.up.sql *.down.sql
var Migrations embed.FS
