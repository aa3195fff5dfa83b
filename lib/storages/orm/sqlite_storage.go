package orm

import (
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/pescuma/scmchanges/lib/consoles"
	"github.com/pescuma/scmchanges/lib/storages"
)

func WithSqlite(file string) gorm.Dialector {
	return sqlite.Open(file + "?_pragma=journal_mode(WAL)")
}

func WithSqliteInMemory() gorm.Dialector {
	return sqlite.Open(":memory:")
}

func NewSqliteStorageFactory(console consoles.Console) storages.Factory {
	return func(path string) (storages.Storage, error) {
		return NewGormStorage(WithSqlite(path), console)
	}
}
