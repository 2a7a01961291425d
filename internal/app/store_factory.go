package app

import (
	"fmt"
	"strings"

	"github.com/anchorleg/anchorleg/internal/store"
	"github.com/anchorleg/anchorleg/internal/store/postgres"
	"github.com/anchorleg/anchorleg/internal/store/sqlite"
)

// NewStore picks the audit store implementation from the DSN scheme:
// postgres for deployments, a local sqlite file otherwise.
func NewStore(dsn string) (store.AuditStore, error) {
	dbType := store.DBTypeSQLite
	if strings.HasPrefix(dsn, "postgres") {
		dbType = store.DBTypePostgres
	}

	switch dbType {
	case store.DBTypePostgres:
		return postgres.NewPostgresStore(dsn)
	case store.DBTypeSQLite:
		return sqlite.NewSQLiteStore(dsn)
	default:
		return nil, fmt.Errorf("unable to determine database type from DSN: %s", dsn)
	}
}
