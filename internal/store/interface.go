package store

import (
	"fmt"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/anchorleg/anchorleg/internal/models"
)

// AuditStore persists one record per automation call. Writes are
// append-only; the automation result never depends on them.
type AuditStore interface {
	Close() error
	ApplyMigrations(dir string) error

	CreateRecord(rec *models.AuditRecord) error
	ListRecords(username string, limit int) ([]models.AuditRecord, error)
}

// BaseStore provides common functionality for different DB implementations
type BaseStore struct {
	DB        *sqlx.DB
	Converter func(string) string
}

func (s *BaseStore) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

// ApplyMigrations applies SQL migrations from a directory, translating dialect if needed
func (s *BaseStore) ApplyMigrations(dir string, translateSQL func(string) string) error {
	files, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, file := range files {
		if !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		content, err := os.ReadFile(fmt.Sprintf("%s/%s", dir, file.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", file.Name(), err)
		}

		sql := string(content)
		if translateSQL != nil {
			sql = translateSQL(sql)
		}

		if _, err := s.DB.Exec(sql); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", file.Name(), err)
		}
	}

	return nil
}

func (s *BaseStore) CreateRecord(rec *models.AuditRecord) error {
	_, err := s.DB.NamedExec(`
		INSERT INTO browser_request (request_id, username, request, response)
		VALUES (:request_id, :username, :request, :response)
	`, rec)
	if err != nil {
		return fmt.Errorf("failed to create audit record: %w", err)
	}
	return nil
}

func (s *BaseStore) ListRecords(username string, limit int) ([]models.AuditRecord, error) {
	var records []models.AuditRecord
	query := s.Converter(`
		SELECT request_id, username, request, response
		FROM browser_request
		WHERE username = ?
		ORDER BY id DESC
		LIMIT ?
	`)

	err := s.DB.Select(&records, query, username, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit records: %w", err)
	}

	return records, nil
}
