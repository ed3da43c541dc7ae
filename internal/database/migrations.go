package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds lookup indexes that AutoMigrate does not create on its own.
// Postgres only; the pg_indexes check makes the pass idempotent.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Token lookup happens by code + purpose on every confirm/reset call
		{"tokens", "idx_tokens_code_purpose", "code, purpose"},
		{"tokens", "idx_tokens_user_id", "user_id"},

		// Project listing unions manager and membership
		{"projects", "idx_projects_manager_id", "manager_id"},
		{"project_members", "idx_project_members_user_id", "user_id"},

		// Audit trail and notes are always fetched per task
		{"task_status_changes", "idx_status_changes_task_id", "task_id"},
		{"notes", "idx_notes_task_id", "task_id"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
