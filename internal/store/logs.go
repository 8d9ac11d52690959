package store

import (
	"context"

	"inventory-service/internal/models"

	"github.com/google/uuid"
)

// InsertLog appends one activity log entry. Entries are never updated.
func (s *Store) InsertLog(ctx context.Context, entry *models.LogEntry) error {
	entry.ID = uuid.New().String()

	query := `
		INSERT INTO logs (id, username, action, target_type, target_name, detail)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	return s.db.GetContext(ctx, entry, query,
		entry.ID, entry.Username, entry.Action, entry.TargetType, entry.TargetName, entry.Detail)
}

// GetLogs retrieves activity log entries newest-first, capped at limit.
func (s *Store) GetLogs(ctx context.Context, limit int) ([]models.LogEntry, error) {
	var entries []models.LogEntry
	err := s.db.SelectContext(ctx, &entries,
		"SELECT * FROM logs ORDER BY created_at DESC LIMIT $1", limit)
	return entries, err
}
