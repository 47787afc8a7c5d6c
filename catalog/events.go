package catalog

import (
	"context"
	"fmt"
	"time"
)

// RecordEvent appends an entry to the event trail. saveID may be empty for
// directory-level events.
func (s *Store) RecordEvent(ctx context.Context, saveID, kind, detail string) error {
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO save_events (id, save_id, kind, detail, at)
		VALUES (?, ?, ?, ?, ?)`,
		newEventID(), saveID, kind, detail, time.Now().UnixMilli(),
	)
	return err
}

// EventHistory returns events for one save, newest first.
func (s *Store) EventHistory(ctx context.Context, saveID string, limit int) ([]*Event, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, save_id, kind, detail, at
		FROM save_events WHERE save_id = ?
		ORDER BY at DESC, id DESC LIMIT ?`, saveID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.SaveID, &e.Kind, &e.Detail, &e.At); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		result = append(result, &e)
	}
	return result, rows.Err()
}

// RecentEvents returns the latest events across all saves, newest first.
func (s *Store) RecentEvents(ctx context.Context, limit int) ([]*Event, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, save_id, kind, detail, at
		FROM save_events ORDER BY at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.SaveID, &e.Kind, &e.Detail, &e.At); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		result = append(result, &e)
	}
	return result, rows.Err()
}
