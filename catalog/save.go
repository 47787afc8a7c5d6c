package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hazyhaar/orbitx/physics"
)

const saveColumns = `id, name, path, dialect, size_bytes, mod_time,
	entities, time_acc, reference, target, srb_time, decoded_at, created_at, updated_at`

// InsertSave adds a save row. ID and timestamps are filled when empty;
// the snapshot columns start at their not-yet-decoded defaults.
func (s *Store) InsertSave(ctx context.Context, sv *Save) error {
	now := time.Now().UnixMilli()
	if sv.ID == "" {
		sv.ID = newSaveID()
	}
	if sv.CreatedAt == 0 {
		sv.CreatedAt = now
	}
	if sv.UpdatedAt == 0 {
		sv.UpdatedAt = now
	}
	if sv.Entities == 0 && sv.DecodedAt == nil {
		sv.Entities = -1
	}

	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO saves (`+saveColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sv.ID, sv.Name, sv.Path, sv.Dialect, sv.SizeBytes, sv.ModTime,
		sv.Entities, sv.TimeAcc, sv.Reference, sv.Target, sv.SRBTime,
		sv.DecodedAt, sv.CreatedAt, sv.UpdatedAt,
	)
	return err
}

// GetSave retrieves a save by ID. Returns nil, nil when absent.
func (s *Store) GetSave(ctx context.Context, id string) (*Save, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT `+saveColumns+` FROM saves WHERE id = ?`, id)
	return scanSave(row)
}

// GetSaveByName retrieves a save by its file name. Returns nil, nil when
// absent.
func (s *Store) GetSaveByName(ctx context.Context, name string) (*Save, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT `+saveColumns+` FROM saves WHERE name = ?`, name)
	return scanSave(row)
}

// ListSaves returns all catalog rows ordered by name.
func (s *Store) ListSaves(ctx context.Context) ([]*Save, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+saveColumns+` FROM saves ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var saves []*Save
	for rows.Next() {
		sv, err := scanSaveRows(rows)
		if err != nil {
			return nil, err
		}
		saves = append(saves, sv)
	}
	return saves, rows.Err()
}

// DeleteSave removes a save row. Its events stay.
func (s *Store) DeleteSave(ctx context.Context, id string) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM saves WHERE id = ?`, id)
	return err
}

// CountSaves returns the number of catalog rows.
func (s *Store) CountSaves(ctx context.Context) (int, error) {
	var count int
	err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM saves`).Scan(&count)
	return count, err
}

// RecordStat updates the stat columns after the file on disk changed.
func (s *Store) RecordStat(ctx context.Context, id string, sizeBytes, modTime int64) error {
	now := time.Now().UnixMilli()
	_, err := s.DB.ExecContext(ctx,
		`UPDATE saves SET size_bytes=?, mod_time=?, updated_at=? WHERE id=?`,
		sizeBytes, modTime, now, id)
	return err
}

// RecordSnapshot stores the decode summary of a loaded save.
func (s *Store) RecordSnapshot(ctx context.Context, name string, state *physics.State) error {
	now := time.Now().UnixMilli()
	_, err := s.DB.ExecContext(ctx,
		`UPDATE saves SET entities=?, time_acc=?, reference=?, target=?,
		srb_time=?, decoded_at=?, updated_at=?
		WHERE name=?`,
		len(state.Entities), state.TimeAcc, state.Reference, state.Target,
		state.SRBTime, now, now, name)
	return err
}

func scanSave(row *sql.Row) (*Save, error) {
	var sv Save
	err := row.Scan(
		&sv.ID, &sv.Name, &sv.Path, &sv.Dialect, &sv.SizeBytes, &sv.ModTime,
		&sv.Entities, &sv.TimeAcc, &sv.Reference, &sv.Target, &sv.SRBTime,
		&sv.DecodedAt, &sv.CreatedAt, &sv.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan save: %w", err)
	}
	return &sv, nil
}

func scanSaveRows(rows *sql.Rows) (*Save, error) {
	var sv Save
	err := rows.Scan(
		&sv.ID, &sv.Name, &sv.Path, &sv.Dialect, &sv.SizeBytes, &sv.ModTime,
		&sv.Entities, &sv.TimeAcc, &sv.Reference, &sv.Target, &sv.SRBTime,
		&sv.DecodedAt, &sv.CreatedAt, &sv.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan save: %w", err)
	}
	return &sv, nil
}
