package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hazyhaar/orbitx/dbopen"
	"github.com/hazyhaar/orbitx/orbitv"
	"github.com/hazyhaar/orbitx/savefile"
)

// RefreshDir reconciles the catalog with the contents of dir: new files
// become rows, changed files get fresh stat columns, rows whose file is
// gone are deleted. Every change appends an event. The whole pass runs in
// one transaction, so a concurrent reader sees either the old inventory or
// the new one.
//
// The STARSr companion and hidden files are not saves and are skipped.
func (s *Store) RefreshDir(ctx context.Context, dir string) (*RefreshSummary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("catalog: scan %s: %w", dir, err)
	}

	onDisk := make(map[string]fs.FileInfo)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if name == orbitv.StarsFileName || strings.HasPrefix(name, ".") {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("catalog: stat %s: %w", name, err)
		}
		onDisk[name] = fi
	}

	known, err := s.ListSaves(ctx)
	if err != nil {
		return nil, err
	}
	knownByName := make(map[string]*Save, len(known))
	for _, sv := range known {
		knownByName[sv.Name] = sv
	}

	summary := &RefreshSummary{Scanned: len(onDisk)}
	now := time.Now().UnixMilli()

	err = dbopen.RunTx(ctx, s.DB, func(tx *sql.Tx) error {
		for name, fi := range onDisk {
			path := filepath.Join(dir, name)
			existing := knownByName[name]
			switch {
			case existing == nil:
				sv := &Save{
					ID:        newSaveID(),
					Name:      name,
					Path:      path,
					Dialect:   string(savefile.DetectDialect(name)),
					SizeBytes: fi.Size(),
					ModTime:   fi.ModTime().UnixMilli(),
					Entities:  -1,
					CreatedAt: now,
					UpdatedAt: now,
				}
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO saves (`+saveColumns+`)
					VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
					sv.ID, sv.Name, sv.Path, sv.Dialect, sv.SizeBytes, sv.ModTime,
					sv.Entities, sv.TimeAcc, sv.Reference, sv.Target, sv.SRBTime,
					sv.DecodedAt, sv.CreatedAt, sv.UpdatedAt,
				); err != nil {
					return fmt.Errorf("catalog: insert %s: %w", name, err)
				}
				if err := recordEventTx(ctx, tx, sv.ID, EventDiscovered, path); err != nil {
					return err
				}
				summary.Added++

			case existing.SizeBytes != fi.Size() || existing.ModTime != fi.ModTime().UnixMilli():
				if _, err := tx.ExecContext(ctx,
					`UPDATE saves SET path=?, size_bytes=?, mod_time=?, updated_at=? WHERE id=?`,
					path, fi.Size(), fi.ModTime().UnixMilli(), now, existing.ID,
				); err != nil {
					return fmt.Errorf("catalog: update %s: %w", name, err)
				}
				if err := recordEventTx(ctx, tx, existing.ID, EventUpdated, path); err != nil {
					return err
				}
				summary.Updated++
			}
		}

		for name, sv := range knownByName {
			if _, ok := onDisk[name]; ok {
				continue
			}
			if _, err := tx.ExecContext(ctx, `DELETE FROM saves WHERE id = ?`, sv.ID); err != nil {
				return fmt.Errorf("catalog: delete %s: %w", name, err)
			}
			if err := recordEventTx(ctx, tx, sv.ID, EventRemoved, sv.Path); err != nil {
				return err
			}
			summary.Removed++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func recordEventTx(ctx context.Context, tx *sql.Tx, saveID, kind, detail string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO save_events (id, save_id, kind, detail, at)
		VALUES (?, ?, ?, ?, ?)`,
		newEventID(), saveID, kind, detail, time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("catalog: record %s event: %w", kind, err)
	}
	return nil
}
