package catalog

import "database/sql"

// Schema is the complete catalog schema. Pass it to dbopen.WithSchema so
// first open bootstraps the tables; every statement is idempotent.
const Schema = `
-- One row per savefile known to the catalog
CREATE TABLE IF NOT EXISTS saves (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL UNIQUE,
    path        TEXT NOT NULL,
    dialect     TEXT NOT NULL,
    size_bytes  INTEGER NOT NULL DEFAULT 0,
    mod_time    INTEGER NOT NULL DEFAULT 0,
    entities    INTEGER NOT NULL DEFAULT -1,
    time_acc    INTEGER NOT NULL DEFAULT 0,
    reference   TEXT NOT NULL DEFAULT '',
    target      TEXT NOT NULL DEFAULT '',
    srb_time    REAL NOT NULL DEFAULT 0,
    decoded_at  INTEGER,
    created_at  INTEGER NOT NULL,
    updated_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_saves_dialect ON saves(dialect);

-- Append-only event trail; no FK so history survives save removal
CREATE TABLE IF NOT EXISTS save_events (
    id       TEXT PRIMARY KEY,
    save_id  TEXT NOT NULL DEFAULT '',
    kind     TEXT NOT NULL,
    detail   TEXT NOT NULL DEFAULT '',
    at       INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_save_events_time ON save_events(at DESC);
CREATE INDEX IF NOT EXISTS idx_save_events_save ON save_events(save_id, at DESC);
`

// ApplySchema creates all tables and indexes on the given database.
func ApplySchema(db *sql.DB) error {
	_, err := db.Exec(Schema)
	return err
}
