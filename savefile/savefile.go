// Package savefile loads simulator saves into canonical snapshots and
// writes canonical snapshots back to disk.
//
// Supported dialects:
//   - .rnd   — legacy OrbitV (fixed binary record + same-directory STARSr
//     star catalog, decoded by the orbitv package)
//   - .json  — canonical schema document (savejson package)
//
// Dialect choice is by file extension, compared case-insensitively. An
// unrecognized extension is not fatal: the loader logs a warning and tries
// the canonical dialect anyway, so a renamed document still loads. Every
// snapshot Load returns has been canonicalized; callers never see the
// unset sentinels (zero time acceleration, empty reference or target,
// zero booster timer).
//
// Usage:
//
//	mgr := savefile.New(savefile.Config{Root: root})
//	state, err := mgr.Load(ctx, mgr.Paths().SavePath("default.json"))
//	path, err := mgr.Write(ctx, state, mgr.Paths().SavePath("autosave"))
package savefile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hazyhaar/orbitx/physics"
)

// LegacyDecoder turns a legacy save pair on disk into a snapshot. The
// decoder owns the companion-catalog convention; the Manager only hands it
// the path the user picked. Implementations report their own typed errors
// and the Manager surfaces them unchanged.
type LegacyDecoder interface {
	Decode(ctx context.Context, path string) (*physics.State, error)
}

// Codec parses and serializes canonical schema documents. Implementations
// report their own typed errors and the Manager surfaces them unchanged.
type Codec interface {
	Parse(data []byte) (*physics.State, error)
	Encode(state *physics.State) ([]byte, error)
}

// EventRecorder receives the outcome of every Load and Write. kind is one
// of the Event constants; detail summarizes the outcome (ok, duration,
// error text). A recorder must not block for long: it runs on the caller's
// load path. Its errors are logged by the Manager and never propagated.
type EventRecorder interface {
	RecordEvent(ctx context.Context, kind, path, detail string) error
}

// Event kinds passed to an EventRecorder.
const (
	EventLoaded  = "loaded"
	EventWritten = "written"
)

// Manager is the savefile engine: it resolves, loads, and writes saves.
// Concurrent calls on distinct paths are safe; callers racing load and
// write on the same path must serialize themselves, the Manager holds no
// locks.
type Manager struct {
	cfg    Config
	paths  Paths
	logger *slog.Logger
}

// New creates a Manager with the given configuration.
func New(cfg Config) *Manager {
	cfg.defaults()
	return &Manager{
		cfg:    cfg,
		paths:  NewPaths(cfg.Root),
		logger: cfg.Logger,
	}
}

// Paths returns the name resolver pinned to the configured root.
func (m *Manager) Paths() Paths { return m.paths }

// Load reads the save at path and returns its canonical snapshot. The
// snapshot is fresh on every call, owned by the caller, and already
// canonicalized. A missing file is ErrNotFound; decoder and codec errors
// come back unchanged.
func (m *Manager) Load(ctx context.Context, path string) (state *physics.State, err error) {
	abs, aerr := filepath.Abs(path)
	if aerr != nil {
		return nil, fmt.Errorf("savefile: resolve %s: %w", path, aerr)
	}
	m.logger.Info("loading save", "path", abs)
	start := time.Now()
	defer func() { m.record(ctx, EventLoaded, abs, start, err) }()

	if _, err := os.Stat(abs); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, abs)
		}
		return nil, fmt.Errorf("savefile: stat %s: %w", abs, err)
	}

	dialect := DetectDialect(abs)
	switch dialect {
	case DialectOrbitV:
		state, err = m.cfg.Legacy.Decode(ctx, abs)
	case DialectJSON:
		state, err = m.loadDocument(abs)
	default:
		m.logger.Warn("unknown save extension, attempting canonical load anyway",
			"path", abs, "ext", filepath.Ext(abs))
		state, err = m.loadDocument(abs)
	}
	if err != nil {
		return nil, err
	}

	m.logger.Debug("decoded save", "path", abs, "dialect", dialect, "entities", len(state.Entities))
	return state.Canonicalize(), nil
}

func (m *Manager) loadDocument(path string) (*physics.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("savefile: read %s: %w", path, err)
	}
	return m.cfg.Codec.Parse(data)
}

// record hands the outcome of an operation to the configured recorder. A
// recorder failure must never break a load or write, so it is only logged.
func (m *Manager) record(ctx context.Context, kind, path string, start time.Time, opErr error) {
	if m.cfg.Events == nil {
		return
	}
	detail := fmt.Sprintf("ok=%t duration_ms=%d", opErr == nil, time.Since(start).Milliseconds())
	if opErr != nil {
		detail = fmt.Sprintf("%s error=%q", detail, opErr.Error())
	}
	if err := m.cfg.Events.RecordEvent(ctx, kind, path, detail); err != nil {
		m.logger.Warn("save event record failed", "error", err, "kind", kind, "path", path)
	}
}

// Write serializes state as a canonical document at path and returns the
// path actually written. When path does not already carry the canonical
// extension, Write appends it rather than replacing whatever suffix is
// there, so `autosave.bak` lands at `autosave.bak.json`. Callers must use
// the returned path for subsequent reads.
//
// Write assumes state is already canonical and does not re-run the
// repairs: a loaded snapshot round-trips unmodified.
func (m *Manager) Write(ctx context.Context, state *physics.State, path string) (written string, err error) {
	abs, aerr := filepath.Abs(path)
	if aerr != nil {
		return "", fmt.Errorf("savefile: resolve %s: %w", path, aerr)
	}
	if DetectDialect(abs) != DialectJSON {
		abs += ExtJSON
	}
	m.logger.Info("writing save", "path", abs)
	start := time.Now()
	defer func() { m.record(ctx, EventWritten, abs, start, err) }()

	data, err := m.cfg.Codec.Encode(state)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(abs, data, 0644); err != nil {
		return "", fmt.Errorf("savefile: write %s: %w", abs, err)
	}
	return abs, nil
}

// Info describes a save on disk without decoding it.
type Info struct {
	Path    string    `json:"path"`
	Name    string    `json:"name"`
	Dialect Dialect   `json:"dialect"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// Probe stats path and classifies its dialect. It never reads file
// contents, so a Probe succeeding does not guarantee a Load will.
func (m *Manager) Probe(path string) (*Info, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("savefile: resolve %s: %w", path, err)
	}
	fi, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, abs)
		}
		return nil, fmt.Errorf("savefile: stat %s: %w", abs, err)
	}
	return &Info{
		Path:    abs,
		Name:    filepath.Base(abs),
		Dialect: DetectDialect(abs),
		Size:    fi.Size(),
		ModTime: fi.ModTime(),
	}, nil
}
