// Command orbitsave manages OrbitX savefiles from the terminal: list and
// inspect the save catalog, convert legacy saves to the canonical dialect,
// and keep the catalog in step with the saves directory.
//
// Usage:
//
//	orbitsave -list
//	orbitsave -show default
//	orbitsave -convert OSBACKUP.rnd default
//	orbitsave -refresh
//	orbitsave -watch
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"github.com/hazyhaar/orbitx/catalog"
	"github.com/hazyhaar/orbitx/config"
	"github.com/hazyhaar/orbitx/dbopen"
	"github.com/hazyhaar/orbitx/observability"
	"github.com/hazyhaar/orbitx/physics"
	"github.com/hazyhaar/orbitx/savefile"
	"github.com/hazyhaar/orbitx/watch"
)

// modes holds the parsed mode flags; exactly one should be active.
type modes struct {
	list       bool
	show       string
	convert    string
	convertDst string
	refresh    bool
	watch      bool
}

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "", "path to orbitsave.yaml")
	rootFlag := flag.String("root", "", "install root (overrides config)")
	list := flag.Bool("list", false, "list catalogued saves")
	show := flag.String("show", "", "show one save by name")
	convert := flag.String("convert", "", "convert a save to the canonical dialect (optional second arg: destination name)")
	refresh := flag.Bool("refresh", false, "rescan the saves directory into the catalog")
	watchMode := flag.Bool("watch", false, "watch the saves directory and keep the catalog fresh")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn, error (overrides config)")
	logFile := flag.String("log-file", "", "JSON log file (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *rootFlag != "" {
		cfg.Root = *rootFlag
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *logFile != "" {
		cfg.Log.File = *logFile
	}
	if cfg.Root == "" {
		root, err := savefile.DetectRoot()
		if err != nil {
			fmt.Fprintln(os.Stderr, "orbitsave: detect install root:", err)
			os.Exit(1)
		}
		cfg.Root = root
	}

	logger, closeLog, err := observability.NewLogger(observability.Options{
		Level: cfg.Log.Level,
		File:  cfg.Log.File,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := modes{
		list:       *list,
		show:       *show,
		convert:    *convert,
		convertDst: flag.Arg(0),
		refresh:    *refresh,
		watch:      *watchMode,
	}
	if err := run(ctx, logger, cfg, m); err != nil {
		logger.Error("orbitsave: fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, cfg *config.Config, m modes) error {
	db, err := dbopen.Open(cfg.CatalogPath(cfg.Root),
		dbopen.WithMkdirAll(), dbopen.WithSchema(catalog.Schema))
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer db.Close()
	store := catalog.NewStore(db)

	mgr := savefile.New(savefile.Config{
		Root:   cfg.Root,
		Logger: logger,
		Events: catalogRecorder{store: store},
	})

	switch {
	case m.list:
		return runList(ctx, store, mgr.Paths())
	case m.show != "":
		return runShow(ctx, logger, store, mgr, m.show)
	case m.convert != "":
		return runConvert(ctx, logger, store, mgr, m.convert, m.convertDst)
	case m.refresh:
		return runRefresh(ctx, store, mgr.Paths())
	case m.watch:
		return runWatch(ctx, logger, cfg, store, mgr.Paths())
	}

	fmt.Fprintln(os.Stderr, "usage: orbitsave -list | -show <name> | -convert <src> [dst] | -refresh | -watch")
	os.Exit(1)
	return nil
}

func runList(ctx context.Context, store *catalog.Store, paths savefile.Paths) error {
	if _, err := store.RefreshDir(ctx, paths.SavesDir()); err != nil {
		return err
	}
	saves, err := store.ListSaves(ctx)
	if err != nil {
		return err
	}
	if len(saves) == 0 {
		fmt.Println("no saves in", paths.SavesDir())
		return nil
	}
	fmt.Printf("%-28s %-8s %10s %9s  %s\n", "NAME", "DIALECT", "BYTES", "ENTITIES", "MODIFIED")
	for _, sv := range saves {
		entities := "-"
		if sv.Entities >= 0 {
			entities = strconv.Itoa(sv.Entities)
		}
		fmt.Printf("%-28s %-8s %10d %9s  %s\n",
			sv.Name, sv.Dialect, sv.SizeBytes, entities,
			time.UnixMilli(sv.ModTime).Format("2006-01-02 15:04:05"))
	}
	return nil
}

func runShow(ctx context.Context, logger *slog.Logger, store *catalog.Store, mgr *savefile.Manager, name string) error {
	name, err := savefile.CleanName(name)
	if err != nil {
		return err
	}
	if _, err := store.RefreshDir(ctx, mgr.Paths().SavesDir()); err != nil {
		return err
	}

	sv, err := store.GetSaveByName(ctx, name)
	if err != nil {
		return err
	}
	if sv == nil {
		// Allow showing "default" when the file is default.json.
		sv, err = store.GetSaveByName(ctx, name+savefile.ExtJSON)
		if err != nil {
			return err
		}
	}
	if sv == nil {
		return fmt.Errorf("save %q not found in %s", name, mgr.Paths().SavesDir())
	}

	state, err := mgr.Load(ctx, sv.Path)
	if err != nil {
		return err
	}
	if err := store.RecordSnapshot(ctx, sv.Name, state); err != nil {
		logger.Warn("snapshot record failed", "error", err, "save", sv.Name)
	}

	fmt.Printf("%s  (%s, %d bytes)\n", sv.Name, sv.Dialect, sv.SizeBytes)
	fmt.Printf("  time acc   %d\n", state.TimeAcc)
	fmt.Printf("  reference  %s\n", state.Reference)
	fmt.Printf("  target     %s\n", state.Target)
	fmt.Printf("  srb time   %s\n", formatSRB(state.SRBTime))
	fmt.Printf("  entities   %d\n", len(state.Entities))
	for _, e := range state.Entities {
		kind := "body"
		if e.Artificial {
			kind = "craft"
		}
		fmt.Printf("    %-12s %-5s mass %s\n", e.Name, kind, physics.FormatNum(e.Mass, " kg"))
	}

	events, err := store.EventHistory(ctx, sv.ID, 5)
	if err != nil {
		return err
	}
	if len(events) > 0 {
		fmt.Println("  recent events")
		for _, ev := range events {
			fmt.Printf("    %s  %-10s %s\n",
				time.UnixMilli(ev.At).Format("2006-01-02 15:04:05"), ev.Kind, ev.Detail)
		}
	}
	return nil
}

func runConvert(ctx context.Context, logger *slog.Logger, store *catalog.Store, mgr *savefile.Manager, src, dst string) error {
	paths := mgr.Paths()

	srcPath := src
	if filepath.Base(src) == src {
		name, err := savefile.CleanName(src)
		if err != nil {
			return err
		}
		srcPath = paths.SavePath(name)
	}
	if dst == "" {
		dst = src
	}
	dstPath := dst
	if filepath.Base(dst) == dst {
		name, err := savefile.CleanName(dst)
		if err != nil {
			return err
		}
		dstPath = paths.SavePath(name)
	}

	state, err := mgr.Load(ctx, srcPath)
	if err != nil {
		return err
	}
	written, err := mgr.Write(ctx, state, dstPath)
	if err != nil {
		return err
	}
	fmt.Println("wrote", written)

	if _, err := store.RefreshDir(ctx, paths.SavesDir()); err != nil {
		return err
	}
	if err := store.RecordSnapshot(ctx, filepath.Base(written), state); err != nil {
		logger.Warn("snapshot record failed", "error", err, "save", filepath.Base(written))
	}
	return nil
}

func runRefresh(ctx context.Context, store *catalog.Store, paths savefile.Paths) error {
	sum, err := store.RefreshDir(ctx, paths.SavesDir())
	if err != nil {
		return err
	}
	fmt.Printf("scanned %d saves: %d added, %d updated, %d removed\n",
		sum.Scanned, sum.Added, sum.Updated, sum.Removed)
	return nil
}

func runWatch(ctx context.Context, logger *slog.Logger, cfg *config.Config, store *catalog.Store, paths savefile.Paths) error {
	savesDir := paths.SavesDir()
	if _, err := store.RefreshDir(ctx, savesDir); err != nil {
		return err
	}

	w := watch.New(savesDir, watch.Options{
		Interval: cfg.Watch.Interval,
		Debounce: cfg.Watch.Debounce,
		Logger:   logger,
	})
	w.OnChange(ctx, func() error {
		sum, err := store.RefreshDir(ctx, savesDir)
		if err != nil {
			return err
		}
		if sum.Added+sum.Updated+sum.Removed > 0 {
			logger.Info("catalog refreshed",
				"added", sum.Added, "updated", sum.Updated, "removed", sum.Removed)
		}
		return nil
	})
	return nil
}

func formatSRB(v float64) string {
	switch v {
	case physics.SRBFull:
		return "full (unused)"
	case physics.SRBEmpty:
		return "spent"
	default:
		return fmt.Sprintf("%gs remaining", v)
	}
}

// catalogRecorder bridges savefile load/write outcomes into the catalog's
// event trail, resolving the save row by file name when one exists.
type catalogRecorder struct {
	store *catalog.Store
}

var _ savefile.EventRecorder = catalogRecorder{}

func (r catalogRecorder) RecordEvent(ctx context.Context, kind, path, detail string) error {
	saveID := ""
	if sv, err := r.store.GetSaveByName(ctx, filepath.Base(path)); err == nil && sv != nil {
		saveID = sv.ID
	}
	return r.store.RecordEvent(ctx, saveID, kind, fmt.Sprintf("path=%s %s", path, detail))
}
