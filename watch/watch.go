// Package watch provides the "poll the saves directory, detect change,
// debounce, refresh" loop that keeps the catalog in step with the
// filesystem. The simulator writes saves whenever it likes; the watcher
// notices and triggers a catalog refresh without the CLI having to rescan
// by hand.
//
// Typical usage:
//
//	w := watch.New(savesDir, watch.Options{Debounce: 500 * time.Millisecond})
//	go w.OnChange(ctx, func() error { _, err := store.RefreshDir(ctx, savesDir); return err })
package watch

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// ChangeDetector reads a signature token for the watched state. Two calls
// that return different values mean "something changed". Tokens are
// opaque: the loop only compares them for equality, so a detector may
// return a hash rather than a counter.
type ChangeDetector func(ctx context.Context) (int64, error)

// Options tunes the watcher behaviour.
type Options struct {
	// Interval is the polling frequency. Default: 2s — directory stats
	// are cheap and saves change at human speed.
	Interval time.Duration
	// Debounce is the quiet period after a change is detected before the
	// refresh fires. If more changes arrive during the window the timer
	// resets, so a burst of writes coalesces into one refresh. 0 means
	// fire immediately. Default: 0.
	Debounce time.Duration
	// Detector overrides the default DirSignature detector.
	Detector ChangeDetector
	// Logger overrides the default slog logger.
	Logger *slog.Logger
}

func (o *Options) defaults(dir string) {
	if o.Interval <= 0 {
		o.Interval = 2 * time.Second
	}
	if o.Detector == nil {
		o.Detector = DirSignature(dir)
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

// Watcher polls the saves directory and runs a refresh action when its
// contents change. It is safe for concurrent use.
type Watcher struct {
	opts Options

	// token is the last signature whose refresh succeeded.
	token atomic.Int64

	// refreshMu + refreshCond broadcast when a refresh completes,
	// enabling WaitForRefresh.
	refreshMu   sync.Mutex
	refreshCond *sync.Cond

	// Counters for observability (exported via Stats).
	checks    atomic.Int64
	changes   atomic.Int64
	errors    atomic.Int64
	refreshes atomic.Int64
	refreshNs atomic.Int64
}

// Stats are point-in-time counters.
type Stats struct {
	Checks          int64         `json:"checks"`
	ChangesDetected int64         `json:"changes_detected"`
	Errors          int64         `json:"errors"`
	Refreshes       int64         `json:"refreshes"`
	AvgRefreshTime  time.Duration `json:"avg_refresh_time"`
}

// New creates a Watcher over dir. Call OnChange to start the loop.
func New(dir string, opts Options) *Watcher {
	opts.defaults(dir)
	w := &Watcher{opts: opts}
	w.refreshCond = sync.NewCond(&w.refreshMu)
	return w
}

// Stats returns the current counters.
func (w *Watcher) Stats() Stats {
	s := Stats{
		Checks:          w.checks.Load(),
		ChangesDetected: w.changes.Load(),
		Errors:          w.errors.Load(),
		Refreshes:       w.refreshes.Load(),
	}
	if s.Refreshes > 0 {
		s.AvgRefreshTime = time.Duration(w.refreshNs.Load() / s.Refreshes)
	}
	return s
}

// Token returns the last signature whose refresh succeeded.
func (w *Watcher) Token() int64 { return w.token.Load() }

// OnChange blocks until ctx is cancelled, polling at opts.Interval. When
// the detector reports a new signature and the debounce window passes
// without further changes, action is called.
//
// If action returns an error the token is NOT advanced — the refresh will
// be retried on the next poll cycle.
func (w *Watcher) OnChange(ctx context.Context, action func() error) {
	log := w.opts.Logger

	// Seed the initial signature so startup does not count as a change.
	tok, err := w.opts.Detector(ctx)
	if err != nil {
		log.Warn("watch: initial signature check failed", "error", err)
	} else {
		w.token.Store(tok)
	}

	ticker := time.NewTicker(w.opts.Interval)
	defer ticker.Stop()

	var debounceTimer *time.Timer
	var debounceCh <-chan time.Time
	pending := int64(-1)

	log.Info("watch: started", "interval", w.opts.Interval, "debounce", w.opts.Debounce)

	for {
		select {
		case <-ctx.Done():
			log.Info("watch: stopped")
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case <-ticker.C:
			w.checks.Add(1)
			cur, err := w.opts.Detector(ctx)
			if err != nil {
				w.errors.Add(1)
				log.Warn("watch: signature check failed", "error", err)
				continue
			}
			if cur != w.token.Load() && cur != pending {
				w.changes.Add(1)
				pending = cur

				if w.opts.Debounce <= 0 {
					w.fire(log, action, pending)
					pending = -1
				} else {
					// (Re)start the debounce timer — only when the
					// pending signature actually changed, not on every
					// poll cycle.
					if debounceTimer != nil {
						debounceTimer.Stop()
					}
					debounceTimer = time.NewTimer(w.opts.Debounce)
					debounceCh = debounceTimer.C
					log.Debug("watch: change detected, debouncing", "pending_token", cur)
				}
			}

		case <-debounceCh:
			debounceCh = nil
			if pending >= 0 {
				w.fire(log, action, pending)
				pending = -1
			}
		}
	}
}

// WaitForRefresh blocks until the watcher has completed at least n
// successful refreshes since it was created, or ctx expires.
func (w *Watcher) WaitForRefresh(ctx context.Context, n int64) error {
	if w.refreshes.Load() >= n {
		return nil
	}

	done := ctx.Done()
	w.refreshMu.Lock()
	defer w.refreshMu.Unlock()

	for w.refreshes.Load() < n {
		// Interruptible wait: a helper goroutine broadcasts on context
		// cancellation so the cond wait can observe it.
		ch := make(chan struct{})
		go func() {
			select {
			case <-done:
				w.refreshCond.Broadcast()
			case <-ch:
			}
		}()

		w.refreshCond.Wait()
		close(ch)

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return nil
}

func (w *Watcher) fire(log *slog.Logger, action func() error, tok int64) {
	log.Info("watch: refreshing", "old_token", w.token.Load(), "new_token", tok)
	start := time.Now()
	if err := action(); err != nil {
		w.errors.Add(1)
		log.Error("watch: refresh failed", "error", err, "token", tok)
		return
	}
	elapsed := time.Since(start)
	w.refreshNs.Add(int64(elapsed))
	w.token.Store(tok)
	w.refreshMu.Lock()
	w.refreshes.Add(1)
	w.refreshMu.Unlock()
	w.refreshCond.Broadcast()
	log.Info("watch: refresh complete", "token", tok, "duration", elapsed)
}

// DirSignature returns a ChangeDetector that hashes the directory listing:
// name, size, and mtime of every regular non-hidden file. Any add, remove,
// rename, or rewrite under dir flips the signature. The token is masked to
// be non-negative so it never collides with the loop's "no pending change"
// sentinel.
func DirSignature(dir string) ChangeDetector {
	return func(ctx context.Context) (int64, error) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return 0, err
		}
		h := fnv.New64a()
		for _, e := range entries {
			if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
				continue
			}
			fi, err := e.Info()
			if err != nil {
				return 0, err
			}
			fmt.Fprintf(h, "%s|%d|%d;", e.Name(), fi.Size(), fi.ModTime().UnixNano())
		}
		return int64(h.Sum64() & (1<<63 - 1)), nil
	}
}
