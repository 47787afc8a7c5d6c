package savefile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Paths maps logical save names to locations under a pinned install root.
// The root is fixed at construction and never changes for the life of the
// value; code needing a different root builds a new Paths.
type Paths struct {
	root string
}

// NewPaths pins root as the install root. Pass the result of DetectRoot
// for the usual process-wide resolution.
func NewPaths(root string) Paths {
	return Paths{root: filepath.Clean(root)}
}

// Root returns the pinned install root.
func (p Paths) Root() string { return p.root }

// SavesDir returns the directory all saves live under.
func (p Paths) SavesDir() string {
	return filepath.Join(p.root, "data", "saves")
}

// SavePath maps a logical save name to its location under SavesDir. This
// is pure path arithmetic and trusts the name; validate untrusted input
// with CleanName first.
func (p Paths) SavePath(name string) string {
	return filepath.Join(p.SavesDir(), name)
}

// DetectRoot resolves the install root for this process: the directory
// holding the packaged binary, or the working directory when the binary
// runs out of a build cache (`go run`, `go test`). Resolve once at startup
// and pass the result around; the root is process-wide read-only state.
func DetectRoot() (string, error) {
	exe, err := os.Executable()
	if err == nil {
		if resolved, rerr := filepath.EvalSymlinks(exe); rerr == nil {
			exe = resolved
		}
		if !underDir(os.TempDir(), exe) {
			return filepath.Dir(exe), nil
		}
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("savefile: resolve install root: %w", err)
	}
	return wd, nil
}

// underDir reports whether path sits inside dir.
func underDir(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
