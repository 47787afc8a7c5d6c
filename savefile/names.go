package savefile

import (
	"fmt"
	"path/filepath"
	"strings"
)

// CleanName validates a user-supplied save name: a bare file name with no
// directory part and no traversal. Returns the trimmed name or ErrBadName.
func CleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: empty", ErrBadName)
	}
	if strings.Contains(name, "..") {
		return "", fmt.Errorf("%w: %q", ErrBadName, name)
	}
	if strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return "", fmt.Errorf("%w: %q", ErrBadName, name)
	}
	return name, nil
}
