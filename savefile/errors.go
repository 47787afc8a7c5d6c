package savefile

import "errors"

// ErrNotFound is returned when a save path does not exist on disk.
var ErrNotFound = errors.New("savefile: save not found")

// ErrBadName is returned when a logical save name carries path separators
// or traversal segments.
var ErrBadName = errors.New("savefile: bad save name")
