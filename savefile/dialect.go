package savefile

import (
	"path/filepath"
	"strings"
)

// Dialect identifies a savefile encoding.
type Dialect string

const (
	// DialectOrbitV is the legacy fixed-record format with its STARSr
	// companion catalog.
	DialectOrbitV Dialect = "orbitv"
	// DialectJSON is the canonical schema document.
	DialectJSON Dialect = "json"
	// DialectUnknown marks an extension the Manager does not recognize.
	// Not an error: loads fall back to the canonical dialect after a
	// warning.
	DialectUnknown Dialect = "unknown"
)

// File extensions of the known dialects.
const (
	ExtOrbitV = ".rnd"
	ExtJSON   = ".json"
)

// DetectDialect classifies a save path by its extension, case-insensitively.
// Dispatching on the returned Dialect keeps extension strings in one place;
// a future dialect is one new constant and one new case here.
func DetectDialect(path string) Dialect {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtOrbitV:
		return DialectOrbitV
	case ExtJSON:
		return DialectJSON
	default:
		return DialectUnknown
	}
}
