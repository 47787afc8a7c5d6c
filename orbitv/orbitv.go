// Package orbitv decodes legacy OrbitV savefiles into canonical snapshots.
//
// An OrbitV save is two files in the same directory: the `.rnd` record the
// user picks, and the fixed-name `STARSr` star catalog next to it. The
// `.rnd` file is a single fixed-size record of 38 little-endian IEEE-754
// single-precision floats, exactly as the QuickBASIC ORBIT5S program PUT
// them: a 16-value header (simulation clock, time-acceleration code,
// reference index, target index, SRB timer, nav mode, drag flag, zoom, then
// reserved slots) followed by one 11-value block per craft, Habitat first
// and AYSE second (mass, fuel, throttle, heading, spin, x, y, vx, vy,
// landed index, broken flag).
//
// STARSr supplies everything the record leaves out: one celestial body per
// line, `name,mass,radius,x,y,vx,vy`, with `#` comments and blank lines
// ignored. Snapshot entity order is the STARSr bodies in file order, then
// the two craft; the record's reference/target/landed indexes count in that
// order. A negative index means "none".
//
// Anything that keeps the pair of files from being interpreted — wrong
// record size, missing or malformed STARSr, an index past the entity list,
// an unknown time-acceleration code — is a *DecodeError.
package orbitv

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/hazyhaar/orbitx/physics"
)

// StarsFileName is the fixed name of the companion star catalog.
const StarsFileName = "STARSr"

const (
	headerFields = 16
	craftFields  = 11
	craftCount   = 2
	recordFields = headerFields + craftFields*craftCount

	// RecordSize is the exact byte length of a valid .rnd file.
	RecordSize = recordFields * 4
)

// Header field positions.
const (
	fldClock = iota
	fldTimeAccCode
	fldReference
	fldTarget
	fldSRBTime
	fldNavMode
	fldDragFlag
	fldZoom
	// fields 8–15 are reserved; old saves carry junk there and the
	// decoder does not look at them
)

// Per-craft field positions within a craft block.
const (
	craftMass = iota
	craftFuel
	craftThrottle
	craftHeading
	craftSpin
	craftX
	craftY
	craftVX
	craftVY
	craftLanded
	craftBroken
)

// craftNames gives the fixed craft order of the record.
var craftNames = [craftCount]string{physics.Habitat, physics.AYSE}

// Decoder turns an OrbitV save pair into a canonical snapshot.
type Decoder struct {
	logger *slog.Logger
}

// NewDecoder creates a Decoder. A nil logger falls back to slog.Default.
func NewDecoder(logger *slog.Logger) *Decoder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Decoder{logger: logger}
}

// Decode reads the .rnd record at path and its STARSr companion and builds
// a snapshot. The snapshot is fresh on every call and still needs
// canonicalization; in particular a legacy save with no target comes back
// with Target unset.
func (d *Decoder) Decode(ctx context.Context, path string) (*physics.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	if len(data) != RecordSize {
		return nil, &DecodeError{Path: path, Err: fmt.Errorf("%w: %d bytes, want %d", ErrRecordSize, len(data), RecordSize)}
	}

	rec := make([]float64, recordFields)
	for i := range rec {
		bits := binary.LittleEndian.Uint32(data[i*4:])
		rec[i] = float64(math.Float32frombits(bits))
	}

	starsPath := filepath.Join(filepath.Dir(path), StarsFileName)
	stars, err := parseStars(starsPath)
	if err != nil {
		return nil, &DecodeError{Path: starsPath, Err: err}
	}
	d.logger.Debug("orbitv: read star catalog", "path", starsPath, "bodies", len(stars))

	entities := stars
	for c := 0; c < craftCount; c++ {
		blk := rec[headerFields+c*craftFields:]
		entities = append(entities, physics.Entity{
			Name:       craftNames[c],
			Mass:       blk[craftMass],
			Fuel:       blk[craftFuel],
			Throttle:   blk[craftThrottle],
			Heading:    blk[craftHeading],
			Spin:       blk[craftSpin],
			X:          blk[craftX],
			Y:          blk[craftY],
			VX:         blk[craftVX],
			VY:         blk[craftVY],
			Artificial: true,
			Broken:     blk[craftBroken] != 0,
		})
	}

	// Landed indexes can only be resolved once the full entity order is
	// known, since a craft may sit on another craft.
	for c := 0; c < craftCount; c++ {
		blk := rec[headerFields+c*craftFields:]
		landed, err := entityName(entities, blk[craftLanded])
		if err != nil {
			return nil, &DecodeError{Path: path, Err: fmt.Errorf("craft %s landed: %w", craftNames[c], err)}
		}
		entities[len(stars)+c].LandedOn = landed
	}

	state := &physics.State{Entities: entities}

	state.TimeAcc, err = timeAccValue(rec[fldTimeAccCode])
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	state.Reference, err = entityName(entities, rec[fldReference])
	if err != nil {
		return nil, &DecodeError{Path: path, Err: fmt.Errorf("reference: %w", err)}
	}
	state.Target, err = entityName(entities, rec[fldTarget])
	if err != nil {
		return nil, &DecodeError{Path: path, Err: fmt.Errorf("target: %w", err)}
	}
	state.SRBTime = srbTime(rec[fldSRBTime])

	return state, nil
}

// entityName resolves a record index into an entity name. Negative means
// "none" and maps to the empty string, which load-side canonicalization
// turns into the documented default where one applies.
func entityName(entities []physics.Entity, idx float64) (string, error) {
	i := int(math.Round(idx))
	if i < 0 {
		return "", nil
	}
	if i >= len(entities) {
		return "", fmt.Errorf("%w: %d of %d entities", ErrIndexRange, i, len(entities))
	}
	return entities[i].Name, nil
}

// timeAccValue maps an OrbitV speed code (a position in the speed table,
// not a multiplier) onto the canonical multiplier. Code 0 is "paused" and
// comes back as the unset value 0 for canonicalization to repair.
func timeAccValue(code float64) (int64, error) {
	i := int(math.Round(code))
	if i < 0 || i >= len(physics.TimeAccs) {
		return 0, fmt.Errorf("%w: %d", ErrTimeAccCode, i)
	}
	return physics.TimeAccs[i].Value, nil
}

// srbTime maps the raw OrbitV booster seconds onto the canonical timer.
// OrbitV stores a full unfired booster as the whole burn time and an
// exhausted one as zero (or a small negative overshoot); canonically those
// are the SRBFull and SRBEmpty sentinels, and the decoder never emits a
// plain 0 that could read as "unset".
func srbTime(raw float64) float64 {
	switch {
	case raw >= physics.SRBBurntime:
		return physics.SRBFull
	case raw <= 0:
		return physics.SRBEmpty
	default:
		return raw
	}
}
