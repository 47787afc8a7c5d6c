package orbitv

import (
	"context"
	"encoding/binary"
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hazyhaar/orbitx/physics"
)

const validStars = `# OCESS star catalog
Sun,1.989e30,696000000,0,0,0,0

Earth,5.972e24,6371000,149500000,0,0,29800
`

// badNumberStars is validStars with trailing garbage on the Earth x value.
const badNumberStars = `# OCESS star catalog
Sun,1.989e30,696000000,0,0,0,0

Earth,5.972e24,6371000,149500000entity,0,0,29800
`

type recFixture struct {
	clock, timeAccCode, reference, target, srb float64
	hab, ayse                                  [craftFields]float64
}

func (r recFixture) fields() []float64 {
	f := make([]float64, recordFields)
	f[fldClock] = r.clock
	f[fldTimeAccCode] = r.timeAccCode
	f[fldReference] = r.reference
	f[fldTarget] = r.target
	f[fldSRBTime] = r.srb
	// Reserved header slots carry junk in real saves; the decoder must
	// not care.
	for i := fldZoom + 1; i < headerFields; i++ {
		f[i] = 9e9
	}
	copy(f[headerFields:], r.hab[:])
	copy(f[headerFields+craftFields:], r.ayse[:])
	return f
}

func writeRecord(t *testing.T, dir string, fields []float64) string {
	t.Helper()
	buf := make([]byte, 0, len(fields)*4)
	for _, v := range fields {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], math.Float32bits(float32(v)))
		buf = append(buf, b[:]...)
	}
	path := filepath.Join(dir, "OSBACKUP.rnd")
	if err := os.WriteFile(path, buf, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeStars(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, StarsFileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDecodeFullSave(t *testing.T) {
	dir := t.TempDir()
	writeStars(t, dir, validStars)

	rec := recFixture{
		clock:       86400,
		timeAccCode: 4,  // table position 4 = 50×
		reference:   1,  // Earth
		target:      3,  // AYSE
		srb:         60, // mid-burn
		hab: [craftFields]float64{
			craftMass: 275000, craftFuel: 4000, craftThrottle: 0.75,
			craftHeading: 1.5, craftSpin: -0.25,
			craftX: 6371000, craftY: 0, craftVX: 0, craftVY: 7800,
			craftLanded: 1, // on Earth
			craftBroken: 0,
		},
		ayse: [craftFields]float64{
			craftMass: 20000000, craftFuel: 250000,
			craftX: 6471000, craftVY: 7700,
			craftLanded: -1,
			craftBroken: 1,
		},
	}
	path := writeRecord(t, dir, rec.fields())

	state, err := NewDecoder(nil).Decode(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}

	wantOrder := []string{physics.Sun, physics.Earth, physics.Habitat, physics.AYSE}
	if got := state.EntityNames(); len(got) != len(wantOrder) {
		t.Fatalf("entity names = %v, want %v", got, wantOrder)
	} else {
		for i := range wantOrder {
			if got[i] != wantOrder[i] {
				t.Fatalf("entity names = %v, want %v", got, wantOrder)
			}
		}
	}

	if state.TimeAcc != 50 {
		t.Errorf("TimeAcc = %d, want 50", state.TimeAcc)
	}
	if state.Reference != physics.Earth || state.Target != physics.AYSE {
		t.Errorf("reference/target = %q/%q", state.Reference, state.Target)
	}
	if state.SRBTime != 60 {
		t.Errorf("SRBTime = %v, want 60", state.SRBTime)
	}

	earth := state.EntityByName(physics.Earth)
	if earth.Mass != 5.972e24 || earth.R != 6371000 || earth.VY != 29800 {
		t.Errorf("Earth = %+v", earth)
	}
	if earth.Artificial {
		t.Error("star catalog body marked artificial")
	}

	hab := state.EntityByName(physics.Habitat)
	if !hab.Artificial || hab.LandedOn != physics.Earth || hab.Broken {
		t.Errorf("Habitat = %+v", hab)
	}
	if hab.Fuel != 4000 || hab.Throttle != 0.75 || hab.VY != 7800 || hab.X != 6371000 {
		t.Errorf("Habitat physics fields = %+v", hab)
	}

	ayse := state.EntityByName(physics.AYSE)
	if ayse.LandedOn != "" || !ayse.Broken {
		t.Errorf("AYSE = %+v", ayse)
	}
}

func TestDecodeUnsetFieldsStayUnset(t *testing.T) {
	dir := t.TempDir()
	writeStars(t, dir, validStars)

	rec := recFixture{
		timeAccCode: 0,   // paused
		reference:   0,   // Sun
		target:      -1,  // none
		srb:         130, // over the burn time: full and unused
	}
	rec.hab[craftLanded] = -1
	rec.ayse[craftLanded] = -1
	path := writeRecord(t, dir, rec.fields())

	state, err := NewDecoder(nil).Decode(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if state.TimeAcc != 0 {
		t.Errorf("paused TimeAcc = %d, want the unset 0", state.TimeAcc)
	}
	if state.Target != "" {
		t.Errorf("absent target = %q, want unset", state.Target)
	}
	if state.SRBTime != physics.SRBFull {
		t.Errorf("SRBTime = %v, want SRBFull", state.SRBTime)
	}
}

func TestSRBTimeMapping(t *testing.T) {
	tests := []struct {
		raw, want float64
	}{
		{physics.SRBBurntime, physics.SRBFull},
		{200, physics.SRBFull},
		{0, physics.SRBEmpty},
		{-3, physics.SRBEmpty},
		{45.5, 45.5},
		{119, 119},
	}
	for _, tt := range tests {
		if got := srbTime(tt.raw); got != tt.want {
			t.Errorf("srbTime(%v) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	ctx := context.Background()
	dec := NewDecoder(nil)

	t.Run("record too short", func(t *testing.T) {
		dir := t.TempDir()
		writeStars(t, dir, validStars)
		path := filepath.Join(dir, "short.rnd")
		if err := os.WriteFile(path, []byte("ORBIT"), 0644); err != nil {
			t.Fatal(err)
		}

		_, err := dec.Decode(ctx, path)
		if !errors.Is(err, ErrRecordSize) {
			t.Fatalf("err = %v, want ErrRecordSize", err)
		}
	})

	t.Run("missing STARSr", func(t *testing.T) {
		dir := t.TempDir()
		path := writeRecord(t, dir, recFixture{}.fields())

		_, err := dec.Decode(ctx, path)
		var derr *DecodeError
		if !errors.As(err, &derr) {
			t.Fatalf("err = %T, want *DecodeError", err)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			t.Fatalf("err = %v, want wrapped fs.ErrNotExist", err)
		}
		if filepath.Base(derr.Path) != StarsFileName {
			t.Errorf("error path = %q, want the STARSr companion", derr.Path)
		}
	})

	t.Run("reference index out of range", func(t *testing.T) {
		dir := t.TempDir()
		writeStars(t, dir, validStars)
		rec := recFixture{reference: 99}
		rec.hab[craftLanded] = -1
		rec.ayse[craftLanded] = -1
		path := writeRecord(t, dir, rec.fields())

		_, err := dec.Decode(ctx, path)
		if !errors.Is(err, ErrIndexRange) {
			t.Fatalf("err = %v, want ErrIndexRange", err)
		}
	})

	t.Run("unknown time acc code", func(t *testing.T) {
		dir := t.TempDir()
		writeStars(t, dir, validStars)
		rec := recFixture{timeAccCode: 12}
		rec.hab[craftLanded] = -1
		rec.ayse[craftLanded] = -1
		path := writeRecord(t, dir, rec.fields())

		_, err := dec.Decode(ctx, path)
		if !errors.Is(err, ErrTimeAccCode) {
			t.Fatalf("err = %v, want ErrTimeAccCode", err)
		}
	})

	t.Run("malformed STARSr number", func(t *testing.T) {
		dir := t.TempDir()
		writeStars(t, dir, badNumberStars)
		path := writeRecord(t, dir, recFixture{}.fields())

		_, err := dec.Decode(ctx, path)
		var derr *DecodeError
		if !errors.As(err, &derr) {
			t.Fatalf("err = %T, want *DecodeError", err)
		}
		if !strings.Contains(err.Error(), "line 4") {
			t.Errorf("err = %v, want the offending line number", err)
		}
	})

	t.Run("wrong STARSr field count", func(t *testing.T) {
		dir := t.TempDir()
		writeStars(t, dir, "Sun,1.989e30,696000000\n")
		path := writeRecord(t, dir, recFixture{}.fields())

		_, err := dec.Decode(ctx, path)
		if err == nil || !strings.Contains(err.Error(), "fields") {
			t.Fatalf("err = %v, want a field-count error", err)
		}
	})
}
