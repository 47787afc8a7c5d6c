package physics

import "math"

// Frequently-used entity names. String literals work too, these just guard
// against misspellings.
const (
	Habitat = "Habitat"
	AYSE    = "AYSE"
	Sun     = "Sun"
	Earth   = "Earth"
	Module  = "Module"
	OCESS   = "OCESS"
)

// Defaults used by Canonicalize and by the flight GUI's initial camera.
const (
	DefaultCentre    = Habitat
	DefaultReference = Earth
	DefaultTarget    = AYSE
)

// TimeAcc is one allowed value of simulation speed-up.
type TimeAcc struct {
	Value int64
	Desc  string

	// AccurateBound is the acceleration above which this speed-up starts
	// to be too inaccurate to trust.
	AccurateBound float64
}

// TimeAccs is the ordered set of allowed time acceleration magnitudes.
// Index 0 is the paused state; it is never persisted as such (a stored 0 is
// treated as unset and repaired to 1).
var TimeAccs = []TimeAcc{
	{Value: 0, Desc: "Pause", AccurateBound: 10000},
	{Value: 1, Desc: "1×", AccurateBound: 1000},
	{Value: 5, Desc: "5×", AccurateBound: 12},
	{Value: 10, Desc: "10×", AccurateBound: 9},
	{Value: 50, Desc: "50×", AccurateBound: 7},
	{Value: 100, Desc: "100×", AccurateBound: 5},
	{Value: 1_000, Desc: "1,000×", AccurateBound: 3},
	{Value: 10_000, Desc: "10,000×", AccurateBound: 1},
	{Value: 100_000, Desc: "100,000×", AccurateBound: 0.1},
}

// ValidTimeAcc reports whether v is one of the TimeAccs values.
func ValidTimeAcc(v int64) bool {
	for _, ta := range TimeAccs {
		if ta.Value == v {
			return true
		}
	}
	return false
}

// Gravitational constant, m³ kg⁻¹ s⁻².
const G = 6.674e-11

// Throttle bounds: -100% to +100%.
const (
	MinThrottle = -1.00
	MaxThrottle = 1.00
)

// Autopilot spin rates, radians per second.
const (
	// AutopilotSpeed is the max speed at which the autopilot spins the craft.
	AutopilotSpeed = 20 * math.Pi / 180

	// AutopilotFineControlRadius is the margin on either side of the target
	// heading inside which the autopilot slows its adjustments.
	AutopilotFineControlRadius = 5 * math.Pi / 180
)

// UndockPush is the m/s shove a craft gets when undocking.
const UndockPush = 0.5

// Spacecraft describes the capabilities of one kind of craft.
type Spacecraft struct {
	FuelCons     float64 // fuel consumption in kg/s at 100% engines
	Thrust       float64 // thrust in N at 100% engines
	HullStrength float64 // max m/s impact the craft can take
}

// CraftCapabilities lists each craft's engine and hull numbers. The values
// come from the OrbitV sources (orbit5vm.bas).
var CraftCapabilities = map[string]Spacecraft{
	Habitat: {FuelCons: 4.824, Thrust: 4375000, HullStrength: 50},
	AYSE:    {FuelCons: 17.55, Thrust: 6.4e9, HullStrength: 100},
}

// SRBThrust is the thrust of the solid rocket boosters, in N.
const SRBThrust = 13125000

// Keyboard spin adjustments, radians per second per press.
const (
	SpinChange     = 5 * math.Pi / 180
	FineSpinChange = 0.5 * math.Pi / 180
)

// Drag profiles.
const (
	HabDragProfile       = 0.0002
	ParachuteDragProfile = 0.02
)

// LaunchTWR is the thrust-weight ratio required for liftoff. Anything over 1
// lifts off in principle; the margin keeps a grazing collision from zeroing
// the engines right after launch.
const LaunchTWR = 1.05

// SRB timer sentinels and capacity. SRBFull means the boosters are loaded
// but never fired; SRBEmpty means they burned out. Both are distinct from 0,
// which on disk means "unset".
const (
	SRBFull     float64 = -1
	SRBEmpty    float64 = -2
	SRBBurntime float64 = 120 // seconds of burn
)
