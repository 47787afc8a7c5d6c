// Package physics holds the canonical in-memory representation of a
// simulation snapshot — the record every savefile dialect decodes into and
// every consumer reads from — together with the simulation constants shared
// across the OrbitX programs.
//
// A State is created fresh by a decoder on every load, repaired once by
// Canonicalize, and never cached or shared between loads.
package physics

// Entity is one simulated body or craft. The savefile core carries entities
// through load and save without interpreting them; field meanings belong to
// the physics engine.
type Entity struct {
	Name       string  `json:"name,omitempty"`
	Mass       float64 `json:"mass,omitempty"`
	R          float64 `json:"r,omitempty"` // radius, metres
	X          float64 `json:"x,omitempty"`
	Y          float64 `json:"y,omitempty"`
	VX         float64 `json:"vx,omitempty"`
	VY         float64 `json:"vy,omitempty"`
	Heading    float64 `json:"heading,omitempty"`
	Spin       float64 `json:"spin,omitempty"`
	Fuel       float64 `json:"fuel,omitempty"`
	Throttle   float64 `json:"throttle,omitempty"`
	LandedOn   string  `json:"landedOn,omitempty"`
	Broken     bool    `json:"broken,omitempty"`
	Artificial bool    `json:"artificial,omitempty"`

	AtmosphereThickness float64 `json:"atmosphereThickness,omitempty"`
	AtmosphereScaling   float64 `json:"atmosphereScaling,omitempty"`
}

// State is the canonical simulation snapshot.
//
// Three scalar fields reuse their zero value as an "unset" sentinel:
// TimeAcc 0, Reference "" and Target "" all mean "nothing was persisted",
// as does SRBTime 0 (a legitimately exhausted booster is SRBEmpty, never 0).
// Canonicalize replaces the sentinels with the documented defaults; after a
// load no consumer ever observes them.
type State struct {
	Entities []Entity `json:"entities,omitempty" jsonschema:"title=Entities,description=All simulated bodies and craft."`

	// TimeAcc is the simulation speed multiplier, one of the TimeAccs
	// table values. 0 means paused in the UI and unset on disk.
	TimeAcc int64 `json:"timeAcc,omitempty" jsonschema:"description=Simulation speed multiplier."`

	// Reference is the entity used as coordinate-frame origin.
	Reference string `json:"reference,omitempty" jsonschema:"description=Name of the reference entity."`

	// Target is the entity currently targeted by the UI and autopilot.
	Target string `json:"target,omitempty" jsonschema:"description=Name of the targeted entity."`

	// SRBTime is the remaining solid rocket booster burn in seconds, or
	// one of the SRBFull/SRBEmpty sentinels.
	SRBTime float64 `json:"srbTime,omitempty" jsonschema:"description=Remaining SRB burn seconds; -1 full and unused; -2 fully spent."`
}

// Canonicalize repairs the unset sentinels in place and returns the same
// State for chaining. Each repair is an isolated check on its own field, so
// the order is immaterial and the operation is idempotent: the defaults are
// never themselves sentinels, so a second pass finds nothing to do.
func (s *State) Canonicalize() *State {
	if s.TimeAcc == 0 {
		s.TimeAcc = 1
	}
	if s.Reference == "" {
		s.Reference = DefaultReference
	}
	if s.Target == "" {
		s.Target = DefaultTarget
	}
	if s.SRBTime == 0 {
		s.SRBTime = SRBFull
	}
	return s
}

// EntityNames returns the entity names in snapshot order.
func (s *State) EntityNames() []string {
	names := make([]string, len(s.Entities))
	for i, e := range s.Entities {
		names[i] = e.Name
	}
	return names
}

// EntityByName returns the first entity with the given name, or nil.
func (s *State) EntityByName(name string) *Entity {
	for i := range s.Entities {
		if s.Entities[i].Name == name {
			return &s.Entities[i]
		}
	}
	return nil
}
