package catalog

// Save is one catalog row describing a savefile on disk. The stat columns
// (Path, Dialect, SizeBytes, ModTime) track the file; the snapshot columns
// (Entities, TimeAcc, Reference, Target, SRBTime) hold the summary of the
// last decode and stay at their defaults until RecordSnapshot runs.
type Save struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Path      string  `json:"path"`
	Dialect   string  `json:"dialect"`
	SizeBytes int64   `json:"size_bytes"`
	ModTime   int64   `json:"mod_time"` // ms
	Entities  int     `json:"entities"` // -1 until decoded
	TimeAcc   int64   `json:"time_acc"`
	Reference string  `json:"reference"`
	Target    string  `json:"target"`
	SRBTime   float64 `json:"srb_time"`
	DecodedAt *int64  `json:"decoded_at,omitempty"`
	CreatedAt int64   `json:"created_at"`
	UpdatedAt int64   `json:"updated_at"`
}

// Event is one entry in the catalog's append-only trail. Events outlive
// their save row on purpose: a removed save keeps its history.
type Event struct {
	ID     string `json:"id"`
	SaveID string `json:"save_id"`
	Kind   string `json:"kind"`
	Detail string `json:"detail"`
	At     int64  `json:"at"` // ms
}

// Event kinds.
const (
	EventDiscovered = "discovered"
	EventUpdated    = "updated"
	EventRemoved    = "removed"
	EventLoaded     = "loaded"
	EventWritten    = "written"
)

// RefreshSummary reports what a RefreshDir pass changed.
type RefreshSummary struct {
	Scanned int `json:"scanned"`
	Added   int `json:"added"`
	Updated int `json:"updated"`
	Removed int `json:"removed"`
}
