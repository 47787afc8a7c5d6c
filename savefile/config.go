package savefile

import (
	"log/slog"

	"github.com/hazyhaar/orbitx/orbitv"
	"github.com/hazyhaar/orbitx/savejson"
)

// Config configures a savefile Manager.
type Config struct {
	// Root is the simulator install root; saves live under
	// <Root>/data/saves. Callers normally fill this from DetectRoot
	// (default: current directory).
	Root string `json:"root" yaml:"root"`

	// Legacy decodes OrbitV save pairs (default: an orbitv.Decoder).
	Legacy LegacyDecoder `json:"-" yaml:"-"`

	// Codec parses and encodes canonical documents (default: savejson).
	Codec Codec `json:"-" yaml:"-"`

	// Events receives load/write outcomes when set. Recording failures
	// are logged and swallowed, never returned to the caller.
	Events EventRecorder `json:"-" yaml:"-"`

	// Logger for info/warning messages.
	Logger *slog.Logger `json:"-" yaml:"-"`
}

func (c *Config) defaults() {
	if c.Root == "" {
		c.Root = "."
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Legacy == nil {
		c.Legacy = orbitv.NewDecoder(c.Logger)
	}
	if c.Codec == nil {
		c.Codec = savejson.Codec{}
	}
}
