// Package savejson is the codec for canonical OrbitX save documents.
//
// A save document is a single JSON object whose top-level fields are exactly
// the scalar snapshot fields plus the entity list:
//
//	{
//	  "entities": [ {"name": "Earth", "mass": 5.972e24, ...}, ... ],
//	  "timeAcc": 50,
//	  "reference": "Earth",
//	  "target": "AYSE",
//	  "srbTime": -1
//	}
//
// The field names are a versionless contract shared with the GUI and server
// programs; parsing is strict, so a document with unrecognized fields fails
// rather than silently dropping data. Zero-valued fields are omitted on
// encode, which is why 0 and "" double as the "unset" sentinels repaired by
// physics.Canonicalize.
package savejson

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/hazyhaar/orbitx/physics"
)

// Codec parses and encodes canonical save documents. The zero value is
// ready to use.
type Codec struct{}

// Parse decodes a save document into a fresh State. Unknown fields,
// mistyped values, truncated input and trailing data are all *ParseError.
func (Codec) Parse(data []byte) (*physics.State, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	state := new(physics.State)
	if err := dec.Decode(state); err != nil {
		return nil, &ParseError{Err: err}
	}

	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, &ParseError{Err: errors.New("trailing data after document")}
	}
	return state, nil
}

// Encode renders state as an indented save document. Values JSON cannot
// carry (NaN or infinite floats) are an *EncodeError; they never occur in a
// state that itself came from Parse.
func (Codec) Encode(state *physics.State) ([]byte, error) {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, &EncodeError{Err: err}
	}
	return data, nil
}
