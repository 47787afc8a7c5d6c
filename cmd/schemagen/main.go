// Command schemagen emits the JSON schema of the canonical save document.
// The GUI and server repos validate their documents against this schema,
// so it is the written-down contract of what a save may contain.
//
// Usage:
//
//	schemagen                      # print the schema to stdout
//	schemagen -out save.schema.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"github.com/hazyhaar/orbitx/physics"
)

func main() {
	outPath := flag.String("out", "", "write the schema here instead of stdout")
	flag.Parse()

	data, err := json.MarshalIndent(buildSchema(), "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "schemagen: marshal schema: %v\n", err)
		os.Exit(1)
	}
	data = append(data, '\n')

	if *outPath == "" {
		os.Stdout.Write(data)
		return
	}
	if err := writeSchema(*outPath, data); err != nil {
		fmt.Fprintf(os.Stderr, "schemagen: %v\n", err)
		os.Exit(1)
	}
}

func buildSchema() *jsonschema.Schema {
	// AllowAdditionalProperties stays false: the codec rejects unknown
	// fields, so the schema must too.
	reflector := jsonschema.Reflector{}
	schema := reflector.Reflect(&physics.State{})
	schema.Title = "OrbitX Save Document"
	schema.Description = "Canonical savefile document shared by every OrbitX program."
	return schema
}

func writeSchema(outPath string, data []byte) error {
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create schema directory: %w", err)
		}
	}
	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}
	return nil
}
