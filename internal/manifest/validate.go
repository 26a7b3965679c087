package manifest

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema/library.schema.json
var librarySchemaJSON []byte

const librarySchemaURL = "https://github.com/3leaps/verbump/schemas/library.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func librarySchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(librarySchemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("parse embedded manifest schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(librarySchemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("load embedded manifest schema: %w", err)
			return
		}
		schema, schemaErr = c.Compile(librarySchemaURL)
	})
	return schema, schemaErr
}

// Validate decodes the manifest at path and checks it against the embedded
// library schema (a non-empty name and a dotted numeric version).
func Validate(path string) error {
	sch, err := librarySchema()
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path) // #nosec G304 -- manifest path is operator supplied
	if err != nil {
		return fmt.Errorf("read manifest %s: %w", path, err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("manifest %s does not match schema: %w", path, err)
	}
	return nil
}
