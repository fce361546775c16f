package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

const fileSchema = `{
  "type": "object",
  "required": ["parts"],
  "properties": {
    "parts": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "asset"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "asset": {"type": "string", "minLength": 1},
          "name": {"type": "string"},
          "description": {"type": "string"}
        }
      }
    }
  }
}`

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func fileSchemaCompiled() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		url := "mem://schemas/catalog.json"
		if err := compiler.AddResource(url, bytes.NewReader([]byte(fileSchema))); err != nil {
			schemaErr = fmt.Errorf("failed to add catalog schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile(url)
	})
	return schema, schemaErr
}

type catalogFile struct {
	Parts []PartDefinition `yaml:"parts"`
}

// Parse reads a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	// Round trip through JSON so the validator sees plain JSON values
	js, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	var doc any
	if err := json.Unmarshal(js, &doc); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	sch, err := fileSchemaCompiled()
	if err != nil {
		return nil, err
	}
	if err := sch.Validate(doc); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return New(f.Parts)
}

func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}
