// Package codec converts the placed instances of a scene to and from the
// text snapshot used by save, load and undo.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/gerkit/gerkit/gerrt/rt/scene"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

var ErrMalformed = errors.New("malformed scene state")

// Record is one placed instance.
type Record struct {
	ID  string     `json:"id"`
	Pos [3]float32 `json:"pos"`
	Rot Euler      `json:"rot"`
}

// Euler encodes as [x, y, z]. Decoding also accepts a trailing rotation
// order element, which must be "XYZ".
type Euler [3]float32

func (e *Euler) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 3 && len(raw) != 4 {
		return fmt.Errorf("rotation needs 3 angles, got %d elements", len(raw))
	}
	for i := 0; i < 3; i++ {
		if err := json.Unmarshal(raw[i], &e[i]); err != nil {
			return fmt.Errorf("rotation[%d]: %w", i, err)
		}
	}
	if len(raw) == 4 {
		var order string
		if err := json.Unmarshal(raw[3], &order); err != nil || order != "XYZ" {
			return fmt.Errorf("unsupported rotation order %s", raw[3])
		}
	}
	return nil
}

const stateSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "pos", "rot"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "pos": {"type": "array", "items": {"type": "number"}, "minItems": 3, "maxItems": 3},
      "rot": {
        "type": "array",
        "items": [{"type": "number"}, {"type": "number"}, {"type": "number"}, {"const": "XYZ"}],
        "additionalItems": false,
        "minItems": 3
      }
    }
  }
}`

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func stateSchemaCompiled() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		url := "mem://schemas/scene-state.json"
		if err := compiler.AddResource(url, bytes.NewReader([]byte(stateSchema))); err != nil {
			schemaErr = fmt.Errorf("failed to add state schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile(url)
	})
	return schema, schemaErr
}

// Encode renders records as a JSON array. A nil slice encodes as "[]".
func Encode(records []Record) (string, error) {
	if records == nil {
		records = []Record{}
	}
	b, err := json.Marshal(records)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Decode parses a snapshot. Any structural problem fails the whole decode.
func Decode(text string) ([]Record, error) {
	var doc any
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	sch, err := stateSchemaCompiled()
	if err != nil {
		return nil, err
	}
	if err := sch.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	var records []Record
	if err := json.Unmarshal([]byte(text), &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return records, nil
}

// Snapshot collects one record per placed instance in scene order.
func Snapshot(s *scene.Scene) []Record {
	instances := s.Instances()
	records := make([]Record, 0, len(instances))
	for _, n := range instances {
		tag := n.Tag.(scene.InstanceTag)
		records = append(records, Record{
			ID:  tag.PartID,
			Pos: n.Transform.Position,
			Rot: Euler(n.Transform.Rotation),
		})
	}
	return records
}

// Export is Snapshot followed by Encode.
func Export(s *scene.Scene) (string, error) {
	return Encode(Snapshot(s))
}

func (r Record) Position() mgl32.Vec3 { return mgl32.Vec3(r.Pos) }
func (r Record) Rotation() mgl32.Vec3 { return mgl32.Vec3(r.Rot) }
