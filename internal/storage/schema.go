package storage

import (
	"encoding/json"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// taskBlobSchema guards the persisted task list. A blob written by an older
// or corrupted process that no longer matches this shape is discarded as if
// the key were absent.
const taskBlobSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "text", "completed", "created_at"],
    "properties": {
      "id": {"type": "integer"},
      "text": {"type": "string"},
      "category": {"type": "string"},
      "priority": {"type": "string"},
      "date": {"type": "string"},
      "time": {"type": "string"},
      "duration": {"type": "integer", "minimum": 0},
      "completed": {"type": "boolean"},
      "created_at": {"type": "string"}
    }
  }
}`

var compiledTaskSchema = jsonschema.MustCompileString("tasks.schema.json", taskBlobSchema)

func validateTaskBlob(raw []byte) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	return compiledTaskSchema.Validate(v)
}
