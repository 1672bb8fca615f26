package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// ConfigJSONSchema documents the runtime shape expected by storage providers.
// It is intentionally minimal; provider-specific options are captured in the
// nested "options" map.
const ConfigJSONSchema = `
{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "StorageConfig",
  "type": "object",
  "required": ["name", "driver"],
  "properties": {
    "name": {
      "type": "string",
      "description": "Human readable identifier for the storage configuration"
    },
    "driver": {
      "type": "string",
      "description": "Driver identifier understood by the storage adapter (e.g. filesystem, memory)"
    },
    "root": {
      "type": "string",
      "description": "Base directory or prefix that artifact paths resolve against"
    },
    "readOnly": {
      "type": "boolean",
      "default": false
    },
    "options": {
      "type": "object",
      "additionalProperties": true
    }
  },
  "additionalProperties": false
}
`

var (
	configSchemaOnce sync.Once
	configSchema     *jsonschema.Schema
	configSchemaErr  error
)

// ValidateConfig checks cfg against ConfigJSONSchema. Empty name and driver
// values are omitted from the payload so the schema's required clause rejects
// them.
func ValidateConfig(cfg Config) error {
	configSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("storage-config.json", strings.NewReader(ConfigJSONSchema)); err != nil {
			configSchemaErr = err
			return
		}
		configSchema, configSchemaErr = compiler.Compile("storage-config.json")
	})
	if configSchemaErr != nil {
		return fmt.Errorf("storage: compile config schema: %w", configSchemaErr)
	}

	payload := map[string]any{}
	if strings.TrimSpace(cfg.Name) != "" {
		payload["name"] = cfg.Name
	}
	if strings.TrimSpace(cfg.Driver) != "" {
		payload["driver"] = cfg.Driver
	}
	if cfg.Root != "" {
		payload["root"] = cfg.Root
	}
	if cfg.ReadOnly {
		payload["readOnly"] = true
	}
	if len(cfg.Options) > 0 {
		payload["options"] = cfg.Options
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("storage: encode config: %w", err)
	}
	var normalized any
	if err := json.Unmarshal(encoded, &normalized); err != nil {
		return fmt.Errorf("storage: encode config: %w", err)
	}
	if err := configSchema.Validate(normalized); err != nil {
		return fmt.Errorf("storage: invalid config: %w", err)
	}
	return nil
}
