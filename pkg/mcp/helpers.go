package mcp

import (
	"fmt"

	"github.com/invopop/jsonschema"
)

func GetStringParam(params map[string]interface{}, key string, required bool) (string, error) {
	v, ok := params[key]
	if !ok || v == nil {
		if required {
			return "", fmt.Errorf("missing required parameter: %s", key)
		}
		return "", nil
	}

	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("parameter %s must be a string", key)
	}
	return s, nil
}

// GetStringArrayParam returns nil when the key is absent and a non-nil, possibly
// empty, slice when it is present. Items that are not strings are skipped; only
// a value that is not an array is an error.
func GetStringArrayParam(params map[string]interface{}, key string, required bool) ([]string, error) {
	v, ok := params[key]
	if !ok || v == nil {
		if required {
			return nil, fmt.Errorf("missing required parameter: %s", key)
		}
		return nil, nil
	}

	arr, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("parameter %s must be an array", key)
	}

	result := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok {
			result = append(result, s)
		}
	}
	return result, nil
}

// GenerateSchema reflects the JSON schema of the argument struct T, honouring
// `jsonschema:"required,description=..."` tags.
func GenerateSchema[T any]() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		Anonymous:                  true,
		AllowAdditionalProperties:  true,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	schema := reflector.Reflect(&v)
	schema.Version = ""
	return schema
}

// SetEnum restricts a string property, or the items of an array property, to
// the given values.
func SetEnum(schema *jsonschema.Schema, property string, values []string) error {
	if schema.Properties == nil {
		return fmt.Errorf("schema has no properties")
	}
	prop, ok := schema.Properties.Get(property)
	if !ok || prop == nil {
		return fmt.Errorf("schema has no property %s", property)
	}

	enum := make([]interface{}, len(values))
	for i, v := range values {
		enum[i] = v
	}

	if prop.Type == "array" && prop.Items != nil {
		prop.Items.Enum = enum
		return nil
	}
	prop.Enum = enum
	return nil
}
