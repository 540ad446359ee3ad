package mcp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStringParam(t *testing.T) {
	params := map[string]interface{}{
		"name":  "test",
		"empty": "",
		"null":  nil,
		"num":   float64(123),
	}

	t.Run("existing required param", func(t *testing.T) {
		val, err := GetStringParam(params, "name", true)
		require.NoError(t, err)
		assert.Equal(t, "test", val)
	})

	t.Run("missing required param", func(t *testing.T) {
		_, err := GetStringParam(params, "missing", true)
		assert.EqualError(t, err, "missing required parameter: missing")
	})

	t.Run("null counts as missing", func(t *testing.T) {
		_, err := GetStringParam(params, "null", true)
		assert.Error(t, err)
	})

	t.Run("missing optional param", func(t *testing.T) {
		val, err := GetStringParam(params, "missing", false)
		require.NoError(t, err)
		assert.Equal(t, "", val)
	})

	t.Run("wrong type", func(t *testing.T) {
		_, err := GetStringParam(params, "num", true)
		assert.EqualError(t, err, "parameter num must be a string")
	})
}

func TestGetStringArrayParam(t *testing.T) {
	params := map[string]interface{}{
		"items": []interface{}{"a", "b", "c"},
		"empty": []interface{}{},
		"mixed": []interface{}{"a", float64(1)},
		"flat":  "a",
	}

	t.Run("existing array", func(t *testing.T) {
		val, err := GetStringArrayParam(params, "items", true)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, val)
	})

	t.Run("empty array is not nil", func(t *testing.T) {
		val, err := GetStringArrayParam(params, "empty", true)
		require.NoError(t, err)
		assert.NotNil(t, val)
		assert.Empty(t, val)
	})

	t.Run("missing required", func(t *testing.T) {
		_, err := GetStringArrayParam(params, "missing", true)
		assert.Error(t, err)
	})

	t.Run("missing optional", func(t *testing.T) {
		val, err := GetStringArrayParam(params, "missing", false)
		require.NoError(t, err)
		assert.Nil(t, val)
	})

	t.Run("skips non-string items", func(t *testing.T) {
		val, err := GetStringArrayParam(params, "mixed", false)
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, val)
	})

	t.Run("only non-string items", func(t *testing.T) {
		val, err := GetStringArrayParam(map[string]interface{}{"nums": []interface{}{float64(1), nil}}, "nums", false)
		require.NoError(t, err)
		assert.NotNil(t, val)
		assert.Empty(t, val)
	})

	t.Run("not an array", func(t *testing.T) {
		_, err := GetStringArrayParam(params, "flat", false)
		assert.EqualError(t, err, "parameter flat must be an array")
	})
}

type lookupArgs struct {
	Page  string   `json:"page" jsonschema:"required,description=Page to look up"`
	Pages []string `json:"pages,omitempty" jsonschema:"description=Pages to look in"`
}

func TestSetEnum(t *testing.T) {
	schema := GenerateSchema[lookupArgs]()
	require.NoError(t, SetEnum(schema, "page", []string{"a", "b"}))
	require.NoError(t, SetEnum(schema, "pages", []string{"a", "b"}))
	assert.Error(t, SetEnum(schema, "missing", []string{"a"}))

	data, err := json.Marshal(schema)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &m))

	props := m["properties"].(map[string]interface{})
	page := props["page"].(map[string]interface{})
	assert.Equal(t, "string", page["type"])
	assert.Equal(t, "Page to look up", page["description"])
	assert.Equal(t, []interface{}{"a", "b"}, page["enum"])

	pages := props["pages"].(map[string]interface{})
	assert.Equal(t, "array", pages["type"])
	items := pages["items"].(map[string]interface{})
	assert.Equal(t, []interface{}{"a", "b"}, items["enum"])

	assert.Equal(t, []interface{}{"page"}, m["required"])
}
