package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlDoc = `
version: "1.0.0"
type: oiml.intent
intents:
  - kind: add_entity
    entity: user
    fields:
      - name: id
        type: uuid
        primary_key: true
        required: true
      - name: email
        type: email
        required: true
        unique: true
`

const jsonDoc = `{
	"version": "1.0.0",
	"type": "oiml.intent",
	"intents": [
		{
			"kind": "add_entity",
			"entity": "user",
			"fields": [
				{"name": "id", "type": "uuid", "primary_key": true, "required": true},
				{"name": "email", "type": "email", "required": true, "unique": true}
			]
		}
	]
}`

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"yaml", "yml"} {
		f, err := ParseFormat(s)
		require.NoError(t, err)
		assert.Equal(t, FormatYAML, f)
	}

	f, err := ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("toml")
	assert.Error(t, err)
}

func TestParseYAMLAndJSONAgree(t *testing.T) {
	fromYAML, err := Parse([]byte(yamlDoc), FormatYAML)
	require.NoError(t, err)
	fromJSON, err := Parse([]byte(jsonDoc), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", fromYAML["version"])
	assert.Equal(t, "1.0.0", fromJSON["version"])

	docA, err := Decode(fromYAML)
	require.NoError(t, err)
	docB, err := Decode(fromJSON)
	require.NoError(t, err)

	assert.Equal(t, docA, docB, "the two formats must decode identically")

	require.Len(t, docA.Intents, 1)
	it := docA.Intents[0]
	assert.Equal(t, "add_entity", it.Kind)
	assert.Equal(t, "user", it.Entity)
	require.Len(t, it.Fields, 2)
	assert.True(t, it.Fields[0].PrimaryKey)
	require.NotNil(t, it.Fields[1].Required)
	assert.True(t, *it.Fields[1].Required)
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte("{not json"), FormatJSON)
	assert.Error(t, err)

	_, err = Parse([]byte("\t- bad: [yaml"), FormatYAML)
	assert.Error(t, err)
}

func TestParseEmptyDocument(t *testing.T) {
	obj, err := Parse([]byte(""), FormatYAML)
	require.NoError(t, err)
	assert.NotNil(t, obj, "empty input parses to an empty object, not nil")
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("add_entity")
	require.NoError(t, err)
	assert.Equal(t, KindAddEntity, k)
	assert.Equal(t, "add_entity", k.String())

	_, err = ParseKind("rename_entity")
	assert.Error(t, err)

	assert.Len(t, Kinds(), 5)
}

func TestDecodeTriStateRequired(t *testing.T) {
	obj, err := Parse([]byte(`{
		"version": "1.0.0",
		"intents": [{
			"kind": "add_entity",
			"entity": "x",
			"fields": [
				{"name": "a", "type": "string", "required": true},
				{"name": "b", "type": "string", "required": false},
				{"name": "c", "type": "string"}
			]
		}]
	}`), FormatJSON)
	require.NoError(t, err)

	doc, err := Decode(obj)
	require.NoError(t, err)

	fields := doc.Intents[0].Fields
	require.NotNil(t, fields[0].Required)
	assert.True(t, *fields[0].Required)
	require.NotNil(t, fields[1].Required)
	assert.False(t, *fields[1].Required)
	// absent is distinct from false
	assert.Nil(t, fields[2].Required)
}
