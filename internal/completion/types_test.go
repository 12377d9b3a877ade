package completion

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"path-explorer/internal/shape"
)

func TestKind_String(t *testing.T) {
	assert.Equal(t, "FIELD", KindField.String())
	assert.Equal(t, "GETTER", KindGetter.String())
	assert.Equal(t, "SETTER", KindSetter.String())
	assert.Equal(t, "PARAMETER", KindParameter.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindField, KindOf(shape.OriginField))
	assert.Equal(t, KindGetter, KindOf(shape.OriginGetter))
	assert.Equal(t, KindSetter, KindOf(shape.OriginSetter))
}

func TestResult_JSON(t *testing.T) {
	r := NewResult("com.example.Person", "", []FieldInfo{
		{Name: "firstName", Type: "String", Kind: KindField},
	})

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"className": "com.example.Person",
		"simpleName": "Person",
		"packageName": "com.example",
		"path": "",
		"completions": [{"name": "firstName", "type": "String", "kind": "FIELD"}]
	}`, string(data))

	var decoded Result
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, r, decoded)
}

func TestResult_JSONEmptyCompletions(t *testing.T) {
	data, err := json.Marshal(Empty("", "x"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"completions":[]`)
}

func TestKind_UnmarshalUnknown(t *testing.T) {
	var k Kind
	assert.Error(t, json.Unmarshal([]byte(`"CONSTRUCTOR"`), &k))
	assert.Error(t, json.Unmarshal([]byte(`3`), &k))
}

func TestFieldInfo_String(t *testing.T) {
	f := FieldInfo{Name: "age", Type: "int", Kind: KindGetter}
	assert.Equal(t, "age: int (GETTER)", f.String())
}
