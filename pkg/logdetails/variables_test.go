package logdetails

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVariables_KeepsOrder(t *testing.T) {
	vars, err := ParseVariables([]byte(`{"z": 1, "a": {"y": true, "b": null}, "m": "s"}`))
	require.NoError(t, err)

	require.Len(t, vars, 3)
	assert.Equal(t, "z", vars[0].Name)
	assert.Equal(t, json.Number("1"), vars[0].Value)
	assert.Equal(t, "a", vars[1].Name)
	assert.Equal(t, Variables{{Name: "y", Value: true}, {Name: "b", Value: nil}}, vars[1].Value)
	assert.Equal(t, Variable{Name: "m", Value: "s"}, vars[2])
}

func TestParseVariables_UnescapesStrings(t *testing.T) {
	vars, err := ParseVariables([]byte(`{"q\"k": "line\nbreak"}`))
	require.NoError(t, err)

	require.Len(t, vars, 1)
	assert.Equal(t, `q"k`, vars[0].Name)
	assert.Equal(t, "line\nbreak", vars[0].Value)
}

func TestParseVariables_Arrays(t *testing.T) {
	vars, err := ParseVariables([]byte(`{"ids": [1, "two", {"b": 2, "a": 1}]}`))
	require.NoError(t, err)

	require.Len(t, vars, 1)
	assert.Equal(t, []any{json.Number("1"), "two", Variables{{Name: "b", Value: json.Number("2")}, {Name: "a", Value: json.Number("1")}}}, vars[0].Value)
}

func TestParseVariables_EmptyAndNull(t *testing.T) {
	for _, input := range []string{"", "  ", "null"} {
		vars, err := ParseVariables([]byte(input))
		require.NoError(t, err)
		assert.Nil(t, vars, "input %q", input)
	}
}

func TestParseVariables_NotObject(t *testing.T) {
	_, err := ParseVariables([]byte(`[1, 2]`))
	assert.ErrorIs(t, err, ErrVariablesNotObject)
}

func TestParseVariables_Malformed(t *testing.T) {
	_, err := ParseVariables([]byte(`{"a": }`))
	assert.Error(t, err)
}

func TestVariablesFromMap_SortsKeys(t *testing.T) {
	vars := VariablesFromMap(map[string]any{
		"b": 2,
		"a": map[string]any{"d": 4, "c": 3},
	})

	assert.Equal(t, Variables{
		{Name: "a", Value: Variables{{Name: "c", Value: 3}, {Name: "d", Value: 4}}},
		{Name: "b", Value: 2},
	}, vars)
}

func TestVariables_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(Variables{{Name: "z", Value: 1}, {Name: "a", Value: Variables{{Name: "k", Value: "v"}}}})
	require.NoError(t, err)

	assert.Equal(t, `{"z":1,"a":{"k":"v"}}`, string(out))
}

func TestRenderVariables_ListsPassThrough(t *testing.T) {
	params := renderVariables(Variables{
		{Name: "ids", Value: []any{1, Variables{{Name: "k", Value: "v"}}}},
		{Name: "input", Value: Variables{{Name: "n", Value: 1}}},
	})

	out, err := json.Marshal(params)
	require.NoError(t, err)
	assert.Equal(t, `[["ids",[1,{"k":"v"}]],["input",[["n",1]]]]`, string(out))
}
