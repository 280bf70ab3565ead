package logdetails

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/buger/jsonparser"
)

// Variable is one externally supplied variable. Value is a scalar, a list, or
// a nested Variables for mapping values.
type Variable struct {
	Name  string
	Value any
}

// Variables is an ordered variable map.
type Variables []Variable

// ErrVariablesNotObject is returned by ParseVariables for JSON that is not an
// object.
var ErrVariablesNotObject = errors.New("variables must be a JSON object")

// ParseVariables decodes a JSON object into Variables, keeping key order at
// every level. Numbers are kept as json.Number. Empty input and null decode to
// nil.
func ParseVariables(data []byte) (Variables, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}
	if data[0] != '{' {
		return nil, ErrVariablesNotObject
	}

	vars, err := decodeObject(data)
	if err != nil {
		return nil, fmt.Errorf("decoding variables: %w", err)
	}
	return vars, nil
}

func decodeObject(data []byte) (Variables, error) {
	vars := Variables{}
	err := jsonparser.ObjectEach(data, func(key []byte, value []byte, dataType jsonparser.ValueType, offset int) error {
		// keys arrive already unescaped
		decoded, err := decodeValue(value, dataType)
		if err != nil {
			return err
		}
		vars = append(vars, Variable{Name: string(key), Value: decoded})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return vars, nil
}

func decodeValue(value []byte, dataType jsonparser.ValueType) (any, error) {
	switch dataType {
	case jsonparser.Object:
		return decodeObject(value)
	case jsonparser.Array:
		items := []any{}
		var itemErr error
		_, err := jsonparser.ArrayEach(value, func(item []byte, itemType jsonparser.ValueType, offset int, err error) {
			if itemErr != nil {
				return
			}
			decoded, err := decodeValue(item, itemType)
			if err != nil {
				itemErr = err
				return
			}
			items = append(items, decoded)
		})
		if itemErr != nil {
			return nil, itemErr
		}
		if err != nil {
			return nil, err
		}
		return items, nil
	case jsonparser.String:
		return jsonparser.ParseString(value)
	case jsonparser.Number:
		return json.Number(string(value)), nil
	case jsonparser.Boolean:
		return jsonparser.ParseBoolean(value)
	case jsonparser.Null:
		return nil, nil
	default:
		return nil, fmt.Errorf("unexpected JSON value %q", value)
	}
}

// VariablesFromMap converts a Go map into Variables. Map iteration order is
// random, so keys are sorted at every level.
func VariablesFromMap(m map[string]any) Variables {
	if m == nil {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	vars := make(Variables, 0, len(m))
	for _, k := range keys {
		value := m[k]
		if nested, ok := value.(map[string]any); ok {
			value = VariablesFromMap(nested)
		}
		vars = append(vars, Variable{Name: k, Value: value})
	}
	return vars
}

// MarshalJSON writes the variables as a JSON object in stored order.
func (v Variables) MarshalJSON() ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, variable := range v {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(variable.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(variable.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// renderVariables flattens variables into the pair list shape. Only mapping
// values recurse; everything else passes through untouched.
func renderVariables(vars Variables) Params {
	params := make(Params, 0, len(vars))
	for _, variable := range vars {
		value := variable.Value
		if nested, ok := value.(Variables); ok {
			value = renderVariables(nested)
		}
		params = append(params, Param{Name: variable.Name, Value: value})
	}
	return params
}
