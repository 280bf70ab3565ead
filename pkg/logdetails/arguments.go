package logdetails

import (
	"encoding/json"
	"strconv"

	"github.com/vektah/gqlparser/v2/ast"
)

// renderSelection renders a field selection as [name, [argument pairs...]].
func renderSelection(field *ast.Field) Param {
	args := make(Params, 0, len(field.Arguments))
	for _, arg := range field.Arguments {
		args = append(args, Param{Name: arg.Name, Value: renderValue(arg.Value)})
	}
	return Param{Name: field.Name, Value: args}
}

// renderValue dispatches on the literal kind. Object values recurse into
// ordered pair lists; every other kind is a scalar kept in its native type.
func renderValue(v *ast.Value) any {
	if v == nil {
		return nil
	}

	switch v.Kind {
	case ast.ObjectValue:
		children := make(Params, 0, len(v.Children))
		for _, child := range v.Children {
			children = append(children, Param{Name: child.Name, Value: renderValue(child.Value)})
		}
		return children
	case ast.ListValue:
		items := make([]any, 0, len(v.Children))
		for _, child := range v.Children {
			items = append(items, renderValue(child.Value))
		}
		return items
	case ast.IntValue:
		if n, err := strconv.ParseInt(v.Raw, 10, 64); err == nil {
			return n
		}
		return json.Number(v.Raw)
	case ast.FloatValue:
		if f, err := strconv.ParseFloat(v.Raw, 64); err == nil {
			return f
		}
		return json.Number(v.Raw)
	case ast.BooleanValue:
		return v.Raw == "true"
	case ast.NullValue:
		return nil
	case ast.Variable:
		return "$" + v.Raw
	default:
		// strings, block strings and enums
		return v.Raw
	}
}
