package logdetails

import "github.com/vektah/gqlparser/v2/ast"

// Request holds the request parameters the record is built from.
type Request struct {
	Query     string
	Variables Variables
}

// Mode is the rendering mode chosen for a request.
type Mode int

const (
	// NoSelections yields the empty record.
	NoSelections Mode = iota
	// LiteralMode renders each selection's literal arguments.
	LiteralMode
	// VariableMode attaches the flattened variables to every selection.
	VariableMode
)

func (m Mode) String() string {
	switch m {
	case LiteralMode:
		return "literal"
	case VariableMode:
		return "variables"
	default:
		return "none"
	}
}

// ModeFor picks the mode for the given selections and variables.
func ModeFor(selections []*ast.Field, vars Variables) Mode {
	switch {
	case len(selections) == 0:
		return NoSelections
	case len(vars) > 0:
		return VariableMode
	default:
		return LiteralMode
	}
}

// Details builds the log record for a request. It is a pure function of req.
func Details(req Request) Record {
	return DetailsFor(Parse(req.Query), req.Variables)
}

// DetailsFor builds the record from an already parsed query.
func DetailsFor(parsed Parsed, vars Variables) Record {
	selections := parsed.Selections()

	var params Params
	switch ModeFor(selections, vars) {
	case NoSelections:
		return Record{}
	case VariableMode:
		// Every selection gets the whole variable map, whether or not it
		// references those variables.
		params = make(Params, 0, len(selections))
		for _, sel := range selections {
			params = append(params, Param{Name: sel.Name, Value: renderVariables(vars)})
		}
	default:
		params = make(Params, 0, len(selections))
		for _, sel := range selections {
			params = append(params, renderSelection(sel))
		}
	}

	return Record{
		Params:    params,
		Resolvers: resolverNames(selections),
	}
}

func resolverNames(selections []*ast.Field) []string {
	names := make([]string, 0, len(selections))
	for _, sel := range selections {
		names = append(names, sel.Name)
	}
	return names
}
