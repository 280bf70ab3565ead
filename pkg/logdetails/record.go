package logdetails

import (
	"encoding/json"

	"go.uber.org/zap"
)

// Param is a single ordered (name, value) pair. It serializes as a two element
// JSON array. Value is a scalar, a list, or a nested Params.
type Param struct {
	Name  string
	Value any
}

func (p Param) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{p.Name, p.Value})
}

// Params is an ordered pair list.
type Params []Param

// Record is the log record for one request.
type Record struct {
	Params    Params   `json:"params,omitempty"`
	Resolvers []string `json:"resolvers,omitempty"`
}

// IsEmpty reports whether the record carries no selections.
func (r Record) IsEmpty() bool {
	return len(r.Params) == 0 && len(r.Resolvers) == 0
}

// Fields returns the record as zap fields, or nil for an empty record so that
// nothing is merged into the log event.
func (r Record) Fields() []zap.Field {
	if r.IsEmpty() {
		return nil
	}
	return []zap.Field{
		zap.Reflect("params", r.Params),
		zap.Strings("resolvers", r.Resolvers),
	}
}
