package logdetails

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

var (
	// ErrEmptyInput is reported when the query text is missing or blank.
	ErrEmptyInput = errors.New("empty query")
	// ErrParseFailure wraps the parser error for syntactically invalid queries.
	ErrParseFailure = errors.New("query parse failure")
)

// Parsed is the outcome of parsing query text. Exactly one of Document and Err
// is set.
type Parsed struct {
	Document *ast.QueryDocument
	Err      error
}

// Parse parses query text without a schema. Failures are returned as part of
// the result rather than propagated.
func Parse(query string) Parsed {
	if strings.TrimSpace(query) == "" {
		return Parsed{Err: ErrEmptyInput}
	}

	doc, err := parser.ParseQuery(&ast.Source{Input: query, Name: "query"})
	if err != nil {
		return Parsed{Err: fmt.Errorf("%w: %w", ErrParseFailure, err)}
	}
	return Parsed{Document: doc}
}

// OK reports whether parsing succeeded.
func (p Parsed) OK() bool {
	return p.Err == nil && p.Document != nil
}

// Selections returns the top-level field selections of the first operation in
// authored order. Anything after the first operation is ignored. The result is
// empty when parsing failed.
func (p Parsed) Selections() []*ast.Field {
	if !p.OK() || len(p.Document.Operations) == 0 {
		return nil
	}

	var fields []*ast.Field
	for _, sel := range p.Document.Operations[0].SelectionSet {
		// Top-level fragments carry no resolver name of their own.
		if field, ok := sel.(*ast.Field); ok {
			fields = append(fields, field)
		}
	}
	return fields
}
