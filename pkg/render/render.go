// Package render formats command output as JSON, plain text or pretty tables.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

type Format string

const (
	FormatJSON   Format = "json"
	FormatText   Format = "text"
	FormatPretty Format = "pretty"
)

var ValidFormats = []Format{FormatJSON, FormatText, FormatPretty}

// ParseFormat parses a format name case-insensitively. Near misses get a
// suggestion in the error.
func ParseFormat(s string) (Format, error) {
	lower := strings.ToLower(s)
	for _, f := range ValidFormats {
		if lower == string(f) {
			return f, nil
		}
	}

	if suggestion := closestFormat(lower); suggestion != "" {
		return "", fmt.Errorf("invalid format: %s, did you mean %s? (valid: json, text, pretty)", s, suggestion)
	}
	return "", fmt.Errorf("invalid format: %s (valid: json, text, pretty)", s)
}

func closestFormat(s string) Format {
	if s == "" {
		return ""
	}
	var closest Format
	minDist := -1
	for _, f := range ValidFormats {
		dist := levenshtein.ComputeDistance(s, string(f))
		if minDist == -1 || dist < minDist {
			minDist = dist
			closest = f
		}
	}
	if minDist > 2 {
		return ""
	}
	return closest
}

// Renderer renders a list of items. JSON output marshals Value when it is set
// and Data otherwise.
type Renderer[T any] struct {
	Data         []T
	Value        any
	Compact      bool
	TextFormat   func(T) string
	PrettyFormat func([]T) string
}

func (r Renderer[T]) Render(format Format) (string, error) {
	switch format {
	case FormatJSON:
		return r.renderJSON()
	case FormatPretty:
		return r.renderPretty()
	case FormatText:
		return r.renderText()
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func (r Renderer[T]) renderPretty() (string, error) {
	if r.PrettyFormat == nil {
		return "", fmt.Errorf("pretty format not defined for this type")
	}
	return r.PrettyFormat(r.Data), nil
}

func (r Renderer[T]) renderJSON() (string, error) {
	var v any = r.Data
	if r.Value != nil {
		v = r.Value
	}

	var (
		bytes []byte
		err   error
	)
	if r.Compact {
		bytes, err = json.Marshal(v)
	} else {
		bytes, err = json.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (r Renderer[T]) renderText() (string, error) {
	if r.TextFormat == nil {
		return "", fmt.Errorf("text format not defined for this type")
	}

	var lines []string
	for _, item := range r.Data {
		lines = append(lines, r.TextFormat(item))
	}
	return strings.Join(lines, "\n"), nil
}
