// Package diagnostic renders query parse failures as source snippets with an
// underline under the offending token.
package diagnostic

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

var (
	gutterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	caretStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

// Diagnostic points at a location in a named source.
type Diagnostic struct {
	SourceName string
	Line       int
	Column     int
	// Length is the number of columns to underline, at least one.
	Length  int
	Message string
	Help    string
}

// FromError builds diagnostics for a parser error. Errors without locations
// produce a diagnostic with Line zero.
func FromError(sourceName string, err error) []Diagnostic {
	var list gqlerror.List
	var single *gqlerror.Error
	switch {
	case errors.As(err, &list):
	case errors.As(err, &single):
		list = gqlerror.List{single}
	default:
		return []Diagnostic{{SourceName: sourceName, Message: err.Error()}}
	}

	diags := make([]Diagnostic, 0, len(list))
	for _, e := range list {
		d := Diagnostic{SourceName: sourceName, Message: e.Message, Length: 1}
		if len(e.Locations) > 0 {
			d.Line = e.Locations[0].Line
			d.Column = e.Locations[0].Column
		}
		diags = append(diags, d)
	}
	return diags
}

// Render draws the diagnostic against source. The snippet is omitted when the
// line is out of range:
//
//	--> query.graphql:3:9
//	3 | query { user(
//	  |         ^ message
func (d Diagnostic) Render(source string) string {
	if d.Line < 1 {
		return "  " + d.Message
	}

	var b strings.Builder
	b.WriteString(gutterStyle.Render("-->") + " " + d.SourceName + ":" + strconv.Itoa(d.Line) + ":" + strconv.Itoa(d.Column))

	lines := strings.Split(source, "\n")
	if d.Line <= len(lines) {
		b.WriteString("\n")
		b.WriteString(snippet(lines[d.Line-1], d.Line, d.Column, d.Length, d.Message))
	}
	if d.Help != "" {
		b.WriteString("\n  = " + helpStyle.Render("help:") + " " + d.Help)
	}
	return b.String()
}

func snippet(source string, lineNum, column, length int, message string) string {
	if length < 1 {
		length = 1
	}
	if column < 1 {
		column = 1
	}

	numStr := strconv.Itoa(lineNum)
	pipe := gutterStyle.Render("|")
	codeLine := gutterStyle.Render(numStr) + " " + pipe + " " + source

	underLine := strings.Repeat(" ", len(numStr)) + " " + pipe + " " +
		strings.Repeat(" ", column-1) + caretStyle.Render(strings.Repeat("^", length))
	if message != "" {
		underLine += " " + messageStyle.Render(message)
	}

	return codeLine + "\n" + underLine
}
