/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/samwightt/gqllog/pkg/diagnostic"
	"github.com/samwightt/gqllog/pkg/logdetails"
	"github.com/spf13/cobra"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// ErrParseFailed is returned when a query is blank or does not parse.
// This is a sentinel error that indicates the query is unusable,
// not that the command itself failed.
var ErrParseFailed = errors.New("query could not be parsed")

func parseErrors(err error) []ParseError {
	var list gqlerror.List
	var single *gqlerror.Error
	switch {
	case errors.As(err, &list):
	case errors.As(err, &single):
		list = gqlerror.List{single}
	default:
		return []ParseError{{Message: err.Error()}}
	}

	var result []ParseError
	for _, e := range list {
		pe := ParseError{Message: e.Message}
		for _, loc := range e.Locations {
			pe.Locations = append(pe.Locations, Location{Line: loc.Line, Column: loc.Column})
		}
		result = append(result, pe)
	}
	return result
}

func checkResult(parsed logdetails.Parsed, vars logdetails.Variables) *CheckResult {
	if !parsed.OK() {
		return &CheckResult{Valid: false, Errors: parseErrors(parsed.Err)}
	}
	mode := logdetails.ModeFor(parsed.Selections(), vars)
	return &CheckResult{Valid: true, Mode: mode.String()}
}

// detectZshEscapeIssue checks if a parse error might be caused by zsh's history
// expansion escaping `!` as `\!`. Returns a help message if detected.
func detectZshEscapeIssue(d diagnostic.Diagnostic, input queryInput) string {
	if input.Name != "stdin" {
		return ""
	}
	if !strings.Contains(input.Content, `\!`) {
		return ""
	}
	lines := strings.Split(input.Content, "\n")
	if d.Line < 1 || d.Line > len(lines) {
		return ""
	}
	line := lines[d.Line-1]
	col := d.Column - 1
	if col >= 0 && col < len(line)-1 && line[col] == '\\' && line[col+1] == '!' {
		return "it looks like zsh escaped `!` as `\\!`. Try using a heredoc instead:\n" +
			"       cat <<'EOF' | gqllog check\n" +
			"       query { ... }\n" +
			"       EOF"
	}
	return ""
}

// formatParseFailure renders every diagnostic for a failed parse.
func formatParseFailure(err error, input queryInput) string {
	if errors.Is(err, logdetails.ErrEmptyInput) {
		return fmt.Sprintf("✗ Query from %s is empty\n", input.Name)
	}

	diags := diagnostic.FromError(input.Name, err)

	var b strings.Builder
	if len(diags) == 1 {
		b.WriteString("✗ Query has 1 error:\n")
	} else {
		fmt.Fprintf(&b, "✗ Query has %d errors:\n", len(diags))
	}
	for _, d := range diags {
		d.Help = detectZshEscapeIssue(d, input)
		b.WriteString(d.Render(input.Content))
		b.WriteString("\n")
	}
	return b.String()
}

func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Check that a query parses",
		Long: `Checks that a GraphQL query parses and reports which mode its log record
would be built in (literal arguments or variables).

The query is not validated against a schema.

Exit codes:
  0 - Query parses
  1 - Query is blank or has syntax errors

Output formats:
  text    Human-readable errors with source snippets
  json    {"valid": bool, "mode": "...", "errors": [...]}`,
		Example: `  # Check a file
  gqllog check query.graphql

  # Check from stdin
  echo "query { user { id } }" | gqllog check

  # JSON output for CI integration
  gqllog check query.graphql -f json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runCheckCmd,
	}

	return cmd
}

func runCheckCmd(cmd *cobra.Command, args []string) error {
	input, err := readQuery(cmd, args)
	if err != nil {
		return err
	}
	vars, err := loadVariables()
	if err != nil {
		return err
	}

	parsed := logdetails.Parse(input.Content)
	result := checkResult(parsed, vars)

	switch outputFormat {
	case "json":
		bytes, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(bytes))
	default:
		if result.Valid {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Query parses (%s mode)\n", result.Mode)
		} else {
			fmt.Fprint(cmd.OutOrStdout(), formatParseFailure(parsed.Err, input))
		}
	}

	// Return error if parsing failed (causes exit code 1)
	if !result.Valid {
		return ErrParseFailed
	}

	return nil
}
