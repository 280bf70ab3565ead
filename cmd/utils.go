package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samwightt/gqllog/pkg/logdetails"
	"github.com/spf13/cobra"
)

var tableStyle = lipgloss.NewStyle().PaddingRight(1)

func makeTable() *table.Table {
	return table.New().
		Width(120).
		Wrap(true).
		StyleFunc(func(row, col int) lipgloss.Style {
			return tableStyle
		})
}

const maxSuggestionDistance = 5

func findClosest(input string, candidates []string) string {
	minDist := -1
	closest := ""
	for _, c := range candidates {
		dist := levenshtein.ComputeDistance(input, c)
		if minDist == -1 || dist < minDist {
			minDist = dist
			closest = c
		}
	}
	if minDist > maxSuggestionDistance {
		return ""
	}
	return closest
}

// filterSlice returns a new slice containing only the elements that satisfy the predicate.
func filterSlice[T any](items []T, predicate func(T) bool) []T {
	var result []T
	for _, item := range items {
		if predicate(item) {
			result = append(result, item)
		}
	}
	return result
}

// queryInput is query text along with a name for it used in diagnostics.
type queryInput struct {
	Name    string
	Content string
}

// readQuery takes the query from --query, then a file argument, then stdin.
func readQuery(cmd *cobra.Command, args []string) (queryInput, error) {
	if queryText != "" {
		if len(args) > 0 {
			return queryInput{}, errors.New("--query and a query file cannot be used together")
		}
		return queryInput{Name: "query", Content: queryText}, nil
	}

	if len(args) == 1 {
		bytes, err := os.ReadFile(args[0])
		if err != nil {
			return queryInput{}, fmt.Errorf("failed to read query file: %w", err)
		}
		return queryInput{Name: args[0], Content: string(bytes)}, nil
	}

	bytes, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return queryInput{}, fmt.Errorf("failed to read from stdin: %w", err)
	}
	return queryInput{Name: "stdin", Content: string(bytes)}, nil
}

// loadVariables reads variables from --variables or --variables-file.
func loadVariables() (logdetails.Variables, error) {
	if variablesJSON != "" && variablesFile != "" {
		return nil, errors.New("--variables and --variables-file cannot be used together")
	}

	raw := []byte(variablesJSON)
	source := "--variables"
	if variablesFile != "" {
		var err error
		raw, err = os.ReadFile(variablesFile)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("variables file does not exist: %s", variablesFile)
			}
			return nil, fmt.Errorf("failed to read variables file: %w", err)
		}
		source = variablesFile
	}

	vars, err := logdetails.ParseVariables(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid variables in %s: %w", source, err)
	}
	return vars, nil
}

// compactJSON renders a value on one line for text and table cells.
func compactJSON(v any) string {
	var b strings.Builder
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Sprintf("%v", v)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
