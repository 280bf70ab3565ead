package cmd_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/samwightt/gqllog/cmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_ValidLiteral(t *testing.T) {
	queryPath := writeTestFile(t, "query.graphql", booksAndChapterQuery)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"check", "-f", "text", queryPath})
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ Query parses (literal mode)")
}

func TestCheck_ValidVariables(t *testing.T) {
	queryPath := writeTestFile(t, "query.graphql", variablesQuery)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"check", "-f", "text", "--variables", twoVariables, queryPath})
	require.NoError(t, err)
	assert.Contains(t, stdout, "(variables mode)")
}

func TestCheck_ParseError_Text(t *testing.T) {
	queryPath := writeTestFile(t, "query.graphql", "query {\n  books(authorId: ) { id }\n}")

	stdout, _, err := cmd.ExecuteWithArgs([]string{"check", "-f", "text", queryPath})
	require.ErrorIs(t, err, cmd.ErrParseFailed)

	assert.Contains(t, stdout, "✗ Query has 1 error:")
	assert.Contains(t, stdout, queryPath+":2:")
	assert.Contains(t, stdout, "books(authorId: ) { id }")
	assert.Contains(t, stdout, "^")
}

func TestCheck_ParseError_JSON(t *testing.T) {
	stdout, _, err := cmd.ExecuteWithArgsAndStdin([]string{"check", "-f", "json"}, bytes.NewBufferString("query {"))
	require.ErrorIs(t, err, cmd.ErrParseFailed)

	var result struct {
		Valid  bool `json:"valid"`
		Errors []struct {
			Message   string `json:"message"`
			Locations []struct {
				Line   int `json:"line"`
				Column int `json:"column"`
			} `json:"locations"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.NotEmpty(t, result.Errors[0].Message)
	require.Len(t, result.Errors[0].Locations, 1)
	assert.Equal(t, 1, result.Errors[0].Locations[0].Line)
}

func TestCheck_Valid_JSON(t *testing.T) {
	stdout, _, err := cmd.ExecuteWithArgs([]string{"check", "-f", "json", "-q", "{ books { id } }"})
	require.NoError(t, err)

	assert.JSONEq(t, `{"valid": true, "mode": "literal"}`, stdout)
}

func TestCheck_Empty(t *testing.T) {
	stdout, _, err := cmd.ExecuteWithArgs([]string{"check", "-f", "text"})
	require.ErrorIs(t, err, cmd.ErrParseFailed)
	assert.Contains(t, stdout, "Query from stdin is empty")
}
