package cmd_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/samwightt/gqllog/cmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resolversQuery = `query {
  mine: books(authorId: 1, first: 10) { id }
  chapter(storyAttributes: { charCount: 1 }) { id }
  bookCount { total }
}`

func TestResolvers_Text(t *testing.T) {
	stdout, _, err := cmd.ExecuteWithArgs([]string{"resolvers", "-f", "text", "-q", resolversQuery})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Equal(t, []string{
		"mine: books(authorId, first)",
		"chapter(storyAttributes)",
		"bookCount",
	}, lines)
}

func TestResolvers_JSON(t *testing.T) {
	stdout, _, err := cmd.ExecuteWithArgs([]string{"resolvers", "-f", "json", "-q", resolversQuery})
	require.NoError(t, err)

	var resolvers []struct {
		Name      string   `json:"name"`
		Alias     string   `json:"alias"`
		Arguments []string `json:"arguments"`
		Line      int      `json:"line"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resolvers))

	require.Len(t, resolvers, 3)
	assert.Equal(t, "books", resolvers[0].Name)
	assert.Equal(t, "mine", resolvers[0].Alias)
	assert.Equal(t, []string{"authorId", "first"}, resolvers[0].Arguments)
	assert.Equal(t, 2, resolvers[0].Line)
	assert.Equal(t, "bookCount", resolvers[2].Name)
	assert.Empty(t, resolvers[2].Arguments)
}

func TestResolvers_Pretty(t *testing.T) {
	stdout, _, err := cmd.ExecuteWithArgs([]string{"resolvers", "-f", "pretty", "-q", resolversQuery})
	require.NoError(t, err)

	assert.Contains(t, stdout, "─")
	assert.Contains(t, stdout, "resolver")
	assert.Contains(t, stdout, "position")
	assert.Contains(t, stdout, "chapter")
}

func TestResolvers_NameGlob(t *testing.T) {
	stdout, _, err := cmd.ExecuteWithArgs([]string{"resolvers", "-f", "text", "--name", "book*", "-q", resolversQuery})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Equal(t, []string{"mine: books(authorId, first)", "bookCount"}, lines)
}

func TestResolvers_NameRegex(t *testing.T) {
	stdout, _, err := cmd.ExecuteWithArgs([]string{"resolvers", "-f", "text", "--name-regex", "^chap", "-q", resolversQuery})
	require.NoError(t, err)

	assert.Equal(t, "chapter(storyAttributes)", strings.TrimSpace(stdout))
}

func TestResolvers_InvalidRegex(t *testing.T) {
	_, _, err := cmd.ExecuteWithArgs([]string{"resolvers", "--name-regex", "[", "-q", resolversQuery})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid regex pattern for --name-regex")
}

func TestResolvers_HasArg(t *testing.T) {
	stdout, _, err := cmd.ExecuteWithArgs([]string{"resolvers", "-f", "text", "--has-arg", "first", "--has-arg", "authorId", "-q", resolversQuery})
	require.NoError(t, err)

	assert.Equal(t, "mine: books(authorId, first)", strings.TrimSpace(stdout))
}

func TestResolvers_NoMatches(t *testing.T) {
	stdout, stderr, err := cmd.ExecuteWithArgs([]string{"resolvers", "-f", "text", "--name", "zzz", "-q", resolversQuery})
	require.NoError(t, err)

	assert.Empty(t, strings.TrimSpace(stdout))
	assert.Contains(t, stderr, "No resolvers found that match the filters.")
}

func TestResolvers_UnparsableQuery(t *testing.T) {
	_, stderr, err := cmd.ExecuteWithArgs([]string{"resolvers", "-f", "text", "-q", "query {"})
	require.NoError(t, err)
	assert.Contains(t, stderr, "No resolvers found")
}
