package logdetails

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

func TestParse_Blank(t *testing.T) {
	parsed := Parse("  ")

	assert.False(t, parsed.OK())
	assert.ErrorIs(t, parsed.Err, ErrEmptyInput)
	assert.Empty(t, parsed.Selections())
}

func TestParse_Invalid(t *testing.T) {
	parsed := Parse("query {")

	assert.False(t, parsed.OK())
	assert.ErrorIs(t, parsed.Err, ErrParseFailure)

	var gqlErr *gqlerror.Error
	require.True(t, errors.As(parsed.Err, &gqlErr))
	require.NotEmpty(t, gqlErr.Locations)
	assert.Equal(t, 1, gqlErr.Locations[0].Line)
}

func TestParse_Selections(t *testing.T) {
	parsed := Parse(`{ a { id } b(x: 1) { id } }`)

	require.True(t, parsed.OK())
	selections := parsed.Selections()
	require.Len(t, selections, 2)
	assert.Equal(t, "a", selections[0].Name)
	assert.Equal(t, "b", selections[1].Name)
	assert.Len(t, selections[1].Arguments, 1)
}
