package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegexFilters(t *testing.T) {
	var none RegexFilters
	assert.True(t, none.AsFilter("1-create"))
	assert.Equal(t, "", none.Describe())

	var filters RegexFilters
	require.NoError(t, filters.MustMatch.Set("^[1-4]-"))
	require.NoError(t, filters.MustNotMatch.Set("delete"))

	assert.True(t, filters.AsFilter("1-create"))
	assert.True(t, filters.AsFilter("3-update"))
	assert.False(t, filters.AsFilter("4-delete"))
	assert.False(t, filters.AsFilter("5-batch-create"))
	assert.Equal(t, `skip any not matching "^[1-4]-"; skip any matching "delete"`, filters.Describe())
}

func TestRegexList_InvalidPattern(t *testing.T) {
	var list RegexList
	require.Error(t, list.Set("("))
	assert.False(t, list.IsDefined())
	assert.Equal(t, "regex", list.Type())
}
