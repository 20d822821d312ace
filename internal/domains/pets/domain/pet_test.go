package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func snoopy() Pet {
	return Pet{
		ID:        173218101,
		Category:  Category{ID: 1, Name: "dog"},
		Name:      "Snoopy",
		PhotoURLs: []string{},
		Tags:      []Tag{{ID: 9, Name: "vaccined"}},
		Status:    StatusAvailable,
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, snoopy().Validate())

	unnamed := snoopy()
	unnamed.Name = "  "
	require.ErrorIs(t, unnamed.Validate(), ErrEmptyName)

	untagged := snoopy()
	untagged.Tags = nil
	require.ErrorIs(t, untagged.Validate(), ErrNoTags)
}

func TestWithStatusDoesNotAlias(t *testing.T) {
	original := snoopy()
	sold := original.WithStatus(StatusSold)
	sold.Tags[0].Name = "changed"

	require.Equal(t, StatusAvailable, original.Status)
	require.Equal(t, StatusSold, sold.Status)
	require.Equal(t, "vaccined", original.Tags[0].Name)
}

func TestFirstTag(t *testing.T) {
	pet := snoopy()
	pet.Tags = append(pet.Tags, Tag{ID: 10, Name: "neutered"})
	tag, ok := pet.FirstTag()
	require.True(t, ok)
	require.Equal(t, Tag{ID: 9, Name: "vaccined"}, tag)

	_, ok = Pet{}.FirstTag()
	require.False(t, ok)
}

func TestStatusValid(t *testing.T) {
	require.True(t, StatusSold.Valid())
	require.False(t, Status("adopted").Valid())
}
