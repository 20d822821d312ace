package mapper

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/petstore-e2e/internal/domains/pets/domain"
)

func TestFromDomainPet_EmitsEmptyPhotoURLs(t *testing.T) {
	pet := domain.Pet{
		ID:       1,
		Category: domain.Category{ID: 2, Name: "cat"},
		Name:     "Rex",
		Tags:     []domain.Tag{{ID: 5, Name: "friendly"}},
		Status:   domain.StatusAvailable,
	}

	body, err := json.Marshal(FromDomainPet(pet))
	require.NoError(t, err)
	require.JSONEq(t, `{
		"id": 1,
		"category": {"id": 2, "name": "cat"},
		"name": "Rex",
		"photoUrls": [],
		"tags": [{"id": 5, "name": "friendly"}],
		"status": "available"
	}`, string(body))
}

func TestToDomainPet_PreservesTagOrder(t *testing.T) {
	var payload Pet
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": 173218101,
		"category": {"id": 1, "name": "dog"},
		"name": "Snoopy",
		"photoUrls": [],
		"tags": [{"id": 9, "name": "vaccined"}, {"id": 3, "name": "groomed"}],
		"status": "sold"
	}`), &payload))

	pet := ToDomainPet(payload)
	require.Equal(t, int64(173218101), pet.ID)
	require.Equal(t, domain.StatusSold, pet.Status)
	require.Equal(t, []domain.Tag{{ID: 9, Name: "vaccined"}, {ID: 3, Name: "groomed"}}, pet.Tags)
	require.Equal(t, pet, ToDomainPet(FromDomainPet(pet)))
}
