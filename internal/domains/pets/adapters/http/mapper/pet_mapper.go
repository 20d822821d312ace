package mapper

import (
	"github.com/Apurer/petstore-e2e/internal/domains/pets/domain"
)

// Category is the HTTP representation of a pet category.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Tag is the HTTP representation of a pet tag.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Pet is the request body the pet store accepts on POST and PUT /pet.
// PhotoURLs and Tags always serialize as arrays; the schema requires photoUrls.
type Pet struct {
	ID        int64    `json:"id"`
	Category  Category `json:"category"`
	Name      string   `json:"name"`
	PhotoURLs []string `json:"photoUrls"`
	Tags      []Tag    `json:"tags"`
	Status    string   `json:"status"`
}

// ToDomainPet maps a transport Pet into the domain record.
func ToDomainPet(input Pet) domain.Pet {
	tags := make([]domain.Tag, 0, len(input.Tags))
	for _, t := range input.Tags {
		tags = append(tags, domain.Tag{ID: t.ID, Name: t.Name})
	}
	return domain.Pet{
		ID:        input.ID,
		Category:  domain.Category{ID: input.Category.ID, Name: input.Category.Name},
		Name:      input.Name,
		PhotoURLs: append([]string{}, input.PhotoURLs...),
		Tags:      tags,
		Status:    domain.Status(input.Status),
	}
}

// FromDomainPet maps a domain record into a transport Pet.
func FromDomainPet(p domain.Pet) Pet {
	tags := make([]Tag, 0, len(p.Tags))
	for _, t := range p.Tags {
		tags = append(tags, Tag{ID: t.ID, Name: t.Name})
	}
	return Pet{
		ID:        p.ID,
		Category:  Category{ID: p.Category.ID, Name: p.Category.Name},
		Name:      p.Name,
		PhotoURLs: append([]string{}, p.PhotoURLs...),
		Tags:      tags,
		Status:    string(p.Status),
	}
}
