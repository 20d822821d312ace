package fixtures

import (
	"strconv"
	"strings"

	"github.com/Apurer/petstore-e2e/internal/domains/pets/domain"
	harnesserrors "github.com/Apurer/petstore-e2e/internal/shared/errors"
)

const (
	tagSeparator      = ";"
	tagFieldSeparator = "-"
)

// BuildPet turns a raw fixture row into the pet a batch case submits.
//
// Tags are written as "id-name" groups joined by ";" and keep their order.
func BuildPet(row Row) (domain.Pet, error) {
	id, err := parseID(row, "id", row.ID)
	if err != nil {
		return domain.Pet{}, err
	}
	categoryID, err := parseID(row, "category_id", row.CategoryID)
	if err != nil {
		return domain.Pet{}, err
	}
	tags, err := parseTags(row)
	if err != nil {
		return domain.Pet{}, err
	}
	return domain.Pet{
		ID:        id,
		Category:  domain.Category{ID: categoryID, Name: row.CategoryName},
		Name:      row.Name,
		PhotoURLs: []string{},
		Tags:      tags,
		Status:    domain.Status(row.Status),
	}, nil
}

func parseTags(row Row) ([]domain.Tag, error) {
	if strings.TrimSpace(row.Tags) == "" {
		return nil, &harnesserrors.MalformedRowError{Line: row.Line, Field: "tags", Value: row.Tags, Reason: "at least one id-name group is required"}
	}
	groups := strings.Split(row.Tags, tagSeparator)
	tags := make([]domain.Tag, 0, len(groups))
	for _, group := range groups {
		parts := strings.Split(group, tagFieldSeparator)
		if len(parts) != 2 {
			return nil, &harnesserrors.MalformedRowError{Line: row.Line, Field: "tags", Value: group, Reason: "tag must be written as id-name"}
		}
		id, err := parseID(row, "tags.id", parts[0])
		if err != nil {
			return nil, err
		}
		tags = append(tags, domain.Tag{ID: id, Name: parts[1]})
	}
	return tags, nil
}

func parseID(row Row, field, value string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, &harnesserrors.MalformedRowError{Line: row.Line, Field: field, Value: value, Reason: "not an integer"}
	}
	return id, nil
}
