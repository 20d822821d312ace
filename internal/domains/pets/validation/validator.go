// Package validation asserts pet store responses field by field.
//
// Checks run in a fixed order and the first mismatch is returned as a
// *errors.ValidationFailure naming the field, the expected value and the
// value actually received.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/Apurer/petstore-e2e/internal/domains/pets/domain"
	"github.com/Apurer/petstore-e2e/internal/domains/pets/ports"
	harnesserrors "github.com/Apurer/petstore-e2e/internal/shared/errors"
)

// ErrNoExpectedTag is returned when a full check is requested for a pet without tags.
var ErrNoExpectedTag = fmt.Errorf("%w: expected pet has no tags", harnesserrors.ErrValidation)

// Values the pet store uses in its delete acknowledgement.
const (
	deleteCode = 200
	deleteType = "unknown"
)

// Expected is the set of field assertions derived from a pet.
type Expected struct {
	ID       int64
	Name     string
	Category domain.Category
	Tag      *domain.Tag
	Status   string
}

// ExpectFrom derives the assertions for pet, expecting status instead of the
// pet's own status. Only the first tag is kept.
func ExpectFrom(pet domain.Pet, status domain.Status) Expected {
	exp := Expected{
		ID:       pet.ID,
		Name:     pet.Name,
		Category: pet.Category,
		Status:   string(status),
	}
	if tag, ok := pet.FirstTag(); ok {
		exp.Tag = &tag
	}
	return exp
}

type check func(body map[string]any) error

// ValidatePet runs the full check set: status code, id, name, category,
// the first tag and status.
func ValidatePet(resp *ports.Response, exp Expected) error {
	if exp.Tag == nil {
		return ErrNoExpectedTag
	}
	return run(resp,
		intField("id", exp.ID),
		stringField("name", exp.Name),
		intField("category.id", exp.Category.ID),
		stringField("category.name", exp.Category.Name),
		intField("tags[0].id", exp.Tag.ID),
		stringField("tags[0].name", exp.Tag.Name),
		stringField("status", exp.Status),
	)
}

// ValidateBatch runs the reduced check set used for fixture-table rows; tags
// are not inspected.
func ValidateBatch(resp *ports.Response, exp Expected) error {
	return run(resp,
		intField("id", exp.ID),
		stringField("name", exp.Name),
		intField("category.id", exp.Category.ID),
		stringField("category.name", exp.Category.Name),
		stringField("status", exp.Status),
	)
}

// ValidateDelete checks the acknowledgement returned for a deleted pet.
func ValidateDelete(resp *ports.Response, id int64) error {
	return run(resp,
		intField("code", deleteCode),
		stringField("type", deleteType),
		stringField("message", strconv.FormatInt(id, 10)),
	)
}

func run(resp *ports.Response, checks ...check) error {
	if resp == nil {
		return &harnesserrors.ValidationFailure{Field: "response", Expected: "a response"}
	}
	if resp.StatusCode != http.StatusOK {
		return &harnesserrors.ValidationFailure{Field: "status_code", Expected: http.StatusOK, Actual: resp.StatusCode}
	}
	for _, c := range checks {
		if err := c(resp.Body); err != nil {
			return err
		}
	}
	return nil
}

func intField(path string, want int64) check {
	return func(body map[string]any) error {
		raw, ok := lookup(body, path)
		if !ok {
			return &harnesserrors.ValidationFailure{Field: path, Expected: want}
		}
		got, err := asInt64(raw)
		if err != nil || got != want {
			return &harnesserrors.ValidationFailure{Field: path, Expected: want, Actual: raw}
		}
		return nil
	}
}

func stringField(path string, want string) check {
	return func(body map[string]any) error {
		raw, ok := lookup(body, path)
		if !ok {
			return &harnesserrors.ValidationFailure{Field: path, Expected: want}
		}
		got, isString := raw.(string)
		if !isString || got != want {
			return &harnesserrors.ValidationFailure{Field: path, Expected: want, Actual: raw}
		}
		return nil
	}
}

var errNotInteger = errors.New("not an integer")

func asInt64(v any) (int64, error) {
	switch n := v.(type) {
	case json.Number:
		return n.Int64()
	case float64:
		if n != math.Trunc(n) {
			return 0, errNotInteger
		}
		return int64(n), nil
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	default:
		return 0, errNotInteger
	}
}
