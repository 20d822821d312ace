package application

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/Apurer/petstore-e2e/internal/domains/pets/fixtures"
	"github.com/Apurer/petstore-e2e/internal/domains/pets/ports"
	"github.com/Apurer/petstore-e2e/internal/domains/pets/validation"
	harnesserrors "github.com/Apurer/petstore-e2e/internal/shared/errors"
)

// Case names, in execution order.
const (
	CaseCreate      = "create"
	CaseRead        = "read"
	CaseUpdate      = "update"
	CaseDelete      = "delete"
	CaseBatchCreate = "batch-create"
)

// Step is one independently reported unit of a case. Lifecycle cases have a
// single unnamed step; parametrized cases have one step per fixture row.
type Step struct {
	Name string
	Run  func(ctx context.Context, store ports.PetStore) error
}

// Case is an ordered test-case descriptor. Cases share no memory; later
// cases depend only on the state earlier ones left in the pet store.
type Case struct {
	Seq   int
	Name  string
	Steps iter.Seq2[Step, error]
}

// ID is the stable identifier used for filtering and reporting.
func (c Case) ID() string {
	return fmt.Sprintf("%d-%s", c.Seq, c.Name)
}

// Cases returns the lifecycle cases followed by the batch case.
func Cases(cfg Config) []Case {
	return []Case{
		single(1, CaseCreate, func(ctx context.Context, store ports.PetStore) error {
			resp, err := store.CreatePet(ctx, cfg.Create)
			if err != nil {
				return fmt.Errorf("create pet %d: %w", cfg.PetID(), err)
			}
			return validation.ValidatePet(resp, validation.ExpectFrom(cfg.Create, cfg.CreatedStatus))
		}),
		single(2, CaseRead, func(ctx context.Context, store ports.PetStore) error {
			resp, err := store.GetPet(ctx, cfg.PetID())
			if err != nil {
				return fmt.Errorf("get pet %d: %w", cfg.PetID(), err)
			}
			return validation.ValidatePet(resp, validation.ExpectFrom(cfg.Create, cfg.CreatedStatus))
		}),
		single(3, CaseUpdate, func(ctx context.Context, store ports.PetStore) error {
			resp, err := store.UpdatePet(ctx, cfg.Update)
			if err != nil {
				return fmt.Errorf("update pet %d: %w", cfg.PetID(), err)
			}
			return validation.ValidatePet(resp, validation.ExpectFrom(cfg.Update, cfg.UpdatedStatus))
		}),
		single(4, CaseDelete, func(ctx context.Context, store ports.PetStore) error {
			resp, err := store.DeletePet(ctx, cfg.PetID())
			if err != nil {
				return fmt.Errorf("delete pet %d: %w", cfg.PetID(), err)
			}
			return validation.ValidateDelete(resp, cfg.PetID())
		}),
		{Seq: 5, Name: CaseBatchCreate, Steps: batchSteps(cfg)},
	}
}

func single(seq int, name string, run func(context.Context, ports.PetStore) error) Case {
	return Case{
		Seq:  seq,
		Name: name,
		Steps: func(yield func(Step, error) bool) {
			yield(Step{Run: run}, nil)
		},
	}
}

// batchSteps yields one create-and-validate step per fixture row. A row that
// cannot be built fails only its own step.
func batchSteps(cfg Config) iter.Seq2[Step, error] {
	return func(yield func(Step, error) bool) {
		for row, err := range fixtures.Rows(cfg.Fixtures, cfg.BatchFixture) {
			if err != nil {
				yield(Step{Name: fixtureStepName(err)}, err)
				return
			}
			step := Step{
				Name: fmt.Sprintf("row-%d", row.Line),
				Run: func(ctx context.Context, store ports.PetStore) error {
					pet, err := fixtures.BuildPet(row)
					if err != nil {
						return err
					}
					resp, err := store.CreatePet(ctx, pet)
					if err != nil {
						return fmt.Errorf("create pet %d: %w", pet.ID, err)
					}
					return validation.ValidateBatch(resp, validation.ExpectFrom(pet, pet.Status))
				},
			}
			if !yield(step, nil) {
				return
			}
		}
	}
}

// fixtureStepName points a table error at its line when the reader knows it.
func fixtureStepName(err error) string {
	var malformed *harnesserrors.MalformedRowError
	if errors.As(err, &malformed) && malformed.Line > 0 {
		return fmt.Sprintf("row-%d", malformed.Line)
	}
	return "fixture"
}
