package application

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/Apurer/petstore-e2e/internal/domains/pets/domain"
	"github.com/Apurer/petstore-e2e/internal/domains/pets/fixtures"
)

// Config is the fixed test data every case reads. It is built once and
// passed by value; cases never mutate it.
type Config struct {
	// Create is posted by the create case and expected back by read.
	Create domain.Pet
	// Update is put by the update case. It must share Create's id.
	Update domain.Pet
	// CreatedStatus is expected after create and read.
	CreatedStatus domain.Status
	// UpdatedStatus is expected after update.
	UpdatedStatus domain.Status
	// Fixtures holds the batch table.
	Fixtures fs.FS
	// BatchFixture is the path of the batch table inside Fixtures.
	BatchFixture string
}

var ErrMismatchedIDs = errors.New("create and update fixtures must share the same pet id")

// PetID is the id the lifecycle cases operate on.
func (c Config) PetID() int64 {
	return c.Create.ID
}

// LoadConfig reads the create and update literals from fsys and fills in the
// default statuses. An empty batchFixture selects fixtures.BatchFixture.
func LoadConfig(fsys fs.FS, batchFixture string) (Config, error) {
	if fsys == nil {
		fsys = fixtures.Default()
	}
	if batchFixture == "" {
		batchFixture = fixtures.BatchFixture
	}
	create, err := fixtures.LoadPet(fsys, fixtures.CreateFixture)
	if err != nil {
		return Config{}, fmt.Errorf("load create fixture: %w", err)
	}
	update, err := fixtures.LoadPet(fsys, fixtures.UpdateFixture)
	if err != nil {
		return Config{}, fmt.Errorf("load update fixture: %w", err)
	}
	cfg := Config{
		Create:        create,
		Update:        update,
		CreatedStatus: domain.StatusAvailable,
		UpdatedStatus: domain.StatusSold,
		Fixtures:      fsys,
		BatchFixture:  batchFixture,
	}
	return cfg, cfg.Validate()
}

// Validate checks the lifecycle literals are usable by the validator.
func (c Config) Validate() error {
	if err := c.Create.Validate(); err != nil {
		return fmt.Errorf("create fixture: %w", err)
	}
	if err := c.Update.Validate(); err != nil {
		return fmt.Errorf("update fixture: %w", err)
	}
	if c.Create.ID != c.Update.ID {
		return ErrMismatchedIDs
	}
	if c.Fixtures == nil || c.BatchFixture == "" {
		return errors.New("batch fixture is required")
	}
	return nil
}
