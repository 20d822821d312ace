package domain

import (
	"errors"
	"strings"
)

// Status represents the lifecycle state of a pet inside the store catalog.
type Status string

const (
	StatusAvailable Status = "available"
	StatusPending   Status = "pending"
	StatusSold      Status = "sold"
)

// Valid reports whether the status is one the pet store knows about.
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusPending, StatusSold:
		return true
	}
	return false
}

// Category groups pets in the catalog.
type Category struct {
	ID   int64
	Name string
}

// Tag is a lightweight marker attached to pets for filtering.
type Tag struct {
	ID   int64
	Name string
}

// Pet is the record a harness case sends to the pet store and expects back.
type Pet struct {
	ID        int64
	Category  Category
	Name      string
	PhotoURLs []string
	Tags      []Tag
	Status    Status
}

var (
	ErrEmptyName = errors.New("pet name is required")
	ErrNoTags    = errors.New("at least one tag is required")
)

// Validate checks the invariants the response validator relies on.
func (p Pet) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if len(p.Tags) == 0 {
		return ErrNoTags
	}
	return nil
}

// FirstTag returns the first tag, the only one the validator inspects.
func (p Pet) FirstTag() (Tag, bool) {
	if len(p.Tags) == 0 {
		return Tag{}, false
	}
	return p.Tags[0], true
}

// WithStatus returns a copy carrying the given status.
func (p Pet) WithStatus(status Status) Pet {
	clone := p.Clone()
	clone.Status = status
	return clone
}

// Clone returns a deep copy so fixtures can be shared between cases.
func (p Pet) Clone() Pet {
	clone := p
	clone.PhotoURLs = append([]string{}, p.PhotoURLs...)
	clone.Tags = append([]Tag{}, p.Tags...)
	return clone
}
