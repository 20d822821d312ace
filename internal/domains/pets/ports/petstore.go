package ports

import (
	"context"
	"net/http"

	"github.com/Apurer/petstore-e2e/internal/domains/pets/domain"
)

// Request is a single JSON call against the pet store.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   any
}

// Response is what came back from the pet store. Body is nil when the
// response carried no JSON object; Raw always holds the bytes received.
type Response struct {
	StatusCode int
	Body       map[string]any
	Raw        []byte
}

// Invoker issues one HTTP request. Transport failures are returned as
// errors; any HTTP status, including non-2xx, is a valid Response.
type Invoker interface {
	Invoke(ctx context.Context, req Request) (*Response, error)
}

// PetStore is the set of pet operations the harness exercises (driven port).
type PetStore interface {
	CreatePet(ctx context.Context, pet domain.Pet) (*Response, error)
	GetPet(ctx context.Context, id int64) (*Response, error)
	UpdatePet(ctx context.Context, pet domain.Pet) (*Response, error)
	DeletePet(ctx context.Context, id int64) (*Response, error)
}
