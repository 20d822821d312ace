// Package petstoretest provides an in-process stand-in for the public pet
// store's /v2/pet endpoints, used to exercise the harness without network
// access and to verify the harness's pact contract.
package petstoretest

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Apurer/petstore-e2e/internal/domains/pets/adapters/http/mapper"
)

// BasePath is the path prefix the double serves, matching the public API.
const BasePath = "/v2"

// ApiResponse is the envelope the pet store returns for deletes and errors.
type ApiResponse struct {
	Code    int32  `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Store holds the pets served by the double. It is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	pets  map[int64]mapper.Pet
	delay time.Duration
}

// NewStore constructs an empty store.
func NewStore() *Store {
	return &Store{pets: map[int64]mapper.Pet{}}
}

// NewServer starts the double on a loopback port. The base URL of the pet
// API is server.URL + BasePath; callers close the server.
func NewServer() (*Store, *httptest.Server) {
	store := NewStore()
	return store, httptest.NewServer(store.Handler())
}

// Seed stores a pet as if it had been created through the API.
func (s *Store) Seed(pet mapper.Pet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pets[pet.ID] = clonePet(pet)
}

// Reset drops every stored pet.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pets = map[int64]mapper.Pet{}
}

// Get returns a stored pet.
func (s *Store) Get(id int64) (mapper.Pet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pet, ok := s.pets[id]
	return clonePet(pet), ok
}

// Len reports how many pets are stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pets)
}

// SetDelay makes every subsequent response wait d before being written.
func (s *Store) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// Handler returns a gin engine serving the pet endpoints under BasePath.
func (s *Store) Handler() http.Handler {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware("petstore-double"), s.delayMiddleware)

	v2 := router.Group(BasePath)
	v2.POST("/pet", s.savePet)
	v2.PUT("/pet", s.savePet)
	v2.GET("/pet/:petId", s.getPet)
	v2.DELETE("/pet/:petId", s.deletePet)
	return router
}

// Post /v2/pet and Put /v2/pet
// Both upsert and echo the stored pet, like the public API.
func (s *Store) savePet(c *gin.Context) {
	var payload mapper.Pet
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ApiResponse{Code: http.StatusBadRequest, Type: "unknown", Message: "bad input"})
		return
	}
	if payload.PhotoURLs == nil {
		payload.PhotoURLs = []string{}
	}
	if payload.Tags == nil {
		payload.Tags = []mapper.Tag{}
	}
	s.Seed(payload)
	c.JSON(http.StatusOK, payload)
}

// Get /v2/pet/:petId
func (s *Store) getPet(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	pet, found := s.Get(id)
	if !found {
		c.JSON(http.StatusNotFound, ApiResponse{Code: 1, Type: "error", Message: "Pet not found"})
		return
	}
	c.JSON(http.StatusOK, pet)
}

// Delete /v2/pet/:petId
func (s *Store) deletePet(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	s.mu.Lock()
	_, found := s.pets[id]
	delete(s.pets, id)
	s.mu.Unlock()
	if !found {
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, ApiResponse{Code: http.StatusOK, Type: "unknown", Message: strconv.FormatInt(id, 10)})
}

func (s *Store) delayMiddleware(c *gin.Context) {
	s.mu.RLock()
	delay := s.delay
	s.mu.RUnlock()
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-c.Request.Context().Done():
			c.Abort()
			return
		}
	}
	c.Next()
}

func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("petId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, ApiResponse{Code: http.StatusNotFound, Type: "unknown", Message: "invalid pet id " + c.Param("petId")})
		return 0, false
	}
	return id, true
}

func clonePet(pet mapper.Pet) mapper.Pet {
	clone := pet
	clone.PhotoURLs = append([]string{}, pet.PhotoURLs...)
	clone.Tags = append([]mapper.Tag{}, pet.Tags...)
	return clone
}
