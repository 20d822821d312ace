package petstoretest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/petstore-e2e/internal/domains/pets/adapters/http/mapper"
)

func serve(t *testing.T, store *Store, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	store.Handler().ServeHTTP(rec, req)
	return rec
}

func TestStore_SaveEchoesAndStores(t *testing.T) {
	store := NewStore()
	rec := serve(t, store, http.MethodPost, BasePath+"/pet", `{"id": 5, "name": "Rex", "status": "available"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id": 5, "category": {"id": 0, "name": ""}, "name": "Rex", "photoUrls": [], "tags": [], "status": "available"}`, rec.Body.String())

	rec = serve(t, store, http.MethodPut, BasePath+"/pet", `{"id": 5, "name": "Rex", "status": "sold"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	pet, ok := store.Get(5)
	require.True(t, ok)
	assert.Equal(t, "sold", pet.Status)
	assert.Equal(t, 1, store.Len())
}

func TestStore_BadBody(t *testing.T) {
	rec := serve(t, NewStore(), http.MethodPost, BasePath+"/pet", `{"id": "five"`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"code": 400, "type": "unknown", "message": "bad input"}`, rec.Body.String())
}

func TestStore_GetMissing(t *testing.T) {
	rec := serve(t, NewStore(), http.MethodGet, BasePath+"/pet/42", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"code": 1, "type": "error", "message": "Pet not found"}`, rec.Body.String())
}

func TestStore_Delete(t *testing.T) {
	store := NewStore()
	store.Seed(mapper.Pet{ID: 42, Name: "Odie"})

	rec := serve(t, store, http.MethodDelete, BasePath+"/pet/42", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"code": 200, "type": "unknown", "message": "42"}`, rec.Body.String())

	rec = serve(t, store, http.MethodDelete, BasePath+"/pet/42", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestStore_ResetAndServer(t *testing.T) {
	store, server := NewServer()
	defer server.Close()
	store.Seed(mapper.Pet{ID: 1})
	store.Reset()
	assert.Equal(t, 0, store.Len())

	resp, err := http.Get(server.URL + BasePath + "/pet/abc")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
