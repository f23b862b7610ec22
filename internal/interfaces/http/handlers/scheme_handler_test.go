package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ScholarAI/internal/domain/scheme"
	"github.com/turtacn/ScholarAI/internal/testutil"
)

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) List(ctx context.Context, c scheme.Criteria) ([]scheme.Scheme, error) {
	args := m.Called(ctx, c)
	list, _ := args.Get(0).([]scheme.Scheme)
	return list, args.Error(1)
}

func (m *mockCatalog) Get(ctx context.Context, id string) (scheme.Scheme, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(scheme.Scheme), args.Error(1)
}

func (m *mockCatalog) Add(ctx context.Context, d scheme.Draft) (scheme.Scheme, error) {
	args := m.Called(ctx, d)
	return args.Get(0).(scheme.Scheme), args.Error(1)
}

func (m *mockCatalog) Update(ctx context.Context, id string, p scheme.Patch) (scheme.Scheme, bool, error) {
	args := m.Called(ctx, id, p)
	return args.Get(0).(scheme.Scheme), args.Bool(1), args.Error(2)
}

func (m *mockCatalog) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func schemeRouter(h *SchemeHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/schemes", h.List)
	r.Get("/schemes/{id}", h.Get)
	r.Patch("/schemes/{id}", h.Update)
	r.Delete("/schemes/{id}", h.Delete)
	return r
}

func TestSchemeHandler_ListPassesCriteria(t *testing.T) {
	cat := new(mockCatalog)
	want := scheme.Criteria{Text: "merit", Type: scheme.TypeScholarship, Level: scheme.LevelNational, Category: "SC"}
	cat.On("List", mock.Anything, want).Return([]scheme.Scheme{{ID: "3"}}, nil)

	h := NewSchemeHandler(cat, testutil.NewMockLogger(), 0)
	w := httptest.NewRecorder()
	schemeRouter(h).ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/schemes?q=+merit+&type=scholarship&level=national&category=SC", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)
	cat.AssertExpectations(t)
}

func TestSchemeHandler_ListFailureIsLoggedAndMasked(t *testing.T) {
	cat := new(mockCatalog)
	cat.On("List", mock.Anything, scheme.Criteria{}).Return(nil, fmt.Errorf("snapshot unavailable"))
	log := testutil.NewMockLogger()

	h := NewSchemeHandler(cat, log, 0)
	w := httptest.NewRecorder()
	schemeRouter(h).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/schemes", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "snapshot unavailable")
	assert.True(t, log.HasMessage("error", "request failed"))
}

func TestSchemeHandler_UpdateUnknownIsNotFound(t *testing.T) {
	cat := new(mockCatalog)
	title := "New title"
	cat.On("Update", mock.Anything, "77", scheme.Patch{Title: &title}).Return(scheme.Scheme{}, false, nil)

	h := NewSchemeHandler(cat, testutil.NewMockLogger(), 0)
	w := httptest.NewRecorder()
	schemeRouter(h).ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/schemes/77", strings.NewReader(`{"title":"New title"}`)))

	assert.Equal(t, http.StatusNotFound, w.Code)
	cat.AssertExpectations(t)
}

func TestSchemeHandler_DeleteAlwaysNoContent(t *testing.T) {
	cat := new(mockCatalog)
	cat.On("Delete", mock.Anything, "missing").Return(false, nil)

	h := NewSchemeHandler(cat, testutil.NewMockLogger(), 0)
	w := httptest.NewRecorder()
	schemeRouter(h).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/schemes/missing", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	cat.AssertExpectations(t)
}

//Personal.AI order the ending
