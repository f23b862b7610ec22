package token

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ScholarAI/internal/testutil"
)

func okHandler(t *testing.T, wantUser string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, ok := UserIDFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, wantUser, uid)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	iss := newTestIssuer(t, time.Now())
	mw := NewMiddleware(iss, testutil.NewMockLogger(), nil)
	valid, _, err := iss.Issue("2", "Jane", "student")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer " + valid, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			mw.Authenticate(okHandler(t, "2")).ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusUnauthorized {
				assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	iss := newTestIssuer(t, time.Now())
	mw := NewMiddleware(iss, testutil.NewMockLogger(), nil)
	h := mw.Authenticate(mw.RequireRole("admin")(okHandler(t, "1")))

	admin, _, err := iss.Issue("1", "Admin", "admin")
	require.NoError(t, err)
	student, _, err := iss.Issue("2", "Jane", "student")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/schemes", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/schemes", nil)
	req.Header.Set("Authorization", "Bearer "+student)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCustomFailureHandler(t *testing.T) {
	called := false
	mw := NewMiddleware(newTestIssuer(t, time.Now()), testutil.NewMockLogger(), func(w http.ResponseWriter, _ *http.Request, err error) {
		called = true
		assert.ErrorIs(t, err, ErrMissingAuthHeader)
		w.WriteHeader(http.StatusTeapot)
	})
	rec := httptest.NewRecorder()
	mw.Authenticate(okHandler(t, "")).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, called)
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

//Personal.AI order the ending
