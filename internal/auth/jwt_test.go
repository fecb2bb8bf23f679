package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splice-sistemas/splice-be/internal/models"
)

func testUser() models.Profile {
	return models.Profile{ID: "u1", Name: "Maria", Role: models.RoleOperator}
}

func TestTokenRoundTrip(t *testing.T) {
	a := New("test-secret")

	token, err := a.GenerateToken(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := a.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "Maria", claims.Name)
	assert.Equal(t, models.RoleOperator, claims.Role)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := New("secret-a").GenerateToken(testUser())
	require.NoError(t, err)

	_, err = New("secret-b").ValidateToken(token)
	assert.Error(t, err)

	_, err = New("secret-a").ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	a := New("test-secret")
	token, err := a.GenerateToken(testUser())
	require.NoError(t, err)

	var captured *Claims
	handler := a.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, captured)
		assert.Equal(t, "u1", captured.UserID)
	})

	t.Run("session cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer tampered")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	a := New("test-secret")
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	protected := a.Middleware()(RequireRole(models.RoleManager)(next))

	serve := func(role string) int {
		token, err := a.GenerateToken(models.Profile{ID: "u1", Role: role})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, serve(models.RoleManager))
	assert.Equal(t, http.StatusForbidden, serve(models.RoleOperator))
	// Admins pass every role gate.
	assert.Equal(t, http.StatusOK, serve(models.RoleAdmin))
}

func TestHasRole(t *testing.T) {
	assert.False(t, HasRole(nil, models.RoleManager))
	assert.True(t, HasRole(&Claims{Role: models.RoleAdmin}, models.RoleManager))
	assert.True(t, HasRole(&Claims{Role: models.RoleManager}, models.RoleManager))
	assert.False(t, HasRole(&Claims{Role: models.RoleOperator}, models.RoleManager))
}
